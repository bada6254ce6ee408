package slip

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
)

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleScanImage accepts a multipart slip photo, runs extraction and
// returns the candidate pair plus the raw service response so the
// client can show it alongside the correction form.
func (s *Server) handleScanImage(w http.ResponseWriter, r *http.Request) {
	// 50MB to handle high-resolution phone photos of two slips
	maxFormSize := int64(50 << 20)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		errorMsg := "Error parsing form"
		if err.Error() == "http: request body too large" {
			errorMsg = "File is too large. Maximum size is 50MB."
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errorMsg})
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No file provided"})
		return
	}
	defer f.Close()

	if header.Size > maxFormSize {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "File is too large. Maximum size is 50MB."})
		return
	}

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error reading file. Please try again."})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = contentTypeFromExt(header.Filename)
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	pair, raw, err := s.service.ScanImage(data, contentType)
	if err != nil {
		slog.Error("Error scanning slip image", "filename", header.Filename, "error", err)
		body := map[string]string{"error": err.Error()}
		var parseErr interface{ RawResponse() string }
		if errors.As(err, &parseErr) {
			// Raw response preserved for diagnostics
			body["raw_text"] = parseErr.RawResponse()
			writeJSON(w, http.StatusUnprocessableEntity, body)
			return
		}
		writeJSON(w, http.StatusBadGateway, body)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"pair":     pair,
		"raw_text": raw,
	})
}

// saveSlipsRequest is the corrected pair plus the operator-selected
// ledger date.
type saveSlipsRequest struct {
	Slip1 Slip   `json:"slip_1"`
	Slip2 Slip   `json:"slip_2"`
	Date  string `json:"date"`
}

// handleSaveSlips validates and reconciles a corrected pair.
func (s *Server) handleSaveSlips(w http.ResponseWriter, r *http.Request) {
	var req saveSlipsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pair := Pair{Slip1: req.Slip1, Slip2: req.Slip2}
	result, violations, err := s.service.SaveSlips(pair, req.Date, s.userID())
	if err != nil {
		var atmErr *InvalidATMNumberError
		switch {
		case errors.Is(err, ErrDuplicate):
			writeJSON(w, http.StatusConflict, map[string]string{"error": "Duplicate entry: A slip for this ATM and date already exists."})
		case errors.As(err, &atmErr):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		default:
			slog.Error("Error saving slips", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return
	}
	if len(violations) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"violations": violations})
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// handleListRecords returns all records for a date.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		corsError(w, "date query parameter required", http.StatusBadRequest)
		return
	}

	records, err := s.service.ListRecords(date, s.userID())
	if err != nil {
		slog.Error("Error listing records", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// handleExportCSV streams the daily CSV summary for a date.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		corsError(w, "date query parameter required", http.StatusBadRequest)
		return
	}

	data, err := s.service.ExportCSV(date, s.userID())
	if err != nil {
		slog.Error("Error exporting records", "date", date, "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=daily_slips_%s.csv", date))
	w.Write(data)
}

func contentTypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}
