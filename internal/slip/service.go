package slip

import (
	"fmt"
	"log/slog"
	"time"
)

// Extractor is the slice of the extraction backend the pipeline
// needs: one image in, one best-effort pair (plus the raw service
// response) out.
type Extractor interface {
	ExtractSlips(imageData []byte, contentType string) (*Pair, string, error)
	Close() error
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// SaveResult is what a successful save returns: the stored record and
// whether the slip ordering was assumed rather than read from parsed
// times. Clients should surface OrderingAssumed to the user, since a
// wrong assumption flips the delta signs.
type SaveResult struct {
	Record          *Record `json:"record"`
	OrderingAssumed bool    `json:"ordering_assumed"`
}

// Service runs the slip pipeline: extraction, validation,
// reconciliation and persistence.
type Service struct {
	db         Store
	extractor  Extractor
	timeSource TimeSource
}

// NewService creates a new Service with the default time source
func NewService(db Store, extractor Extractor) *Service {
	return &Service{
		db:         db,
		extractor:  extractor,
		timeSource: &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db Store, extractor Extractor, timeSource TimeSource) *Service {
	return &Service{
		db:         db,
		extractor:  extractor,
		timeSource: timeSource,
	}
}

// ScanImage sends an uploaded slip image to the extraction service
// and returns the candidate pair plus the raw response text. The pair
// is a best-effort reading; the caller is expected to let the user
// correct it before saving.
func (s *Service) ScanImage(data []byte, contentType string) (*Pair, string, error) {
	pair, raw, err := s.extractor.ExtractSlips(data, contentType)
	if err != nil {
		slog.Error("Failed to extract slips",
			"content_type", contentType,
			"image_size", len(data),
			"error", err,
		)
		return nil, raw, fmt.Errorf("extracting slips: %w", err)
	}
	return pair, raw, nil
}

// SaveSlips validates a corrected pair and, if it is clean, reconciles
// it into a ledger record for the selected date. Violations come back
// as a complete list with a nil error; the caller fixes all of them at
// once. The selected date is the ledger key, regardless of the dates
// printed on the slips.
func (s *Service) SaveSlips(pair Pair, date string, userID string) (*SaveResult, []string, error) {
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return nil, nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}

	if violations := Validate(pair); len(violations) > 0 {
		return nil, violations, nil
	}

	record, assumed, err := Reconcile(pair, date, userID)
	if err != nil {
		return nil, nil, err
	}
	record.CreatedAt = s.timeSource.Now()

	if assumed {
		slog.Warn("Slip order assumed from convention, not parsed times",
			"atm_id", record.ATMID,
			"date", date,
			"slip_1_time", pair.Slip1.Time,
			"slip_2_time", pair.Slip2.Time,
		)
	}

	// Cheap early exit; Insert repeats the check atomically.
	exists, err := s.db.Exists(record.Date, record.ATMID, record.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("checking for duplicate: %w", err)
	}
	if exists {
		return nil, nil, ErrDuplicate
	}

	if err := s.db.Insert(record); err != nil {
		return nil, nil, fmt.Errorf("saving record: %w", err)
	}

	return &SaveResult{Record: record, OrderingAssumed: assumed}, nil, nil
}

// ListRecords returns all records for a date and user.
func (s *Service) ListRecords(date string, userID string) ([]*Record, error) {
	records, err := s.db.List(date, userID)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	return records, nil
}

// ExportCSV renders the daily summary for a date and user as CSV.
func (s *Service) ExportCSV(date string, userID string) ([]byte, error) {
	return ExportCSV(s.db, date, userID)
}
