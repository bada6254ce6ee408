package slip

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

var csvHeader = []string{"date", "atm_id", "name", "hundred", "two_hundred", "five_hundred", "total"}

// ExportCSV renders every record for a date and user as CSV: one row
// per record plus a header row. The internal row id and the user id
// never appear in the export. Absent denomination figures are blank
// cells, but count as zero in the total column.
func ExportCSV(store Store, date string, userID string) ([]byte, error) {
	records, err := store.List(date, userID)
	if err != nil {
		return nil, fmt.Errorf("listing records for export: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, record := range records {
		row := []string{
			record.Date,
			strconv.Itoa(record.ATMID),
			record.Name,
			csvCell(record.Hundred),
			csvCell(record.TwoHundred),
			csvCell(record.FiveHundred),
			strconv.Itoa(record.Total()),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

func csvCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
