package slip

import (
	"errors"
	"time"
)

// Record is the persisted summary of one reconciled slip pair: the
// signed dispensed-cash figure per denomination for one
// (date, atm_id, user_id) key. A nil figure means no reading existed
// for that denomination on one of the slips.
type Record struct {
	Date        string    `json:"date"`
	ATMID       int       `json:"atm_id"`
	UserID      string    `json:"user_id,omitempty"`
	Name        string    `json:"name"`
	Hundred     *int      `json:"hundred"`
	TwoHundred  *int      `json:"two_hundred"`
	FiveHundred *int      `json:"five_hundred"`
	CreatedAt   time.Time `json:"created_at"`
}

// Total sums the three denomination figures, treating absent figures
// as zero. Only used for display and export; the stored record keeps
// absence intact.
func (r *Record) Total() int {
	total := 0
	for _, v := range []*int{r.Hundred, r.TwoHundred, r.FiveHundred} {
		if v != nil {
			total += *v
		}
	}
	return total
}

// ErrDuplicate is returned by Store.Insert when a record already
// exists for the same date, ATM and user. The ledger is append-only;
// there is no update path.
var ErrDuplicate = errors.New("a record for this date, ATM and user already exists")

// Store is the ledger persistence interface. Insert must perform its
// own duplicate check atomically with the write; the standalone
// Exists call is only a cheap pre-check and cannot close the race on
// its own.
type Store interface {
	// Insert creates a record, or returns ErrDuplicate if one exists
	// for the same (date, atm_id, user_id) key.
	Insert(record *Record) error

	// Exists reports whether a record exists for the key.
	Exists(date string, atmID int, userID string) (bool, error)

	// List returns all records for a date and user.
	List(date string, userID string) ([]*Record, error)

	// Close closes the underlying store.
	Close() error
}
