package slip

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// clockFormats is the ladder of printed time formats seen on slips,
// tried in order. 24-hour first, then 12-hour with AM/PM.
var clockFormats = []string{
	"15:04:05",
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
}

// InvalidATMNumberError reports a slip whose ATM number cannot be
// parsed as an integer ledger key. Fatal for the save attempt only.
type InvalidATMNumberError struct {
	Value string
}

func (e *InvalidATMNumberError) Error() string {
	return fmt.Sprintf("ATM number %q is not numeric", e.Value)
}

// parseClock parses a printed slip time against the format ladder.
// The second return is false when the value is absent or matches no
// known format.
func parseClock(value string) (time.Time, bool) {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		return time.Time{}, false
	}
	for _, format := range clockFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Order decides which slip is the earlier reading and which the
// later. When both printed times parse, the strictly later one wins.
// Equal times, or any time that is absent or unparseable, fall back
// to the convention that slip 2 is the later reading; assumed is true
// in that case so callers can warn the user instead of silently
// trusting a guess that flips the delta sign when wrong.
func Order(pair Pair) (earlier, later Slip, assumed bool) {
	t1, ok1 := parseClock(pair.Slip1.Time)
	t2, ok2 := parseClock(pair.Slip2.Time)
	if ok1 && ok2 {
		if t1.After(t2) {
			return pair.Slip2, pair.Slip1, false
		}
		if t2.After(t1) {
			return pair.Slip1, pair.Slip2, false
		}
	}
	return pair.Slip1, pair.Slip2, true
}

// delta returns the dispensed-cash figure for one denomination: the
// counter movement between the two readings scaled by the face value.
// Absent on either slip propagates as nil, never as zero; a cassette
// with no reading is not the same as a cassette that dispensed
// nothing.
func delta(earlier, later *Slip, denomination int) *int {
	e := earlier.EndFor(denomination)
	l := later.EndFor(denomination)
	if e == nil || l == nil {
		return nil
	}
	v := (*l - *e) * denomination
	return &v
}

// Reconcile turns a validated pair into the ledger record for the
// caller-selected date. The selected date is authoritative for the
// ledger key; the dates printed on the slips are informational only.
// assumed reports whether the slip ordering came from the fallback
// convention rather than parsed times.
func Reconcile(pair Pair, date string, userID string) (record *Record, assumed bool, err error) {
	atmID, err := strconv.Atoi(strings.TrimSpace(pair.Slip1.ATMNumber))
	if err != nil {
		return nil, false, &InvalidATMNumberError{Value: pair.Slip1.ATMNumber}
	}

	earlier, later, assumed := Order(pair)

	record = &Record{
		Date:        date,
		ATMID:       atmID,
		UserID:      userID,
		Name:        pair.Slip1.Branch,
		Hundred:     delta(&earlier, &later, 100),
		TwoHundred:  delta(&earlier, &later, 200),
		FiveHundred: delta(&earlier, &later, 500),
	}
	return record, assumed, nil
}
