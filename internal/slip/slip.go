package slip

import "fmt"

// FaceValues is the fixed set of banknote denominations a dispenser
// cassette can hold. Slips referencing anything else are rejected by
// the validator.
var FaceValues = []int{100, 200, 500}

// Denomination is one counter line on a slip: the note face value and
// the dispenser's END counter reading for that cassette. End is a
// pointer so a missing reading stays distinguishable from a reading
// of zero.
type Denomination struct {
	Denomination int  `json:"denomination"`
	End          *int `json:"end"`
}

// Slip is one physical reconciliation slip read at one point in time.
// Date and Time are kept as the raw printed strings; Time is optional
// and many slips omit it entirely.
type Slip struct {
	ATMNumber     string         `json:"atm_number"`
	Branch        string         `json:"branch"`
	Date          string         `json:"date"`
	Time          string         `json:"time,omitempty"`
	Denominations []Denomination `json:"denominations"`
}

// Pair holds two slips believed to describe the same ATM at two
// different times. This is also the JSON wire shape the extraction
// service is asked to produce.
type Pair struct {
	Slip1 Slip `json:"slip_1"`
	Slip2 Slip `json:"slip_2"`
}

// SchemaError reports a structurally malformed slip: a slip with no
// denomination lines, a line missing its END reading, or a missing
// ATM number.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "slip schema: " + e.Reason
}

// EndFor returns the END counter reading for the given face value, or
// nil when the slip has no line for that denomination.
func (s *Slip) EndFor(denomination int) *int {
	for _, d := range s.Denominations {
		if d.Denomination == denomination {
			return d.End
		}
	}
	return nil
}

// CheckSchema verifies both slips are structurally complete. It does
// not apply the cross-slip domain rules; see Validate for those.
func (p *Pair) CheckSchema() error {
	for i, s := range []Slip{p.Slip1, p.Slip2} {
		if s.ATMNumber == "" {
			return &SchemaError{Reason: fmt.Sprintf("slip %d is missing an ATM number", i+1)}
		}
		if len(s.Denominations) == 0 {
			return &SchemaError{Reason: fmt.Sprintf("slip %d has no denomination lines", i+1)}
		}
		for j, d := range s.Denominations {
			if d.End == nil {
				return &SchemaError{Reason: fmt.Sprintf("slip %d denomination %d is missing its END value", i+1, j+1)}
			}
		}
	}
	return nil
}
