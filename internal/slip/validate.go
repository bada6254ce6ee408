package slip

import "fmt"

var allowedDenominations = map[int]bool{100: true, 200: true, 500: true}

// Validate applies the cross-slip rules to a (possibly user-edited)
// pair and returns every violation found, so the caller can fix all
// of them in one pass. An empty slice means the pair is valid.
//
// Deliberately not checked: whether END values are monotonic or even
// plausible. That is left to the human reviewing the slips.
func Validate(pair Pair) []string {
	var violations []string

	if pair.Slip1.ATMNumber != pair.Slip2.ATMNumber {
		violations = append(violations, "ATM Number must be the same for both slips.")
	}

	for slipIdx, s := range []Slip{pair.Slip1, pair.Slip2} {
		for i, d := range s.Denominations {
			if !allowedDenominations[d.Denomination] {
				violations = append(violations, fmt.Sprintf("Slip %d: Denomination %d must be 500, 200, or 100.", slipIdx+1, i+1))
			}
			if d.End == nil {
				violations = append(violations, fmt.Sprintf("Slip %d: END value for denomination %d cannot be blank.", slipIdx+1, i+1))
			}
		}
	}

	return violations
}
