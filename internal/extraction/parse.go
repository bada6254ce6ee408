package extraction

import (
	"encoding/json"
	"strings"

	"atm-slip-tracker/internal/slip"
)

// ParseError reports an extraction response that could not be turned
// into a slip pair. Raw carries the full service response so the
// failure can be diagnosed (and shown to the operator) verbatim.
type ParseError struct {
	Reason string
	Raw    string
}

func (e *ParseError) Error() string {
	return "parsing extraction response: " + e.Reason
}

// RawResponse returns the unparsed service response.
func (e *ParseError) RawResponse() string {
	return e.Raw
}

// ParseSlipPair recovers the slip pair payload from the raw response
// text. The service is asked for bare JSON, but its output is not
// contractually byte-exact, so the payload is located defensively:
// markdown fences are stripped, then the slice between the first "{"
// and the last "}" is parsed.
func ParseSlipPair(raw string) (*slip.Pair, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	if start == -1 {
		return nil, &ParseError{Reason: "no JSON object found in response", Raw: raw}
	}
	end := strings.LastIndex(text, "}")
	if end == -1 || end < start {
		return nil, &ParseError{Reason: "invalid JSON object in response", Raw: raw}
	}
	text = text[start : end+1]

	var pair slip.Pair
	if err := json.Unmarshal([]byte(text), &pair); err != nil {
		return nil, &ParseError{Reason: "unmarshaling json: " + err.Error(), Raw: raw}
	}

	if err := pair.CheckSchema(); err != nil {
		return nil, &ParseError{Reason: err.Error(), Raw: raw}
	}

	return &pair, nil
}
