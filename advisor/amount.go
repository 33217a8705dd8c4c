package advisor

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Amount is a monetary value tolerant of scraped text. Snapshots arrive with
// money as plain numbers or as text like "€1.234,56", "$0.05" or "N/A"; any
// value that cannot be parsed becomes 0 with a logged warning instead of
// failing the decision.
type Amount float64

// Float64 unwraps the amount.
func (a Amount) Float64() float64 { return float64(a) }

// UnmarshalJSON accepts a JSON number, a money string, or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*a = Amount(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Amount(ParseMoney(s))
		return nil
	}
	// null, or some other shape entirely
	log.Warn("unparsable monetary value, defaulting to 0", "raw", string(data))
	*a = 0
	return nil
}

// ParseMoney converts scraped money text to a float. It strips currency
// symbols and grouping separators and accepts both comma and dot decimal
// separators. Unparsable input is 0 with a logged warning — the single
// fallback path for all monetary fields.
func ParseMoney(s string) float64 {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" || strings.EqualFold(cleaned, "n/a") {
		return 0
	}
	for _, sym := range []string{"€", "$", "£", " ", " "} {
		cleaned = strings.ReplaceAll(cleaned, sym, "")
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		// Both present: the later one is the decimal separator.
		if lastComma > lastDot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(cleaned, ",") > 1 {
			// Multiple commas can only be grouping separators.
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		}
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		log.Warn("unparsable monetary value, defaulting to 0", "raw", s)
		return 0
	}
	return v
}
