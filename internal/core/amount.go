// Package core implements the aggregation and revenue-distribution engine:
// booking and team records, per-team and grand totals, team filtering, and the
// fixed-percentage stakeholder split.
package core

import (
	"bytes"
	"math"
	"strconv"
	"strings"
)

// Amount is a monetary value as stored by the booking collection. The store is
// schemaless, so a field may arrive as a number, a numeric string, null, or be
// absent entirely; anything that is not a usable number decodes to 0, never
// an error, so a single malformed booking cannot take aggregation down.
type Amount float64

var jsonNull = []byte("null")

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		*a = 0
		return nil
	}
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*a = 0
		return nil
	}
	*a = Amount(v)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(a), 'f', -1, 64)), nil
}

// ParseAmount converts form input to an Amount with the same tolerance as
// JSON decoding: blank or non-numeric input yields 0. Negative values are
// kept so that Booking.Validate can reject them with a proper message.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return Amount(v)
}

// DisplayRound rounds to the nearest whole unit for rendering. Accumulation
// always happens at full precision; rounding is strictly a presentation step.
func DisplayRound(v float64) int64 {
	return int64(math.Round(v))
}
