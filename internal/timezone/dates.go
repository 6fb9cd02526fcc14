package timezone

import (
	"errors"
	"strings"
	"time"
)

const ISODate = "2006-01-02"

var ErrUnparsableDate = errors.New("unparsable date")

// Long-form layouts seen in stored bookings, e.g. "February 15, 2026".
var longLayouts = []string{
	"January 2, 2006",
	"January 02, 2006",
	"Jan 2, 2006",
	"Jan 02, 2006",
	"Monday, January 2, 2006",
	"January 2 2006",
	"2 January 2006",
}

// ParseDate reads a calendar date in either ISO or long form. The result is
// midnight UTC of that calendar day; no timezone conversion is applied, so the
// calendar day never shifts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrUnparsableDate
	}

	if strings.Contains(s, "-") {
		// ISO date, alone or followed by a "T" time part.
		n := len(ISODate)
		if len(s) < n || (len(s) > n && s[n] != 'T') {
			return time.Time{}, ErrUnparsableDate
		}
		t, err := time.Parse(ISODate, s[:n])
		if err != nil {
			return time.Time{}, ErrUnparsableDate
		}
		return t, nil
	}

	for _, layout := range longLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnparsableDate
}

// NormalizeDate returns s as YYYY-MM-DD, or false when it cannot be parsed.
func NormalizeDate(s string) (string, bool) {
	t, err := ParseDate(s)
	if err != nil {
		return "", false
	}
	return t.Format(ISODate), true
}

// InRange reports whether the normalized date d lies in [start, end].
// All three are YYYY-MM-DD strings, which order lexically.
func InRange(d, start, end string) bool {
	return d >= start && d <= end
}
