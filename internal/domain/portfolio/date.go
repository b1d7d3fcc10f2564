package portfolio

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01",
	"2006",
	"Jan 2006",
	"January 2006",
	"01/2006",
}

// ParseDate parses a date-like content string. ok is false for blank or unrecognized input.
func ParseDate(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsOngoing reports whether an end date means "still going": blank or "present".
func IsOngoing(end string) bool {
	end = strings.TrimSpace(end)
	return end == "" || strings.EqualFold(end, "present")
}
