package catalog

import (
	"strings"
	"time"
)

// NoDate is shown wherever a date is missing or unparseable.
const NoDate = "—"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate parses the ISO-ish lastUpdated values found in the catalog and the
// remote API. Values without a zone are read as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders s as "Jan 2, 2006", or NoDate.
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return NoDate
	}
	return t.UTC().Format("Jan 2, 2006")
}
