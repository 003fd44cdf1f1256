package todo

import (
	"fmt"
	"strings"
	"time"
)

const (
	naiveLayout  = "2006-01-02T15:04:05.999999"
	offsetLayout = "2006-01-02T15:04:05.999999-07:00"
)

// Layouts accepted by ParseTimestamp, tried in order. The offset-free
// layouts are read in time.Local.
var (
	offsetLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02T15:04Z07:00",
	}
	naiveLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
)

// FormatTimestamp renders t as ISO-8601 with microsecond precision.
// Local times carry no offset; other locations get a numeric one.
func FormatTimestamp(t time.Time) string {
	t = t.Truncate(time.Microsecond)
	if t.Location() == time.Local {
		return t.Format(naiveLayout)
	}
	return t.Format(offsetLayout)
}

// ParseTimestamp parses an ISO-8601 date or date-time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp %q", s)
}
