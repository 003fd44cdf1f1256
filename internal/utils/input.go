package utils

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the date format users type in both shells.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned by ParseDate for text that is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("please enter a valid date in YYYY-MM-DD format")

// ParseDate parses a YYYY-MM-DD date as local midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatDate renders the calendar date of t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NormalizePriority maps case-insensitive input to High, Medium or Low.
// The second result is false for anything else.
func NormalizePriority(input string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "high", "h":
		return "High", true
	case "medium", "med", "m":
		return "Medium", true
	case "low", "l":
		return "Low", true
	default:
		return strings.TrimSpace(input), false
	}
}

// ParseYesNo reports whether input reads as an affirmative answer.
func ParseYesNo(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes", "true", "1", "on":
		return true
	default:
		return false
	}
}

// YesNo renders b as "y" or "n".
func YesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}
