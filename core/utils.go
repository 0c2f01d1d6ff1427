package core

import (
	"io"
	"strings"
	"time"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// TimestampFormat is the wall-clock format recorded on submissions and
// leave requests. It sorts lexicographically in chronological order.
const TimestampFormat = "2006-01-02 15:04:05"

// ParseTimestamp tries each layout in order; the first success wins.
func ParseTimestamp(s string, layouts ...string) (time.Time, error) {
	var err error
	var t time.Time
	for _, layout := range layouts {
		if t, err = time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// File is an uploaded file: its client-supplied name and its content.
type File struct {
	Name    string
	Content io.Reader
}
