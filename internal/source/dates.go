package source

import (
	"strings"
	"time"
)

// Date layouts. The first entry is the expected format; the rest are fallbacks.
// RFC 3339 covers SQLite DATE/TIMESTAMP columns and serial workbook dates.
var (
	dateLayouts      = []string{"02-01-2006", "2006-01-02", time.RFC3339}
	timestampLayouts = []string{"02-01-2006 15:04", "2006-01-02 15:04:05", "2006-01-02 15:04", "02-01-2006", time.RFC3339}
)

// ParseDate parses a DD-MM-YYYY signup date. Missing or unparseable values return nil.
func ParseDate(s string) *time.Time {
	return parseWithLayouts(s, dateLayouts)
}

// ParseTimestamp parses a DD-MM-YYYY HH:MM transaction timestamp. Missing or unparseable values return nil.
func ParseTimestamp(s string) *time.Time {
	return parseWithLayouts(s, timestampLayouts)
}

func parseWithLayouts(s string, layouts []string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
