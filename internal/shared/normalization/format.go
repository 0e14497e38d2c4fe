package normalization

import (
	"strings"
	"time"
)

// dateLayouts covers the shapes the backend emits for reservation_date,
// from a bare calendar date to full timestamps.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05.000Z07:00",
	time.RFC3339,
	time.RFC3339Nano,
}

var timeLayouts = []string{
	"15:04",
	"15:04:05",
}

// FormatDate reduces a backend date value to the YYYY-MM-DD form the
// dashboard renders. Values that match no known layout pass through
// unchanged so unexpected data stays visible instead of disappearing.
func FormatDate(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format("2006-01-02")
		}
	}
	return raw
}

// FormatTime reduces a backend time value to the HH:MM form. Unparseable
// input passes through unchanged.
func FormatTime(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format("15:04")
		}
	}
	return raw
}
