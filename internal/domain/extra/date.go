package extra

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical serialization of date extras: UTC with an explicit +00:00 offset.
const DateLayout = "2006-01-02T15:04:05.999999-07:00"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses an ISO-8601 timestamp. Inputs without an offset are taken as UTC.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

// FormatDate renders t in the canonical UTC form.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
