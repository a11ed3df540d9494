package timespec

import (
	"strings"
	"time"
)

// instant layouts, most specific first. Layouts without an offset are UTC.
// time.Parse accepts a fractional second after the seconds field even when
// the layout has none. Offsets may be extended (+02:00), basic (+0200) or
// hours only (+02).
var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05Z0700",
		"2006-01-02T15:04:05Z07",
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04Z0700",
		"2006-01-02T15:04Z07",
	}
	localLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
		"2006-01",
		"2006",
	}
)

// ParseInstant parses an ISO-8601 date or date-time and returns epoch
// milliseconds. Values without an offset are interpreted as UTC.
func ParseInstant(s string) (int64, error) {
	t, err := ParseTime(s)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// ParseTime is ParseInstant returning a UTC time.Time.
func ParseTime(s string) (time.Time, error) {
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, parseErrorf(raw, "empty instant")
	}
	// accept lowercase designators and a space separator
	s = strings.Replace(s, "t", "T", 1)
	if strings.HasSuffix(s, "z") {
		s = s[:len(s)-1] + "Z"
	}
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	// ISO-8601 permits ',' as the decimal sign of the seconds
	if i := strings.IndexByte(s, ','); i > 0 && strings.Contains(s[:i], "T") {
		s = s[:i] + "." + s[i+1:]
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, parseErrorf(raw, "not an ISO-8601 date or date-time")
}

// FormatInstant renders epoch milliseconds as RFC 3339 in UTC with
// millisecond precision.
func FormatInstant(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
