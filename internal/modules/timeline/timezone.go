package timeline

import (
	"fmt"
	"time"
)

const dayKeyLayout = "2006-01-02"

// DayKeyIn projects an absolute instant to its calendar-day key in loc.
// A nil loc means the server's local zone.
func DayKeyIn(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(dayKeyLayout)
}

// ShiftDayKey adds days to a YYYY-MM-DD key with pure calendar arithmetic.
// The key never round-trips through a zoned instant, so a DST transition on
// the shifted-over dates cannot bend the result.
func ShiftDayKey(key string, days int) (string, error) {
	d, err := time.Parse(dayKeyLayout, key)
	if err != nil {
		return "", fmt.Errorf("parse day key %q: %w", key, err)
	}
	return d.AddDate(0, 0, days).Format(dayKeyLayout), nil
}

// locationOrLocal resolves an IANA zone name, falling back to the server's
// local zone when the name is empty or unknown.
func locationOrLocal(tz string) *time.Location {
	if tz == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Local
	}
	return loc
}
