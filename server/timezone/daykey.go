// Package timezone provides day-key normalization for the schedule index.
//
// A DayKey identifies the calendar day an instant falls on after reducing
// the instant to its UTC date. The index keys bucket membership on DayKey,
// so normalization must be a pure function: the same instant always yields
// the same key no matter how many times it is computed.
package timezone

import (
	"time"

	"github.com/pkg/errors"
)

// DayKeyLayout is the canonical format of a normalized day key.
const DayKeyLayout = "2006-01-02"

// DayKey is a normalized, timezone-reduced identifier for a calendar day.
type DayKey string

// NormalizeDay reduces an instant to the calendar day of its UTC
// representation. Two instants on the same UTC date normalize to the same
// key regardless of time-of-day.
//
// Timezone policy: UTC truncation only. There is no per-user timezone
// awareness; an instant late in the evening in a western timezone buckets
// on the following UTC date.
func NormalizeDay(t time.Time) DayKey {
	return DayKey(t.UTC().Format(DayKeyLayout))
}

// NormalizeDayTs reduces a Unix timestamp to its UTC calendar day.
func NormalizeDayTs(ts int64) DayKey {
	return NormalizeDay(time.Unix(ts, 0))
}

// ParseDayKey validates a day-key string and returns it as a DayKey.
func ParseDayKey(s string) (DayKey, error) {
	if _, err := time.Parse(DayKeyLayout, s); err != nil {
		return "", errors.Wrapf(err, "invalid day key %q", s)
	}
	return DayKey(s), nil
}

// Time returns the start of the key's day (00:00:00 UTC).
func (k DayKey) Time() time.Time {
	t, err := time.Parse(DayKeyLayout, string(k))
	if err != nil {
		return time.Time{}
	}
	return t
}

// String returns the key in its canonical layout.
func (k DayKey) String() string {
	return string(k)
}
