// Package timerange turns local wall-clock timestamps into absolute instants.
package timerange

import (
	"fmt"
	"time"

	"github.com/katoyeung/data-node/internal/domain"
)

// Layout is the accepted local timestamp format (YYYY-MM-DD HH:MM:SS).
const Layout = "2006-01-02 15:04:05"

// DefaultUTCOffsetHours is the fixed offset applied to every range filter.
const DefaultUTCOffsetHours = 8

// Resolve interprets local as wall-clock time at a fixed UTC offset and
// returns the matching instant in UTC.
func Resolve(local string, utcOffsetHours int) (time.Time, error) {
	zone := time.FixedZone(fmt.Sprintf("UTC%+d", utcOffsetHours), utcOffsetHours*3600)
	t, err := time.ParseInLocation(Layout, local, zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", domain.ErrMalformedTimestamp, local, err)
	}
	return t.UTC(), nil
}

// Bounds resolves a start/end pair. ok is false unless both bounds are present.
func Bounds(start, end string, utcOffsetHours int) (from, to time.Time, ok bool, err error) {
	if start == "" || end == "" {
		return time.Time{}, time.Time{}, false, nil
	}
	if from, err = Resolve(start, utcOffsetHours); err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	if to, err = Resolve(end, utcOffsetHours); err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	return from, to, true, nil
}
