// Package timecalc holds the time arithmetic of the schedule: hour slots and
// the short relative-time strings shown to users.
package timecalc

import (
	"errors"
	"time"
)

// ErrTimeTruncation is returned when an instant cannot be truncated to its
// hour. It is not expected for UTC instants.
var ErrTimeTruncation = errors.New("time truncation produced an invalid instant")

// HourOnly returns t with minutes, seconds and nanoseconds set to zero,
// keeping t's location.
func HourOnly(t time.Time) (time.Time, error) {
	truncated := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	// A zone transition can move the rebuilt wall clock to another hour.
	if truncated.Hour() != t.Hour() || truncated.After(t) {
		return time.Time{}, ErrTimeTruncation
	}
	return truncated, nil
}

// NextHour returns the start of the hour after the one containing t.
func NextHour(t time.Time) (time.Time, error) {
	return HourOnly(t.Add(time.Hour))
}
