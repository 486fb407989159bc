// Package timeslot implements the time arithmetic used by the booking
// engine.  All functions operate on minutes since midnight so that
// reservations stored as "HH:MM" strings can be compared without
// constructing full timestamps.  The package holds no state.
package timeslot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// minutesPerDay is the wrap-around boundary for Format.
const minutesPerDay = 24 * 60

// ErrInvalidTime is returned by Parse when the input is not a valid
// "H:MM" or "HH:MM" clock time.
var ErrInvalidTime = errors.New("invalid time format")

// Parse converts a clock time string into minutes since midnight.  It
// accepts a one- or two-digit hour (0-23) and a two-digit minute (0-59).
// Anything else yields ErrInvalidTime.
func Parse(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, ErrInvalidTime
	}
	if len(parts[0]) < 1 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, ErrInvalidTime
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, ErrInvalidTime
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, ErrInvalidTime
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, ErrInvalidTime
	}
	return hour*60 + minute, nil
}

// Valid reports whether s parses as a clock time.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Format renders minutes since midnight as a zero-padded "HH:MM" string.
// Values outside one day wrap around midnight.
func Format(minutes int) string {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Add returns the clock time minutes after t.  t must be a valid clock
// time string; the result wraps past midnight.
func Add(t string, minutes int) (string, error) {
	start, err := Parse(t)
	if err != nil {
		return "", err
	}
	return Format(start + minutes), nil
}

// Overlaps reports whether the half-open intervals [startA, startA+durA)
// and [startB, startB+durB) intersect.  Touching endpoints do not count
// as overlap, so back-to-back bookings are legal.
func Overlaps(startA, durA, startB, durB int) bool {
	return startA < startB+durB && startB < startA+durA
}

// Grid returns the candidate time points from open to close inclusive,
// stepping by step minutes.  The result is deterministic for a given
// configuration.  A non-positive step or a close before open yields an
// empty grid.
func Grid(open, close, step int) []int {
	if step <= 0 || close < open {
		return nil
	}
	points := make([]int, 0, (close-open)/step+1)
	for t := open; t <= close; t += step {
		points = append(points, t)
	}
	return points
}
