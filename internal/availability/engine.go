// Package availability decides which time slots and tables can serve a
// reservation request.  Everything here is a pure function of catalog
// and ledger snapshots supplied by the caller; the engine performs no
// I/O and holds no state, which keeps the overlap logic testable apart
// from the database.
package availability

import (
	"github.com/barsan/reservation-api/internal/model"
	"github.com/barsan/reservation-api/internal/timeslot"
)

// Config describes the candidate slot grid for a venue.  Times are
// minutes since midnight.  Close is inclusive: with the defaults the
// last offered slot is 23:00.
type Config struct {
	Open     int // first slot offered
	Close    int // last slot offered (inclusive)
	Step     int // distance between slots in minutes
	Duration int // service duration booked per reservation
}

// DefaultConfig is the 17:00–23:00 grid in 30-minute steps with a
// two-hour service duration.
var DefaultConfig = Config{
	Open:     17 * 60,
	Close:    23 * 60,
	Step:     30,
	Duration: model.DefaultDurationMinutes,
}

// Booking is the minimal interval view of an active reservation used
// for overlap testing.
type Booking struct {
	Start    int // minutes since midnight
	Duration int // minutes
}

// Slot is one entry of the availability grid returned to clients.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Tables    int    `json:"availableTables"`
}

// BookingsFrom projects reservations onto overlap intervals.  Only
// active reservations (pending, confirmed, seated) block availability;
// rows with an unparsable time are skipped rather than blocking the
// whole grid.
func BookingsFrom(reservations []model.Reservation) []Booking {
	out := make([]Booking, 0, len(reservations))
	for _, r := range reservations {
		if !r.Active() {
			continue
		}
		start, err := timeslot.Parse(r.Time)
		if err != nil {
			continue
		}
		dur := r.Duration
		if dur <= 0 {
			dur = model.DefaultDurationMinutes
		}
		out = append(out, Booking{Start: start, Duration: dur})
	}
	return out
}

// SlotFree reports whether the interval [start, start+duration) is
// clear of every existing booking.
func SlotFree(start, duration int, existing []Booking) bool {
	for _, b := range existing {
		if timeslot.Overlaps(start, duration, b.Start, b.Duration) {
			return false
		}
	}
	return true
}

// SlotGrid computes the venue-level availability grid.  A slot is
// available when at least one suitable table exists and no active
// reservation overlaps the requested interval.  The engine does not
// assign tables here; assignment happens at confirmation or by staff.
func (c Config) SlotGrid(existing []Booking, suitableTables int) []Slot {
	points := timeslot.Grid(c.Open, c.Close, c.Step)
	slots := make([]Slot, 0, len(points))
	for _, t := range points {
		free := SlotFree(t, c.Duration, existing)
		slot := Slot{Time: timeslot.Format(t), Available: free && suitableTables > 0}
		if free {
			slot.Tables = suitableTables
		}
		slots = append(slots, slot)
	}
	return slots
}

// SuitableTables filters tables down to those that can serve the party
// size (capacity bounds, active flag, operational status).
func SuitableTables(tables []model.Table, partySize int) []model.Table {
	out := make([]model.Table, 0, len(tables))
	for _, t := range tables {
		if t.SuitableFor(partySize) {
			out = append(out, t)
		}
	}
	return out
}

// FreeTables returns the suitable tables that are not taken by an
// active reservation overlapping [t, t+duration).  Reservations without
// an assigned table never exclude a specific table here.
func FreeTables(tables []model.Table, reservations []model.Reservation, t string, duration, partySize int) ([]model.Table, error) {
	start, err := timeslot.Parse(t)
	if err != nil {
		return nil, err
	}
	taken := make(map[uint64]bool)
	for _, r := range reservations {
		if !r.Active() || r.TableID == nil {
			continue
		}
		rStart, err := timeslot.Parse(r.Time)
		if err != nil {
			continue
		}
		dur := r.Duration
		if dur <= 0 {
			dur = model.DefaultDurationMinutes
		}
		if timeslot.Overlaps(start, duration, rStart, dur) {
			taken[*r.TableID] = true
		}
	}
	free := make([]model.Table, 0, len(tables))
	for _, tbl := range tables {
		if tbl.SuitableFor(partySize) && !taken[tbl.ID] {
			free = append(free, tbl)
		}
	}
	return free, nil
}
