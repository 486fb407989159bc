package availability

import (
	"testing"

	"github.com/barsan/reservation-api/internal/model"
	"github.com/barsan/reservation-api/internal/timeslot"
)

func tableID(id uint64) *uint64 { return &id }

func TestSlotGridEmptyVenue(t *testing.T) {
	slots := DefaultConfig.SlotGrid(nil, 1)
	if len(slots) != 13 {
		t.Fatalf("grid has %d slots, want 13", len(slots))
	}
	if slots[0].Time != "17:00" || slots[len(slots)-1].Time != "23:00" {
		t.Fatalf("grid bounds %s..%s, want 17:00..23:00", slots[0].Time, slots[len(slots)-1].Time)
	}
	for _, s := range slots {
		if !s.Available || s.Tables != 1 {
			t.Fatalf("slot %s should be available with 1 table, got %+v", s.Time, s)
		}
	}
}

func TestSlotGridNoSuitableTables(t *testing.T) {
	for _, s := range DefaultConfig.SlotGrid(nil, 0) {
		if s.Available {
			t.Fatalf("slot %s available with zero suitable tables", s.Time)
		}
	}
}

// Single-table venue, one reservation at 19:00 for 120 minutes: slots
// overlapping [19:00, 21:00) are blocked, 21:00 onwards is free again
// and so is everything ending by 19:00.
func TestSlotGridAroundBooking(t *testing.T) {
	booked := []model.Reservation{{
		Time:     "19:00",
		Duration: 120,
		Status:   model.StatusConfirmed,
	}}
	slots := DefaultConfig.SlotGrid(BookingsFrom(booked), 1)

	byTime := map[string]Slot{}
	for _, s := range slots {
		byTime[s.Time] = s
	}

	blocked := []string{"17:30", "18:00", "18:30", "19:00", "19:30", "20:00", "20:30"}
	for _, at := range blocked {
		if byTime[at].Available {
			t.Fatalf("slot %s should be blocked", at)
		}
	}
	free := []string{"17:00", "21:00", "21:30", "22:00", "22:30", "23:00"}
	for _, at := range free {
		if !byTime[at].Available {
			t.Fatalf("slot %s should be free", at)
		}
	}
}

func TestSlotGridIgnoresInactiveReservations(t *testing.T) {
	done := []model.Reservation{
		{Time: "19:00", Duration: 120, Status: model.StatusCancelled},
		{Time: "19:00", Duration: 120, Status: model.StatusCompleted},
	}
	for _, s := range DefaultConfig.SlotGrid(BookingsFrom(done), 2) {
		if !s.Available {
			t.Fatalf("slot %s blocked by inactive reservation", s.Time)
		}
	}
}

func TestBookingsFromDefaultsDuration(t *testing.T) {
	bs := BookingsFrom([]model.Reservation{{Time: "18:00", Status: model.StatusPending}})
	if len(bs) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(bs))
	}
	if bs[0].Duration != model.DefaultDurationMinutes {
		t.Fatalf("duration = %d, want %d", bs[0].Duration, model.DefaultDurationMinutes)
	}
}

func TestFreeTablesSubtractsOverlapping(t *testing.T) {
	tables := []model.Table{
		{ID: 1, MinGuests: 1, MaxGuests: 4, Status: model.TableStatusAvailable, IsActive: true},
		{ID: 2, MinGuests: 1, MaxGuests: 4, Status: model.TableStatusAvailable, IsActive: true},
		{ID: 3, MinGuests: 6, MaxGuests: 10, Status: model.TableStatusAvailable, IsActive: true},
	}
	reservations := []model.Reservation{
		// Overlaps a 20:00 request (19:00+120 ends 21:00).
		{TableID: tableID(1), Time: "19:00", Duration: 120, Status: model.StatusConfirmed},
		// Ends exactly at 20:00, back-to-back is legal.
		{TableID: tableID(2), Time: "18:00", Duration: 120, Status: model.StatusSeated},
	}

	free, err := FreeTables(tables, reservations, "20:00", 120, 2)
	if err != nil {
		t.Fatalf("FreeTables: %v", err)
	}
	if len(free) != 1 || free[0].ID != 2 {
		t.Fatalf("free tables = %+v, want only table 2", free)
	}
}

func TestFreeTablesCancelledDoesNotBlock(t *testing.T) {
	tables := []model.Table{{ID: 1, MinGuests: 1, MaxGuests: 4, Status: model.TableStatusAvailable, IsActive: true}}
	reservations := []model.Reservation{
		{TableID: tableID(1), Time: "20:00", Duration: 120, Status: model.StatusCancelled},
	}
	free, err := FreeTables(tables, reservations, "20:00", 120, 2)
	if err != nil {
		t.Fatalf("FreeTables: %v", err)
	}
	if len(free) != 1 {
		t.Fatal("cancelled reservation should not take the table")
	}
}

func TestFreeTablesRejectsBadTime(t *testing.T) {
	if _, err := FreeTables(nil, nil, "25:00", 120, 2); err != timeslot.ErrInvalidTime {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
}
