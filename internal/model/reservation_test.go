package model

import (
	"testing"
	"time"
)

func TestApplyStatusStampsOnce(t *testing.T) {
	first := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	second := first.Add(10 * time.Minute)

	var r Reservation
	r.ApplyStatus(StatusConfirmed, first)
	if r.Status != StatusConfirmed {
		t.Fatalf("status = %q, want confirmed", r.Status)
	}
	if r.ConfirmedAt == nil || !r.ConfirmedAt.Equal(first) {
		t.Fatalf("confirmed_at = %v, want %v", r.ConfirmedAt, first)
	}

	// Re-applying the same status must not rewrite the timestamp but
	// must still bump updated_at.
	r.ApplyStatus(StatusConfirmed, second)
	if !r.ConfirmedAt.Equal(first) {
		t.Fatalf("confirmed_at rewritten to %v", r.ConfirmedAt)
	}
	if !r.UpdatedAt.Equal(second) {
		t.Fatalf("updated_at = %v, want %v", r.UpdatedAt, second)
	}
}

func TestApplyStatusStampsEachTransition(t *testing.T) {
	now := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	var r Reservation
	r.ApplyStatus(StatusSeated, now)
	r.ApplyStatus(StatusCompleted, now.Add(2*time.Hour))
	if r.SeatedAt == nil || r.CompletedAt == nil {
		t.Fatal("seated_at/completed_at not stamped")
	}
	if r.ConfirmedAt != nil || r.CancelledAt != nil {
		t.Fatal("unrelated timestamps stamped")
	}
}

func TestActiveStatuses(t *testing.T) {
	active := map[string]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusSeated:    true,
		StatusCompleted: false,
		StatusCancelled: false,
	}
	for status, want := range active {
		r := Reservation{Status: status}
		if r.Active() != want {
			t.Fatalf("Active() for %q = %v, want %v", status, r.Active(), want)
		}
	}
}

func TestTableSuitability(t *testing.T) {
	table := Table{MinGuests: 2, MaxGuests: 4, Status: TableStatusAvailable, IsActive: true}
	for _, n := range []int{2, 3, 4} {
		if !table.SuitableFor(n) {
			t.Fatalf("table should be suitable for party of %d", n)
		}
	}
	for _, n := range []int{1, 5} {
		if table.SuitableFor(n) {
			t.Fatalf("table should not be suitable for party of %d", n)
		}
	}

	inactive := table
	inactive.IsActive = false
	if inactive.SuitableFor(3) {
		t.Fatal("inactive table reported suitable")
	}

	maintenance := table
	maintenance.Status = TableStatusUnavailable
	if maintenance.SuitableFor(3) {
		t.Fatal("unavailable table reported suitable")
	}
}

func TestCancellableAt(t *testing.T) {
	window := 2 * time.Hour
	r := Reservation{Date: "2025-06-01", Time: "19:00"}

	cases := []struct {
		now  time.Time
		want bool
	}{
		// Exactly two hours before the seating: still allowed.
		{time.Date(2025, 6, 1, 17, 0, 0, 0, time.UTC), true},
		{time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), true},
		// Inside the window.
		{time.Date(2025, 6, 1, 17, 0, 1, 0, time.UTC), false},
		{time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC), false},
		// After the seating started.
		{time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		if got := r.CancellableAt(tc.now, window); got != tc.want {
			t.Fatalf("CancellableAt(%v) = %v, want %v", tc.now, got, tc.want)
		}
	}

	broken := Reservation{Date: "2025-06-01", Time: "25:99"}
	if broken.CancellableAt(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), window) {
		t.Fatal("unparsable start reported cancellable")
	}
}

func TestHoldExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	h := Hold{ExpiresAt: now.Add(-time.Second)}
	if !h.Expired(now) {
		t.Fatal("past expiry not reported as expired")
	}
	h.ExpiresAt = now.Add(HoldTTL)
	if h.Expired(now) {
		t.Fatal("future expiry reported as expired")
	}
}
