package config

import (
	"testing"
	"time"

	"github.com/barsan/reservation-api/internal/model"
)

var bookingEnvKeys = []string{
	"BOOKING_OPEN", "BOOKING_CLOSE", "BOOKING_SLOT_MIN", "BOOKING_DURATION_MIN",
	"HOLD_TTL_MIN", "CANCEL_WINDOW_HOURS", "BOOKING_MAX_GUESTS",
}

func TestLoadBookingDefaults(t *testing.T) {
	for _, k := range bookingEnvKeys {
		t.Setenv(k, "")
	}
	b := loadBooking()

	if b.OpenMinutes != 1020 || b.CloseMinutes != 1380 {
		t.Fatalf("grid bounds = %d..%d, want 1020..1380", b.OpenMinutes, b.CloseMinutes)
	}
	if b.StepMinutes != 30 || b.DurationMinutes != 120 {
		t.Fatalf("step/duration = %d/%d, want 30/120", b.StepMinutes, b.DurationMinutes)
	}
	if b.HoldTTL != model.HoldTTL {
		t.Fatalf("hold TTL = %v, want %v", b.HoldTTL, model.HoldTTL)
	}
	if b.CancelWindow != 2*time.Hour {
		t.Fatalf("cancel window = %v, want 2h", b.CancelWindow)
	}
	if b.MaxGuests != 20 {
		t.Fatalf("max guests = %d, want 20", b.MaxGuests)
	}
}

func TestLoadBookingOverrides(t *testing.T) {
	for _, k := range bookingEnvKeys {
		t.Setenv(k, "")
	}
	t.Setenv("BOOKING_OPEN", "12:00")
	t.Setenv("HOLD_TTL_MIN", "10")
	b := loadBooking()

	if b.OpenMinutes != 720 {
		t.Fatalf("open = %d, want 720", b.OpenMinutes)
	}
	if b.HoldTTL != 10*time.Minute {
		t.Fatalf("hold TTL = %v, want 10m", b.HoldTTL)
	}
}
