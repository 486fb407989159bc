package utils

import (
	"regexp"
	"testing"
	"time"
)

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{"guest@example.com", "a.b+c@mail.co"} {
		if !ValidEmail(ok) {
			t.Fatalf("%q rejected", ok)
		}
	}
	for _, bad := range []string{"", "guest", "guest@", "guest@host", "a b@x.com"} {
		if ValidEmail(bad) {
			t.Fatalf("%q accepted", bad)
		}
	}
}

func TestValidPhone(t *testing.T) {
	for _, ok := range []string{"0501234567", "050-123-4567", "050 123 4567", "123456789"} {
		if !ValidPhone(ok) {
			t.Fatalf("%q rejected", ok)
		}
	}
	for _, bad := range []string{"", "12345678", "12345678901", "05O1234567"} {
		if ValidPhone(bad) {
			t.Fatalf("%q accepted", bad)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  <b>Window</b> seat please  "); got != "Window seat please" {
		t.Fatalf("SanitizeString = %q", got)
	}
	if got := SanitizeString(""); got != "" {
		t.Fatalf("SanitizeString(\"\") = %q", got)
	}
}

func TestNewReservationNumberFormat(t *testing.T) {
	now := time.Unix(1748805123, 0)
	re := regexp.MustCompile(`^RSV805123[A-Z]{3}$`)
	for i := 0; i < 10; i++ {
		num, err := NewReservationNumber(now)
		if err != nil {
			t.Fatalf("NewReservationNumber: %v", err)
		}
		if !re.MatchString(num) {
			t.Fatalf("number %q does not match expected format", num)
		}
	}
}
