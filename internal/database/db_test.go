package database

import (
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	got := dsn("barsan", "secret", "db.internal", "3306", "reservations")

	if !strings.HasPrefix(got, "barsan:secret@tcp(db.internal:3306)/reservations") {
		t.Fatalf("dsn = %q, wrong address part", got)
	}
	// Time columns must come back as UTC time.Time values.
	for _, param := range []string{"parseTime=true", "loc=UTC"} {
		if !strings.Contains(got, param) {
			t.Fatalf("dsn = %q, missing %s", got, param)
		}
	}
}

func TestDSNEmptyPassword(t *testing.T) {
	got := dsn("barsan", "", "localhost", "3306", "reservations")
	if !strings.HasPrefix(got, "barsan@tcp(localhost:3306)/reservations") {
		t.Fatalf("dsn = %q, expected passwordless auth part", got)
	}
}
