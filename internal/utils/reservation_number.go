package utils

import (
	"crypto/rand"
	"fmt"
	"time"
)

const reservationNumberPrefix = "RSV"

// NewReservationNumber generates a human-facing reservation number:
// the literal "RSV" prefix, the last six digits of the current unix
// timestamp and three random uppercase letters.  The scheme is not
// collision-free by construction; the reservations table carries a
// uniqueness constraint and the repository retries with a fresh number
// on a duplicate-key error.
func NewReservationNumber(now time.Time) (string, error) {
	ts := fmt.Sprintf("%06d", now.Unix()%1_000_000)
	suffix, err := randomUpper(3)
	if err != nil {
		return "", err
	}
	return reservationNumberPrefix + ts + suffix, nil
}

// randomUpper returns n cryptographically random letters from A-Z.
func randomUpper(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = 'A' + b%26
	}
	return string(out), nil
}
