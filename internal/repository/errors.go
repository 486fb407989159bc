// Package repository contains data access logic separated from HTTP
// handlers.  The sentinel errors below let handlers distinguish failure
// scenarios without inspecting driver errors: business outcomes such as
// ErrSlotUnavailable are expected and map to 4xx responses, while raw
// database errors propagate and map to 500.
package repository

import "errors"

// ErrVenueNotFound is returned when a venue does not exist or is
// inactive.
var ErrVenueNotFound = errors.New("venue not found")

// ErrZoneNotFound is returned when a zone lookup fails.
var ErrZoneNotFound = errors.New("zone not found")

// ErrTableNotFound is returned when a table lookup fails.
var ErrTableNotFound = errors.New("table not found")

// ErrHoldNotFound is returned when a temporary reservation does not
// exist.  An expired hold that has already been swept reports this
// rather than ErrHoldExpired.
var ErrHoldNotFound = errors.New("hold not found")

// ErrHoldExpired is returned when a temporary reservation exists but
// its expiry has passed.  The hold is deleted as a side effect, so a
// retry sees ErrHoldNotFound.
var ErrHoldExpired = errors.New("hold expired")

// ErrSlotUnavailable is returned when the re-validation inside the
// confirm transaction finds the slot taken.  This is a normal business
// outcome, not a system fault; the client should pick another slot.
var ErrSlotUnavailable = errors.New("time slot no longer available")

// ErrReservationNotFound is returned when no reservation matches the
// lookup.  Guest cancellation deliberately folds "wrong email", "wrong
// status" and "does not exist" into this one error to avoid leaking
// which reservations exist.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrCancelTooLate is returned when a guest tries to cancel closer to
// the reservation time than the cancellation window allows.
var ErrCancelTooLate = errors.New("too late to cancel")

// ErrEmailExists is returned when registering with an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrRefreshInvalid is returned for a refresh token that is unknown,
// revoked or expired.  One error for all three keeps the auth handler
// from leaking which case it was.
var ErrRefreshInvalid = errors.New("refresh token invalid")
