package model

import "time"

// HoldTTL is how long a temporary reservation keeps a slot reserved
// while the guest completes checkout.  It is the default for the
// HOLD_TTL_MIN configuration knob.
const HoldTTL = 15 * time.Minute

// Hold is a temporary reservation created during checkout.  It reserves
// a slot without committing it: at most one hold exists per session key
// at any instant, and an expired hold is removed lazily on the next
// read.  A hold is deleted when it is promoted into a reservation.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – user who created the hold (nullable for guests).
//  VenueID    – venue being booked.
//  Date       – reservation date ("YYYY-MM-DD").
//  Time       – reservation time ("HH:MM").
//  Guests     – party size.
//  ZoneID     – optional preferred zone.
//  TableID    – optional preferred table.
//  SessionKey – opaque checkout session key; one live hold per key.
//  ExpiresAt  – absolute expiry (created at + 15 minutes).
//  CreatedAt  – creation timestamp.
type Hold struct {
	ID         uint64    // temporary_reservations.id
	UserID     *uint64   // temporary_reservations.user_id (nullable)
	VenueID    uint64    // temporary_reservations.venue_id
	Date       string    // temporary_reservations.date
	Time       string    // temporary_reservations.time
	Guests     int       // temporary_reservations.guests
	ZoneID     *uint64   // temporary_reservations.zone_id (nullable)
	TableID    *uint64   // temporary_reservations.table_id (nullable)
	SessionKey string    // temporary_reservations.session_key
	ExpiresAt  time.Time // temporary_reservations.expires_at
	CreatedAt  time.Time // temporary_reservations.created_at
}

// Expired reports whether the hold's expiry has passed at the given
// instant.
func (h Hold) Expired(now time.Time) bool {
	return h.ExpiresAt.Before(now)
}
