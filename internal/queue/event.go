// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when staff confirms a
// reservation.  It carries enough information for downstream consumers
// to log, notify, or trigger analytics without querying the primary
// database.
type ReservationConfirmedEvent struct {
	ReservationID uint64  `json:"reservation_id"`
	Number        string  `json:"reservation_number"`
	UserID        uint64  `json:"user_id,omitempty"`
	VenueID       uint64  `json:"venue_id"`
	TableID       *uint64 `json:"table_id,omitempty"`
	GuestName     string  `json:"guest_name"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	Guests        int     `json:"guests"`
	ConfirmedAt   string  `json:"confirmed_at"`
}
