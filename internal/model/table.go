package model

import "time"

// Table operational status values.  The status describes the physical
// state of the table (e.g. closed for maintenance) and is independent of
// whether the table is booked at any particular time.
const (
	TableStatusAvailable   = "available"
	TableStatusUnavailable = "unavailable"
)

// Table describes a bookable table inside a venue zone.  Guest-capacity
// bounds are inclusive: a table with MinGuests=2, MaxGuests=4 can seat
// parties of 2, 3 or 4.  Invariant: MinGuests <= MaxGuests.
//
// Fields:
//  ID        – primary key identifier.
//  VenueID   – owning venue.
//  ZoneID    – owning zone.
//  Number    – table number, unique per venue.
//  Seats     – physical number of seats.
//  MinGuests – smallest party the table is offered to.
//  MaxGuests – largest party the table can seat.
//  Location  – optional free-text placement hint.
//  Features  – feature tags such as "window" or "outdoor".
//  Status    – operational status (available / unavailable).
//  IsActive  – whether the table participates in booking at all.
//  SortOrder – ordering key for display.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Table struct {
	ID        uint64    // tables.id
	VenueID   uint64    // tables.venue_id
	ZoneID    uint64    // tables.zone_id
	Number    int       // tables.number
	Seats     int       // tables.seats
	MinGuests int       // tables.min_guests
	MaxGuests int       // tables.max_guests
	Location  *string   // tables.location (nullable)
	Features  []string  // tables.features (JSON array column)
	Status    string    // tables.status
	IsActive  bool      // tables.is_active
	SortOrder int       // tables.sort_order
	CreatedAt time.Time // tables.created_at
	UpdatedAt time.Time // tables.updated_at
}

// SuitableFor reports whether the table can serve a party of the given
// size: the capacity bounds must contain the party size, the table must
// be active and its operational status must be usable.
func (t Table) SuitableFor(partySize int) bool {
	return t.IsActive &&
		t.Status == TableStatusAvailable &&
		t.MinGuests <= partySize &&
		partySize <= t.MaxGuests
}
