package model

import "time"

// Zone groups tables within a venue for browsing and filtering.  Zones
// carry no scheduling semantics of their own; availability is always
// decided per table.
//
// Fields:
//  ID          – primary key identifier.
//  VenueID     – venue this zone belongs to.
//  Name        – zone name (e.g. "Terrace").
//  Description – optional description of the zone.
//  IsActive    – whether the zone is shown to guests.
//  SortOrder   – ordering key for display.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Zone struct {
	ID          uint64    // zones.id
	VenueID     uint64    // zones.venue_id
	Name        string    // zones.name
	Description *string   // zones.description (nullable)
	IsActive    bool      // zones.is_active
	SortOrder   int       // zones.sort_order
	CreatedAt   time.Time // zones.created_at
	UpdatedAt   time.Time // zones.updated_at
}
