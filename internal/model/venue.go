package model

import "time"

// Venue represents a physical location accepting table reservations.
// A venue groups zones and tables and corresponds to a row in the
// `venues` table.  The booking core treats venues as read-only catalog
// data referenced by identity.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – unique machine name of the venue.
//  DisplayName – human-friendly name shown to guests.
//  Description – optional description text.
//  Address     – optional street address.
//  Phone       – optional contact phone.
//  Email       – optional contact email.
//  IsActive    – whether the venue accepts bookings.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Venue struct {
	ID          uint64    // venues.id
	Name        string    // venues.name
	DisplayName string    // venues.display_name
	Description *string   // venues.description (nullable)
	Address     *string   // venues.address (nullable)
	Phone       *string   // venues.phone (nullable)
	Email       *string   // venues.email (nullable)
	IsActive    bool      // venues.is_active
	CreatedAt   time.Time // venues.created_at
	UpdatedAt   time.Time // venues.updated_at
}
