package model

import "time"

// Reservation status values.  A reservation starts as pending and moves
// forward through confirmed, seated and completed, or sideways to
// cancelled.  Completed and cancelled are terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusSeated    = "seated"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// DefaultDurationMinutes is the service duration assumed for every
// reservation.
const DefaultDurationMinutes = 120

// ActiveStatuses are the statuses that count against availability.
// Completed and cancelled reservations never block a slot.
var ActiveStatuses = []string{StatusPending, StatusConfirmed, StatusSeated}

// ValidStatus reports whether s is a known reservation status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusSeated, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Reservation is a committed booking owned by the ledger.
//
// Fields:
//  ID              – primary key identifier.
//  Number          – unique human-facing reservation number ("RSV...").
//  UserID          – account that made the booking (nullable for guests).
//  VenueID         – venue being booked.
//  TableID         – assigned table, set at confirmation or by staff.
//  GuestName       – contact name (sanitized).
//  GuestEmail      – contact email (lowercased).
//  GuestPhone      – contact phone (digits only).
//  Date            – reservation date ("YYYY-MM-DD").
//  Time            – reservation time ("HH:MM").
//  Guests          – party size.
//  Duration        – service duration in minutes (default 120).
//  Status          – current state, see status constants.
//  SpecialRequests – optional guest free text.
//  Notes           – optional staff free text.
//  Source          – origin tag (default "website").
//  ConfirmedAt     – set once, on first entry into confirmed.
//  SeatedAt        – set once, on first entry into seated.
//  CompletedAt     – set once, on first entry into completed.
//  CancelledAt     – set once, on first entry into cancelled.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – bumped on every mutation.
type Reservation struct {
	ID              uint64     // reservations.id
	Number          string     // reservations.reservation_number
	UserID          *uint64    // reservations.user_id (nullable)
	VenueID         uint64     // reservations.venue_id
	TableID         *uint64    // reservations.table_id (nullable)
	GuestName       string     // reservations.guest_name
	GuestEmail      string     // reservations.guest_email
	GuestPhone      string     // reservations.guest_phone
	Date            string     // reservations.date
	Time            string     // reservations.time
	Guests          int        // reservations.guests
	Duration        int        // reservations.duration
	Status          string     // reservations.status
	SpecialRequests *string    // reservations.special_requests (nullable)
	Notes           *string    // reservations.notes (nullable)
	Source          string     // reservations.source
	ConfirmedAt     *time.Time // reservations.confirmed_at (nullable)
	SeatedAt        *time.Time // reservations.seated_at (nullable)
	CompletedAt     *time.Time // reservations.completed_at (nullable)
	CancelledAt     *time.Time // reservations.cancelled_at (nullable)
	CreatedAt       time.Time  // reservations.created_at
	UpdatedAt       time.Time  // reservations.updated_at
}

// Active reports whether the reservation currently counts against
// availability.
func (r Reservation) Active() bool {
	switch r.Status {
	case StatusPending, StatusConfirmed, StatusSeated:
		return true
	}
	return false
}

// StartsAt combines the date and time columns into a UTC instant.
func (r Reservation) StartsAt() (time.Time, error) {
	return time.Parse("2006-01-02 15:04", r.Date+" "+r.Time)
}

// CancellableAt reports whether a guest may still cancel at the given
// instant: the reservation must start at least window from now.  A
// reservation with an unparsable start is never cancellable.
func (r Reservation) CancellableAt(now time.Time, window time.Duration) bool {
	starts, err := r.StartsAt()
	if err != nil {
		return false
	}
	return !starts.Before(now.Add(window))
}

// ApplyStatus moves the reservation to the given status and stamps the
// matching transition timestamp, but only the first time that status is
// entered: re-applying a status never rewrites history.  UpdatedAt is
// bumped unconditionally.
func (r *Reservation) ApplyStatus(status string, now time.Time) {
	r.Status = status
	switch status {
	case StatusConfirmed:
		if r.ConfirmedAt == nil {
			ts := now
			r.ConfirmedAt = &ts
		}
	case StatusSeated:
		if r.SeatedAt == nil {
			ts := now
			r.SeatedAt = &ts
		}
	case StatusCompleted:
		if r.CompletedAt == nil {
			ts := now
			r.CompletedAt = &ts
		}
	case StatusCancelled:
		if r.CancelledAt == nil {
			ts := now
			r.CancelledAt = &ts
		}
	}
	r.UpdatedAt = now
}
