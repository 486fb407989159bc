package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/barsan/reservation-api/internal/model"
)

// VenueRepo provides read access to the venue catalog.  The booking
// core never mutates venues; they are managed out of band and consumed
// here by identity.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo returns a VenueRepo bound to the provided database.
func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{db: db} }

const venueColumns = `id, name, display_name, description, address, phone, email, is_active, created_at, updated_at`

func scanVenue(row interface{ Scan(...any) error }) (*model.Venue, error) {
	var v model.Venue
	var desc, addr, phone, email sql.NullString
	if err := row.Scan(&v.ID, &v.Name, &v.DisplayName, &desc, &addr, &phone, &email,
		&v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		v.Description = &desc.String
	}
	if addr.Valid {
		v.Address = &addr.String
	}
	if phone.Valid {
		v.Phone = &phone.String
	}
	if email.Valid {
		v.Email = &email.String
	}
	return &v, nil
}

// GetActive fetches an active venue by id.  Inactive or missing venues
// both yield ErrVenueNotFound.
func (r *VenueRepo) GetActive(ctx context.Context, id uint64) (*model.Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM venues WHERE id = ? AND is_active = 1`
	v, err := scanVenue(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// ListActive returns all active venues ordered by name for the public
// browse endpoint.
func (r *VenueRepo) ListActive(ctx context.Context) ([]model.Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM venues WHERE is_active = 1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	venues := make([]model.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, *v)
	}
	return venues, rows.Err()
}
