package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/barsan/reservation-api/internal/model"
)

// ZoneRepo provides read access to venue zones.  Zones only group
// tables for browsing; the scheduler never consults them directly.
type ZoneRepo struct {
	db *sql.DB
}

// NewZoneRepo returns a ZoneRepo bound to the provided database.
func NewZoneRepo(db *sql.DB) *ZoneRepo { return &ZoneRepo{db: db} }

// GetActive fetches an active zone belonging to the given venue.
// Missing, inactive or wrong-venue zones all yield ErrZoneNotFound.
func (r *ZoneRepo) GetActive(ctx context.Context, venueID, zoneID uint64) (*model.Zone, error) {
	const q = `SELECT id, venue_id, name, description, is_active, sort_order, created_at, updated_at
	           FROM zones WHERE id = ? AND venue_id = ? AND is_active = 1`
	var z model.Zone
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx, q, zoneID, venueID).Scan(&z.ID, &z.VenueID, &z.Name, &desc,
		&z.IsActive, &z.SortOrder, &z.CreatedAt, &z.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}
	if desc.Valid {
		z.Description = &desc.String
	}
	return &z, nil
}

// ListActiveByVenue returns the active zones of a venue ordered by
// their sort key.
func (r *ZoneRepo) ListActiveByVenue(ctx context.Context, venueID uint64) ([]model.Zone, error) {
	const q = `SELECT id, venue_id, name, description, is_active, sort_order, created_at, updated_at
	           FROM zones WHERE venue_id = ? AND is_active = 1 ORDER BY sort_order, id`
	rows, err := r.db.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	zones := make([]model.Zone, 0)
	for rows.Next() {
		var z model.Zone
		var desc sql.NullString
		if err := rows.Scan(&z.ID, &z.VenueID, &z.Name, &desc, &z.IsActive, &z.SortOrder,
			&z.CreatedAt, &z.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			z.Description = &desc.String
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}
