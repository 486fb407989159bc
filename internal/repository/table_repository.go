package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/barsan/reservation-api/internal/model"
)

// TableRepo provides read access to the table catalog.  The features
// column is stored as a JSON array string; it is decoded here at the
// storage boundary so that core logic only ever sees []string.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a TableRepo bound to the provided database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

const tableColumns = `id, venue_id, zone_id, number, seats, min_guests, max_guests,
	location, features, status, is_active, sort_order, created_at, updated_at`

func scanTable(row interface{ Scan(...any) error }) (*model.Table, error) {
	var t model.Table
	var location sql.NullString
	var features sql.NullString
	if err := row.Scan(&t.ID, &t.VenueID, &t.ZoneID, &t.Number, &t.Seats, &t.MinGuests,
		&t.MaxGuests, &location, &features, &t.Status, &t.IsActive, &t.SortOrder,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if location.Valid {
		t.Location = &location.String
	}
	if features.Valid && features.String != "" {
		// A malformed blob leaves Features empty rather than failing the read.
		_ = json.Unmarshal([]byte(features.String), &t.Features)
	}
	return &t, nil
}

// GetByID fetches a single table regardless of state.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM tables WHERE id = ?`
	t, err := scanTable(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return t, nil
}

// ListSuitable returns the venue's tables that can serve the party
// size: active, operationally available, capacity bounds containing the
// party.  An optional zone narrows the set.
func (r *TableRepo) ListSuitable(ctx context.Context, venueID uint64, zoneID *uint64, partySize int) ([]model.Table, error) {
	q := `SELECT ` + tableColumns + ` FROM tables
	      WHERE venue_id = ? AND is_active = 1 AND status = ?
	        AND min_guests <= ? AND max_guests >= ?`
	args := []any{venueID, model.TableStatusAvailable, partySize, partySize}
	if zoneID != nil {
		q += ` AND zone_id = ?`
		args = append(args, *zoneID)
	}
	q += ` ORDER BY number`
	return r.list(ctx, q, args...)
}

// ListByVenue returns every table of a venue for staff views, active or
// not, ordered by table number.
func (r *TableRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.Table, error) {
	const q = `SELECT ` + tableColumns + ` FROM tables WHERE venue_id = ? ORDER BY number`
	return r.list(ctx, q, venueID)
}

// CountByVenue returns (available, total) active-table counts for the
// staff dashboard.
func (r *TableRepo) CountByVenue(ctx context.Context, venueID uint64) (available, total int, err error) {
	const q = `SELECT COUNT(*), COALESCE(SUM(status = ?), 0)
	           FROM tables WHERE venue_id = ? AND is_active = 1`
	err = r.db.QueryRowContext(ctx, q, model.TableStatusAvailable, venueID).Scan(&total, &available)
	return available, total, err
}

func (r *TableRepo) list(ctx context.Context, q string, args ...any) ([]model.Table, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tables := make([]model.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, *t)
	}
	return tables, rows.Err()
}
