package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/barsan/reservation-api/internal/model"
)

// HoldRepo provides data access to temporary reservations.  All
// timestamps are UTC.  Expiry is enforced lazily when a hold is read;
// DeleteExpired exists purely for storage hygiene and is not required
// for correctness.
type HoldRepo struct {
	db *sql.DB
}

// NewHoldRepo returns a HoldRepo bound to the provided database.
func NewHoldRepo(db *sql.DB) *HoldRepo { return &HoldRepo{db: db} }

const holdColumns = `id, user_id, venue_id, date, time, guests, zone_id, table_id,
	session_key, expires_at, created_at`

func scanHold(row interface{ Scan(...any) error }) (*model.Hold, error) {
	var h model.Hold
	var userID, zoneID, tableID sql.NullInt64
	var date time.Time
	if err := row.Scan(&h.ID, &userID, &h.VenueID, &date, &h.Time, &h.Guests,
		&zoneID, &tableID, &h.SessionKey, &h.ExpiresAt, &h.CreatedAt); err != nil {
		return nil, err
	}
	h.Date = date.Format("2006-01-02")
	if userID.Valid {
		uid := uint64(userID.Int64)
		h.UserID = &uid
	}
	if zoneID.Valid {
		zid := uint64(zoneID.Int64)
		h.ZoneID = &zid
	}
	if tableID.Valid {
		tid := uint64(tableID.Int64)
		h.TableID = &tid
	}
	return &h, nil
}

// ReplaceForSession atomically replaces any existing hold for the
// session key with the new one.  The delete and insert run in a single
// transaction so a concurrent create for the same session can never
// observe two live holds.  The hold's ID and CreatedAt are populated on
// return.
func (r *HoldRepo) ReplaceForSession(ctx context.Context, h *model.Hold) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM temporary_reservations WHERE session_key = ?`, h.SessionKey); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO temporary_reservations
		   (user_id, venue_id, date, time, guests, zone_id, table_id, session_key, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullableID(h.UserID), h.VenueID, h.Date, h.Time, h.Guests,
		nullableID(h.ZoneID), nullableID(h.TableID), h.SessionKey,
		h.ExpiresAt.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)

	if err := tx.QueryRowContext(ctx,
		`SELECT created_at FROM temporary_reservations WHERE id = ?`, h.ID).Scan(&h.CreatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetForUpdateTx loads a hold inside the caller's transaction with a
// row lock, applying lazy expiry: an expired hold is deleted and
// reported as ErrHoldExpired, so only live holds escape this method.
// The caller deletes the hold only after a successful promotion, which
// keeps it reusable when promotion fails further down.
func (r *HoldRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Hold, error) {
	const q = `SELECT ` + holdColumns + ` FROM temporary_reservations WHERE id = ? FOR UPDATE`
	h, err := scanHold(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHoldNotFound
		}
		return nil, err
	}
	if h.Expired(time.Now().UTC()) {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM temporary_reservations WHERE id = ?`, id); err != nil {
			return nil, err
		}
		return nil, ErrHoldExpired
	}
	return h, nil
}

// DeleteTx removes a hold within the caller's transaction, typically
// right after it was promoted into a reservation.
func (r *HoldRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM temporary_reservations WHERE id = ?`, id)
	return err
}

// DeleteExpired sweeps holds whose expiry has passed and returns how
// many were removed.
func (r *HoldRepo) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM temporary_reservations WHERE expires_at <= UTC_TIMESTAMP()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nullableID(id *uint64) any {
	if id == nil {
		return nil
	}
	return *id
}
