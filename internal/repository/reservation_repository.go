package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/barsan/reservation-api/internal/availability"
	"github.com/barsan/reservation-api/internal/model"
	"github.com/barsan/reservation-api/internal/timeslot"
	"github.com/barsan/reservation-api/internal/utils"
)

// mysqlDuplicateEntry is the server error number for a violated unique
// constraint.
const mysqlDuplicateEntry = 1062

// numberRetries bounds how often CreateTx regenerates a reservation
// number after a duplicate-key collision before giving up.
const numberRetries = 3

// ReservationRepo owns the authoritative reservation ledger.  It
// enforces the state machine timestamps, the cancellation window and
// the uniqueness of reservation numbers.  All timestamps are UTC; the
// date and time columns stay separate because a reservation's time is a
// venue-local "HH:MM" string, not an absolute instant.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given
// database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span the hold store and the ledger.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `id, reservation_number, user_id, venue_id, table_id,
	guest_name, guest_email, guest_phone, date, time, guests, duration, status,
	special_requests, notes, source, confirmed_at, seated_at, completed_at,
	cancelled_at, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var res model.Reservation
	var userID, tableID sql.NullInt64
	var specialRequests, notes sql.NullString
	var date time.Time
	var confirmedAt, seatedAt, completedAt, cancelledAt sql.NullTime
	if err := row.Scan(&res.ID, &res.Number, &userID, &res.VenueID, &tableID,
		&res.GuestName, &res.GuestEmail, &res.GuestPhone, &date, &res.Time,
		&res.Guests, &res.Duration, &res.Status, &specialRequests, &notes,
		&res.Source, &confirmedAt, &seatedAt, &completedAt, &cancelledAt,
		&res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, err
	}
	res.Date = date.Format("2006-01-02")
	if userID.Valid {
		uid := uint64(userID.Int64)
		res.UserID = &uid
	}
	if tableID.Valid {
		tid := uint64(tableID.Int64)
		res.TableID = &tid
	}
	if specialRequests.Valid {
		res.SpecialRequests = &specialRequests.String
	}
	if notes.Valid {
		res.Notes = &notes.String
	}
	if confirmedAt.Valid {
		res.ConfirmedAt = &confirmedAt.Time
	}
	if seatedAt.Valid {
		res.SeatedAt = &seatedAt.Time
	}
	if completedAt.Valid {
		res.CompletedAt = &completedAt.Time
	}
	if cancelledAt.Valid {
		res.CancelledAt = &cancelledAt.Time
	}
	return &res, nil
}

// activeStatusPlaceholders builds the "IN (?,?,?)" clause for the
// active statuses together with its arguments.
func activeStatusPlaceholders() (string, []any) {
	ph := make([]string, len(model.ActiveStatuses))
	args := make([]any, len(model.ActiveStatuses))
	for i, s := range model.ActiveStatuses {
		ph[i] = "?"
		args[i] = s
	}
	return strings.Join(ph, ","), args
}

// ListActiveByVenueDateTx loads the active reservations of a venue on a
// date inside the caller's transaction.  With lock=true the rows are
// read FOR UPDATE: the confirm flow relies on this to serialize the
// availability re-check against competing inserts, so at most one of
// two racing confirmations can succeed.
func (r *ReservationRepo) ListActiveByVenueDateTx(ctx context.Context, tx *sql.Tx, venueID uint64, date string, lock bool) ([]model.Reservation, error) {
	ph, statusArgs := activeStatusPlaceholders()
	q := `SELECT ` + reservationColumns + ` FROM reservations
	      WHERE venue_id = ? AND date = ? AND status IN (` + ph + `)`
	if lock {
		q += ` FOR UPDATE`
	}
	args := append([]any{venueID, date}, statusArgs...)
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// EnsureSlotFreeTx locks the venue's active reservations for the date
// and re-runs the overlap check for a seating of the given duration
// starting at timeStr ("HH:MM").  It returns the locked snapshot for
// table assignment, or ErrSlotUnavailable when any active reservation
// overlaps the window.  Because the rows are read FOR UPDATE, two
// confirmations racing for the same slot serialize here and the loser
// sees the winner's insert.
func (r *ReservationRepo) EnsureSlotFreeTx(ctx context.Context, tx *sql.Tx, venueID uint64, date, timeStr string, duration int) ([]model.Reservation, error) {
	existing, err := r.ListActiveByVenueDateTx(ctx, tx, venueID, date, true)
	if err != nil {
		return nil, err
	}
	start, err := timeslot.Parse(timeStr)
	if err != nil {
		return nil, err
	}
	if !availability.SlotFree(start, duration, availability.BookingsFrom(existing)) {
		return nil, ErrSlotUnavailable
	}
	return existing, nil
}

// ListActiveByVenueDate is the non-transactional variant used by the
// availability endpoint, where a stale read only risks a later
// SlotUnavailable at confirm time.
func (r *ReservationRepo) ListActiveByVenueDate(ctx context.Context, venueID uint64, date string) ([]model.Reservation, error) {
	ph, statusArgs := activeStatusPlaceholders()
	q := `SELECT ` + reservationColumns + ` FROM reservations
	      WHERE venue_id = ? AND date = ? AND status IN (` + ph + `)`
	args := append([]any{venueID, date}, statusArgs...)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// CreateTx inserts a new reservation within the caller's transaction.
// The reservation number is generated here; on a duplicate-key
// collision a fresh number is generated and the insert retried a
// bounded number of times.  On success the record's ID, Number and
// timestamps are populated.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	  (reservation_number, user_id, venue_id, table_id, guest_name, guest_email,
	   guest_phone, date, time, guests, duration, status, special_requests, source)
	 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var lastErr error
	for attempt := 0; attempt < numberRetries; attempt++ {
		number, err := utils.NewReservationNumber(time.Now().UTC())
		if err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, q,
			number, nullableID(res.UserID), res.VenueID, nullableID(res.TableID),
			res.GuestName, res.GuestEmail, res.GuestPhone, res.Date, res.Time,
			res.Guests, res.Duration, res.Status, nullableString(res.SpecialRequests),
			res.Source)
		if err != nil {
			var me *mysql.MySQLError
			if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
				lastErr = err
				continue
			}
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		res.ID = uint64(id)
		res.Number = number
		// Read back DB-assigned created_at/updated_at.
		return tx.QueryRowContext(ctx,
			`SELECT created_at, updated_at FROM reservations WHERE id = ?`, res.ID).
			Scan(&res.CreatedAt, &res.UpdatedAt)
	}
	return lastErr
}

// GetByNumber fetches a reservation by its public number.
func (r *ReservationRepo) GetByNumber(ctx context.Context, number string) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE reservation_number = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, number))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

// UpdateStatus applies a staff status change: the state-machine
// timestamp for the new status is stamped only on first entry, the
// table assignment and notes are updated when provided, and updated_at
// is always bumped.  The read-modify-write runs as one transaction so a
// concurrent update cannot interleave between the stamp decision and
// the write.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status string, tableID *uint64, notes *string) (*model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const sel = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ? FOR UPDATE`
	res, err := scanReservation(tx.QueryRowContext(ctx, sel, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	res.ApplyStatus(status, now)
	if tableID != nil {
		res.TableID = tableID
	}
	if notes != nil {
		res.Notes = notes
	}

	const upd = `UPDATE reservations
	  SET status = ?, table_id = ?, notes = ?, confirmed_at = ?, seated_at = ?,
	      completed_at = ?, cancelled_at = ?, updated_at = ?
	  WHERE id = ?`
	if _, err := tx.ExecContext(ctx, upd,
		res.Status, nullableID(res.TableID), nullableString(res.Notes),
		nullableTime(res.ConfirmedAt), nullableTime(res.SeatedAt),
		nullableTime(res.CompletedAt), nullableTime(res.CancelledAt),
		res.UpdatedAt, res.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return res, nil
}

// CancelByGuest cancels a reservation identified by number and guest
// email.  Only pending and confirmed reservations qualify; any mismatch
// (wrong email, wrong status, unknown number) reports the same
// ErrReservationNotFound so callers cannot probe for existence.
// Cancellation is rejected with ErrCancelTooLate when the reservation
// starts inside the cancellation window.
func (r *ReservationRepo) CancelByGuest(ctx context.Context, number, email string, window time.Duration) error {
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

	const sel = `SELECT ` + reservationColumns + ` FROM reservations
	  WHERE reservation_number = ? AND guest_email = ? AND status IN (?, ?)
	  FOR UPDATE`
	res, err := scanReservation(tx.QueryRowContext(ctx, sel, number, email,
		model.StatusPending, model.StatusConfirmed))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrReservationNotFound
		}
		return err
	}

	now := time.Now().UTC()
	if !res.CancellableAt(now, window) {
		return ErrCancelTooLate
	}

	res.ApplyStatus(model.StatusCancelled, now)
	const upd = `UPDATE reservations SET status = ?, cancelled_at = ?, updated_at = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, upd, res.Status, nullableTime(res.CancelledAt), res.UpdatedAt, res.ID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListByUser returns a user's reservations newest first, optionally
// filtered by status, with limit/offset pagination.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64, status string, limit, offset int) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id = ?`
	args := []any{userID}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)
	return r.list(ctx, q, args...)
}

// ListByVenue returns a venue's reservations newest first with optional
// status and date filters, plus the unpaginated total for the filter.
func (r *ReservationRepo) ListByVenue(ctx context.Context, venueID uint64, status, date string, limit, offset int) ([]model.Reservation, int, error) {
	where := ` WHERE venue_id = ?`
	args := []any{venueID}
	if status != "" {
		where += ` AND status = ?`
		args = append(args, status)
	}
	if date != "" {
		where += ` AND date = ?`
		args = append(args, date)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + reservationColumns + ` FROM reservations` + where +
		` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)
	out, err := r.list(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// RecentByVenue returns the venue's most recent reservations for the
// staff dashboard.
func (r *ReservationRepo) RecentByVenue(ctx context.Context, venueID uint64, limit int) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations
	      WHERE venue_id = ? ORDER BY created_at DESC LIMIT ?`
	return r.list(ctx, q, venueID, limit)
}

// CountByVenueDate counts all reservations of a venue on a date.
func (r *ReservationRepo) CountByVenueDate(ctx context.Context, venueID uint64, date string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations WHERE venue_id = ? AND date = ?`,
		venueID, date).Scan(&n)
	return n, err
}

// CountPendingByVenue counts reservations awaiting staff confirmation.
func (r *ReservationRepo) CountPendingByVenue(ctx context.Context, venueID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations WHERE venue_id = ? AND status = ?`,
		venueID, model.StatusPending).Scan(&n)
	return n, err
}

func (r *ReservationRepo) list(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
