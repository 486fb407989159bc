package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// TokenRepo persists refresh-token state.  Only the SHA-256 hash of a
// token ever reaches the database; the raw value lives with the client.
// Revocation is a tombstone (revoked_at) rather than a delete so a
// replayed token stays invalid until PurgeExpired sweeps the row.
type TokenRepo struct {
	db *sql.DB
}

// NewTokenRepo returns a TokenRepo bound to the provided database.
func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

// StoreRefresh records a freshly issued refresh token hash for a user.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		 VALUES (?, ?, ?)`,
		userID, tokenHash, exp.UTC().Format("2006-01-02 15:04:05"))
	return err
}

// ValidateRefresh resolves a token hash to its user.  Expiry and
// revocation are checked in SQL against the server clock, so a token is
// either live or ErrRefreshInvalid with no in-between.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	var userID uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM refresh_tokens
		 WHERE token_hash = ? AND revoked_at IS NULL AND expires_at > UTC_TIMESTAMP()
		 LIMIT 1`,
		tokenHash).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrRefreshInvalid
		}
		return 0, err
	}
	return userID, nil
}

// RevokeByHash tombstones a single token, typically on rotation or a
// targeted logout.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked_at = UTC_TIMESTAMP()
		 WHERE token_hash = ? AND revoked_at IS NULL`,
		tokenHash)
	return err
}

// RevokeAllForUser tombstones every live token a user holds, used by
// the logout-everywhere path.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked_at = UTC_TIMESTAMP()
		 WHERE user_id = ? AND revoked_at IS NULL`,
		userID)
	return err
}

// PurgeExpired deletes tokens that can never validate again (expired,
// or revoked for over a day) and returns how many were removed.
func (r *TokenRepo) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens
		 WHERE expires_at <= UTC_TIMESTAMP()
		    OR revoked_at <= UTC_TIMESTAMP() - INTERVAL 1 DAY`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
