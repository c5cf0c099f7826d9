package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sbilibin2017/echo/internal/db"
	"github.com/sbilibin2017/echo/internal/models"
)

type RefreshTokenReadRepository struct {
	db *db.Manager
}

func NewRefreshTokenReadRepository(db *db.Manager) *RefreshTokenReadRepository {
	return &RefreshTokenReadRepository{db: db}
}

const selectRefreshTokenByHash = `
	SELECT id, user_id, token_hash, expires_at, revoked, created_at
	FROM refresh_tokens
	WHERE token_hash = ?
	LIMIT 1
`

// GetByHash returns the token row for the hash, or nil if there is none.
func (r *RefreshTokenReadRepository) GetByHash(ctx context.Context, tokenHash string) (*models.RefreshTokenDB, error) {
	return r.getByHash(ctx, selectRefreshTokenByHash, tokenHash)
}

// GetByHashForUpdate is GetByHash that locks the row until the surrounding
// transaction ends. It must run inside a transaction.
func (r *RefreshTokenReadRepository) GetByHashForUpdate(ctx context.Context, tokenHash string) (*models.RefreshTokenDB, error) {
	return r.getByHash(ctx, selectRefreshTokenByHash+"FOR UPDATE", tokenHash)
}

func (r *RefreshTokenReadRepository) getByHash(ctx context.Context, query, tokenHash string) (*models.RefreshTokenDB, error) {
	var token models.RefreshTokenDB
	err := r.db.Get(ctx, &token, query, tokenHash)

	logQuery(query, []any{redacted}, token.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

type RefreshTokenWriteRepository struct {
	db *db.Manager
}

func NewRefreshTokenWriteRepository(db *db.Manager) *RefreshTokenWriteRepository {
	return &RefreshTokenWriteRepository{db: db}
}

// Save stores a token hash for the user.
func (r *RefreshTokenWriteRepository) Save(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	const query = `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES (?, ?, ?)
	`

	res, err := r.db.Exec(ctx, query, userID, tokenHash, expiresAt.UTC())
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{userID, redacted, expiresAt}, rowsAffected, err)

	return err
}

// RevokeByID revokes a live token. It reports false when the token was
// already revoked, so concurrent rotations of one token have a single winner.
func (r *RefreshTokenWriteRepository) RevokeByID(ctx context.Context, id int64) (bool, error) {
	const query = `UPDATE refresh_tokens SET revoked = 1 WHERE id = ? AND revoked = 0`

	res, err := r.db.Exec(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{id}, rowsAffected, err)

	if err != nil {
		return false, err
	}
	return rowsAffected == 1, nil
}

// RevokeByHash revokes the token with the given hash. Unknown or already
// revoked hashes are not an error.
func (r *RefreshTokenWriteRepository) RevokeByHash(ctx context.Context, tokenHash string) error {
	const query = `UPDATE refresh_tokens SET revoked = 1 WHERE token_hash = ?`

	res, err := r.db.Exec(ctx, query, tokenHash)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{redacted}, rowsAffected, err)

	return err
}
