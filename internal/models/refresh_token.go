package models

import "time"

// RefreshTokenDB represents a stored refresh token. Only the SHA-256 hash of
// the raw value is persisted.
type RefreshTokenDB struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	TokenHash string    `db:"token_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	Revoked   bool      `db:"revoked"`
	CreatedAt time.Time `db:"created_at"`
}
