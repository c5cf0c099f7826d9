package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTokenHash = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"

func TestRefreshTokenReadRepository_GetByHash(t *testing.T) {
	m, mock := newTestManager(t)
	repo := NewRefreshTokenReadRepository(m)
	ctx := context.Background()

	expires := time.Now().Add(time.Hour).UTC()
	created := time.Now().UTC()
	columns := []string{"id", "user_id", "token_hash", "expires_at", "revoked", "created_at"}

	// plain read, no row lock
	mock.ExpectQuery(regexp.QuoteMeta("FROM refresh_tokens WHERE token_hash = ? LIMIT 1") + "$").
		WithArgs(testTokenHash).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(11), int64(3), testTokenHash, expires, int64(1), created))
	mock.ExpectQuery(regexp.QuoteMeta("FROM refresh_tokens WHERE token_hash = ? LIMIT 1") + "$").
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows(columns))

	token, err := repo.GetByHash(ctx, testTokenHash)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, int64(11), token.ID)
	assert.Equal(t, int64(3), token.UserID)
	assert.True(t, token.Revoked)
	assert.Equal(t, expires, token.ExpiresAt)

	token, err = repo.GetByHash(ctx, "unknown")
	assert.NoError(t, err)
	assert.Nil(t, token)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenReadRepository_GetByHashForUpdate(t *testing.T) {
	m, mock := newTestManager(t)
	repo := NewRefreshTokenReadRepository(m)
	ctx := context.Background()

	expires := time.Now().Add(time.Hour).UTC()
	created := time.Now().UTC()
	columns := []string{"id", "user_id", "token_hash", "expires_at", "revoked", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta("FROM refresh_tokens WHERE token_hash = ? LIMIT 1 FOR UPDATE")).
		WithArgs(testTokenHash).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(11), int64(3), testTokenHash, expires, int64(0), created))
	mock.ExpectQuery(regexp.QuoteMeta("FROM refresh_tokens WHERE token_hash = ? LIMIT 1 FOR UPDATE")).
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows(columns))

	token, err := repo.GetByHashForUpdate(ctx, testTokenHash)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, int64(11), token.ID)
	assert.False(t, token.Revoked)

	token, err = repo.GetByHashForUpdate(ctx, "unknown")
	assert.NoError(t, err)
	assert.Nil(t, token)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenWriteRepository_Save(t *testing.T) {
	m, mock := newTestManager(t)
	repo := NewRefreshTokenWriteRepository(m)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO refresh_tokens (user_id, token_hash, expires_at)")).
		WithArgs(int64(3), testTokenHash, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Save(context.Background(), 3, testTokenHash, time.Now().Add(30*24*time.Hour))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenWriteRepository_RevokeByID(t *testing.T) {
	tests := []struct {
		name        string
		affected    int64
		wantRevoked bool
	}{
		{name: "live token", affected: 1, wantRevoked: true},
		{name: "already revoked", affected: 0, wantRevoked: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, mock := newTestManager(t)
			repo := NewRefreshTokenWriteRepository(m)

			mock.ExpectExec(regexp.QuoteMeta("UPDATE refresh_tokens SET revoked = 1 WHERE id = ? AND revoked = 0")).
				WithArgs(int64(11)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			revoked, err := repo.RevokeByID(context.Background(), 11)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantRevoked, revoked)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRefreshTokenWriteRepository_RevokeByHash(t *testing.T) {
	m, mock := newTestManager(t)
	repo := NewRefreshTokenWriteRepository(m)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE refresh_tokens SET revoked = 1 WHERE token_hash = ?")).
			WithArgs(testTokenHash).
			WillReturnResult(sqlmock.NewResult(0, int64(1-i)))
	}

	assert.NoError(t, repo.RevokeByHash(ctx, testTokenHash))
	assert.NoError(t, repo.RevokeByHash(ctx, testTokenHash))
	assert.NoError(t, mock.ExpectationsWereMet())
}
