package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/echo/internal/db"
)

func newTestManager(t *testing.T) (*db.Manager, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	m := db.NewManager(db.Config{MaxAttempts: 1},
		db.WithPing(func(context.Context) error { return nil }),
		db.WithOpener(func() (*sqlx.DB, error) { return sqlx.NewDb(mockDB, "sqlmock"), nil }),
	)
	_, err = m.Initialize(context.Background())
	require.NoError(t, err)
	return m, mock
}
