package db

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/sbilibin2017/echo/internal/logger"
)

type txContextKey struct{}

// TxFromContext returns the transaction opened by WithTransaction, or nil.
func TxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txContextKey{}).(*sqlx.Tx)
	return tx
}

// Select runs a parameterized query and scans all rows into dest.
// Inside WithTransaction it runs on the transaction.
func (m *Manager) Select(ctx context.Context, dest any, query string, args ...any) error {
	if tx := TxFromContext(ctx); tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}

	pool, release, err := m.acquire()
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return pool.SelectContext(ctx, dest, query, args...)
}

// Get scans a single row into dest. It returns sql.ErrNoRows when nothing matched.
func (m *Manager) Get(ctx context.Context, dest any, query string, args ...any) error {
	if tx := TxFromContext(ctx); tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}

	pool, release, err := m.acquire()
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return pool.GetContext(ctx, dest, query, args...)
}

// GetMap scans a single row into a column -> value map.
func (m *Manager) GetMap(ctx context.Context, query string, args ...any) (map[string]any, error) {
	row := make(map[string]any)

	if tx := TxFromContext(ctx); tx != nil {
		if err := tx.QueryRowxContext(ctx, query, args...).MapScan(row); err != nil {
			return nil, err
		}
		return row, nil
	}

	pool, release, err := m.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	if err := pool.QueryRowxContext(ctx, query, args...).MapScan(row); err != nil {
		return nil, err
	}
	return row, nil
}

// Exec runs a parameterized statement.
func (m *Manager) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if tx := TxFromContext(ctx); tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}

	pool, release, err := m.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return pool.ExecContext(ctx, query, args...)
}

// WithTransaction runs fn on a dedicated connection inside a transaction.
// fn's error triggers a rollback and is returned unchanged; a panic rolls
// back and is re-raised. The connection always goes back to the pool.
// Helpers called with the context passed to fn join the transaction, and a
// nested WithTransaction call joins the outer one.
func (m *Manager) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	if tx := TxFromContext(ctx); tx != nil {
		return fn(ctx, tx)
	}

	pool, release, err := m.acquire()
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	tx, err := pool.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}

	defer func() {
		if rec := recover(); rec != nil {
			_ = tx.Rollback()
			panic(rec)
		}
	}()

	if err := fn(context.WithValue(ctx, txContextKey{}, tx), tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Log.Errorw("failed to rollback transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}

// acquire takes a slot in the bounded wait queue.
func (m *Manager) acquire() (*sqlx.DB, func(), error) {
	m.mu.RLock()
	pool, admission := m.pool, m.admission
	m.mu.RUnlock()

	if pool == nil {
		return nil, nil, ErrPoolNotInitialized
	}
	if admission == nil {
		return pool, func() {}, nil
	}
	if !admission.TryAcquire(1) {
		return nil, nil, ErrPoolQueueFull
	}
	return pool, func() { admission.Release(1) }, nil
}

func (m *Manager) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.cfg.QueryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, m.cfg.QueryTimeout)
}
