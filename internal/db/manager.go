package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/sbilibin2017/echo/internal/logger"
)

const (
	driverName = "mysql"

	defaultBaseDelay = 500 * time.Millisecond
	defaultMaxDelay  = 30 * time.Second
)

// Manager owns the lifecycle of the MySQL connection pool.
// It is created once by the entry point and handed to every consumer.
type Manager struct {
	cfg       Config
	isolated  bool
	baseDelay time.Duration
	maxDelay  time.Duration
	ping      func(ctx context.Context) error
	open      func() (*sqlx.DB, error)

	mu        sync.RWMutex
	pool      *sqlx.DB
	admission *semaphore.Weighted
}

// Option customizes a Manager.
type Option func(*Manager)

// WithIsolation makes Initialize tear down any existing pool before
// reconnecting. Used by test runs that need a fresh pool per case.
func WithIsolation(enabled bool) Option {
	return func(m *Manager) {
		m.isolated = enabled
	}
}

// WithBackoff overrides the bootstrap backoff base delay and cap.
func WithBackoff(base, max time.Duration) Option {
	return func(m *Manager) {
		m.baseDelay = base
		m.maxDelay = max
	}
}

// WithPing replaces the liveness check run before the pool is built.
func WithPing(ping func(ctx context.Context) error) Option {
	return func(m *Manager) {
		m.ping = ping
	}
}

// WithOpener replaces the pool constructor.
func WithOpener(open func() (*sqlx.DB, error)) Option {
	return func(m *Manager) {
		m.open = open
	}
}

// NewManager creates a Manager. No connection is made until Initialize.
func NewManager(cfg Config, opts ...Option) *Manager {
	m := &Manager{
		cfg:       cfg,
		baseDelay: defaultBaseDelay,
		maxDelay:  defaultMaxDelay,
	}
	m.ping = m.pingServer
	m.open = m.openPool

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize connects to MySQL, retrying with exponential backoff.
//
// An existing pool is reused unless the manager is isolated. When every
// attempt fails the result is nil and ErrPoolUnavailable, so the caller can
// keep serving in degraded mode.
func (m *Manager) Initialize(ctx context.Context) (*sqlx.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pool != nil {
		if !m.isolated {
			return m.pool, nil
		}
		if err := m.pool.Close(); err != nil {
			logger.Log.Warnw("failed to close previous pool", "error", err)
		}
		m.pool = nil
		m.admission = nil
	}

	if m.cfg.MaxAttempts <= 0 {
		return nil, ErrInitDisabled
	}

	var pool *sqlx.DB
	attempt := 0
	operation := func() error {
		attempt++
		p, err := m.connect(ctx)
		if err != nil {
			logger.Log.Errorw("db init attempt failed",
				"attempt", attempt,
				"max_attempts", m.cfg.MaxAttempts,
				"host", m.cfg.Host,
				"port", m.cfg.Port,
				"error", err,
			)
			return errors.Wrapf(err, "db init attempt %d/%d", attempt, m.cfg.MaxAttempts)
		}
		pool = p
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(m.retryPolicy(), ctx)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPoolUnavailable, err)
	}

	m.pool = pool
	if capacity := m.cfg.capacity(); capacity > 0 {
		m.admission = semaphore.NewWeighted(capacity)
	}

	logger.Log.Infow("database pool initialized",
		"host", m.cfg.Host,
		"port", m.cfg.Port,
		"database", m.cfg.Database,
		"attempts", attempt,
	)
	return pool, nil
}

// Pool returns the live pool or ErrPoolNotInitialized.
func (m *Manager) Pool() (*sqlx.DB, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.pool == nil {
		return nil, ErrPoolNotInitialized
	}
	return m.pool, nil
}

// Close ends the pool. It is a no-op when no pool exists.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pool == nil {
		return nil
	}
	err := m.pool.Close()
	m.pool = nil
	m.admission = nil
	return err
}

// retryPolicy yields the waits between attempts: base, 2*base, 4*base ...
// capped at maxDelay, for MaxAttempts-1 retries.
func (m *Manager) retryPolicy() backoff.BackOff {
	if m.cfg.MaxAttempts <= 1 {
		return &backoff.StopBackOff{}
	}
	return backoff.WithMaxRetries(m.newBackOff(), uint64(m.cfg.MaxAttempts-1))
}

func (m *Manager) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = m.baseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = m.maxDelay
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

func (m *Manager) connect(ctx context.Context) (*sqlx.DB, error) {
	if err := m.ping(ctx); err != nil {
		return nil, err
	}
	return m.open()
}

// pingServer opens a single bare connection and pings it.
func (m *Manager) pingServer(ctx context.Context) error {
	conn, err := sqlx.Open(driverName, m.cfg.serverDSN())
	if err != nil {
		return err
	}
	defer conn.Close()
	conn.SetMaxOpenConns(1)

	if m.cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.ConnectTimeout)
		defer cancel()
	}
	return conn.PingContext(ctx)
}

func (m *Manager) openPool() (*sqlx.DB, error) {
	if err := mysql.SetLogger(driverLogger{}); err != nil {
		return nil, err
	}

	pool, err := sqlx.Open(driverName, m.cfg.DSN())
	if err != nil {
		return nil, err
	}
	pool.SetMaxOpenConns(m.cfg.MaxOpenConns)
	pool.SetMaxIdleConns(m.cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(m.cfg.ConnMaxLifetime)
	pool.SetConnMaxIdleTime(m.cfg.ConnMaxIdleTime)
	return pool, nil
}

// driverLogger routes asynchronous driver errors (dropped connections,
// broken packets) to the application log instead of stderr.
type driverLogger struct{}

func (driverLogger) Print(v ...any) {
	logger.Log.Errorw("mysql driver error", "details", fmt.Sprint(v...))
}
