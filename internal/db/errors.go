package db

import "github.com/pkg/errors"

var (
	// ErrPoolNotInitialized is returned by every helper while no pool exists,
	// e.g. when the process started in degraded mode.
	ErrPoolNotInitialized = errors.New("database pool not initialized")

	// ErrPoolUnavailable is returned by Initialize once all attempts failed.
	ErrPoolUnavailable = errors.New("database unavailable after all init attempts")

	// ErrInitDisabled is returned by Initialize when MaxAttempts is 0.
	ErrInitDisabled = errors.New("database initialization disabled (DB_INIT_RETRIES=0)")

	// ErrPoolQueueFull is returned when both the connections and the wait queue are taken.
	ErrPoolQueueFull = errors.New("database pool wait queue is full")
)
