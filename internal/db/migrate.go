package db

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/sbilibin2017/echo/internal/logger"
)

// Migration is one versioned schema step. Statements must be idempotent so
// a step interrupted halfway can be re-run.
type Migration struct {
	Version    int
	Name       string
	Statements []string
}

const createSchemaMigrations = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INT NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)
`

// Migrate applies, in version order, every migration newer than the
// recorded schema version. MySQL commits DDL implicitly, so each step is
// recorded right after its statements succeed.
func (m *Manager) Migrate(ctx context.Context, migrations []Migration) error {
	if _, err := m.Exec(ctx, createSchemaMigrations); err != nil {
		return errors.Wrap(err, "create schema_migrations")
	}

	var current int
	if err := m.Get(ctx, &current, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`); err != nil {
		return errors.Wrap(err, "read schema version")
	}

	ordered := make([]Migration, len(migrations))
	copy(ordered, migrations)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Version < ordered[j].Version })

	for _, mig := range ordered {
		if mig.Version <= current {
			continue
		}
		for _, stmt := range mig.Statements {
			if _, err := m.Exec(ctx, stmt); err != nil {
				return errors.Wrapf(err, "migration %d (%s)", mig.Version, mig.Name)
			}
		}
		if _, err := m.Exec(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`,
			mig.Version, mig.Name,
		); err != nil {
			return errors.Wrapf(err, "record migration %d", mig.Version)
		}
		logger.Log.Infow("migration applied", "version", mig.Version, "name", mig.Name)
	}

	return nil
}
