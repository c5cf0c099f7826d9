package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sbilibin2017/echo/internal/db"
	"github.com/sbilibin2017/echo/internal/models"
)

const userColumns = `id, email, password, name, handle, bio, location, website, created_at`

const redacted = "[REDACTED]"

type UserReadRepository struct {
	db *db.Manager
}

func NewUserReadRepository(db *db.Manager) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByEmail returns the user with the given email, or nil if there is none.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ? LIMIT 1`
	return r.getOne(ctx, query, email)
}

// GetByHandle returns the user owning the handle, or nil if there is none.
func (r *UserReadRepository) GetByHandle(ctx context.Context, handle string) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE handle = ? LIMIT 1`
	return r.getOne(ctx, query, handle)
}

// GetByID returns the user with the given id, or nil if there is none.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ? LIMIT 1`
	return r.getOne(ctx, query, id)
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, args ...any) (*models.UserDB, error) {
	var user models.UserDB
	err := r.db.Get(ctx, &user, query, args...)

	logQuery(query, args, user.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetRawByID returns every column of the users row as a map. Byte values are
// converted to strings. Returns nil when the row does not exist.
func (r *UserReadRepository) GetRawByID(ctx context.Context, id int64) (map[string]any, error) {
	const query = `SELECT * FROM users WHERE id = ? LIMIT 1`

	row, err := r.db.GetMap(ctx, query, id)

	logQuery(query, []any{id}, len(row), err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	for k, v := range row {
		if b, ok := v.([]byte); ok {
			row[k] = string(b)
		}
	}
	return row, nil
}

type UserWriteRepository struct {
	db *db.Manager
}

func NewUserWriteRepository(db *db.Manager) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts a user and returns its id. A taken email or handle yields ErrDuplicate.
func (r *UserWriteRepository) Save(ctx context.Context, email, passwordHash string, name, handle *string) (int64, error) {
	const query = `
		INSERT INTO users (email, password, name, handle)
		VALUES (?, ?, ?, ?)
	`

	var id int64
	res, err := r.db.Exec(ctx, query, email, passwordHash, name, handle)
	if err == nil {
		id, err = res.LastInsertId()
	}

	logQuery(query, []any{email, redacted, name, handle}, id, err)

	if isDuplicateEntry(err) {
		return 0, fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update applies the non-nil fields of upd to the user. The password, when
// set, must already be hashed. A taken email or handle yields ErrDuplicate.
func (r *UserWriteRepository) Update(ctx context.Context, id int64, upd models.UserUpdate) error {
	if upd.IsEmpty() {
		return nil
	}

	var (
		sets    []string
		args    []any
		logArgs []any
	)
	add := func(column string, value *string, secret bool) {
		if value == nil {
			return
		}
		sets = append(sets, column+" = ?")
		args = append(args, *value)
		if secret {
			logArgs = append(logArgs, redacted)
		} else {
			logArgs = append(logArgs, *value)
		}
	}
	add("email", upd.Email, false)
	add("password", upd.Password, true)
	add("name", upd.Name, false)
	add("handle", upd.Handle, false)
	add("bio", upd.Bio, false)
	add("location", upd.Location, false)
	add("website", upd.Website, false)

	query := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	args = append(args, id)
	logArgs = append(logArgs, id)

	res, err := r.db.Exec(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, logArgs, rowsAffected, err)

	if isDuplicateEntry(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

// Delete removes the user row. It reports whether a row was deleted.
func (r *UserWriteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM users WHERE id = ?`

	res, err := r.db.Exec(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{id}, rowsAffected, err)

	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}
