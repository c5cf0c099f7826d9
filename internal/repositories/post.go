package repositories

import (
	"context"

	"github.com/sbilibin2017/echo/internal/db"
	"github.com/sbilibin2017/echo/internal/models"
)

type PostReadRepository struct {
	db *db.Manager
}

func NewPostReadRepository(db *db.Manager) *PostReadRepository {
	return &PostReadRepository{db: db}
}

// List returns every post with its author's handle, newest first.
func (r *PostReadRepository) List(ctx context.Context) ([]models.Post, error) {
	const query = `
		SELECT p.id, p.title, p.body, p.user_id, p.created_at, u.handle AS user_handle
		FROM posts p
		LEFT JOIN users u ON p.user_id = u.id
		ORDER BY p.created_at DESC, p.id DESC
	`

	posts := []models.Post{}
	err := r.db.Select(ctx, &posts, query)

	logQuery(query, nil, len(posts), err)

	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByUser returns the user's posts, newest first.
func (r *PostReadRepository) ListByUser(ctx context.Context, userID int64) ([]models.Post, error) {
	const query = `
		SELECT p.id, p.title, p.body, p.user_id, p.created_at, u.handle AS user_handle
		FROM posts p
		LEFT JOIN users u ON p.user_id = u.id
		WHERE p.user_id = ?
		ORDER BY p.created_at DESC, p.id DESC
	`

	posts := []models.Post{}
	err := r.db.Select(ctx, &posts, query, userID)

	logQuery(query, []any{userID}, len(posts), err)

	if err != nil {
		return nil, err
	}
	return posts, nil
}

type PostWriteRepository struct {
	db *db.Manager
}

func NewPostWriteRepository(db *db.Manager) *PostWriteRepository {
	return &PostWriteRepository{db: db}
}

// Save inserts a post and returns its id. A nil userID stores an anonymous post.
func (r *PostWriteRepository) Save(ctx context.Context, title, body string, userID *int64) (int64, error) {
	const query = `INSERT INTO posts (title, body, user_id) VALUES (?, ?, ?)`

	var id int64
	res, err := r.db.Exec(ctx, query, title, body, userID)
	if err == nil {
		id, err = res.LastInsertId()
	}

	logQuery(query, []any{title, body, userID}, id, err)

	if err != nil {
		return 0, err
	}
	return id, nil
}

// DeleteByID removes one post and returns the number of deleted rows.
func (r *PostWriteRepository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM posts WHERE id = ?`

	res, err := r.db.Exec(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{id}, rowsAffected, err)

	if err != nil {
		return 0, err
	}
	return rowsAffected, nil
}

// DeleteAll empties the posts table.
func (r *PostWriteRepository) DeleteAll(ctx context.Context) error {
	const query = `TRUNCATE TABLE posts`

	_, err := r.db.Exec(ctx, query)

	logQuery(query, nil, nil, err)

	return err
}
