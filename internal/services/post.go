package services

//go:generate mockgen -source=post.go -destination=post_mock.go -package=services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/echo/internal/logger"
	"github.com/sbilibin2017/echo/internal/models"
	"github.com/sbilibin2017/echo/internal/repositories"
)

// PostReader lists posts.
type PostReader interface {
	List(ctx context.Context) ([]models.Post, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Post, error)
}

// PostWriter creates and deletes posts.
type PostWriter interface {
	Save(ctx context.Context, title, body string, userID *int64) (int64, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
	DeleteAll(ctx context.Context) error
}

// PostCache caches the public feed.
type PostCache interface {
	GetFeed(ctx context.Context) ([]models.Post, int64, error)
	SetFeed(ctx context.Context, gen int64, posts []models.Post) error
	InvalidateFeed(ctx context.Context) error
}

// PostService handles posts. The public feed is read through the cache
// when one is configured; cache failures fall back to the database.
type PostService struct {
	reader PostReader
	writer PostWriter
	cache  PostCache
}

// NewPostService creates a new PostService. cache may be nil.
func NewPostService(reader PostReader, writer PostWriter, cache PostCache) *PostService {
	return &PostService{
		reader: reader,
		writer: writer,
		cache:  cache,
	}
}

// Create stores a post authored by userID and returns its id.
func (s *PostService) Create(ctx context.Context, userID int64, title, body string) (int64, error) {
	id, err := s.writer.Save(ctx, title, body, &userID)
	if err != nil {
		logger.Log.Errorw("failed to create post", "user_id", userID, "error", err)
		return 0, err
	}
	s.invalidate(ctx)
	return id, nil
}

// List returns the public feed, newest first. The feed is cached only after
// a clean miss, under the generation observed before reading the database.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	var (
		gen  int64
		fill bool
	)
	if s.cache != nil {
		posts, g, err := s.cache.GetFeed(ctx)
		switch {
		case err == nil:
			return posts, nil
		case errors.Is(err, repositories.ErrCacheMiss):
			gen, fill = g, true
		default:
			logger.Log.Warnw("failed to read cached feed", "error", err)
		}
	}

	posts, err := s.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list posts", "error", err)
		return nil, err
	}

	if fill {
		if err := s.cache.SetFeed(ctx, gen, posts); err != nil {
			logger.Log.Warnw("failed to cache feed", "error", err, "generation", gen)
		}
	}
	return posts, nil
}

// ListByUser returns the user's own posts, newest first.
func (s *PostService) ListByUser(ctx context.Context, userID int64) ([]models.Post, error) {
	posts, err := s.reader.ListByUser(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list user posts", "user_id", userID, "error", err)
		return nil, err
	}
	return posts, nil
}

// Delete removes one post or returns ErrPostNotFound.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	n, err := s.writer.DeleteByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to delete post", "post_id", id, "error", err)
		return err
	}
	if n == 0 {
		return ErrPostNotFound
	}
	s.invalidate(ctx)
	return nil
}

// DeleteAll removes every post.
func (s *PostService) DeleteAll(ctx context.Context) error {
	if err := s.writer.DeleteAll(ctx); err != nil {
		logger.Log.Errorw("failed to delete posts", "error", err)
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *PostService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFeed(ctx); err != nil {
		logger.Log.Warnw("failed to invalidate cached feed", "error", err)
	}
}
