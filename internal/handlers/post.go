package handlers

//go:generate mockgen -source=post.go -destination=post_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/echo/internal/logger"
	"github.com/sbilibin2017/echo/internal/models"
	"github.com/sbilibin2017/echo/internal/services"
)

// PostManager defines the post operations used by the post handlers.
type PostManager interface {
	Create(ctx context.Context, userID int64, title, body string) (int64, error)
	List(ctx context.Context) ([]models.Post, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Post, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

// NewPutPostHandler returns an HTTP handler that creates a post when both
// title and body are present and otherwise acknowledges a no-op update.
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createPostRequest body models.CreatePostRequest false "Post"
// @Success 201 {object} models.MessageResponse "Post created successfully"
// @Success 200 {object} models.MessageResponse "Post updated successfully"
// @Failure 400 {object} models.MessageResponse "Invalid request body"
// @Failure 401 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /post [put]
func NewPutPostHandler(svc PostManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		var req models.CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Title == "" || req.Body == "" {
			writeMessage(w, http.StatusOK, "Post updated successfully")
			return
		}

		if _, err := svc.Create(r.Context(), userID, req.Title, req.Body); err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeMessage(w, http.StatusInternalServerError, "Error creating post")
			return
		}

		writeMessage(w, http.StatusCreated, "Post created successfully")
	}
}

// NewListPostsHandler returns the public feed, newest first.
// @Summary List posts
// @Tags posts
// @Produce json
// @Success 200 {object} models.PostsResponse
// @Failure 500 {object} models.MessageResponse
// @Router /post [get]
func NewListPostsHandler(svc PostManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeMessage(w, http.StatusInternalServerError, "Error fetching posts")
			return
		}

		writeJSON(w, http.StatusOK, models.PostsResponse{
			Message: "Post fetched successfully",
			Posts:   posts,
		})
	}
}

// NewListMyPostsHandler returns the caller's own posts.
// @Summary List my posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.PostsResponse
// @Failure 401 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /post/mine [get]
func NewListMyPostsHandler(svc PostManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		posts, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeMessage(w, http.StatusInternalServerError, "Error fetching user posts")
			return
		}

		writeJSON(w, http.StatusOK, models.PostsResponse{Posts: posts})
	}
}

// NewDeletePostHandler returns an HTTP handler that deletes one post by id.
// @Summary Delete post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.MessageResponse "Post deleted successfully"
// @Failure 400 {object} models.MessageResponse "Invalid post id"
// @Failure 401 {object} models.MessageResponse
// @Failure 404 {object} models.MessageResponse "Post not found"
// @Failure 500 {object} models.MessageResponse
// @Router /post/{id} [delete]
func NewDeletePostHandler(svc PostManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := userIDFromRequest(w, r); !ok {
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			writeMessage(w, http.StatusBadRequest, "Invalid post id")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			switch {
			case errors.Is(err, services.ErrPostNotFound):
				writeMessage(w, http.StatusNotFound, "Post not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeMessage(w, http.StatusInternalServerError, "Error deleting posts")
			}
			return
		}

		writeMessage(w, http.StatusOK, "Post deleted successfully")
	}
}

// NewDeleteAllPostsHandler returns an HTTP handler that deletes every post.
// @Summary Delete all posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.MessageResponse "All posts deleted successfully"
// @Failure 401 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /post [delete]
func NewDeleteAllPostsHandler(svc PostManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := userIDFromRequest(w, r); !ok {
			return
		}

		if err := svc.DeleteAll(r.Context()); err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeMessage(w, http.StatusInternalServerError, "Error deleting posts")
			return
		}

		writeMessage(w, http.StatusOK, "All posts deleted successfully")
	}
}
