package handlers

import (
	"net/http"

	"github.com/sbilibin2017/echo/internal/models"
)

// NewRootHandler returns the health handler.
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Router / [get]
func NewRootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.StatusResponse{Status: "success"})
	}
}

// NewProtectedHandler returns a handler that only answers authenticated callers.
// @Summary Authenticated ping
// @Tags system
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.MessageResponse
// @Failure 401 {object} models.MessageResponse
// @Router /protected [get]
func NewProtectedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := userIDFromRequest(w, r); !ok {
			return
		}
		writeMessage(w, http.StatusOK, "Hello, authenticated user!")
	}
}
