package handlers

//go:generate mockgen -source=signup.go -destination=signup_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/echo/internal/logger"
	"github.com/sbilibin2017/echo/internal/models"
	"github.com/sbilibin2017/echo/internal/services"
)

// Signuper defines the interface that the signup service must implement.
type Signuper interface {
	Signup(ctx context.Context, in services.SignupInput) (int64, error)
}

// NewSignupHandler returns an HTTP handler for user signup.
// @Summary User signup
// @Description Create a user with email, password and an optional name and handle
// @Tags auth
// @Accept json
// @Produce json
// @Param signupRequest body models.SignupRequest true "Signup Request"
// @Success 201 {object} models.MessageResponse "User created successfully"
// @Failure 400 {object} models.MessageResponse "User already exists, invalid handle or missing fields"
// @Failure 500 {object} models.MessageResponse "Internal server error"
// @Router /signup [post]
func NewSignupHandler(svc Signuper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.SignupRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		_, err := svc.Signup(r.Context(), services.SignupInput{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
			Handle:   req.Handle,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeMessage(w, http.StatusBadRequest, "User already exists")
			case errors.Is(err, services.ErrHandleTaken):
				writeMessage(w, http.StatusBadRequest, "Handle already taken")
			case errors.Is(err, services.ErrInvalidHandle):
				writeMessage(w, http.StatusBadRequest, "Handle must be 3-30 letters, digits or underscores")
			case errors.Is(err, services.ErrMissingFields):
				writeMessage(w, http.StatusBadRequest, "Email and password are required")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeMessage(w, http.StatusInternalServerError, "Error creating user")
			}
			return
		}

		writeMessage(w, http.StatusCreated, "User created successfully")
	}
}
