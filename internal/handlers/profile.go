package handlers

//go:generate mockgen -source=profile.go -destination=profile_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/echo/internal/logger"
	"github.com/sbilibin2017/echo/internal/models"
	"github.com/sbilibin2017/echo/internal/services"
)

// ProfileManager defines the profile operations used by the profile handlers.
type ProfileManager interface {
	GetProfile(ctx context.Context, userID int64) (*models.UserDB, error)
	UpdateProfile(ctx context.Context, userID int64, in services.UpdateProfileInput) error
	DeleteProfile(ctx context.Context, userID int64) error
}

// RawProfileGetter returns the unfiltered users row.
type RawProfileGetter interface {
	GetRawProfile(ctx context.Context, userID int64) (map[string]any, error)
}

// NewGetProfileHandler returns an HTTP handler for reading the caller's profile.
// @Summary Get profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ProfileResponse
// @Failure 401 {object} models.MessageResponse
// @Failure 404 {object} models.MessageResponse "User not found"
// @Failure 500 {object} models.MessageResponse
// @Router /profile [get]
func NewGetProfileHandler(svc ProfileManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		user, err := svc.GetProfile(r.Context(), userID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeMessage(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeMessage(w, http.StatusInternalServerError, "Error fetching profile")
			}
			return
		}

		writeJSON(w, http.StatusOK, models.ProfileResponse{
			Message: "Profile fetched successfully",
			User:    user,
		})
	}
}

// NewUpdateProfileHandler returns an HTTP handler for a partial profile update.
// @Summary Update profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param updateProfileRequest body models.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} models.MessageResponse "Profile updated successfully"
// @Failure 400 {object} models.MessageResponse "Invalid body, invalid handle, email or handle taken"
// @Failure 401 {object} models.MessageResponse
// @Failure 404 {object} models.MessageResponse "User not found"
// @Failure 500 {object} models.MessageResponse
// @Router /profile [put]
func NewUpdateProfileHandler(svc ProfileManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		var req models.UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		err := svc.UpdateProfile(r.Context(), userID, services.UpdateProfileInput{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
			Handle:   req.Handle,
			Bio:      req.Bio,
			Location: req.Location,
			Website:  req.Website,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeMessage(w, http.StatusNotFound, "User not found")
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeMessage(w, http.StatusBadRequest, "User already exists")
			case errors.Is(err, services.ErrHandleTaken):
				writeMessage(w, http.StatusBadRequest, "Handle already taken")
			case errors.Is(err, services.ErrInvalidHandle):
				writeMessage(w, http.StatusBadRequest, "Handle must be 3-30 letters, digits or underscores")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeMessage(w, http.StatusInternalServerError, "Error updating profile")
			}
			return
		}

		writeMessage(w, http.StatusOK, "Profile updated successfully")
	}
}

// NewDeleteProfileHandler returns an HTTP handler that deletes the caller's account.
// @Summary Delete profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.MessageResponse "Profile deleted successfully"
// @Failure 401 {object} models.MessageResponse
// @Failure 404 {object} models.MessageResponse "User not found"
// @Failure 500 {object} models.MessageResponse
// @Router /profile [delete]
func NewDeleteProfileHandler(svc ProfileManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteProfile(r.Context(), userID); err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeMessage(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeMessage(w, http.StatusInternalServerError, "Error deleting profile")
			}
			return
		}

		writeMessage(w, http.StatusOK, "Profile deleted successfully")
	}
}

// NewRawProfileHandler returns the stored users row of the caller. Mounted
// outside production only.
// @Summary Raw profile row (debug)
// @Tags debug
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.RawProfileResponse
// @Failure 401 {object} models.MessageResponse
// @Failure 500 {object} models.MessageResponse
// @Router /debug/raw-profile [get]
func NewRawProfileHandler(svc RawProfileGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromRequest(w, r)
		if !ok {
			return
		}

		row, err := svc.GetRawProfile(r.Context(), userID)
		if err != nil && !errors.Is(err, services.ErrUserNotFound) {
			logger.Log.Errorw("internal server error", "err", err)
			writeMessage(w, http.StatusInternalServerError, "Error fetching raw profile")
			return
		}

		writeJSON(w, http.StatusOK, models.RawProfileResponse{Row: row})
	}
}
