package handlers

//go:generate mockgen -source=refresh.go -destination=refresh_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/echo/internal/logger"
	"github.com/sbilibin2017/echo/internal/models"
	"github.com/sbilibin2017/echo/internal/services"
)

// Refresher defines the interface that the refresh service must implement.
type Refresher interface {
	Refresh(ctx context.Context, rawToken string) (accessToken, refreshToken string, err error)
}

// NewRefreshHandler returns an HTTP handler that rotates the refresh token.
// @Summary Rotate refresh token
// @Description Revoke the refreshToken cookie, set a new one and return a new access token
// @Tags auth
// @Produce json
// @Success 200 {object} models.TokenResponse "Access token returned"
// @Failure 401 {object} models.MessageResponse "Missing, invalid, revoked or expired refresh token"
// @Failure 500 {object} models.MessageResponse "Internal server error"
// @Router /refresh [post]
func NewRefreshHandler(svc Refresher, cookie CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessToken, refreshToken, err := svc.Refresh(r.Context(), refreshTokenFromRequest(r))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrRefreshTokenMissing):
				writeMessage(w, http.StatusUnauthorized, "No refresh token")
			case errors.Is(err, services.ErrRefreshTokenRevoked):
				writeMessage(w, http.StatusUnauthorized, "Refresh token revoked")
			case errors.Is(err, services.ErrRefreshTokenExpired):
				writeMessage(w, http.StatusUnauthorized, "Refresh token expired")
			case errors.Is(err, services.ErrUnauthenticated):
				writeMessage(w, http.StatusUnauthorized, "Invalid refresh token")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeMessage(w, http.StatusInternalServerError, "Error refreshing token")
			}
			return
		}

		cookie.setRefreshToken(w, refreshToken)
		writeJSON(w, http.StatusOK, models.TokenResponse{AccessToken: accessToken})
	}
}
