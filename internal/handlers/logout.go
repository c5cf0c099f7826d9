package handlers

//go:generate mockgen -source=logout.go -destination=logout_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/echo/internal/logger"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, rawToken string) error
}

// NewLogoutHandler returns an HTTP handler that revokes the refresh token and clears the cookie.
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} models.MessageResponse "Logged out"
// @Failure 500 {object} models.MessageResponse "Internal server error"
// @Router /logout [post]
func NewLogoutHandler(svc Logouter, cookie CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context(), refreshTokenFromRequest(r)); err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeMessage(w, http.StatusInternalServerError, "Error logging out")
			return
		}

		cookie.clearRefreshToken(w)
		writeMessage(w, http.StatusOK, "Logged out")
	}
}
