package handlers

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/echo/internal/logger"
	"github.com/sbilibin2017/echo/internal/models"
	"github.com/sbilibin2017/echo/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error)
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate user, return an access token and set the refreshToken cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Login Request"
// @Success 200 {object} models.TokenResponse "Access token returned"
// @Failure 400 {object} models.MessageResponse "Invalid request body"
// @Failure 401 {object} models.MessageResponse "Invalid credentials"
// @Failure 500 {object} models.MessageResponse "Internal server error"
// @Router /login [post]
func NewLoginHandler(svc Loginer, cookie CookieConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		accessToken, refreshToken, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeMessage(w, http.StatusInternalServerError, "Error logging in")
			}
			return
		}

		cookie.setRefreshToken(w, refreshToken)
		writeJSON(w, http.StatusOK, models.TokenResponse{AccessToken: accessToken})
	}
}
