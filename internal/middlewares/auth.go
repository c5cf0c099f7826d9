package middlewares

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/echo/internal/jwt"
	"github.com/sbilibin2017/echo/internal/logger"
	"github.com/sbilibin2017/echo/internal/models"
)

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware verifies the bearer access token and stores its claims in
// the request context.
func AuthMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Warnw("authorization failed", "err", err)
				if errors.Is(err, jwt.ErrTokenMissing) {
					unauthorized(w, "Access denied. No token provided.")
				} else {
					unauthorized(w, "Invalid token.")
				}
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Warnw("authorization failed", "err", err)
				unauthorized(w, "Invalid token.")
				return
			}

			next.ServeHTTP(w, r.WithContext(jwt.ContextWithClaims(ctx, claims)))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.MessageResponse{Message: message})
}
