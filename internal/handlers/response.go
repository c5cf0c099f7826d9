package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/echo/internal/jwt"
	"github.com/sbilibin2017/echo/internal/logger"
	"github.com/sbilibin2017/echo/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.MessageResponse{Message: message})
}

// userIDFromRequest returns the id of the authenticated caller. It writes a
// 401 and returns false when the auth middleware did not run.
func userIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok || claims.UserID == 0 {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return 0, false
	}
	return claims.UserID, true
}
