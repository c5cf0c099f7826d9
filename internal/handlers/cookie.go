package handlers

import (
	"net/http"
	"time"
)

// RefreshCookieName is the cookie carrying the raw refresh token.
const RefreshCookieName = "refreshToken"

// CookieConfig controls the refresh token cookie attributes.
type CookieConfig struct {
	Secure bool          // set in production so the cookie only travels over HTTPS
	MaxAge time.Duration // matches the refresh token lifetime
}

func (c CookieConfig) setRefreshToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		Expires:  time.Now().Add(c.MaxAge),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (c CookieConfig) clearRefreshToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func refreshTokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
