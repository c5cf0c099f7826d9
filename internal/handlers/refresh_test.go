package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/echo/internal/models"
	"github.com/sbilibin2017/echo/internal/services"
)

func TestRefreshHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRefresher(ctrl)
	cookieCfg := CookieConfig{MaxAge: time.Hour}

	unauth := func(reason error) error {
		return fmt.Errorf("%w: %w", services.ErrUnauthenticated, reason)
	}

	tests := []struct {
		name         string
		cookie       string
		mockSetup    func()
		expectedCode int
		expectedMsg  string
	}{
		{
			name:   "success rotates cookie",
			cookie: "R1",
			mockSetup: func() {
				mockSvc.EXPECT().Refresh(gomock.Any(), "R1").Return("ACCESS", "R2", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "no cookie",
			mockSetup: func() {
				mockSvc.EXPECT().Refresh(gomock.Any(), "").Return("", "", unauth(services.ErrRefreshTokenMissing))
			},
			expectedCode: http.StatusUnauthorized,
			expectedMsg:  "No refresh token",
		},
		{
			name:   "unknown token",
			cookie: "bogus",
			mockSetup: func() {
				mockSvc.EXPECT().Refresh(gomock.Any(), "bogus").Return("", "", unauth(services.ErrRefreshTokenInvalid))
			},
			expectedCode: http.StatusUnauthorized,
			expectedMsg:  "Invalid refresh token",
		},
		{
			name:   "revoked token",
			cookie: "R1",
			mockSetup: func() {
				mockSvc.EXPECT().Refresh(gomock.Any(), "R1").Return("", "", unauth(services.ErrRefreshTokenRevoked))
			},
			expectedCode: http.StatusUnauthorized,
			expectedMsg:  "Refresh token revoked",
		},
		{
			name:   "expired token",
			cookie: "R1",
			mockSetup: func() {
				mockSvc.EXPECT().Refresh(gomock.Any(), "R1").Return("", "", unauth(services.ErrRefreshTokenExpired))
			},
			expectedCode: http.StatusUnauthorized,
			expectedMsg:  "Refresh token expired",
		},
		{
			name:   "internal error",
			cookie: "R1",
			mockSetup: func() {
				mockSvc.EXPECT().Refresh(gomock.Any(), "R1").Return("", "", errors.New("pool unavailable"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "Error refreshing token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			NewRefreshHandler(mockSvc, cookieCfg).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, decodeMessage(t, w))
				return
			}

			var resp models.TokenResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "ACCESS", resp.AccessToken)

			c := findCookie(w, RefreshCookieName)
			require.NotNil(t, c)
			assert.Equal(t, "R2", c.Value)
		})
	}
}
