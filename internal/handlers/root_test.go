package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/echo/internal/models"
)

func TestRootHandler(t *testing.T) {
	w := httptest.NewRecorder()
	NewRootHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
}

func TestProtectedHandler(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewProtectedHandler().ServeHTTP(w, authenticated(httptest.NewRequest(http.MethodGet, "/protected", nil)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Hello, authenticated user!", decodeMessage(t, w))
	})

	t.Run("no claims", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewProtectedHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
