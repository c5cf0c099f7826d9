package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/echo/internal/jwt"
	"github.com/sbilibin2017/echo/internal/models"
)

const testUserID int64 = 42

func newJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var raw []byte
	switch v := body.(type) {
	case nil:
	case string:
		raw = []byte(v)
	default:
		var err error
		raw, err = json.Marshal(v)
		require.NoError(t, err)
	}
	return httptest.NewRequest(method, target, bytes.NewReader(raw))
}

func authenticated(r *http.Request) *http.Request {
	claims := &jwt.Claims{UserID: testUserID, Email: "ada@example.com"}
	return r.WithContext(jwt.ContextWithClaims(r.Context(), claims))
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var resp models.MessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Message
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
