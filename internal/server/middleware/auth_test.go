package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/clickvault/internal/server/handlers"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testJWTConfig() handlers.JWTConfig {
	return handlers.JWTConfig{Secret: []byte("test-secret"), TokenTTL: time.Hour}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	cfg := testJWTConfig()
	token, _, err := handlers.GenerateSessionToken(cfg, "u1")
	require.NoError(t, err)

	var gotKey string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey, _ = handlers.GetIdentityKey(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := AuthMiddleware(testLogger(), cfg)(next)

	r := httptest.NewRequest(http.MethodGet, "/vault", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", gotKey)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	cfg := testJWTConfig()
	expired, _, err := handlers.GenerateSessionToken(
		handlers.JWTConfig{Secret: cfg.Secret, TokenTTL: -time.Minute}, "u1")
	require.NoError(t, err)
	foreign, _, err := handlers.GenerateSessionToken(
		handlers.JWTConfig{Secret: []byte("other-secret"), TokenTTL: time.Hour}, "u1")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic dXNlcjpwYXNz"},
		{name: "malformed header", header: "Bearer"},
		{name: "garbage token", header: "Bearer not.a.token"},
		{name: "expired token", header: "Bearer " + expired},
		{name: "wrong signature", header: "Bearer " + foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			handler := AuthMiddleware(testLogger(), cfg)(next)

			r := httptest.NewRequest(http.MethodGet, "/vault", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.False(t, called)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}
