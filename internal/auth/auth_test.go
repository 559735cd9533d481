package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/inamate/drawkit/internal/typeid"
)

const secret = "test-secret"

func newService(t *testing.T, key string) *Service {
	t.Helper()
	if key == "" {
		return NewService(secret, "")
	}
	hash, err := HashKey(key, bcrypt.MinCost)
	require.NoError(t, err)
	return NewService(secret, hash)
}

func TestLoginAndValidate(t *testing.T) {
	s := newService(t, "open sesame")
	require.True(t, s.Enabled())

	_, err := s.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	res, err := s.Login("open sesame")
	require.NoError(t, err)
	assert.NoError(t, typeid.Validate(res.SessionID, typeid.PrefixSession))

	id, err := s.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.SessionID, id)
}

func TestValidateTokenRejects(t *testing.T) {
	s := newService(t, "")
	sign := func(claims jwt.MapClaims, key string) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
		require.NoError(t, err)
		return tok
	}
	valid := typeid.NewSessionID()
	future := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"wrong secret", sign(jwt.MapClaims{"sub": valid, "exp": future}, "other")},
		{"expired", sign(jwt.MapClaims{"sub": valid, "exp": time.Now().Add(-time.Hour).Unix()}, secret)},
		{"missing subject", sign(jwt.MapClaims{"exp": future}, secret)},
		{"foreign subject", sign(jwt.MapClaims{"sub": typeid.New(typeid.PrefixCircle), "exp": future}, secret)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ValidateToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestMiddleware(t *testing.T) {
	s := newService(t, "k")
	res, err := s.Login("k")
	require.NoError(t, err)

	var seen string
	h := s.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name    string
		header  string
		want    int
		wantErr string
	}{
		{"missing", "", http.StatusUnauthorized, "missing authorization header"},
		{"not bearer", "Basic abc", http.StatusUnauthorized, "invalid authorization format"},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, "invalid authorization format"},
		{"bad token", "Bearer abc", http.StatusUnauthorized, "invalid token"},
		{"ok", "Bearer " + res.Token, http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
			if tt.wantErr != "" {
				var body map[string]string
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, tt.wantErr, body["error"])
			}
		})
	}
	assert.Equal(t, res.SessionID, seen)

	preflight := httptest.NewRecorder()
	h.ServeHTTP(preflight, httptest.NewRequest(http.MethodOptions, "/api/state", nil))
	assert.Equal(t, http.StatusNoContent, preflight.Code)
	assert.Empty(t, seen)
}

func TestMiddlewareOpenWithoutKey(t *testing.T) {
	s := newService(t, "")
	h := s.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLoginHandler(t *testing.T) {
	h := NewHandler(newService(t, "k"))

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed", `{`, http.StatusBadRequest},
		{"empty key", `{"key":""}`, http.StatusBadRequest},
		{"wrong key", `{"key":"nope"}`, http.StatusUnauthorized},
		{"ok", `{"key":"k"}`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body)))
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.want == http.StatusOK {
				var res AuthResult
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
				assert.NotEmpty(t, res.Token)
			}
		})
	}
}
