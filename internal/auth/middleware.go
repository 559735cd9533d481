package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

// SessionIDKey holds the session a request's bearer token was issued for.
const SessionIDKey contextKey = "sessionID"

// AuthMiddleware requires a valid bearer token when an access key is
// configured. Preflight requests always pass.
func (s *Service) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.Enabled() || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		sessionID, reason := s.sessionFromHeader(r.Header.Get("Authorization"))
		if reason != "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": reason})
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), SessionIDKey, sessionID)))
	})
}

// sessionFromHeader returns the session ID, or a client-facing reason the
// header was refused.
func (s *Service) sessionFromHeader(header string) (sessionID, reason string) {
	if header == "" {
		return "", "missing authorization header"
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", "invalid authorization format"
	}
	sessionID, err := s.ValidateToken(token)
	if err != nil {
		return "", "invalid token"
	}
	return sessionID, ""
}

// SessionIDFromContext is empty for requests let through without a token.
func SessionIDFromContext(ctx context.Context) string {
	sessionID, _ := ctx.Value(SessionIDKey).(string)
	return sessionID
}
