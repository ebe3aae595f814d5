package middleware

import (
	"context"
	"net/http"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionCookie names the cookie carrying the admin session token. It is set
// without Max-Age, so it dies with the browser session.
const SessionCookie = "portfolio_session"

// TokenChecker reports whether a session token is active.
type TokenChecker interface {
	IsAuthenticated(token string) bool
}

// SessionAuth guards a route group behind an active admin session.
//
// It reads the session cookie and checks the token against the active session
// set. On success the token is stored in the request context; otherwise the
// request is rejected with 401.
func SessionAuth(sessions TokenChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || !sessions.IsAuthenticated(cookie.Value) {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey, cookie.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionFromContext extracts the session token from the request context.
// Returns an empty string if not found.
func sessionFromContext(ctx context.Context) string {
	val := ctx.Value(sessionKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
