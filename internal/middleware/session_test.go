package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessions struct {
	valid string
}

func (s stubSessions) IsAuthenticated(token string) bool {
	return token != "" && token == s.valid
}

func TestSessionAuth(t *testing.T) {
	tests := []struct {
		name       string
		cookie     *http.Cookie
		wantStatus int
		wantToken  string
	}{
		{
			name:       "no cookie",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown token",
			cookie:     &http.Cookie{Name: SessionCookie, Value: "stale"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong cookie name",
			cookie:     &http.Cookie{Name: "other_cookie", Value: "tok-1"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "active session",
			cookie:     &http.Cookie{Name: SessionCookie, Value: "tok-1"},
			wantStatus: http.StatusOK,
			wantToken:  "tok-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotToken string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotToken = sessionFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/admin/export", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()

			SessionAuth(stubSessions{valid: "tok-1"})(next).ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantToken, gotToken)
		})
	}
}

func TestSessionFromContextEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, sessionFromContext(req.Context()))
}
