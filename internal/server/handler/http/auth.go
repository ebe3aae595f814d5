// Package http provides the HTTP handlers and router for the portfolio API.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rizkylsmp/portfolio-server/internal/middleware"
	"github.com/rizkylsmp/portfolio-server/internal/service"
)

// AuthGate defines the authentication operations required by AuthHandler.
type AuthGate interface {
	IsSetupComplete(ctx context.Context) (bool, error)
	SetupCredentials(ctx context.Context, password, pin string) error
	LockoutStatus(ctx context.Context) (service.LockoutStatus, error)
	Login(ctx context.Context, password, pin string) (service.LoginResult, error)
	IsAuthenticated(token string) bool
	Logout(token string)
	ChangePassword(ctx context.Context, current, next string) (bool, error)
	ChangePin(ctx context.Context, current, next string) (bool, error)
	ResetAuth(ctx context.Context) error
}

// AuthHandler handles HTTP requests for the admin authentication gate.
type AuthHandler struct {
	// Auth performs the underlying authentication operations.
	Auth AuthGate
	// Validate checks request payload formats. Format rules live here, at the
	// boundary; the service never validates.
	Validate *validator.Validate
}

// SetupRequest is the JSON payload for first-time credential setup.
// Both secrets must be confirmed by re-entry.
type SetupRequest struct {
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Pin             string `json:"pin" validate:"required,len=6,numeric"`
	ConfirmPin      string `json:"confirmPin" validate:"required,eqfield=Pin"`
}

// LoginRequest is the JSON payload for a login attempt.
type LoginRequest struct {
	Password string `json:"password"`
	Pin      string `json:"pin"`
}

// ChangePasswordRequest is the JSON payload for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// ChangePinRequest is the JSON payload for a PIN change.
type ChangePinRequest struct {
	CurrentPin string `json:"currentPin" validate:"required"`
	NewPin     string `json:"newPin" validate:"required,len=6,numeric"`
}

// Setup handles first-time credential setup. It rejects the request when
// setup was already completed; credentials can only be replaced through the
// change endpoints or a full reset.
func (h *AuthHandler) Setup(w http.ResponseWriter, r *http.Request) {
	done, err := h.Auth.IsSetupComplete(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if done {
		http.Error(w, "setup already completed", http.StatusConflict)
		return
	}

	var req SetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, "invalid credentials format", http.StatusBadRequest)
		return
	}

	if err := h.Auth.SetupCredentials(r.Context(), req.Password, req.Pin); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

// Login verifies both factors and starts a session. The error message never
// reveals which factor failed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	res, err := h.Auth.Login(r.Context(), req.Password, req.Pin)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	switch res.Reason {
	case service.LoginOK:
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    res.Token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})

	case service.LoginLockedOut:
		mins := int((res.Remaining + time.Minute - 1) / time.Minute)
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error":       fmt.Sprintf("Terlalu banyak percobaan. Coba lagi dalam %d menit.", mins),
			"remainingMs": res.Remaining.Milliseconds(),
		})

	case service.LoginLocked:
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error": "Terlalu banyak percobaan gagal. Akun terkunci selama 5 menit.",
		})

	default:
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"error":        "Password atau PIN salah.",
			"attemptsLeft": res.AttemptsLeft,
		})
	}
}

// Status reports the gate's public state: whether setup is done, whether the
// caller holds an active session, and the current lockout state.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	done, err := h.Auth.IsSetupComplete(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	lockout, err := h.Auth.LockoutStatus(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	authenticated := false
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		authenticated = h.Auth.IsAuthenticated(cookie.Value)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"setupComplete": done,
		"authenticated": authenticated,
		"locked":        lockout.Locked,
		"remainingMs":   lockout.Remaining.Milliseconds(),
	})
}

// Logout ends the caller's session and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		h.Auth.Logout(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword re-verifies the current password and replaces it.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, "invalid credentials format", http.StatusBadRequest)
		return
	}

	ok, err := h.Auth.ChangePassword(r.Context(), req.CurrentPassword, req.NewPassword)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Password saat ini salah."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ChangePin re-verifies the current PIN and replaces it.
func (h *AuthHandler) ChangePin(w http.ResponseWriter, r *http.Request) {
	var req ChangePinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, "invalid credentials format", http.StatusBadRequest)
		return
	}

	ok, err := h.Auth.ChangePin(r.Context(), req.CurrentPin, req.NewPin)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "PIN saat ini salah."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Reset wipes credentials, lockout state, and all sessions, returning the
// gate to "setup required".
func (h *AuthHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.ResetAuth(r.Context()); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
