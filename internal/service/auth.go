// Package service implements the authentication gate and the content store
// behind the HTTP handlers, delegating persistence to repository interfaces.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Credential record keys, one row each in the credential store.
const (
	keyPasswordHash = "password_hash"
	keyPinHash      = "pin_hash"
	keySetupDone    = "setup_done"
	keyFailCount    = "fail_count"
	keyLockoutUntil = "lockout_until"
)

const (
	// MaxAttempts is the number of failed logins allowed before lockout.
	MaxAttempts = 5
	// LockoutDuration is how long logins stay blocked after too many failures.
	LockoutDuration = 5 * time.Minute
)

// Login outcome reasons.
const (
	// LoginOK means both factors matched and a session was created.
	LoginOK = "ok"
	// LoginBadCredentials means at least one factor did not match. Which one
	// is never reported.
	LoginBadCredentials = "bad_credentials"
	// LoginLocked means this attempt was the one that triggered the lockout.
	LoginLocked = "locked"
	// LoginLockedOut means the gate was already locked; the attempt was not
	// counted.
	LoginLockedOut = "locked_out"
)

// CredentialStore defines the persistence operations required by AuthService.
// The record survives restarts; sessions do not.
type CredentialStore interface {
	// Get returns the value stored under key, or "" if absent.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes the given keys; absent keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// LockoutStatus reports whether logins are currently blocked and for how long.
type LockoutStatus struct {
	Locked    bool
	Remaining time.Duration
}

// LoginResult is the outcome of a login attempt. Expected failures are values
// here, never errors: only storage problems surface as errors.
type LoginResult struct {
	Success bool
	Reason  string
	// Token is the minted session token, set only on success.
	Token string
	// AttemptsLeft is set when Reason is LoginBadCredentials.
	AttemptsLeft int
	// Remaining is set when Reason is LoginLockedOut.
	Remaining time.Duration
}

// AuthService gates the admin surface behind a password and a six-digit PIN.
// Secrets are stored as unsalted SHA-256 hex digests; with a single local
// credential holder and no transmission that trade-off is intentional.
// Format rules (password length, PIN digits) are the caller's contract and are
// enforced at the HTTP boundary, never here.
type AuthService struct {
	store CredentialStore
	now   func() time.Time

	// loginMu serializes the lockout check, hash comparison, and attempt
	// accounting: concurrent attempts must not outrun the failure counter.
	loginMu sync.Mutex

	mu       sync.Mutex
	sessions map[string]struct{}
}

// NewAuthService constructs an AuthService over the given credential store.
func NewAuthService(store CredentialStore) *AuthService {
	return &AuthService{
		store:    store,
		now:      time.Now,
		sessions: make(map[string]struct{}),
	}
}

func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// IsSetupComplete reports whether first-time credential setup has been done.
func (s *AuthService) IsSetupComplete(ctx context.Context) (bool, error) {
	done, err := s.store.Get(ctx, keySetupDone)
	if err != nil {
		return false, err
	}
	return done == "true", nil
}

// SetupCredentials hashes and stores both secrets and marks setup complete.
// It never fails on input: malformed values must be rejected before this call.
func (s *AuthService) SetupCredentials(ctx context.Context, password, pin string) error {
	if err := s.store.Set(ctx, keyPasswordHash, hashSecret(password)); err != nil {
		return err
	}
	if err := s.store.Set(ctx, keyPinHash, hashSecret(pin)); err != nil {
		return err
	}
	return s.store.Set(ctx, keySetupDone, "true")
}

// LockoutStatus reports the current lockout state. An expired lockout is
// cleared here as a side effect, together with the failure counter; expiry is
// only ever observed lazily, never scheduled.
func (s *AuthService) LockoutStatus(ctx context.Context) (LockoutStatus, error) {
	raw, err := s.store.Get(ctx, keyLockoutUntil)
	if err != nil {
		return LockoutStatus{}, err
	}
	if raw == "" {
		return LockoutStatus{}, nil
	}

	until, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Unreadable timestamp: drop the lockout rather than brick the gate.
		if err := s.store.Delete(ctx, keyLockoutUntil, keyFailCount); err != nil {
			return LockoutStatus{}, err
		}
		return LockoutStatus{}, nil
	}

	remaining := time.UnixMilli(until).Sub(s.now())
	if remaining <= 0 {
		if err := s.store.Delete(ctx, keyLockoutUntil, keyFailCount); err != nil {
			return LockoutStatus{}, err
		}
		return LockoutStatus{}, nil
	}

	return LockoutStatus{Locked: true, Remaining: remaining}, nil
}

// Login verifies both factors and mints a session token on success. While
// locked, attempts fail immediately and are not counted. Every mismatch
// increments the persisted failure counter; the counter reaching MaxAttempts
// starts the lockout. The whole attempt holds loginMu: once the counter hits
// the limit, requests already past the gate would otherwise keep verifying.
func (s *AuthService) Login(ctx context.Context, password, pin string) (LoginResult, error) {
	s.loginMu.Lock()
	defer s.loginMu.Unlock()

	lockout, err := s.LockoutStatus(ctx)
	if err != nil {
		return LoginResult{}, err
	}
	if lockout.Locked {
		return LoginResult{Reason: LoginLockedOut, Remaining: lockout.Remaining}, nil
	}

	pwHash, err := s.store.Get(ctx, keyPasswordHash)
	if err != nil {
		return LoginResult{}, err
	}
	pinHash, err := s.store.Get(ctx, keyPinHash)
	if err != nil {
		return LoginResult{}, err
	}

	// Both factors must match; a missing hash can never match.
	pwOK := pwHash != "" && hashSecret(password) == pwHash
	pinOK := pinHash != "" && hashSecret(pin) == pinHash
	if !pwOK || !pinOK {
		return s.recordFailedAttempt(ctx)
	}

	if err := s.store.Delete(ctx, keyFailCount, keyLockoutUntil); err != nil {
		return LoginResult{}, err
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = struct{}{}
	s.mu.Unlock()

	return LoginResult{Success: true, Reason: LoginOK, Token: token}, nil
}

func (s *AuthService) recordFailedAttempt(ctx context.Context) (LoginResult, error) {
	raw, err := s.store.Get(ctx, keyFailCount)
	if err != nil {
		return LoginResult{}, err
	}
	count, _ := strconv.Atoi(raw)
	count++

	if err := s.store.Set(ctx, keyFailCount, strconv.Itoa(count)); err != nil {
		return LoginResult{}, err
	}

	if count >= MaxAttempts {
		until := s.now().Add(LockoutDuration).UnixMilli()
		if err := s.store.Set(ctx, keyLockoutUntil, strconv.FormatInt(until, 10)); err != nil {
			return LoginResult{}, err
		}
		return LoginResult{Reason: LoginLocked}, nil
	}

	return LoginResult{Reason: LoginBadCredentials, AttemptsLeft: MaxAttempts - count}, nil
}

// IsAuthenticated reports whether token belongs to an active session.
func (s *AuthService) IsAuthenticated(token string) bool {
	if token == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[token]
	return ok
}

// Logout ends the session identified by token. Credentials and lockout state
// are untouched.
func (s *AuthService) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// ChangePassword re-verifies the current password and replaces its hash.
// Returns false, changing nothing, when the current password is wrong.
func (s *AuthService) ChangePassword(ctx context.Context, current, next string) (bool, error) {
	return s.changeSecret(ctx, keyPasswordHash, current, next)
}

// ChangePin re-verifies the current PIN and replaces its hash.
// Returns false, changing nothing, when the current PIN is wrong.
func (s *AuthService) ChangePin(ctx context.Context, current, next string) (bool, error) {
	return s.changeSecret(ctx, keyPinHash, current, next)
}

func (s *AuthService) changeSecret(ctx context.Context, key, current, next string) (bool, error) {
	stored, err := s.store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if stored == "" || hashSecret(current) != stored {
		return false, nil
	}
	if err := s.store.Set(ctx, key, hashSecret(next)); err != nil {
		return false, err
	}
	return true, nil
}

// ResetAuth clears the whole credential record, the lockout state, and every
// active session, returning the gate to "setup required".
func (s *AuthService) ResetAuth(ctx context.Context) error {
	if err := s.store.Delete(ctx,
		keyPasswordHash, keyPinHash, keySetupDone, keyFailCount, keyLockoutUntil,
	); err != nil {
		return err
	}
	s.mu.Lock()
	s.sessions = make(map[string]struct{})
	s.mu.Unlock()
	return nil
}
