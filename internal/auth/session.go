// Package auth owns the mock authenticated-session lifecycle. There is no
// real credential verification behind it: login and signup always succeed
// after a simulated round-trip and the token is a fixed placeholder. That
// is the product's contract, not an oversight.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"expenso/internal/core"
	"expenso/internal/storage"
)

// MockToken is the placeholder session token issued on every login.
const MockToken = "mock-jwt-token"

// mockUserID is the fixed id of the synthesized user.
const mockUserID = "1"

// ErrNotInitialized is returned when session state is accessed before
// Restore has run. That is a wiring mistake in the caller, not a runtime
// condition to recover from.
var ErrNotInitialized = errors.New("auth: session accessed before Restore")

// Session holds the process-lifetime auth state, persisted under the
// expense_token and expense_user keys. Create one instance at startup and
// thread it through explicitly.
type Session struct {
	mu       sync.Mutex
	kv       storage.KV
	delay    time.Duration
	restored bool
	state    core.AuthState
}

// NewSession creates a session over kv. delay is the simulated network
// round-trip applied to Login and Signup; tests pass zero.
func NewSession(kv storage.KV, delay time.Duration) *Session {
	return &Session{kv: kv, delay: delay}
}

// Restore initializes the session from persisted state. The session is
// authenticated only when both token and user are present.
func (s *Session) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, hasToken, err := s.kv.Get(ctx, storage.KeyToken)
	if err != nil {
		return fmt.Errorf("restore session token: %w", err)
	}
	rawUser, hasUser, err := s.kv.Get(ctx, storage.KeyUser)
	if err != nil {
		return fmt.Errorf("restore session user: %w", err)
	}

	s.restored = true
	s.state = core.AuthState{}
	if !hasToken || !hasUser {
		return nil
	}

	var user core.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		slog.WarnContext(ctx, "Discarding unreadable persisted session user", "error", err)
		return nil
	}
	s.state = core.AuthState{User: &user, Token: token, IsAuthenticated: true}
	return nil
}

// State returns the current session snapshot.
func (s *Session) State() (core.AuthState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.restored {
		return core.AuthState{}, ErrNotInitialized
	}
	return s.state, nil
}

// Login authenticates with an email and password. The password is accepted
// but never checked. The user's name defaults to the local part of the
// email (text before the "@").
func (s *Session) Login(ctx context.Context, email, password string) (core.AuthState, error) {
	name, _, _ := strings.Cut(email, "@")
	return s.establish(ctx, name, email)
}

// Signup has the same contract as Login but uses the supplied name.
func (s *Session) Signup(ctx context.Context, name, email, password string) (core.AuthState, error) {
	return s.establish(ctx, name, email)
}

func (s *Session) establish(ctx context.Context, name, email string) (core.AuthState, error) {
	s.mu.Lock()
	if !s.restored {
		s.mu.Unlock()
		return core.AuthState{}, ErrNotInitialized
	}
	s.mu.Unlock()

	if err := s.simulateRoundTrip(ctx); err != nil {
		return core.AuthState{}, err
	}

	user := core.User{ID: mockUserID, Email: email, Name: name}
	rawUser, err := json.Marshal(user)
	if err != nil {
		return core.AuthState{}, fmt.Errorf("encode session user: %w", err)
	}
	if err := s.kv.Set(ctx, storage.KeyToken, MockToken); err != nil {
		return core.AuthState{}, fmt.Errorf("persist session token: %w", err)
	}
	if err := s.kv.Set(ctx, storage.KeyUser, string(rawUser)); err != nil {
		return core.AuthState{}, fmt.Errorf("persist session user: %w", err)
	}

	s.mu.Lock()
	s.state = core.AuthState{User: &user, Token: MockToken, IsAuthenticated: true}
	state := s.state
	s.mu.Unlock()

	slog.InfoContext(ctx, "Session established", "email", email)
	return state, nil
}

// Logout clears the persisted token and user and resets the session to
// unauthenticated.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	if !s.restored {
		s.mu.Unlock()
		return ErrNotInitialized
	}
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, storage.KeyToken); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	if err := s.kv.Delete(ctx, storage.KeyUser); err != nil {
		return fmt.Errorf("clear session user: %w", err)
	}

	s.mu.Lock()
	s.state = core.AuthState{}
	s.mu.Unlock()

	slog.InfoContext(ctx, "Session cleared")
	return nil
}

// simulateRoundTrip models the fake backend call behind login/signup.
func (s *Session) simulateRoundTrip(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
