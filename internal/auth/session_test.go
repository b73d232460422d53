package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"expenso/internal/core"
	"expenso/internal/storage"
)

func newTestSession(t *testing.T) (*Session, *storage.MemoryKV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	s := NewSession(kv, 0)
	if err := s.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	return s, kv
}

func TestStateBeforeRestore(t *testing.T) {
	s := NewSession(storage.NewMemoryKV(), 0)
	if _, err := s.State(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if _, err := s.Login(context.Background(), "a@b.com", "pw"); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("login before restore: %v", err)
	}
	if err := s.Logout(context.Background()); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("logout before restore: %v", err)
	}
}

func TestRestoreEmptyStore(t *testing.T) {
	s, _ := newTestSession(t)
	state, err := s.State()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.IsAuthenticated || state.User != nil || state.Token != "" {
		t.Fatalf("expected unauthenticated state, got %+v", state)
	}
}

func TestRestorePersistedSession(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	kv.Set(ctx, storage.KeyToken, MockToken)
	kv.Set(ctx, storage.KeyUser, `{"id":"1","email":"a@b.com","name":"a"}`)

	s := NewSession(kv, 0)
	if err := s.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	state, _ := s.State()
	if !state.IsAuthenticated || state.Token != MockToken {
		t.Fatalf("state=%+v", state)
	}
	if state.User == nil || state.User.Email != "a@b.com" {
		t.Fatalf("user=%+v", state.User)
	}
}

func TestRestoreTokenWithoutUser(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	kv.Set(ctx, storage.KeyToken, MockToken)

	s := NewSession(kv, 0)
	if err := s.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if state, _ := s.State(); state.IsAuthenticated {
		t.Fatal("authenticated without persisted user")
	}
}

func TestRestoreCorruptUser(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	kv.Set(ctx, storage.KeyToken, MockToken)
	kv.Set(ctx, storage.KeyUser, "{not json")

	s := NewSession(kv, 0)
	if err := s.Restore(ctx); err != nil {
		t.Fatalf("restore should discard, not fail: %v", err)
	}
	if state, _ := s.State(); state.IsAuthenticated {
		t.Fatal("authenticated with unreadable user")
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestSession(t)

	state, err := s.Login(ctx, "a@b.com", "anything")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !state.IsAuthenticated || state.Token != MockToken {
		t.Fatalf("state=%+v", state)
	}
	if state.User == nil || state.User.ID != "1" || state.User.Name != "a" || state.User.Email != "a@b.com" {
		t.Fatalf("user=%+v", state.User)
	}

	// Both keys persisted.
	if token, ok, _ := kv.Get(ctx, storage.KeyToken); !ok || token != MockToken {
		t.Fatalf("persisted token=%q ok=%v", token, ok)
	}
	rawUser, ok, _ := kv.Get(ctx, storage.KeyUser)
	if !ok {
		t.Fatal("user not persisted")
	}
	var user core.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		t.Fatalf("persisted user unreadable: %v", err)
	}
	if user.Name != "a" {
		t.Fatalf("persisted user=%+v", user)
	}
}

func TestSignupUsesSuppliedName(t *testing.T) {
	s, _ := newTestSession(t)
	state, err := s.Signup(context.Background(), "Ada", "ada@b.com", "pw")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if state.User == nil || state.User.Name != "Ada" {
		t.Fatalf("user=%+v", state.User)
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestSession(t)
	if _, err := s.Login(ctx, "a@b.com", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	state, _ := s.State()
	if state.IsAuthenticated || state.User != nil || state.Token != "" {
		t.Fatalf("state after logout=%+v", state)
	}
	if _, ok, _ := kv.Get(ctx, storage.KeyToken); ok {
		t.Fatal("token key still present")
	}
	if _, ok, _ := kv.Get(ctx, storage.KeyUser); ok {
		t.Fatal("user key still present")
	}
}

func TestLoginCanceledContext(t *testing.T) {
	kv := storage.NewMemoryKV()
	s := NewSession(kv, time.Second)
	if err := s.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Login(ctx, "a@b.com", "pw"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, ok, _ := kv.Get(context.Background(), storage.KeyToken); ok {
		t.Fatal("canceled login persisted a token")
	}
}
