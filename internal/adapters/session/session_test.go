package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pet-community-client/internal/platform/storage/kv"
	"pet-community-client/internal/ports/auth"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestStore_TokenRoundTrip(t *testing.T) {
	s := New(kv.NewMemory(), nil)
	ctx := context.Background()

	if _, ok := s.Token(ctx); ok {
		t.Fatalf("expected no token on empty store")
	}

	if err := s.SaveToken(ctx, "opaque-token"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	tok, ok := s.Token(ctx)
	if !ok || tok != "opaque-token" {
		t.Fatalf("expected stored token, got %q ok=%v", tok, ok)
	}
}

func TestStore_ExpiredJWT_CountsAsNoSession(t *testing.T) {
	s := New(kv.NewMemory(), nil)
	ctx := context.Background()

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if err := s.SaveToken(ctx, signedToken(t, now.Add(-time.Hour))); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	if _, ok := s.Token(ctx); ok {
		t.Fatalf("expected expired jwt to count as no session")
	}

	// Uno vigente sí sale
	if err := s.SaveToken(ctx, signedToken(t, now.Add(time.Hour))); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	if _, ok := s.Token(ctx); !ok {
		t.Fatalf("expected valid jwt to be returned")
	}
}

// failingDeleteStore falla al borrar una key puntual.
type failingDeleteStore struct {
	kv.Store
	failKey string
}

func (f *failingDeleteStore) Delete(ctx context.Context, key string) error {
	if key == f.failKey {
		return errors.New("disk on fire")
	}
	return f.Store.Delete(ctx, key)
}

func TestStore_Clear_TokenDeleteFailureStillWipesIdentity(t *testing.T) {
	mem := kv.NewMemory()
	s := New(&failingDeleteStore{Store: mem, failKey: "auth/token"}, nil)
	ctx := context.Background()

	if err := s.SaveToken(ctx, "tok"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	if err := s.SaveIdentity(ctx, auth.Identity{UserID: "u1"}); err != nil {
		t.Fatalf("SaveIdentity: %v", err)
	}

	if err := s.Clear(ctx); err == nil {
		t.Fatalf("expected error from failed token delete")
	}
	// La identidad no queda colgada por el fallo del primer borrado
	if _, ok := s.Identity(ctx); ok {
		t.Fatalf("expected identity wiped even when token delete fails")
	}
}

func TestStore_Clear_WipesTokenAndIdentity(t *testing.T) {
	s := New(kv.NewMemory(), nil)
	ctx := context.Background()

	if err := s.SaveToken(ctx, "tok"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	if err := s.SaveIdentity(ctx, auth.Identity{UserID: "u1", Email: "a@b.c"}); err != nil {
		t.Fatalf("SaveIdentity: %v", err)
	}

	id, ok := s.Identity(ctx)
	if !ok || id.UserID != "u1" {
		t.Fatalf("expected cached identity, got %+v ok=%v", id, ok)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := s.Token(ctx); ok {
		t.Fatalf("expected token gone after clear")
	}
	if _, ok := s.Identity(ctx); ok {
		t.Fatalf("expected identity gone after clear")
	}
}
