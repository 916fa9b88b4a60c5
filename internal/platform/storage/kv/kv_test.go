package kv_test

import (
	"context"
	"path/filepath"
	"testing"

	"pet-community-client/internal/platform/storage/kv"
)

func testRoundTrip(t *testing.T, store kv.Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "pets"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "pets", `[{"id":"p1"}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := store.Get(ctx, "pets")
	if err != nil || !ok {
		t.Fatalf("Get after Set: ok=%v err=%v", ok, err)
	}
	if v != `[{"id":"p1"}]` {
		t.Fatalf("unexpected value %q", v)
	}

	// Set pisa el valor completo (sin merge)
	if err := store.Set(ctx, "pets", `[]`); err != nil {
		t.Fatalf("Set #2: %v", err)
	}
	v, _, _ = store.Get(ctx, "pets")
	if v != `[]` {
		t.Fatalf("expected overwrite, got %q", v)
	}

	if err := store.Delete(ctx, "pets"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "pets"); ok {
		t.Fatalf("expected key gone after delete")
	}

	// Delete de key inexistente no es error
	if err := store.Delete(ctx, "nope"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	testRoundTrip(t, kv.NewMemory())
}

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := kv.NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	testRoundTrip(t, store)
}

func TestFileStore_KeysWithSlashes(t *testing.T) {
	store, err := kv.NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	ctx := context.Background()

	if err := store.Set(ctx, "auth/token", "tok"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := store.Get(ctx, "auth/token")
	if err != nil || !ok || v != "tok" {
		t.Fatalf("round trip failed: v=%q ok=%v err=%v", v, ok, err)
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store, err := kv.OpenSQLite(filepath.Join(t.TempDir(), "client.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer store.Close()
	testRoundTrip(t, store)
}
