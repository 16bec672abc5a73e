package redis

import (
	"context"
	"errors"
	"os"
	"testing"

	"erdash/internal/kv/core"
)

func TestEscapeGlob(t *testing.T) {
	if got := escapeGlob(`er_*?[x]\`); got != `er_\*\?\[x\]\\` {
		t.Fatalf("unexpected escape %q", got)
	}
}

// TestStoreAgainstServer runs only when ERDASH_TEST_REDIS_URL points at a disposable database.
func TestStoreAgainstServer(t *testing.T) {
	url := os.Getenv("ERDASH_TEST_REDIS_URL")
	if url == "" {
		t.Skip("ERDASH_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	s, err := New(ctx, url)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = s.Close() }()
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := s.Get(ctx, "er_staff"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Set(ctx, "er_staff", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	keys, err := s.Keys(ctx, "er_")
	if err != nil || len(keys) != 1 {
		t.Fatalf("Keys: %v %v", keys, err)
	}
	removed, err := s.Delete(ctx, "er_staff")
	if err != nil || !removed {
		t.Fatalf("Delete: %v %v", removed, err)
	}
}
