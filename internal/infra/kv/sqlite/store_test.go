package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"erdash/internal/kv/core"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "erdash.db")
	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreCreatesFileAndTable(t *testing.T) {
	s := newStore(t)
	if _, err := os.Stat(s.Path()); err != nil {
		t.Fatalf("expected database file: %v", err)
	}
	var name string
	if err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='kv'`).Scan(&name); err != nil {
		t.Fatalf("expected kv table: %v", err)
	}
	if s.Driver() != core.DriverSQLite {
		t.Fatalf("unexpected driver %q", s.Driver())
	}
}

func TestStoreUpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	if _, err := s.Get(ctx, "er_patients"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Set(ctx, "er_patients", []byte("one")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "er_patients", []byte("two")); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, err := s.Get(ctx, "er_patients")
	if err != nil || string(got) != "two" {
		t.Fatalf("Get: %q %v", got, err)
	}
	if err := s.Set(ctx, "er_empty", nil); err != nil {
		t.Fatalf("Set nil: %v", err)
	}
	if got, err := s.Get(ctx, "er_empty"); err != nil || len(got) != 0 {
		t.Fatalf("Get empty: %q %v", got, err)
	}
	if err := s.Set(ctx, "", []byte("x")); !errors.Is(err, core.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}

	removed, err := s.Delete(ctx, "er_patients")
	if err != nil || !removed {
		t.Fatalf("Delete: %v %v", removed, err)
	}
	removed, err = s.Delete(ctx, "er_patients")
	if err != nil || removed {
		t.Fatalf("second Delete should report nothing removed: %v %v", removed, err)
	}
}

func TestStoreKeysAndClear(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	for _, k := range []string{"er_users", "er_staff", "other"} {
		if err := s.Set(ctx, k, []byte(k)); err != nil {
			t.Fatalf("Set %s: %v", k, err)
		}
	}
	keys, err := s.Keys(ctx, "er_")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "er_staff" || keys[1] != "er_users" {
		t.Fatalf("unexpected keys %v", keys)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	keys, err = s.Keys(ctx, "")
	if err != nil || len(keys) != 0 {
		t.Fatalf("expected no keys after clear, got %v %v", keys, err)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "erdash.db")
	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Set(ctx, "er_session", []byte("payload")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	reopened, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	got, err := reopened.Get(ctx, "er_session")
	if err != nil || string(got) != "payload" {
		t.Fatalf("Get after reopen: %q %v", got, err)
	}
}
