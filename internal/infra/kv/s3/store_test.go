package s3

import (
	"context"
	"errors"
	"testing"

	"erdash/internal/kv/core"
)

func TestMockRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMockForTests()
	if s.Driver() != core.DriverS3 {
		t.Fatalf("unexpected driver %s", s.Driver())
	}
	if _, err := s.Get(ctx, "er_departments"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Set(ctx, "er_departments", []byte("a")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Set(ctx, "er_departments", []byte("b")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := s.Get(ctx, "er_departments")
	if err != nil || string(got) != "b" {
		t.Fatalf("get: %q %v", got, err)
	}
	removed, err := s.Delete(ctx, "er_departments")
	if err != nil || !removed {
		t.Fatalf("delete: %v %v", removed, err)
	}
	removed, err = s.Delete(ctx, "er_departments")
	if err != nil || removed {
		t.Fatalf("delete missing: %v %v", removed, err)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected bucket error")
	}
}

func TestDecodeChunkedLite(t *testing.T) {
	body, ok := decodeChunkedLite([]byte("3\r\nabc\r\n0\r\n"))
	if !ok || string(body) != "abc" {
		t.Fatalf("decode: %q %v", body, ok)
	}
	if _, ok := decodeChunkedLite([]byte("plain")); ok {
		t.Fatalf("plain payload should not decode")
	}
	if _, err := parseHex("zz"); err == nil {
		t.Fatalf("expected hex error")
	}
}
