// Package redis implements a kv medium on a Redis database.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"erdash/internal/kv/core"

	"github.com/redis/go-redis/v9"
)

const defaultURL = "redis://localhost:6379/0"

// Store implements core.Medium over a single Redis logical database.
// Clear flushes that whole database.
type Store struct {
	client *redis.Client
}

// New parses url, connects and pings the server.
func New(ctx context.Context, url string) (*Store, error) {
	if url == "" {
		url = defaultURL
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &Store{client: client}, nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client *redis.Client) *Store { return &Store{client: client} }

// Driver returns the medium driver identifier.
func (s *Store) Driver() core.Driver { return core.DriverRedis }

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return b, nil
}

// Set stores value under key without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return core.ErrInvalidKey
	}
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Del(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return n > 0, nil
}

// Keys scans the database for keys with the given prefix.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, escapeGlob(prefix)+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Clear flushes the selected database.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("flushdb: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *Store) Close() error { return s.client.Close() }

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
