// Package core defines the key-value medium abstraction implemented by the
// storage drivers under internal/infra/kv.
package core

import (
	"context"
	"errors"
)

// Driver identifies a concrete medium implementation.
type Driver string

const (
	// DriverMemory keeps entries in process memory (tests, ephemeral runs).
	DriverMemory Driver = "memory"
	// DriverFilesystem stores one file per key under a root directory (default).
	DriverFilesystem Driver = "fs"
	// DriverSQLite stores entries in an embedded sqlite file.
	DriverSQLite Driver = "sqlite"
	// DriverPostgres stores entries in a PostgreSQL table.
	DriverPostgres Driver = "postgres"
	// DriverRedis stores entries in a Redis database.
	DriverRedis Driver = "redis"
	// DriverS3 stores one object per key in an S3 / MinIO bucket.
	DriverS3 Driver = "s3"
)

// Medium is a durable, plaintext key-value namespace. It is shared and
// unscoped: anything else pointed at the same namespace sees the same keys.
type Medium interface {
	// Get returns the value stored under key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Returns (false, nil) if it was absent.
	Delete(ctx context.Context, key string) (bool, error)
	// Keys lists keys with the given prefix in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	// Clear erases every key in the namespace, including keys written by
	// other consumers.
	Clear(ctx context.Context) error
	// Driver returns the backend identifier.
	Driver() Driver
}

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("kv: key not found")

// ErrInvalidKey is returned for keys a driver cannot address.
var ErrInvalidKey = errors.New("kv: invalid key")
