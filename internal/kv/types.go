// Package kv re-exports the medium abstraction and wraps the infra drivers
// so the rest of the tree never imports internal/infra/kv directly.
package kv

import (
	"erdash/internal/kv/core"
)

type (
	// Driver identifies a medium backend driver.
	Driver = core.Driver
	// Medium is the interface for plaintext key-value backends.
	Medium = core.Medium
)

const (
	// DriverMemory is the in-memory test driver.
	DriverMemory = core.DriverMemory
	// DriverFilesystem is the local filesystem driver.
	DriverFilesystem = core.DriverFilesystem
	// DriverSQLite is the embedded sqlite driver.
	DriverSQLite = core.DriverSQLite
	// DriverPostgres is the PostgreSQL driver.
	DriverPostgres = core.DriverPostgres
	// DriverRedis is the Redis driver.
	DriverRedis = core.DriverRedis
	// DriverS3 is the S3-compatible driver.
	DriverS3 = core.DriverS3
)

var (
	// ErrNotFound indicates the key is absent.
	ErrNotFound = core.ErrNotFound
	// ErrInvalidKey indicates the driver cannot address the key.
	ErrInvalidKey = core.ErrInvalidKey
)

// Drivers lists every supported driver.
func Drivers() []Driver {
	return []Driver{DriverMemory, DriverFilesystem, DriverSQLite, DriverPostgres, DriverRedis, DriverS3}
}
