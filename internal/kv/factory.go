package kv

import (
	"context"
	"fmt"
	"io"
)

// Config selects and parameterises a medium driver.
type Config struct {
	Driver      Driver
	FSRoot      string
	SQLitePath  string
	PostgresDSN string
	RedisURL    string
	S3          S3Config
}

// Open selects a Medium implementation from cfg. An empty driver means fs.
func Open(ctx context.Context, cfg Config) (Medium, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverFilesystem
	}
	switch driver {
	case DriverFilesystem:
		return NewFilesystem(cfg.FSRoot)
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		return NewSQLite(cfg.SQLitePath)
	case DriverPostgres:
		return NewPostgres(ctx, cfg.PostgresDSN)
	case DriverRedis:
		return NewRedis(ctx, cfg.RedisURL)
	case DriverS3:
		return NewS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown kv driver %s", driver)
	}
}

// Close releases driver resources for media that hold connections.
func Close(m Medium) error {
	if c, ok := m.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
