package kv

import (
	"context"

	pgstore "erdash/internal/infra/kv/postgres"
	sqlitestore "erdash/internal/infra/kv/sqlite"
)

// NewSQLite opens (or creates) a sqlite-backed Medium at path.
func NewSQLite(path string) (Medium, error) {
	return sqlitestore.New(path)
}

// NewPostgres connects to PostgreSQL and ensures the kv table exists.
func NewPostgres(ctx context.Context, dsn string) (Medium, error) {
	return pgstore.New(ctx, dsn)
}
