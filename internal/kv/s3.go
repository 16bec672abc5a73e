package kv

import (
	"context"

	infraS3 "erdash/internal/infra/kv/s3"
)

// S3Config re-exports the infra S3 configuration type.
type S3Config = infraS3.Config

// NewS3 constructs an S3-backed Medium from the provided configuration.
func NewS3(ctx context.Context, cfg S3Config) (Medium, error) {
	return infraS3.New(ctx, cfg)
}

// NewMockS3ForTests exposes the lightweight in-memory mock for cross-package tests.
func NewMockS3ForTests() Medium { return infraS3.NewMockForTests() }
