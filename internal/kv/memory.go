package kv

import (
	memorystore "erdash/internal/infra/kv/memory"
)

// NewMemory returns an in-memory Medium suitable for tests.
func NewMemory() Medium { return memorystore.New() }
