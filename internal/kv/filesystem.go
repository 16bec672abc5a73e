package kv

import (
	fsstore "erdash/internal/infra/kv/fs"
)

// NewFilesystem returns a filesystem-backed Medium rooted at root (default ./erdata).
func NewFilesystem(root string) (Medium, error) {
	return fsstore.New(root)
}
