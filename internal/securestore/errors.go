package securestore

import (
	"errors"
	"fmt"
)

// Kind classifies a StorageError.
type Kind int

const (
	// KindNotFound means nothing is stored under the key.
	KindNotFound Kind = iota + 1
	// KindCorrupt means the stored value could not be decrypted or parsed. The
	// entry has been deleted by the time the error is returned.
	KindCorrupt
	// KindMedium means the underlying medium failed.
	KindMedium
	// KindEncode means the value could not be serialized or encrypted.
	KindEncode
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindCorrupt:
		return "corrupt"
	case KindMedium:
		return "medium"
	case KindEncode:
		return "encode"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// StorageError reports a failed store operation on a single key.
type StorageError struct {
	Kind Kind
	Key  string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("securestore: %s: %s", e.Key, e.Kind)
	}
	return fmt.Sprintf("securestore: %s: %s: %v", e.Key, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or 0 when err is not a StorageError.
func KindOf(err error) Kind {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

// IsNotFound reports whether err is a KindNotFound StorageError.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsCorrupt reports whether err is a KindCorrupt StorageError.
func IsCorrupt(err error) bool { return KindOf(err) == KindCorrupt }
