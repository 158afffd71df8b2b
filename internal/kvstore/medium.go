// Package kvstore implements durable, namespaced, JSON-serializing key-value
// persistence with optional at-rest encryption, plus the one-shot format
// repair used to normalize payloads written by earlier releases.
package kvstore

import (
	"context"
	"errors"
)

var (
	// ErrRead marks failures of the underlying medium on the read path.
	ErrRead = errors.New("storage read")

	// ErrWrite marks failures of the underlying medium on the write path.
	// Write failures are always propagated to the caller; silent write loss
	// is a correctness issue.
	ErrWrite = errors.New("storage write")
)

// Medium is the raw persistent key-value medium underneath the store.
// Implementations hold plain text values and know nothing about namespacing,
// serialization, or encryption.
type Medium interface {
	// Read returns the value for key and whether the key exists.
	Read(ctx context.Context, key string) (string, bool, error)

	// Write stores value under key, overwriting any previous value.
	Write(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns every key present in the medium, in no particular order.
	Keys(ctx context.Context) ([]string, error)
}
