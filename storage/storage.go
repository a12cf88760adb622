// Package storage provides the blob storage abstraction for the corpus.
package storage

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the backend cannot be reached or refuses
// the operation (transport or auth failure).
var ErrUnavailable = errors.New("storage backend unavailable")

// ErrNotFound is returned when no blob exists under the requested key.
var ErrNotFound = errors.New("key not found")

// Backend stores and retrieves binary blobs under hierarchical
// slash-separated keys. Implementations must be safe for concurrent use
// across distinct keys; concurrent writers to the same key race
// last-write-wins.
type Backend interface {
	// Put writes data under key and returns a backend-specific locator.
	// The locator is opaque to callers and persisted verbatim on the
	// owning record. The write is atomic: either the whole blob becomes
	// visible or none of it does.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Get returns the blob stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// List returns all keys that begin with prefix. Order is
	// backend-specific; callers must not depend on it.
	List(ctx context.Context, prefix string) ([]string, error)
}
