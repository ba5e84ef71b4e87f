package store

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/blob_store_mock.go -package=mock

// BlobStore persists opaque encrypted blobs under a string identity.
//
// Implementations are safe for concurrent use. They never inspect blob
// contents and never see passwords.
type BlobStore interface {
	// Read returns the blob stored under identity, or ErrNotFound.
	Read(ctx context.Context, identity string) ([]byte, error)
	// Write stores data under identity, replacing any previous blob.
	Write(ctx context.Context, identity string, data []byte) error
	// Delete removes the blob. Deleting a missing identity is not an error.
	Delete(ctx context.Context, identity string) error
	// Key returns the canonical form of identity, used to key caches,
	// or ErrInvalidIdentity.
	Key(identity string) (string, error)
	// Close releases connections and handles held by the store.
	Close() error
}
