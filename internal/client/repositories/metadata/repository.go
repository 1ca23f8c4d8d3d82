// Package metadata is the durable key/value store of the review console. It
// keeps the bearer token (and the name it was issued to) across restarts.
package metadata

import "context"

type Repository interface {
	// Get returns the value stored under key; found is false when the key is
	// absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for an absent key.
	Delete(ctx context.Context, key string) error
}
