// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// ByteStore is the key/value byte store underneath the persistent store:
// a flat keyspace of opaque values.
type ByteStore interface {
	// Get returns the value stored at key, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value at key, overwriting any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns every key with the given prefix, sorted ascending.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close releases the underlying store.
	Close() error
}
