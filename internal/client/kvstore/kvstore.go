// Package kvstore provides the durable client-side key/value store backing
// the data-access layer. Each entity family serializes its whole snapshot
// under one namespaced key, so a missing or corrupt value degrades to an
// empty collection rather than an error.
package kvstore

import "context"

// Store is a synchronous key/value store of serialized snapshots.
// Implementations return (nil, nil) from Get when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
