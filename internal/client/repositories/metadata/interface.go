// Package metadata is a small key/value store in the local session
// database. The console keeps its login session here so a restart does not
// force a new login while the token is still valid.
package metadata

import "context"

type Repository interface {
	// Get returns nil, nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
