package query

import (
	"context"

	"github.com/miy4x/shigezane-admin/internal/client/models"
)

// Mutate runs a backend write. It is never retried. On success every kind
// in kinds is invalidated; on failure the cache is left untouched.
func Mutate[T any](ctx context.Context, c *Cache, kinds []models.Kind, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := fn(ctx)
	if err != nil {
		return v, err
	}
	for _, k := range kinds {
		c.InvalidateKind(k)
	}
	return v, nil
}

// MutateErr is Mutate for writes with no result, e.g. deletes.
func MutateErr(ctx context.Context, c *Cache, kinds []models.Kind, fn func(ctx context.Context) error) error {
	_, err := Mutate(ctx, c, kinds, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
