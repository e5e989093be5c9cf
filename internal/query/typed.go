package query

import (
	"context"
	"fmt"

	"clamood/console/internal/resources"
)

// Get is Query with a typed fetcher and result.
func Get[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Query(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache entry %s holds %T", key, v)
	}
	return out, nil
}

// Mutation is Mutate with a typed write.
func Mutation[T any](ctx context.Context, c *Cache, op resources.Operation, write func(context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Mutate(ctx, op, func(ctx context.Context) (any, error) {
		return write(ctx)
	})
	if err != nil {
		return zero, err
	}
	out, _ := v.(T)
	return out, nil
}
