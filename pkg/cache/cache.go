package cache

import (
	"context"
	"errors"
)

// based on github.com/kittpat1413/go-common/framework/cache/cache.go

var ErrCacheMiss = errors.New("cache miss")

// Cache stores computed values under stable keys. Implementations must
// make Put atomic per key so concurrent writers of the same key never
// leave a torn entry behind.
type Cache[K comparable, V any] interface {
	Get(ctx context.Context, key K) (*V, error)
	Put(ctx context.Context, key K, value *V) error
	Invalidate(ctx context.Context, key K) error
}
