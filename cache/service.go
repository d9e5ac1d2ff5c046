package cache

import (
	"errors"
	"fmt"
)

var (
	// ErrMiss is returned by Get when the key is absent or expired.
	ErrMiss = errors.New("cache: miss")
	// ErrInvalidResultType is returned by Get when the stored value is not a T.
	ErrInvalidResultType = errors.New("cache: cached value has unexpected type")
)

// KeySerializer builds a cache key from an operation namespace + arbitrary args.
// It is responsible for producing stable keys across calls.
type KeySerializer interface {
	SerializeKey(namespace string, args ...any) string
}

// MemoryCache is the volatile first tier that sits in front of the persistent store.
// Implementations bound the number of entries and treat entries older than the
// configured TTL as absent.
type MemoryCache interface {
	// Get returns the value for key if present and fresh. An expired entry is
	// removed as a side effect.
	Get(key string) (any, bool)
	// Set stores value under key with the current time, evicting the
	// least-recently-inserted entry when the cache is full.
	Set(key string, value any)
	// Has reports whether Get would return a value.
	Has(key string) bool
	Delete(key string)
	Clear()
	Len() int
}

// Get is a type-safe wrapper around MemoryCache.Get.
func Get[T any](c MemoryCache, key string) (T, error) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, ErrMiss
	}
	if v == nil {
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T", ErrInvalidResultType, key, v)
	}
	return typed, nil
}
