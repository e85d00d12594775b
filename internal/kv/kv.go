// Package kv defines the key-value store contract the portfolio services
// are built on, plus memory, redis and postgres implementations.
//
// Values are raw JSON documents. No transactional guarantee spans multiple
// keys: every index-list update and record write is two independent calls.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key was never set or was deleted.
var ErrNotFound = errors.New("kv: key not found")

type Store interface {
	// Get returns the stored value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set upserts value under key, replacing any prior value whole.
	Set(ctx context.Context, key string, value []byte) error

	// Del removes a key. Deleting an absent key is a no-op.
	Del(ctx context.Context, key string) error

	// MGet resolves a batch of keys, order-preserving, one slot per input
	// key. Absent keys yield a nil slot rather than an error.
	MGet(ctx context.Context, keys ...string) ([][]byte, error)
}

// Incrementer is an optional atomic-counter upgrade over plain Get/Set.
// Callers type-assert and fall back to read-modify-write when the store
// does not implement it. The stored representation stays a JSON integer,
// so counters remain readable through Get either way.
type Incrementer interface {
	IncrBy(ctx context.Context, key string, delta int64) (int64, error)
}
