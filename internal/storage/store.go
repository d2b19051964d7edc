// Package storage provides the string key-value stores that hold ledger
// snapshots: an in-memory map, a SQL table through GORM, and redis.
package storage

import (
	"context"
	"errors"
)

// Store is a string-valued key-value store.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// SetMany writes all entries atomically: either every key is updated or none is.
	SetMany(ctx context.Context, entries map[string]string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("storage: store is closed")
