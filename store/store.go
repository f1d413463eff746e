// Package store is the durable key-value layer beneath the application
// state: string keys mapped to JSON-serializable values. Collections are
// written whole on every mutation and read back once at startup.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means the key has never been written. Callers substitute
	// the documented default for that key.
	ErrNotFound = errors.New("store: key not found")
	// ErrCorrupted means a value exists but did not parse. Recovery is per
	// key: the caller falls back to the default and other keys are unaffected.
	ErrCorrupted = errors.New("store: value corrupted")
)

// Store durably holds string key → JSON value mappings.
type Store interface {
	// Get unmarshals the value at key into into.
	Get(ctx context.Context, key string, into any) error
	// Put marshals value and writes it at key, replacing any prior value.
	Put(ctx context.Context, key string, value any) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Namespaced returns a Store whose keys are transparently prefixed. Callers
// that hold a namespaced store cannot reach keys outside their prefix, so
// per-patient isolation is structural rather than a naming convention.
func Namespaced(s Store, prefix string) Store {
	return &nsStore{inner: s, prefix: prefix}
}

type nsStore struct {
	inner  Store
	prefix string
}

func (n *nsStore) Get(ctx context.Context, key string, into any) error {
	return n.inner.Get(ctx, n.prefix+key, into)
}

func (n *nsStore) Put(ctx context.Context, key string, value any) error {
	return n.inner.Put(ctx, n.prefix+key, value)
}

func (n *nsStore) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}
