// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

/*
Package kvstore defines the string-keyed document store that holds all
device-local user state (favorites, watch progress, comments, guest identity).

# Contract

Each key holds one serialized document. Writes are whole-document overwrites;
there is no partial-update API and no transactional guarantee across keys.
The store persists across process restarts on one device (except the memory
backend, which exists for tests).

Three backends implement [Store]:

  - Redis (default): the document store of choice for a running install.
  - Postgres: a single kv_documents table for deployments that already run
    PostgreSQL and do not want to configure Redis persistence.
  - Memory: map-backed, volatile, used in tests.

Consumers treat the store as an injected capability, never as ambient state.
*/
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by [Store.Get] when no document exists at the key.
//
// Callers in the persistence layer treat it the same as a corrupt document:
// start from a fresh/empty value.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is the persistent string-keyed document store.
type Store interface {
	// Get returns the document stored at key, or [ErrNotFound].
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites the document at key unconditionally.
	Set(ctx context.Context, key, value string) error

	// Delete removes the document at key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// Keys enumerates every key beginning with prefix. Order is unspecified.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

// IsNotFound reports whether err means "no document at this key".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
