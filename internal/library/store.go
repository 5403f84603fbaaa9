// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package library

import "context"

// # Repository Contracts

// FavoritesRepository persists the whole-set favorites document.
//
// Membership operations are idempotent: adding a present id and removing an
// absent id are both no-ops.
type FavoritesRepository interface {
	// List returns every favorited anime id. Order is not meaningful.
	List(ctx context.Context) ([]string, error)

	// Has reports membership of one id.
	Has(ctx context.Context, animeID string) (bool, error)

	// Add inserts an id, reporting whether the set changed.
	Add(ctx context.Context, animeID string) (bool, error)

	// Remove deletes an id, reporting whether the set changed.
	Remove(ctx context.Context, animeID string) (bool, error)
}

// WatchRepository persists one watch-progress document per anime id.
type WatchRepository interface {
	// Get returns the record for one title, or nil when none exists.
	Get(ctx context.Context, animeID string) (*WatchProgress, error)

	// Set overwrites the record for one title unconditionally.
	Set(ctx context.Context, animeID string, progress WatchProgress) error

	// Delete removes the record for one title. Absent is a no-op.
	Delete(ctx context.Context, animeID string) error

	// All returns every readable record, discovered by key-prefix scan.
	// Unreadable documents are skipped.
	All(ctx context.Context) ([]WatchProgress, error)
}
