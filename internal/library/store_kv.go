// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

/*
Package library (KV) implements the storage layer for favorites and watch
progress.

# Document Mapping
  - favorites: one JSON array of anime ids, the whole set in one document.
  - watch-<animeID>: one JSON watch-progress record per title.

Every mutation is a whole-document overwrite. Set-level mutations are
serialized by a process-local mutex because the store has no compare-and-set.
A document that fails to parse is treated as absent.
*/
package library

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/dublix/dublix/internal/platform/constants"
	"github.com/dublix/dublix/internal/platform/kvstore"
	"github.com/dublix/dublix/pkg/slice"
)

// # Repository Implementations

// KVFavoritesRepository implements [FavoritesRepository] over a [kvstore.Store].
type KVFavoritesRepository struct {
	store kvstore.Store
	mutex sync.Mutex
}

// NewFavoritesRepository creates the KV-backed favorites repository.
func NewFavoritesRepository(store kvstore.Store) *KVFavoritesRepository {
	return &KVFavoritesRepository{store: store}
}

// List reads the favorites document. Absent or unreadable loads as empty.
func (repository *KVFavoritesRepository) List(ctx context.Context) ([]string, error) {
	raw, err := repository.store.Get(ctx, constants.KeyFavorites)
	if err != nil {
		if kvstore.IsNotFound(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("favorites_load_failed: %w", err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return []string{}, nil
	}

	return ids, nil
}

// Has reports membership of one id.
func (repository *KVFavoritesRepository) Has(ctx context.Context, animeID string) (bool, error) {
	ids, err := repository.List(ctx)
	if err != nil {
		return false, err
	}
	return slice.Contains(ids, animeID), nil
}

// Add inserts an id in a single read-modify-write. Present ids are left alone.
func (repository *KVFavoritesRepository) Add(ctx context.Context, animeID string) (bool, error) {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	ids, err := repository.List(ctx)
	if err != nil {
		return false, err
	}
	if slice.Contains(ids, animeID) {
		return false, nil
	}

	return true, repository.save(ctx, append(ids, animeID))
}

// Remove deletes an id in a single read-modify-write. Absent ids are a no-op.
func (repository *KVFavoritesRepository) Remove(ctx context.Context, animeID string) (bool, error) {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	ids, err := repository.List(ctx)
	if err != nil {
		return false, err
	}
	if !slice.Contains(ids, animeID) {
		return false, nil
	}

	remaining := slice.Filter(ids, func(id string) bool { return id != animeID })

	return true, repository.save(ctx, remaining)
}

func (repository *KVFavoritesRepository) save(ctx context.Context, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("favorites_encode_failed: %w", err)
	}

	if err := repository.store.Set(ctx, constants.KeyFavorites, string(raw)); err != nil {
		return fmt.Errorf("favorites_save_failed: %w", err)
	}

	return nil
}

// KVWatchRepository implements [WatchRepository] over a [kvstore.Store].
//
// No mutex: each title owns its whole document, so a write never has to
// merge with concurrent state.
type KVWatchRepository struct {
	store kvstore.Store
}

// NewWatchRepository creates the KV-backed watch-progress repository.
func NewWatchRepository(store kvstore.Store) *KVWatchRepository {
	return &KVWatchRepository{store: store}
}

// Get reads one title's record. Returns nil when absent or unreadable.
func (repository *KVWatchRepository) Get(ctx context.Context, animeID string) (*WatchProgress, error) {
	raw, err := repository.store.Get(ctx, constants.KeyWatchPrefix+animeID)
	if err != nil {
		if kvstore.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("watch_progress_load_failed: %w", err)
	}

	progress, ok := decodeProgress(raw, animeID)
	if !ok {
		return nil, nil
	}

	return &progress, nil
}

// Set overwrites one title's record.
func (repository *KVWatchRepository) Set(ctx context.Context, animeID string, progress WatchProgress) error {
	raw, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("watch_progress_encode_failed: %w", err)
	}

	if err := repository.store.Set(ctx, constants.KeyWatchPrefix+animeID, string(raw)); err != nil {
		return fmt.Errorf("watch_progress_save_failed: %w", err)
	}

	return nil
}

// Delete removes one title's record.
func (repository *KVWatchRepository) Delete(ctx context.Context, animeID string) error {
	if err := repository.store.Delete(ctx, constants.KeyWatchPrefix+animeID); err != nil {
		return fmt.Errorf("watch_progress_delete_failed: %w", err)
	}
	return nil
}

// All discovers every record by key-prefix enumeration. Documents that fail
// to parse are skipped, not surfaced.
func (repository *KVWatchRepository) All(ctx context.Context) ([]WatchProgress, error) {
	keys, err := repository.store.Keys(ctx, constants.KeyWatchPrefix)
	if err != nil {
		return nil, fmt.Errorf("watch_progress_scan_failed: %w", err)
	}

	records := make([]WatchProgress, 0, len(keys))
	for _, key := range keys {
		raw, err := repository.store.Get(ctx, key)
		if err != nil {
			continue
		}

		animeID := strings.TrimPrefix(key, constants.KeyWatchPrefix)
		if progress, ok := decodeProgress(raw, animeID); ok {
			records = append(records, progress)
		}
	}

	return records, nil
}

// decodeProgress parses either on-disk shape. Legacy records carry no anime
// id of their own, so the id from the key fills it in.
func decodeProgress(raw, animeID string) (WatchProgress, bool) {
	var progress WatchProgress
	if err := json.Unmarshal([]byte(raw), &progress); err != nil {
		return WatchProgress{}, false
	}

	if progress.AnimeID == "" {
		progress.AnimeID = animeID
	}

	return progress, true
}
