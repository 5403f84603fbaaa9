// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package library

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/dublix/dublix/internal/catalog"
)

// Resolver maps anime ids to full catalog entries, dropping ids that no
// longer resolve. Satisfied by [catalog.Service].
type Resolver interface {
	Resolve(ctx context.Context, ids []string) []catalog.Anime
}

// # Service Layer

// Service orchestrates the device-local library: the favorites set, per-title
// watch progress, and the Continue Watching view derived from them.
type Service struct {
	favoritesRepository FavoritesRepository
	watchRepository     WatchRepository
	resolver            Resolver
	logger              *slog.Logger

	// now is the millisecond clock stamped onto watch-progress writes.
	now func() int64
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	favoritesRepo FavoritesRepository,
	watchRepo WatchRepository,
	resolver Resolver,
	logger *slog.Logger,
) *Service {
	return &Service{
		favoritesRepository: favoritesRepo,
		watchRepository:     watchRepo,
		resolver:            resolver,
		logger:              logger,
		now:                 func() int64 { return time.Now().UnixMilli() },
	}
}

// # Favorites

// AddFavorite inserts a title into the favorites set. Idempotent.
func (service *Service) AddFavorite(ctx context.Context, animeID string) error {
	changed, err := service.favoritesRepository.Add(ctx, animeID)
	if err != nil {
		return err
	}
	if changed {
		service.logger.Info("favorite_added", slog.String("anime_id", animeID))
	}
	return nil
}

// RemoveFavorite deletes a title from the favorites set. Idempotent.
func (service *Service) RemoveFavorite(ctx context.Context, animeID string) error {
	changed, err := service.favoritesRepository.Remove(ctx, animeID)
	if err != nil {
		return err
	}
	if changed {
		service.logger.Info("favorite_removed", slog.String("anime_id", animeID))
	}
	return nil
}

/*
ToggleFavorite flips a title's membership in the favorites set.

Description: Toggling twice always restores the original state.

Returns:
  - bool: The membership state after the toggle
  - error: Storage failures only
*/
func (service *Service) ToggleFavorite(ctx context.Context, animeID string) (bool, error) {
	favorited, err := service.favoritesRepository.Has(ctx, animeID)
	if err != nil {
		return false, err
	}

	if favorited {
		return false, service.RemoveFavorite(ctx, animeID)
	}
	return true, service.AddFavorite(ctx, animeID)
}

// IsFavorite reports a title's membership in the favorites set.
func (service *Service) IsFavorite(ctx context.Context, animeID string) (bool, error) {
	return service.favoritesRepository.Has(ctx, animeID)
}

/*
ListFavorites returns the favorited titles resolved to full catalog entries.

Description: Ids whose catalog row no longer exists are silently dropped from
the view; the stored set keeps them in case the row comes back.
*/
func (service *Service) ListFavorites(ctx context.Context) ([]catalog.Anime, error) {
	ids, err := service.favoritesRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	return service.resolver.Resolve(ctx, ids), nil
}

// # Watch Progress

// SetProgressInput defines one watch-progress write.
type SetProgressInput struct {
	AnimeID  string
	Slug     *string
	Season   int
	Episode  int
	Progress *float64
}

/*
SetProgress overwrites a title's playback position. Last write wins; there is
no merging with the prior record.
*/
func (service *Service) SetProgress(ctx context.Context, input SetProgressInput) (*WatchProgress, error) {
	progress := WatchProgress{
		AnimeID:   input.AnimeID,
		Slug:      input.Slug,
		Season:    input.Season,
		Episode:   input.Episode,
		Timestamp: service.now(),
		Progress:  input.Progress,
	}

	if err := service.watchRepository.Set(ctx, input.AnimeID, progress); err != nil {
		return nil, err
	}

	return &progress, nil
}

// GetProgress returns a title's playback position, or nil when none exists.
func (service *Service) GetProgress(ctx context.Context, animeID string) (*WatchProgress, error) {
	return service.watchRepository.Get(ctx, animeID)
}

// ClearProgress removes a title's playback position. Idempotent.
func (service *Service) ClearProgress(ctx context.Context, animeID string) error {
	return service.watchRepository.Delete(ctx, animeID)
}

/*
History returns every watch-progress record resolved against the catalog,
most recent first. Records whose title no longer resolves are dropped.
*/
func (service *Service) History(ctx context.Context) ([]HistoryEntry, error) {
	records, err := service.watchRepository.All(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})

	return service.resolveEntries(ctx, records), nil
}

/*
ContinueWatching returns the most recently watched titles, newest first.

Description: Only records that carry full identity (anime id and slug) can be
resumed; legacy {season, episode} records are excluded. Records are ordered
by their write timestamp descending, capped at limit, then resolved against
the catalog with dangling ids dropped.
*/
func (service *Service) ContinueWatching(ctx context.Context, limit int) ([]HistoryEntry, error) {
	records, err := service.watchRepository.All(ctx)
	if err != nil {
		return nil, err
	}

	resumable := make([]WatchProgress, 0, len(records))
	for _, record := range records {
		if record.Resumable() {
			resumable = append(resumable, record)
		}
	}

	sort.SliceStable(resumable, func(i, j int) bool {
		return resumable[i].Timestamp > resumable[j].Timestamp
	})

	if len(resumable) > limit {
		resumable = resumable[:limit]
	}

	return service.resolveEntries(ctx, resumable), nil
}

// resolveEntries joins records with their catalog rows, preserving record
// order and dropping records whose row no longer resolves.
func (service *Service) resolveEntries(ctx context.Context, records []WatchProgress) []HistoryEntry {
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.AnimeID)
	}

	byID := make(map[string]catalog.Anime)
	for _, entry := range service.resolver.Resolve(ctx, ids) {
		byID[entry.ID] = entry
	}

	entries := make([]HistoryEntry, 0, len(records))
	for _, record := range records {
		anime, ok := byID[record.AnimeID]
		if !ok {
			continue
		}
		entries = append(entries, HistoryEntry{Anime: anime, Progress: record})
	}

	return entries
}
