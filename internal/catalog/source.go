// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned by single-row lookups when no catalog row matches.
var ErrNotFound = errors.New("catalog: not found")

// Source is the external catalog row store.
//
// The upstream only supports field-equality predicates and column ordering;
// everything richer (substring search, any-of genre matching, client-chosen
// sorts) happens in [Query] after fetching.
type Source interface {
	// ListAnime fetches the full catalog, ordered by title.
	ListAnime(ctx context.Context) ([]Anime, error)

	// AnimeByID fetches one title by its stable id, or [ErrNotFound].
	AnimeByID(ctx context.Context, id string) (*Anime, error)

	// AnimeBySlug fetches one title by its unique slug, or [ErrNotFound].
	AnimeBySlug(ctx context.Context, slug string) (*Anime, error)

	// ListEpisodes fetches a title's episodes ordered by season then episode.
	ListEpisodes(ctx context.Context, animeID string) ([]Episode, error)

	// GetEpisode fetches one episode by composite position, or [ErrNotFound].
	GetEpisode(ctx context.Context, animeID string, season, episode int) (*Episode, error)
}
