// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package catalog

import (
	"context"
	"errors"
	"log/slog"
	"regexp"

	"github.com/dublix/dublix/internal/platform/apperr"
	"github.com/dublix/dublix/pkg/slug"
)

// uuidPattern matches the stable row ids minted by the catalog source.
var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// # Service Layer

// Service orchestrates catalog browsing: it fetches rows from the external
// source and runs the in-memory query engine over them.
type Service struct {
	source Source
	logger *slog.Logger
}

// NewService constructs a new [Service] with its source dependency.
func NewService(source Source, logger *slog.Logger) *Service {
	return &Service{
		source: source,
		logger: logger,
	}
}

// EpisodeView is one episode resolved together with its ordered neighbors,
// which the player uses for next/previous navigation.
type EpisodeView struct {
	Episode  Episode  `json:"episode"`
	Previous *Episode `json:"previous,omitempty"`
	Next     *Episode `json:"next,omitempty"`
}

// # Browsing

/*
List runs the full client-side query pipeline.

Description: Fetches the complete catalog from the row store (through the
cache when one is wired) and applies search, genre, status, and rating
predicates, the requested sort, and pagination entirely in memory — the
upstream cannot express any of those.

Failure semantics: if the upstream fetch fails, the query engine is never
invoked; the call degrades to an empty page and the error is logged.
*/
func (service *Service) List(ctx context.Context, filter Filter, page Page) Result {
	entries, err := service.source.ListAnime(ctx)
	if err != nil {
		service.logger.Error("catalog_fetch_failed", slog.Any("error", err))
		return Result{Items: []Anime{}}
	}

	return Query(entries, filter, page)
}

/*
GetAnime fetches a single title by UUID or by slug.

Description: The identifier's format selects the lookup strategy. Slug
lookups are normalized first so links pasted with stray casing or accents
still resolve.

Returns:
  - *Anime: The catalog row
  - error: apperr.NotFound when no row matches; apperr.Upstream on fetch failure
*/
func (service *Service) GetAnime(ctx context.Context, identifier string) (*Anime, error) {
	var (
		anime *Anime
		err   error
	)

	if uuidPattern.MatchString(identifier) {
		anime, err = service.source.AnimeByID(ctx, identifier)
	} else {
		anime, err = service.source.AnimeBySlug(ctx, slug.From(identifier))
	}

	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("Anime")
		}
		return nil, apperr.Upstream(err)
	}

	return anime, nil
}

// # Episodes

// ListEpisodes returns a title's episodes ordered by (season, episode).
func (service *Service) ListEpisodes(ctx context.Context, animeID string) ([]Episode, error) {
	episodes, err := service.source.ListEpisodes(ctx, animeID)
	if err != nil {
		return nil, apperr.Upstream(err)
	}
	return episodes, nil
}

/*
GetEpisode resolves one (season, episode) position with its neighbors.

Description: The episode list arrives ordered by season then episode, which
makes neighbor resolution a positional lookup: the previous and next entries
in the ordered sequence, crossing season boundaries naturally.
*/
func (service *Service) GetEpisode(ctx context.Context, animeID string, season, episode int) (*EpisodeView, error) {
	episodes, err := service.source.ListEpisodes(ctx, animeID)
	if err != nil {
		return nil, apperr.Upstream(err)
	}

	index := -1
	for i := range episodes {
		if episodes[i].Season == season && episodes[i].Episode == episode {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, apperr.NotFound("Episode")
	}

	view := &EpisodeView{Episode: episodes[index]}
	if index > 0 {
		view.Previous = &episodes[index-1]
	}
	if index < len(episodes)-1 {
		view.Next = &episodes[index+1]
	}

	return view, nil
}

// # Derived Views

/*
Suggestions returns up to limit catalog entries to show beside the player,
excluding the title currently being watched.

Failure semantics: degrades to an empty list on fetch failure.
*/
func (service *Service) Suggestions(ctx context.Context, excludeID string, limit int) []Anime {
	entries, err := service.source.ListAnime(ctx)
	if err != nil {
		service.logger.Error("catalog_fetch_failed", slog.Any("error", err))
		return []Anime{}
	}

	suggestions := make([]Anime, 0, limit)
	for _, entry := range entries {
		if entry.ID == excludeID {
			continue
		}
		suggestions = append(suggestions, entry)
		if len(suggestions) == limit {
			break
		}
	}

	return suggestions
}

/*
Resolve maps a batch of anime ids to full catalog entries.

Description: Backs the favorites and watch-history views. The whole catalog
is fetched once and indexed rather than issuing one upstream query per id.
Ids that no longer resolve (removed titles) are silently dropped, preserving
the order of the surviving input ids.

Failure semantics: degrades to an empty list on fetch failure.
*/
func (service *Service) Resolve(ctx context.Context, ids []string) []Anime {
	if len(ids) == 0 {
		return []Anime{}
	}

	entries, err := service.source.ListAnime(ctx)
	if err != nil {
		service.logger.Error("catalog_fetch_failed", slog.Any("error", err))
		return []Anime{}
	}

	byID := make(map[string]Anime, len(entries))
	for _, entry := range entries {
		byID[entry.ID] = entry
	}

	resolved := make([]Anime, 0, len(ids))
	for _, id := range ids {
		if entry, ok := byID[id]; ok {
			resolved = append(resolved, entry)
		}
	}

	return resolved
}
