// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dublix/dublix/internal/platform/constants"
)

// cachedSource is a read-through cache decorator over a [Source].
//
// Every browse page re-runs the query engine over the full catalog, so the
// expensive part is the upstream fetch, not the filtering. The full-catalog
// and per-title episode lists are cached in Redis under a short TTL; cache
// failures are logged and bypassed, never surfaced.
//
// Single-row lookups resolve against the cached catalog when possible and
// fall through to the upstream otherwise.
type cachedSource struct {
	upstream Source
	client   *redis.Client
	ttl      time.Duration
	logger   *slog.Logger
}

// NewCachedSource wraps a [Source] with a Redis read-through cache.
func NewCachedSource(upstream Source, client *redis.Client, ttl time.Duration, logger *slog.Logger) Source {
	return &cachedSource{
		upstream: upstream,
		client:   client,
		ttl:      ttl,
		logger:   logger,
	}
}

func (c *cachedSource) ListAnime(ctx context.Context) ([]Anime, error) {
	var rows []Anime
	if c.read(ctx, constants.CachePrefixCatalog, &rows) {
		return rows, nil
	}

	rows, err := c.upstream.ListAnime(ctx)
	if err != nil {
		return nil, err
	}

	c.write(ctx, constants.CachePrefixCatalog, rows)
	return rows, nil
}

func (c *cachedSource) AnimeByID(ctx context.Context, id string) (*Anime, error) {
	var rows []Anime
	if c.read(ctx, constants.CachePrefixCatalog, &rows) {
		for i := range rows {
			if rows[i].ID == id {
				return &rows[i], nil
			}
		}
		return nil, ErrNotFound
	}

	return c.upstream.AnimeByID(ctx, id)
}

func (c *cachedSource) AnimeBySlug(ctx context.Context, slug string) (*Anime, error) {
	var rows []Anime
	if c.read(ctx, constants.CachePrefixCatalog, &rows) {
		for i := range rows {
			if rows[i].Slug == slug {
				return &rows[i], nil
			}
		}
		return nil, ErrNotFound
	}

	return c.upstream.AnimeBySlug(ctx, slug)
}

func (c *cachedSource) ListEpisodes(ctx context.Context, animeID string) ([]Episode, error) {
	key := constants.CachePrefixEpisodes + animeID

	var rows []Episode
	if c.read(ctx, key, &rows) {
		return rows, nil
	}

	rows, err := c.upstream.ListEpisodes(ctx, animeID)
	if err != nil {
		return nil, err
	}

	c.write(ctx, key, rows)
	return rows, nil
}

func (c *cachedSource) GetEpisode(ctx context.Context, animeID string, season, episode int) (*Episode, error) {
	// The episode list is the cacheable unit; a single episode resolves from it.
	rows, err := c.ListEpisodes(ctx, animeID)
	if err != nil {
		return nil, err
	}

	for i := range rows {
		if rows[i].Season == season && rows[i].Episode == episode {
			return &rows[i], nil
		}
	}
	return nil, ErrNotFound
}

// read attempts a cache hit; it reports false on miss or any cache failure.
func (c *cachedSource) read(ctx context.Context, key string, target any) bool {
	payload, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("catalog_cache_read_failed", slog.String("key", key), slog.Any("error", err))
		}
		return false
	}

	if err := json.Unmarshal([]byte(payload), target); err != nil {
		c.logger.Warn("catalog_cache_corrupt", slog.String("key", key), slog.Any("error", err))
		return false
	}

	return true
}

// write stores a cache entry under the configured TTL, best effort.
func (c *cachedSource) write(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog_cache_write_failed", slog.String("key", key), slog.Any("error", err))
	}
}
