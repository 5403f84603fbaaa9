// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// restSource is the PostgREST-style row-store client.
//
// Rows are addressed as /rest/v1/<collection>?<column>=eq.<value>&order=...
// with a static API key. The client is read-only: this service never
// creates, updates, or deletes catalog rows.
type restSource struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// Row collections exposed by the catalog row store.
const (
	collectionAnime    = "anime_data"
	collectionEpisodes = "episodes_data"
)

const sourceRequestTimeout = 10 * time.Second

// NewRESTSource builds a [Source] talking to a PostgREST-compatible endpoint.
func NewRESTSource(baseURL, apiKey string) Source {
	return &restSource{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: sourceRequestTimeout},
	}
}

func (s *restSource) ListAnime(ctx context.Context) ([]Anime, error) {
	params := url.Values{}
	params.Set("order", "title.asc")

	var rows []Anime
	if err := s.fetch(ctx, collectionAnime, params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *restSource) AnimeByID(ctx context.Context, id string) (*Anime, error) {
	params := url.Values{}
	params.Set("id", "eq."+id)

	return s.fetchOneAnime(ctx, params)
}

func (s *restSource) AnimeBySlug(ctx context.Context, slug string) (*Anime, error) {
	params := url.Values{}
	params.Set("slug", "eq."+slug)

	return s.fetchOneAnime(ctx, params)
}

func (s *restSource) ListEpisodes(ctx context.Context, animeID string) ([]Episode, error) {
	params := url.Values{}
	params.Set("anime_id", "eq."+animeID)
	params.Set("order", "season.asc,episode.asc")

	var rows []Episode
	if err := s.fetch(ctx, collectionEpisodes, params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *restSource) GetEpisode(ctx context.Context, animeID string, season, episode int) (*Episode, error) {
	params := url.Values{}
	params.Set("anime_id", "eq."+animeID)
	params.Set("season", "eq."+strconv.Itoa(season))
	params.Set("episode", "eq."+strconv.Itoa(episode))

	var rows []Episode
	if err := s.fetch(ctx, collectionEpisodes, params, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// fetchOneAnime runs an equality-predicate query expected to match at most one row.
func (s *restSource) fetchOneAnime(ctx context.Context, params url.Values) (*Anime, error) {
	params.Set("limit", "1")

	var rows []Anime
	if err := s.fetch(ctx, collectionAnime, params, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// fetch performs one GET against a row collection and decodes the JSON array.
func (s *restSource) fetch(ctx context.Context, collection string, params url.Values, target any) error {
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", s.baseURL, collection, params.Encode())

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("catalog: build request: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		request.Header.Set("apikey", s.apiKey)
		request.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	response, err := s.client.Do(request)
	if err != nil {
		return fmt.Errorf("catalog: fetch %s: %w", collection, err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		// Drain a bounded amount so the connection can be reused.
		_, _ = io.CopyN(io.Discard, response.Body, 4096)
		return fmt.Errorf("catalog: fetch %s: upstream status %d", collection, response.StatusCode)
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("catalog: decode %s: %w", collection, err)
	}

	return nil
}
