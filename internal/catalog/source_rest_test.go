// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dublix/dublix/internal/catalog"
)

/*
TestRESTSource_ListAnime verifies the request shape sent to the row store:
path, ordering parameter, and the API key headers.
*/
func TestRESTSource_ListAnime(t *testing.T) {
	var captured *http.Request

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		captured = request.Clone(request.Context())
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`[{"id":"a1","title":"Frieren","slug":"frieren"},{"id":"a2","title":"Dandadan","slug":"dandadan"}]`))
	}))
	defer server.Close()

	source := catalog.NewRESTSource(server.URL, "service-key")

	entries, err := source.ListAnime(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Frieren", entries[0].Title)

	require.NotNil(t, captured)
	assert.Equal(t, "/rest/v1/anime_data", captured.URL.Path)
	assert.Equal(t, "title.asc", captured.URL.Query().Get("order"))
	assert.Equal(t, "service-key", captured.Header.Get("apikey"))
	assert.Equal(t, "Bearer service-key", captured.Header.Get("Authorization"))
}

func TestRESTSource_AnimeByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "eq.a1", request.URL.Query().Get("id"))
		assert.Equal(t, "1", request.URL.Query().Get("limit"))
		_, _ = writer.Write([]byte(`[{"id":"a1","title":"Frieren","slug":"frieren"}]`))
	}))
	defer server.Close()

	source := catalog.NewRESTSource(server.URL, "")

	anime, err := source.AnimeByID(context.Background(), "a1")

	require.NoError(t, err)
	assert.Equal(t, "frieren", anime.Slug)
}

/*
TestRESTSource_EmptyResultIsNotFound verifies that an equality query matching
zero rows maps to [catalog.ErrNotFound] rather than a nil row.
*/
func TestRESTSource_EmptyResultIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`[]`))
	}))
	defer server.Close()

	source := catalog.NewRESTSource(server.URL, "")

	_, err := source.AnimeBySlug(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = source.GetEpisode(context.Background(), "a1", 1, 99)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestRESTSource_ListEpisodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/rest/v1/episodes_data", request.URL.Path)
		assert.Equal(t, "eq.a1", request.URL.Query().Get("anime_id"))
		assert.Equal(t, "season.asc,episode.asc", request.URL.Query().Get("order"))
		_, _ = writer.Write([]byte(`[{"id":"e1","anime_id":"a1","season":1,"episode":1},{"id":"e2","anime_id":"a1","season":1,"episode":2}]`))
	}))
	defer server.Close()

	source := catalog.NewRESTSource(server.URL, "")

	episodes, err := source.ListEpisodes(context.Background(), "a1")

	require.NoError(t, err)
	require.Len(t, episodes, 2)
	assert.Equal(t, 2, episodes[1].Episode)
}

func TestRESTSource_GetEpisode_PositionPredicates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "eq.2", request.URL.Query().Get("season"))
		assert.Equal(t, "eq.5", request.URL.Query().Get("episode"))
		_, _ = writer.Write([]byte(`[{"id":"e5","anime_id":"a1","season":2,"episode":5}]`))
	}))
	defer server.Close()

	source := catalog.NewRESTSource(server.URL, "")

	episode, err := source.GetEpisode(context.Background(), "a1", 2, 5)

	require.NoError(t, err)
	assert.Equal(t, "e5", episode.ID)
}

func TestRESTSource_UpstreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		http.Error(writer, "permission denied", http.StatusUnauthorized)
	}))
	defer server.Close()

	source := catalog.NewRESTSource(server.URL, "wrong-key")

	_, err := source.ListAnime(context.Background())

	require.Error(t, err)
	assert.False(t, errors.Is(err, catalog.ErrNotFound))
	assert.Contains(t, err.Error(), "401")
}
