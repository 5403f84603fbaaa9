// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package library_test

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dublix/dublix/internal/catalog"
	"github.com/dublix/dublix/internal/library"
	"github.com/dublix/dublix/internal/platform/constants"
	"github.com/dublix/dublix/internal/platform/kvstore"
	"github.com/dublix/dublix/pkg/pointer"
)

// stubResolver resolves ids against a fixed catalog, dropping unknown ids,
// mirroring the behavior of the catalog service.
type stubResolver struct {
	entries []catalog.Anime
}

func (r *stubResolver) Resolve(_ context.Context, ids []string) []catalog.Anime {
	byID := make(map[string]catalog.Anime, len(r.entries))
	for _, entry := range r.entries {
		byID[entry.ID] = entry
	}

	resolved := make([]catalog.Anime, 0, len(ids))
	for _, id := range ids {
		if entry, ok := byID[id]; ok {
			resolved = append(resolved, entry)
		}
	}
	return resolved
}

func newTestService(t *testing.T, entries ...catalog.Anime) (*library.Service, kvstore.Store) {
	t.Helper()

	store := kvstore.NewMemory()
	service := library.NewService(
		library.NewFavoritesRepository(store),
		library.NewWatchRepository(store),
		&stubResolver{entries: entries},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	return service, store
}

// # Favorites

/*
TestService_Favorites_Idempotent verifies set semantics: repeated adds and
removes of the same id never change the outcome of a single one.
*/
func TestService_Favorites_Idempotent(t *testing.T) {
	service, _ := newTestService(t, catalog.Anime{ID: "a1", Title: "Frieren"})
	ctx := context.Background()

	require.NoError(t, service.AddFavorite(ctx, "a1"))
	require.NoError(t, service.AddFavorite(ctx, "a1"))

	entries, err := service.ListFavorites(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, service.RemoveFavorite(ctx, "a1"))
	require.NoError(t, service.RemoveFavorite(ctx, "a1"))

	favorited, err := service.IsFavorite(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, favorited)
}

/*
TestService_ToggleFavorite verifies that toggling twice restores the original
membership state.
*/
func TestService_ToggleFavorite(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	favorited, err := service.ToggleFavorite(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, favorited)

	favorited, err = service.ToggleFavorite(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, favorited)

	has, err := service.IsFavorite(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, has)
}

/*
TestService_ListFavorites_DropsDangling verifies referential cleanup: ids
whose catalog row no longer exists are omitted from the resolved view.
*/
func TestService_ListFavorites_DropsDangling(t *testing.T) {
	service, _ := newTestService(t, catalog.Anime{ID: "a1", Title: "Frieren"})
	ctx := context.Background()

	require.NoError(t, service.AddFavorite(ctx, "a1"))
	require.NoError(t, service.AddFavorite(ctx, "removed-from-catalog"))

	entries, err := service.ListFavorites(ctx)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Frieren", entries[0].Title)
}

/*
TestService_Favorites_CorruptDocumentRecovers verifies that an unreadable
favorites document loads as an empty set and the next write repairs it.
*/
func TestService_Favorites_CorruptDocumentRecovers(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, constants.KeyFavorites, `{"broken":`))

	favorited, err := service.IsFavorite(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, favorited)

	require.NoError(t, service.AddFavorite(ctx, "a1"))

	favorited, err = service.IsFavorite(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, favorited)
}

// # Watch Progress

/*
TestService_SetProgress_LastWriteWins verifies unconditional overwrite: after
two writes only the second record is retrievable.
*/
func TestService_SetProgress_LastWriteWins(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.SetProgress(ctx, library.SetProgressInput{AnimeID: "a1", Season: 1, Episode: 3})
	require.NoError(t, err)

	_, err = service.SetProgress(ctx, library.SetProgressInput{AnimeID: "a1", Season: 2, Episode: 7})
	require.NoError(t, err)

	progress, err := service.GetProgress(ctx, "a1")
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, 2, progress.Season)
	assert.Equal(t, 7, progress.Episode)
}

func TestService_GetProgress_AbsentIsNil(t *testing.T) {
	service, _ := newTestService(t)

	progress, err := service.GetProgress(context.Background(), "never-watched")

	require.NoError(t, err)
	assert.Nil(t, progress)
}

/*
TestService_GetProgress_ReadsBothShapes verifies that both persisted record
shapes load: the legacy {season, episode} document and the full record.
*/
func TestService_GetProgress_ReadsBothShapes(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, constants.KeyWatchPrefix+"legacy", `{"season":1,"episode":4}`))
	require.NoError(t, store.Set(ctx, constants.KeyWatchPrefix+"full",
		`{"animeId":"full","slug":"full-show","season":2,"episode":1,"timestamp":1756700000000,"progress":0.5}`))

	legacy, err := service.GetProgress(ctx, "legacy")
	require.NoError(t, err)
	require.NotNil(t, legacy)
	assert.Equal(t, "legacy", legacy.AnimeID)
	assert.Equal(t, 4, legacy.Episode)
	assert.Nil(t, legacy.Slug)

	full, err := service.GetProgress(ctx, "full")
	require.NoError(t, err)
	require.NotNil(t, full)
	require.NotNil(t, full.Slug)
	assert.Equal(t, "full-show", *full.Slug)
	require.NotNil(t, full.Progress)
	assert.InDelta(t, 0.5, *full.Progress, 0.0001)
}

func TestService_GetProgress_CorruptDocumentIsAbsent(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, constants.KeyWatchPrefix+"a1", "garbage"))

	progress, err := service.GetProgress(ctx, "a1")

	require.NoError(t, err)
	assert.Nil(t, progress)
}

func TestService_ClearProgress(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.SetProgress(ctx, library.SetProgressInput{AnimeID: "a1", Season: 1, Episode: 1})
	require.NoError(t, err)

	require.NoError(t, service.ClearProgress(ctx, "a1"))
	require.NoError(t, service.ClearProgress(ctx, "a1"))

	progress, err := service.GetProgress(ctx, "a1")
	require.NoError(t, err)
	assert.Nil(t, progress)
}

// # Continue Watching

/*
TestService_ContinueWatching verifies the derived view: resumable records
only, ordered by write time descending, capped, then resolved. The cap is
applied to the raw record window, so a dangling id inside the window shrinks
the result rather than pulling in the next record.
*/
func TestService_ContinueWatching(t *testing.T) {
	service, store := newTestService(t,
		catalog.Anime{ID: "a1", Title: "Frieren"},
		catalog.Anime{ID: "a2", Title: "Dandadan"},
		catalog.Anime{ID: "a3", Title: "Solo Leveling"},
	)
	ctx := context.Background()

	setAt := func(animeID, slug string, timestamp int64) {
		t.Helper()
		raw := `{"animeId":"` + animeID + `","slug":"` + slug + `","season":1,"episode":1,"timestamp":` +
			itoa(timestamp) + `}`
		require.NoError(t, store.Set(ctx, constants.KeyWatchPrefix+animeID, raw))
	}

	setAt("a1", "frieren", 1000)
	setAt("a2", "dandadan", 3000)
	setAt("a3", "solo-leveling", 2000)

	// Legacy record without identity: never resumable.
	require.NoError(t, store.Set(ctx, constants.KeyWatchPrefix+"a4", `{"season":5,"episode":9}`))

	// Resumable but removed from the catalog: dropped at resolution.
	setAt("gone", "gone-show", 4000)

	// Window of 2 is [gone, a2]; the dangling record drops after the cap.
	entries, err := service.ContinueWatching(ctx, 2)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Dandadan", entries[0].Anime.Title)

	// Widening the window admits the next record; the legacy one never appears.
	entries, err = service.ContinueWatching(ctx, 3)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Dandadan", entries[0].Anime.Title)
	assert.Equal(t, "Solo Leveling", entries[1].Anime.Title)
}

func TestService_ContinueWatching_EmptyStore(t *testing.T) {
	service, _ := newTestService(t)

	entries, err := service.ContinueWatching(context.Background(), 6)

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestService_History_NewestFirst(t *testing.T) {
	service, store := newTestService(t,
		catalog.Anime{ID: "a1", Title: "Frieren"},
		catalog.Anime{ID: "a2", Title: "Dandadan"},
	)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, constants.KeyWatchPrefix+"a1",
		`{"animeId":"a1","slug":"frieren","season":1,"episode":1,"timestamp":1000}`))
	require.NoError(t, store.Set(ctx, constants.KeyWatchPrefix+"a2",
		`{"animeId":"a2","slug":"dandadan","season":1,"episode":2,"timestamp":2000}`))

	entries, err := service.History(ctx)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Dandadan", entries[0].Anime.Title)
	assert.Equal(t, pointer.Val(entries[0].Progress.Slug), "dandadan")
}

func itoa(value int64) string {
	return strconv.FormatInt(value, 10)
}
