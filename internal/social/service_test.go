// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package social_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dublix/dublix/internal/guest"
	"github.com/dublix/dublix/internal/platform/apperr"
	"github.com/dublix/dublix/internal/platform/constants"
	"github.com/dublix/dublix/internal/platform/kvstore"
	"github.com/dublix/dublix/internal/social"
)

// stubAttributor mirrors the guest service's fallback behavior: unknown ids
// resolve to the anonymous placeholder.
type stubAttributor struct {
	profiles map[string]guest.ProfileRef
}

func (a *stubAttributor) Attribution(_ context.Context, userIDs []string) (map[string]guest.ProfileRef, error) {
	resolved := make(map[string]guest.ProfileRef, len(userIDs))
	for _, userID := range userIDs {
		if profile, ok := a.profiles[userID]; ok {
			resolved[userID] = profile
			continue
		}
		resolved[userID] = guest.ProfileRef{Username: constants.AnonymousUsername}
	}
	return resolved, nil
}

func newTestService(t *testing.T) (*social.Service, kvstore.Store) {
	t.Helper()

	store := kvstore.NewMemory()
	attributor := &stubAttributor{profiles: map[string]guest.ProfileRef{
		"guest_author": {Username: "Hiro"},
	}}
	service := social.NewService(
		social.NewCommentRepository(store),
		attributor,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	return service, store
}

func mustCreate(t *testing.T, service *social.Service, input social.CreateCommentInput) *social.Comment {
	t.Helper()

	comment, err := service.Create(context.Background(), input)
	require.NoError(t, err)
	return comment
}

/*
TestService_CommentThread covers the whole tree lifecycle: a top-level
comment, a reply beneath it, and the cascade delete emptying both lists.
*/
func TestService_CommentThread(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	parent := mustCreate(t, service, social.CreateCommentInput{
		AnimeID: "a1", UserID: "guest_author", Content: "Great pacing this season.",
	})
	reply := mustCreate(t, service, social.CreateCommentInput{
		AnimeID: "a1", UserID: "guest_author", Content: "Agreed.", ParentID: &parent.ID,
	})

	topLevel, err := service.ListTopLevel(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, topLevel, 1)
	assert.Equal(t, parent.ID, topLevel[0].ID)

	replies, err := service.ListReplies(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, reply.ID, replies[0].ID)

	require.NoError(t, service.Delete(ctx, parent.ID))

	topLevel, err = service.ListTopLevel(ctx, "a1")
	require.NoError(t, err)
	assert.Empty(t, topLevel)

	replies, err = service.ListReplies(ctx, parent.ID)
	require.NoError(t, err)
	assert.Empty(t, replies)
}

/*
TestService_ListOrdering verifies the intentional asymmetry: top-level newest
first, replies oldest first.
*/
func TestService_ListOrdering(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	// Seeded directly so creation timestamps differ deterministically.
	seed := `[
		{"id":"c1","anime_id":"a1","user_id":"guest_author","content":"first","created_at":"2026-08-01T10:00:00Z"},
		{"id":"c2","anime_id":"a1","user_id":"guest_author","content":"second","created_at":"2026-08-02T10:00:00Z"},
		{"id":"r1","anime_id":"a1","user_id":"guest_author","content":"early reply","parent_id":"c1","created_at":"2026-08-01T11:00:00Z"},
		{"id":"r2","anime_id":"a1","user_id":"guest_author","content":"late reply","parent_id":"c1","created_at":"2026-08-03T11:00:00Z"}
	]`
	require.NoError(t, store.Set(ctx, constants.KeyComments, seed))

	topLevel, err := service.ListTopLevel(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, topLevel, 2)
	assert.Equal(t, "c2", topLevel[0].ID)
	assert.Equal(t, "c1", topLevel[1].ID)

	replies, err := service.ListReplies(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, "r1", replies[0].ID)
	assert.Equal(t, "r2", replies[1].ID)
}

func TestService_ListTopLevel_ScopedToTitle(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	mustCreate(t, service, social.CreateCommentInput{AnimeID: "a1", UserID: "guest_author", Content: "on a1"})
	mustCreate(t, service, social.CreateCommentInput{AnimeID: "a2", UserID: "guest_author", Content: "on a2"})

	topLevel, err := service.ListTopLevel(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, topLevel, 1)
	assert.Equal(t, "on a1", topLevel[0].Content)
}

/*
TestService_Create_Validation verifies that invalid submissions are rejected
before any write happens.
*/
func TestService_Create_Validation(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	t.Run("empty content", func(t *testing.T) {
		_, err := service.Create(ctx, social.CreateCommentInput{AnimeID: "a1", UserID: "u", Content: "   "})

		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

		_, getErr := store.Get(ctx, constants.KeyComments)
		assert.True(t, kvstore.IsNotFound(getErr))
	})

	t.Run("reply to unknown parent", func(t *testing.T) {
		missing := "no-such-comment"
		_, err := service.Create(ctx, social.CreateCommentInput{
			AnimeID: "a1", UserID: "u", Content: "hello", ParentID: &missing,
		})

		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("reply to a reply", func(t *testing.T) {
		parent := mustCreate(t, service, social.CreateCommentInput{AnimeID: "a1", UserID: "u", Content: "top"})
		reply := mustCreate(t, service, social.CreateCommentInput{
			AnimeID: "a1", UserID: "u", Content: "reply", ParentID: &parent.ID,
		})

		_, err := service.Create(ctx, social.CreateCommentInput{
			AnimeID: "a1", UserID: "u", Content: "too deep", ParentID: &reply.ID,
		})

		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

/*
TestService_Create_TimestampPrecision pins the created_at format: millisecond
fractions in UTC, so two comments written within the same second still carry
distinct sort keys.
*/
func TestService_Create_TimestampPrecision(t *testing.T) {
	service, _ := newTestService(t)

	comment := mustCreate(t, service, social.CreateCommentInput{
		AnimeID: "a1", UserID: "u", Content: "first",
	})

	createdAt, err := time.Parse("2006-01-02T15:04:05.000Z07:00", comment.CreatedAt)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, createdAt.Location())
	assert.Contains(t, comment.CreatedAt, ".")
}

func TestService_Delete_UnknownComment(t *testing.T) {
	service, _ := newTestService(t)

	err := service.Delete(context.Background(), "no-such-comment")

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

/*
TestService_Delete_KeepsSiblings verifies the cascade removes only the target
subtree: other top-level comments and their replies survive.
*/
func TestService_Delete_KeepsSiblings(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	doomed := mustCreate(t, service, social.CreateCommentInput{AnimeID: "a1", UserID: "u", Content: "doomed"})
	mustCreate(t, service, social.CreateCommentInput{AnimeID: "a1", UserID: "u", Content: "doomed child", ParentID: &doomed.ID})
	survivor := mustCreate(t, service, social.CreateCommentInput{AnimeID: "a1", UserID: "u", Content: "survivor"})
	mustCreate(t, service, social.CreateCommentInput{AnimeID: "a1", UserID: "u", Content: "survivor child", ParentID: &survivor.ID})

	require.NoError(t, service.Delete(ctx, doomed.ID))

	topLevel, err := service.ListTopLevel(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, topLevel, 1)
	assert.Equal(t, survivor.ID, topLevel[0].ID)

	replies, err := service.ListReplies(ctx, survivor.ID)
	require.NoError(t, err)
	assert.Len(t, replies, 1)
}

/*
TestService_Attribution verifies authorship joins: known authors render their
profile, unknown authors fall back to the anonymous placeholder.
*/
func TestService_Attribution(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	mustCreate(t, service, social.CreateCommentInput{AnimeID: "a1", UserID: "guest_author", Content: "known"})

	// A comment whose author's profile document no longer exists.
	orphan := `[{"id":"cx","anime_id":"a2","user_id":"guest_vanished","content":"orphan","created_at":"2026-08-01T00:00:00Z"}]`
	require.NoError(t, store.Set(ctx, constants.KeyComments, orphan))

	topLevel, err := service.ListTopLevel(ctx, "a2")
	require.NoError(t, err)
	require.Len(t, topLevel, 1)
	assert.Equal(t, constants.AnonymousUsername, topLevel[0].User.Username)
}

func TestService_CorruptDocumentLoadsEmpty(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, constants.KeyComments, "[{broken"))

	topLevel, err := service.ListTopLevel(ctx, "a1")

	require.NoError(t, err)
	assert.Empty(t, topLevel)
}
