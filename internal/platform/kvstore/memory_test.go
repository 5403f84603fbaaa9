// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package kvstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dublix/dublix/internal/platform/kvstore"
)

/*
TestMemory_GetSet verifies the basic document overwrite contract.
*/
func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()

	// 1. Absent key
	_, err := store.Get(ctx, "favorites")
	assert.True(t, kvstore.IsNotFound(err))

	// 2. Write then read back
	require.NoError(t, store.Set(ctx, "favorites", `["a1"]`))
	value, err := store.Get(ctx, "favorites")
	require.NoError(t, err)
	assert.Equal(t, `["a1"]`, value)

	// 3. Full overwrite, not merge
	require.NoError(t, store.Set(ctx, "favorites", `["a2"]`))
	value, err = store.Get(ctx, "favorites")
	require.NoError(t, err)
	assert.Equal(t, `["a2"]`, value)
}

/*
TestMemory_Keys verifies prefix enumeration, the primitive behind the
Continue Watching view.
*/
func TestMemory_Keys(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()

	require.NoError(t, store.Set(ctx, "watch-a1", `{"season":1,"episode":2}`))
	require.NoError(t, store.Set(ctx, "watch-a2", `{"season":1,"episode":1}`))
	require.NoError(t, store.Set(ctx, "favorites", `[]`))

	keys, err := store.Keys(ctx, "watch-")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"watch-a1", "watch-a2"}, keys)
}

/*
TestMemory_Delete verifies deleting an absent key stays a no-op.
*/
func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()

	require.NoError(t, store.Delete(ctx, "missing"))

	require.NoError(t, store.Set(ctx, "guest_user", `{}`))
	require.NoError(t, store.Delete(ctx, "guest_user"))

	_, err := store.Get(ctx, "guest_user")
	assert.True(t, kvstore.IsNotFound(err))
}
