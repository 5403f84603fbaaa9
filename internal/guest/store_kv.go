// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

/*
Package guest (KV) implements the storage layer for the guest identity.

# Document Mapping
  - guest_user: the single [Identity] document.
  - user_profiles: map of user id to [ProfileRef], consulted when attributing
    authored comments.

Documents are whole-value JSON. A document that fails to parse is treated as
absent so one corrupt write can never brick the install.
*/
package guest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dublix/dublix/internal/platform/constants"
	"github.com/dublix/dublix/internal/platform/kvstore"
)

// # Repository Implementations

// KVIdentityRepository implements [IdentityRepository] over a [kvstore.Store].
type KVIdentityRepository struct {
	store kvstore.Store
}

// NewIdentityRepository creates the KV-backed identity repository.
func NewIdentityRepository(store kvstore.Store) *KVIdentityRepository {
	return &KVIdentityRepository{store: store}
}

// LoadIdentity reads the guest_user document.
//
// Returns (nil, nil) when the document is absent or unreadable; only backend
// failures surface as errors.
func (repository *KVIdentityRepository) LoadIdentity(ctx context.Context) (*Identity, error) {
	raw, err := repository.store.Get(ctx, constants.KeyGuestUser)
	if err != nil {
		if kvstore.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("guest_identity_load_failed: %w", err)
	}

	var identity Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil || identity.ID == "" {
		return nil, nil
	}

	return &identity, nil
}

// SaveIdentity overwrites the guest_user document.
func (repository *KVIdentityRepository) SaveIdentity(ctx context.Context, identity *Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("guest_identity_encode_failed: %w", err)
	}

	if err := repository.store.Set(ctx, constants.KeyGuestUser, string(raw)); err != nil {
		return fmt.Errorf("guest_identity_save_failed: %w", err)
	}

	return nil
}

// KVProfileRepository implements [ProfileRepository] over a [kvstore.Store].
//
// Upserts are whole-document read-modify-write cycles, serialized by a
// process-local mutex because the store has no compare-and-set.
type KVProfileRepository struct {
	store kvstore.Store
	mutex sync.Mutex
}

// NewProfileRepository creates the KV-backed profile repository.
func NewProfileRepository(store kvstore.Store) *KVProfileRepository {
	return &KVProfileRepository{store: store}
}

// LoadProfiles reads the full attribution map. Absent or unreadable maps load
// as empty.
func (repository *KVProfileRepository) LoadProfiles(ctx context.Context) (map[string]ProfileRef, error) {
	raw, err := repository.store.Get(ctx, constants.KeyUserProfiles)
	if err != nil {
		if kvstore.IsNotFound(err) {
			return map[string]ProfileRef{}, nil
		}
		return nil, fmt.Errorf("guest_profiles_load_failed: %w", err)
	}

	profiles := map[string]ProfileRef{}
	if err := json.Unmarshal([]byte(raw), &profiles); err != nil {
		return map[string]ProfileRef{}, nil
	}

	return profiles, nil
}

// SaveProfile upserts one attribution entry in a single read-modify-write.
func (repository *KVProfileRepository) SaveProfile(ctx context.Context, userID string, profile ProfileRef) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	profiles, err := repository.LoadProfiles(ctx)
	if err != nil {
		return err
	}

	profiles[userID] = profile

	raw, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("guest_profiles_encode_failed: %w", err)
	}

	if err := repository.store.Set(ctx, constants.KeyUserProfiles, string(raw)); err != nil {
		return fmt.Errorf("guest_profiles_save_failed: %w", err)
	}

	return nil
}
