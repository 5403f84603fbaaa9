// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package guest

import "context"

// # Repository Contracts

// IdentityRepository persists the single guest identity document.
//
// A missing or unreadable document is reported as (nil, nil): the caller
// synthesizes a fresh identity in that case rather than failing.
type IdentityRepository interface {
	// LoadIdentity returns the stored identity, or nil when none exists.
	LoadIdentity(ctx context.Context) (*Identity, error)

	// SaveIdentity overwrites the stored identity document.
	SaveIdentity(ctx context.Context, identity *Identity) error
}

// ProfileRepository persists the user id -> [ProfileRef] attribution map.
type ProfileRepository interface {
	// LoadProfiles returns the full attribution map; absent maps to empty.
	LoadProfiles(ctx context.Context) (map[string]ProfileRef, error)

	// SaveProfile upserts one attribution entry.
	SaveProfile(ctx context.Context, userID string, profile ProfileRef) error
}
