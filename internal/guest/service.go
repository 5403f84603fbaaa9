// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package guest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dublix/dublix/internal/platform/constants"
	"github.com/dublix/dublix/pkg/uuidv7"
)

// # Service Layer

// Service owns the lifecycle of the guest identity and its attribution data.
type Service struct {
	identityRepository IdentityRepository
	profileRepository  ProfileRepository
	logger             *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(identityRepo IdentityRepository, profileRepo ProfileRepository, logger *slog.Logger) *Service {
	return &Service{
		identityRepository: identityRepo,
		profileRepository:  profileRepo,
		logger:             logger,
	}
}

// # Identity Lifecycle

/*
GetOrCreate returns the device's guest identity, synthesizing and persisting
one on first use.

Description: Called once at process start; repeated calls are idempotent and
return the stored identity rather than minting a second one. A fresh identity
is also mirrored into the attribution map so comments authored by it resolve
to a display name.

Returns:
  - *Identity: The stored or newly synthesized identity
  - error: Storage failures only
*/
func (service *Service) GetOrCreate(ctx context.Context) (*Identity, error) {
	identity, err := service.identityRepository.LoadIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if identity != nil {
		return identity, nil
	}

	identity = &Identity{
		ID:        constants.GuestIDPrefix + uuidv7.New(),
		Username:  constants.GuestDefaultUsername,
		Email:     constants.GuestDefaultEmail,
		Role:      constants.GuestRole,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := service.identityRepository.SaveIdentity(ctx, identity); err != nil {
		return nil, err
	}
	if err := service.profileRepository.SaveProfile(ctx, identity.ID, ProfileRef{Username: identity.Username}); err != nil {
		return nil, err
	}

	service.logger.Info("guest_identity_created", slog.String("user_id", identity.ID))

	return identity, nil
}

// # Profile Management

// UpdateProfileInput defines the mutable subset of the guest profile.
type UpdateProfileInput struct {
	Username  *string
	AvatarURL *string
}

/*
UpdateProfile applies a partial update to the guest profile.

Description: Overrides provided fields on the stored identity and propagates
the result into the attribution map so existing comments pick up the new
display data on their next read.

Returns:
  - *Identity: The updated identity
  - error: Storage failures only
*/
func (service *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*Identity, error) {
	identity, err := service.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		identity.Username = *input.Username
	}
	if input.AvatarURL != nil {
		identity.AvatarURL = input.AvatarURL
	}

	if err := service.identityRepository.SaveIdentity(ctx, identity); err != nil {
		return nil, err
	}
	if err := service.profileRepository.SaveProfile(ctx, identity.ID, ProfileRef{
		Username:  identity.Username,
		AvatarURL: identity.AvatarURL,
	}); err != nil {
		return nil, err
	}

	service.logger.Info("guest_profile_updated", slog.String("user_id", identity.ID))

	return identity, nil
}

/*
Attribution resolves a batch of user ids to display profiles.

Description: Backs comment attribution. Ids missing from the persisted map
resolve to the anonymous placeholder rather than erroring, because comments
outlive profile documents.
*/
func (service *Service) Attribution(ctx context.Context, userIDs []string) (map[string]ProfileRef, error) {
	profiles, err := service.profileRepository.LoadProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("guest_attribution_failed: %w", err)
	}

	resolved := make(map[string]ProfileRef, len(userIDs))
	for _, userID := range userIDs {
		if profile, ok := profiles[userID]; ok {
			resolved[userID] = profile
			continue
		}
		resolved[userID] = ProfileRef{Username: constants.AnonymousUsername}
	}

	return resolved, nil
}
