// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

/*
Package guest provides the synthetic single-user identity of a Dublix
install.

There is no authentication anywhere in the system: one identity is minted
per device on first start and every authored comment is attributed to it.
This package owns that identity's lifecycle, its display profile, and the
user id -> profile attribution map.
*/
package guest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/dublix/dublix/internal/platform/request"
	"github.com/dublix/dublix/internal/platform/respond"
	"github.com/dublix/dublix/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the HTTP layer for the guest profile.
type Handler struct {
	service *Service
}

// NewHandler constructs a new guest [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the profile endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.getProfile)
	router.Patch("/", handler.updateProfile)

	return router
}

// # Profile Endpoints

/*
GET /api/v1/profile.

Description: Retrieves the device's guest identity, creating it on first use.

Response:
  - 200: Identity
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	identity, err := handler.service.GetOrCreate(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, identity)
}

// updateProfileRequest defines the expected JSON payload for profile updates.
type updateProfileRequest struct {
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

/*
PATCH /api/v1/profile.

Description: Applies partial updates to the guest profile.

Request:
  - body: updateProfileRequest (Partial JSON)

Response:
  - 200: Identity: The updated profile
  - 400: VALIDATION_ERROR: Invalid input data
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Username != nil {
		trimmed := strings.TrimSpace(*input.Username)
		v.Required("username", trimmed).MaxLen("username", trimmed, 50)
		input.Username = &trimmed
	}
	if input.AvatarURL != nil {
		v.MaxLen("avatar_url", *input.AvatarURL, 500)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	identity, err := handler.service.UpdateProfile(request.Context(), UpdateProfileInput{
		Username:  input.Username,
		AvatarURL: input.AvatarURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, identity)
}
