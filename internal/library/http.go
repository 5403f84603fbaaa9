// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

/*
Package library provides the device-local library: the favorites set, watch
progress per title, and the Continue Watching view.

All of it belongs to the single implicit guest of the install; there is no
per-user scoping. State lives in the key-value document store and survives
restarts.
*/
package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dublix/dublix/internal/platform/apperr"
	"github.com/dublix/dublix/internal/platform/constants"
	requestutil "github.com/dublix/dublix/internal/platform/request"
	"github.com/dublix/dublix/internal/platform/respond"
	"github.com/dublix/dublix/internal/platform/validate"
	"github.com/dublix/dublix/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for the local library.
type Handler struct {
	service *Service
}

// NewHandler constructs a new library [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the library endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Favorites
	router.Get("/favorites", handler.listFavorites)
	router.Get("/favorites/{animeID}", handler.getFavorite)
	router.Put("/favorites/{animeID}", handler.addFavorite)
	router.Delete("/favorites/{animeID}", handler.removeFavorite)
	router.Post("/favorites/{animeID}/toggle", handler.toggleFavorite)

	// Watch Progress
	router.Get("/history", handler.listHistory)
	router.Get("/history/{animeID}", handler.getProgress)
	router.Put("/history/{animeID}", handler.setProgress)
	router.Delete("/history/{animeID}", handler.clearProgress)

	// Derived Views
	router.Get("/continue", handler.continueWatching)

	return router
}

// # Favorites Endpoints

/*
GET /api/v1/library/favorites.

Description: Retrieves the favorited titles resolved to full catalog entries.
Titles that no longer exist upstream are omitted.
*/
func (handler *Handler) listFavorites(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.ListFavorites(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

// favoriteStateResponse reports one title's membership in the favorites set.
type favoriteStateResponse struct {
	AnimeID   string `json:"anime_id"`
	Favorited bool   `json:"favorited"`
}

func (handler *Handler) getFavorite(writer http.ResponseWriter, request *http.Request) {
	animeID := requestutil.Param(request, "animeID")

	favorited, err := handler.service.IsFavorite(request.Context(), animeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, favoriteStateResponse{AnimeID: animeID, Favorited: favorited})
}

/*
PUT /api/v1/library/favorites/{animeID}.

Description: Adds a title to the favorites set. Adding a present title is a
no-op, so the call is safely retryable.
*/
func (handler *Handler) addFavorite(writer http.ResponseWriter, request *http.Request) {
	animeID := requestutil.Param(request, "animeID")

	if err := handler.service.AddFavorite(request.Context(), animeID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, favoriteStateResponse{AnimeID: animeID, Favorited: true})
}

/*
DELETE /api/v1/library/favorites/{animeID}.

Description: Removes a title from the favorites set. Removing an absent title
is a no-op.
*/
func (handler *Handler) removeFavorite(writer http.ResponseWriter, request *http.Request) {
	animeID := requestutil.Param(request, "animeID")

	if err := handler.service.RemoveFavorite(request.Context(), animeID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, favoriteStateResponse{AnimeID: animeID, Favorited: false})
}

/*
POST /api/v1/library/favorites/{animeID}/toggle.

Description: Flips a title's favorites membership and reports the new state.
*/
func (handler *Handler) toggleFavorite(writer http.ResponseWriter, request *http.Request) {
	animeID := requestutil.Param(request, "animeID")

	favorited, err := handler.service.ToggleFavorite(request.Context(), animeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, favoriteStateResponse{AnimeID: animeID, Favorited: favorited})
}

// # Watch Progress Endpoints

func (handler *Handler) listHistory(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.History(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

/*
GET /api/v1/library/history/{animeID}.

Description: Retrieves the stored playback position for one title.

Response:
  - 200: WatchProgress
  - 404: NOT_FOUND: No position stored for this title
*/
func (handler *Handler) getProgress(writer http.ResponseWriter, request *http.Request) {
	animeID := requestutil.Param(request, "animeID")

	progress, err := handler.service.GetProgress(request.Context(), animeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if progress == nil {
		respond.Error(writer, request, apperr.NotFound("Watch progress"))
		return
	}

	respond.OK(writer, progress)
}

// setProgressRequest defines the expected JSON payload for progress writes.
type setProgressRequest struct {
	Slug     *string  `json:"slug"`
	Season   int      `json:"season"`
	Episode  int      `json:"episode"`
	Progress *float64 `json:"progress"`
}

/*
PUT /api/v1/library/history/{animeID}.

Description: Overwrites the playback position for one title. The previous
record, if any, is replaced wholesale.

Request:
  - body: setProgressRequest

Response:
  - 200: WatchProgress: The stored record
  - 400: VALIDATION_ERROR: Non-positive season or episode
*/
func (handler *Handler) setProgress(writer http.ResponseWriter, request *http.Request) {
	animeID := requestutil.Param(request, "animeID")

	var input setProgressRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Positive("season", input.Season)
	v.Positive("episode", input.Episode)
	if input.Progress != nil {
		v.Custom("progress", *input.Progress < 0 || *input.Progress > 1, "must be between 0 and 1")
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	progress, err := handler.service.SetProgress(request.Context(), SetProgressInput{
		AnimeID:  animeID,
		Slug:     input.Slug,
		Season:   input.Season,
		Episode:  input.Episode,
		Progress: input.Progress,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, progress)
}

func (handler *Handler) clearProgress(writer http.ResponseWriter, request *http.Request) {
	animeID := requestutil.Param(request, "animeID")

	if err := handler.service.ClearProgress(request.Context(), animeID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Derived View Endpoints

/*
GET /api/v1/library/continue?limit=N.

Description: Retrieves the most recently watched resumable titles, newest
first, resolved against the catalog.
*/
func (handler *Handler) continueWatching(writer http.ResponseWriter, request *http.Request) {
	limit := query.Int(request.URL.Query().Get("limit"), constants.ContinueWatchingLimit)
	if limit < 1 {
		limit = constants.ContinueWatchingLimit
	}

	entries, err := handler.service.ContinueWatching(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}
