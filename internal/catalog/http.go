// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

/*
Package catalog provides browsing and playback lookups over the externally
owned title catalog.

It exposes the discovery endpoints of the API: filterable, sortable, paginated
title lists, detail lookups by id or slug, and ordered episode resolution for
the player. All querying is client-side: the upstream row store only supplies
rows.
*/
package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dublix/dublix/internal/platform/constants"
	requestutil "github.com/dublix/dublix/internal/platform/request"
	"github.com/dublix/dublix/internal/platform/respond"
	"github.com/dublix/dublix/pkg/pagination"
	"github.com/dublix/dublix/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for catalog discovery.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalog endpoints.
// Everything is public: there is no authenticated surface in this system.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listAnime)
	router.Get("/{identifier}", handler.getAnime)
	router.Get("/{id}/episodes", handler.listEpisodes)
	router.Get("/{id}/episodes/{season}/{episode}", handler.getEpisode)
	router.Get("/{id}/suggestions", handler.listSuggestions)

	return router
}

// # Discovery Endpoints

/*
GET /api/v1/anime.

Description: Retrieves a filtered, sorted, paginated page of the catalog.

Request:
  - q: string (case-insensitive substring against title/japanese title)
  - genres: string (comma-separated; any-of match)
  - status: string (exact)
  - rating: string (exact)
  - sort: string (score | aired | title; anything else preserves source order)
  - page, limit: int

Response:
  - 200: []Anime with pagination meta
*/
func (handler *Handler) listAnime(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Search: queryParams.Get("q"),
		Genres: query.StringSlice(queryParams.Get("genres")),
		Status: queryParams.Get("status"),
		Rating: queryParams.Get("rating"),
		SortBy: parseSortKey(queryParams.Get("sort")),
	}

	result := handler.service.List(request.Context(), filter, Page{Number: params.Page, Size: params.Limit})

	respond.Paginated(writer, result.Items, pagination.NewMeta(params.Page, params.Limit, result.Total))
}

/*
GET /api/v1/anime/{identifier}.

Description: Retrieves one title by UUID or unique slug.

Response:
  - 200: Anime
  - 404: NOT_FOUND
  - 502: UPSTREAM_ERROR
*/
func (handler *Handler) getAnime(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.Param(request, "identifier")

	anime, err := handler.service.GetAnime(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, anime)
}

/*
GET /api/v1/anime/{id}/episodes.

Description: Retrieves the full ordered episode list for a title.
*/
func (handler *Handler) listEpisodes(writer http.ResponseWriter, request *http.Request) {
	animeID := requestutil.Param(request, "id")

	episodes, err := handler.service.ListEpisodes(request.Context(), animeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, episodes)
}

/*
GET /api/v1/anime/{id}/episodes/{season}/{episode}.

Description: Retrieves one episode plus its previous/next neighbors in
(season, episode) order.

Response:
  - 200: EpisodeView
  - 400: VALIDATION_ERROR (non-positive position)
  - 404: NOT_FOUND
*/
func (handler *Handler) getEpisode(writer http.ResponseWriter, request *http.Request) {
	animeID := requestutil.Param(request, "id")

	season, err := requestutil.IntParam(request, "season")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	episode, err := requestutil.IntParam(request, "episode")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.GetEpisode(request.Context(), animeID, season, episode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
GET /api/v1/anime/{id}/suggestions.

Description: Retrieves a short list of other titles shown beside the player.
Degrades to an empty list if the catalog is unreachable.
*/
func (handler *Handler) listSuggestions(writer http.ResponseWriter, request *http.Request) {
	animeID := requestutil.Param(request, "id")

	respond.OK(writer, handler.service.Suggestions(request.Context(), animeID, constants.SuggestionsLimit))
}

// parseSortKey maps the sort query parameter onto an engine sort key.
// Unknown values fall back to source order rather than erroring.
func parseSortKey(raw string) string {
	switch raw {
	case SortScore, SortAired, SortTitle:
		return raw
	default:
		return ""
	}
}
