// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

/*
Package social provides the per-title comment trees.

Comments form a two-level tree: top-level discussion on a title, plus direct
replies. Every comment is authored by the install's guest identity; display
data is resolved at read time from the profile map so renames apply to
history.
*/
package social

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dublix/dublix/internal/guest"
	requestutil "github.com/dublix/dublix/internal/platform/request"
	"github.com/dublix/dublix/internal/platform/respond"
	"github.com/dublix/dublix/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the HTTP layer for comments.
//
// The guest identity is resolved once at process start and injected here;
// every created comment is attributed to it.
type Handler struct {
	service  *Service
	identity *guest.Identity
}

// NewHandler constructs a new social [Handler].
func NewHandler(service *Service, identity *guest.Identity) *Handler {
	return &Handler{service: service, identity: identity}
}

// TitleRoutes returns the routes mounted under a title's comment collection.
func (handler *Handler) TitleRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listTopLevel)
	router.Post("/", handler.createComment)

	return router
}

// Routes returns the routes addressing individual comments.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}/replies", handler.listReplies)
	router.Delete("/{id}", handler.deleteComment)

	return router
}

// # Comment Endpoints

/*
GET /api/v1/anime/{animeID}/comments.

Description: Retrieves a title's top-level comments, newest first, each
joined with its author's display profile.
*/
func (handler *Handler) listTopLevel(writer http.ResponseWriter, request *http.Request) {
	animeID := requestutil.Param(request, "animeID")

	comments, err := handler.service.ListTopLevel(request.Context(), animeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}

// createCommentRequest defines the expected JSON payload for a submission.
type createCommentRequest struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id"`
}

/*
POST /api/v1/anime/{animeID}/comments.

Description: Appends a comment to a title's tree, attributed to the guest
identity. A parent_id makes it a reply; replies only attach to top-level
comments.

Request:
  - body: createCommentRequest

Response:
  - 201: Comment: The stored comment
  - 400: VALIDATION_ERROR: Empty content, oversized content, reply to a reply
  - 404: NOT_FOUND: parent_id matches no comment
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	animeID := requestutil.Param(request, "animeID")

	var input createCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("content", input.Content).MaxLen("content", input.Content, 1000)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Create(request.Context(), CreateCommentInput{
		AnimeID:  animeID,
		UserID:   handler.identity.ID,
		Content:  input.Content,
		ParentID: input.ParentID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
GET /api/v1/comments/{id}/replies.

Description: Retrieves a comment's replies, oldest first, attributed.
*/
func (handler *Handler) listReplies(writer http.ResponseWriter, request *http.Request) {
	parentID := requestutil.Param(request, "id")

	replies, err := handler.service.ListReplies(request.Context(), parentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, replies)
}

/*
DELETE /api/v1/comments/{id}.

Description: Removes a comment and all of its direct replies in one update.

Response:
  - 204: Removed
  - 404: NOT_FOUND: No comment with this id
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	commentID := requestutil.Param(request, "id")

	if err := handler.service.Delete(request.Context(), commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
