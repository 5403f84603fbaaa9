// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package social

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/dublix/dublix/internal/guest"
	"github.com/dublix/dublix/internal/platform/apperr"
	"github.com/dublix/dublix/pkg/uuidv7"
)

// createdAtLayout keeps millisecond precision so same-second comments still
// sort in submission order across loads.
const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Attributor resolves user ids to display profiles. Satisfied by
// [guest.Service].
type Attributor interface {
	Attribution(ctx context.Context, userIDs []string) (map[string]guest.ProfileRef, error)
}

// # Service Layer

// Service orchestrates the comment trees attached to catalog titles.
type Service struct {
	commentRepository CommentRepository
	attributor        Attributor
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(commentRepo CommentRepository, attributor Attributor, logger *slog.Logger) *Service {
	return &Service{
		commentRepository: commentRepo,
		attributor:        attributor,
		logger:            logger,
	}
}

// CreateCommentInput defines one comment submission.
type CreateCommentInput struct {
	AnimeID  string
	UserID   string
	Content  string
	ParentID *string
}

// # Comment Tree Operations

/*
Create validates and appends one comment.

Description: Replies must point at an existing top-level comment; the tree is
two levels deep and never grows a third. No write happens when validation
fails.

Returns:
  - *Comment: The stored comment
  - error: Validation failures or storage failures
*/
func (service *Service) Create(ctx context.Context, input CreateCommentInput) (*Comment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, apperr.ValidationError("comment content must not be empty")
	}

	if input.ParentID != nil {
		parent, err := service.findComment(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperr.NotFound("Comment")
		}
		if parent.ParentID != nil {
			return nil, apperr.ValidationError("replies to replies are not supported")
		}
	}

	comment := Comment{
		ID:        uuidv7.New(),
		AnimeID:   input.AnimeID,
		UserID:    input.UserID,
		Content:   content,
		ParentID:  input.ParentID,
		CreatedAt: time.Now().UTC().Format(createdAtLayout),
	}

	if err := service.commentRepository.Append(ctx, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("anime_id", comment.AnimeID),
	)

	return &comment, nil
}

/*
ListTopLevel returns a title's top-level comments, newest first, attributed.

Description: Top-level discussion surfaces recent activity, so the sort is
descending by creation time. Authors missing from the profile map render as
the anonymous placeholder.
*/
func (service *Service) ListTopLevel(ctx context.Context, animeID string) ([]AttributedComment, error) {
	comments, err := service.commentRepository.All(ctx)
	if err != nil {
		return nil, err
	}

	topLevel := make([]Comment, 0)
	for _, comment := range comments {
		if comment.AnimeID == animeID && comment.ParentID == nil {
			topLevel = append(topLevel, comment)
		}
	}

	sort.SliceStable(topLevel, func(i, j int) bool {
		return topLevel[i].CreatedAt > topLevel[j].CreatedAt
	})

	return service.attribute(ctx, topLevel)
}

/*
ListReplies returns a comment's replies, oldest first, attributed.

Description: Reply threads read chronologically, the opposite ordering of the
top-level list.
*/
func (service *Service) ListReplies(ctx context.Context, parentID string) ([]AttributedComment, error) {
	comments, err := service.commentRepository.All(ctx)
	if err != nil {
		return nil, err
	}

	replies := make([]Comment, 0)
	for _, comment := range comments {
		if comment.ParentID != nil && *comment.ParentID == parentID {
			replies = append(replies, comment)
		}
	}

	sort.SliceStable(replies, func(i, j int) bool {
		return replies[i].CreatedAt < replies[j].CreatedAt
	})

	return service.attribute(ctx, replies)
}

/*
Delete removes a comment and its direct replies.

Returns:
  - error: apperr.NotFound when no comment has the id; storage failures
*/
func (service *Service) Delete(ctx context.Context, commentID string) error {
	deleted, err := service.commentRepository.DeleteCascade(ctx, commentID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("Comment")
	}

	service.logger.Info("comment_deleted", slog.String("comment_id", commentID))

	return nil
}

// findComment scans the collection for one id.
func (service *Service) findComment(ctx context.Context, commentID string) (*Comment, error) {
	comments, err := service.commentRepository.All(ctx)
	if err != nil {
		return nil, err
	}

	for i := range comments {
		if comments[i].ID == commentID {
			return &comments[i], nil
		}
	}

	return nil, nil
}

// attribute joins comments with their authors' display profiles.
func (service *Service) attribute(ctx context.Context, comments []Comment) ([]AttributedComment, error) {
	userIDs := make([]string, 0, len(comments))
	for _, comment := range comments {
		userIDs = append(userIDs, comment.UserID)
	}

	profiles, err := service.attributor.Attribution(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	attributed := make([]AttributedComment, 0, len(comments))
	for _, comment := range comments {
		attributed = append(attributed, AttributedComment{
			Comment: comment,
			User:    profiles[comment.UserID],
		})
	}

	return attributed, nil
}
