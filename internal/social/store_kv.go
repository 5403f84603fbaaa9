// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

/*
Package social (KV) implements the storage layer for comments.

# Document Mapping
  - anime_comments: one JSON array holding every comment across all titles.

The collection lives in a single document, so mutations are whole-document
read-modify-write cycles serialized by a process-local mutex. A document that
fails to parse loads as an empty collection.
*/
package social

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dublix/dublix/internal/platform/constants"
	"github.com/dublix/dublix/internal/platform/kvstore"
	"github.com/dublix/dublix/pkg/slice"
)

// # Repository Implementation

// KVCommentRepository implements [CommentRepository] over a [kvstore.Store].
type KVCommentRepository struct {
	store kvstore.Store
	mutex sync.Mutex
}

// NewCommentRepository creates the KV-backed comment repository.
func NewCommentRepository(store kvstore.Store) *KVCommentRepository {
	return &KVCommentRepository{store: store}
}

// All reads the comments document. Absent or unreadable loads as empty.
func (repository *KVCommentRepository) All(ctx context.Context) ([]Comment, error) {
	raw, err := repository.store.Get(ctx, constants.KeyComments)
	if err != nil {
		if kvstore.IsNotFound(err) {
			return []Comment{}, nil
		}
		return nil, fmt.Errorf("comments_load_failed: %w", err)
	}

	var comments []Comment
	if err := json.Unmarshal([]byte(raw), &comments); err != nil {
		return []Comment{}, nil
	}

	return comments, nil
}

// Append adds one comment in a single read-modify-write.
func (repository *KVCommentRepository) Append(ctx context.Context, comment Comment) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	comments, err := repository.All(ctx)
	if err != nil {
		return err
	}

	return repository.save(ctx, append(comments, comment))
}

/*
DeleteCascade removes a comment and its direct replies in one write.

Description: The cascade is single-level, matching the two-level shape of the
tree: the node itself plus every node whose parent id equals it. The whole
operation is one read-modify-write, so a reader never observes a reply whose
parent has already vanished.
*/
func (repository *KVCommentRepository) DeleteCascade(ctx context.Context, commentID string) (bool, error) {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	comments, err := repository.All(ctx)
	if err != nil {
		return false, err
	}

	remaining := slice.Filter(comments, func(comment Comment) bool {
		if comment.ID == commentID {
			return false
		}
		return comment.ParentID == nil || *comment.ParentID != commentID
	})

	if len(remaining) == len(comments) {
		return false, nil
	}

	return true, repository.save(ctx, remaining)
}

func (repository *KVCommentRepository) save(ctx context.Context, comments []Comment) error {
	raw, err := json.Marshal(comments)
	if err != nil {
		return fmt.Errorf("comments_encode_failed: %w", err)
	}

	if err := repository.store.Set(ctx, constants.KeyComments, string(raw)); err != nil {
		return fmt.Errorf("comments_save_failed: %w", err)
	}

	return nil
}
