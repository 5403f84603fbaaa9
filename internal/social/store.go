// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package social

import "context"

// # Repository Contract

// CommentRepository persists the whole-collection comments document.
//
// The collection is one serialized array; every mutation is a full
// read-modify-write of it.
type CommentRepository interface {
	// All returns every stored comment across all titles.
	All(ctx context.Context) ([]Comment, error)

	// Append adds one comment to the collection.
	Append(ctx context.Context, comment Comment) error

	// DeleteCascade removes the comment with the given id and every comment
	// whose parent id equals it, in one write. It reports whether the id
	// existed.
	DeleteCascade(ctx context.Context, commentID string) (bool, error)
}
