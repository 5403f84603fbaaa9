// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package social

import "github.com/dublix/dublix/internal/guest"

// Comment is one node in a title's two-level discussion tree.
//
// Top-level comments have a nil ParentID; replies point at a top-level
// comment. Replies to replies do not exist. Only the author's user id is
// persisted; display data is resolved from the profile map at read time.
type Comment struct {
	ID        string  `json:"id"`
	AnimeID   string  `json:"anime_id"`
	UserID    string  `json:"user_id"`
	Content   string  `json:"content"`
	ParentID  *string `json:"parent_id,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// AttributedComment is a comment joined with its author's display profile.
type AttributedComment struct {
	Comment
	User guest.ProfileRef `json:"user"`
}
