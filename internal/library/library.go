// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package library

import "github.com/dublix/dublix/internal/catalog"

// WatchProgress is the playback position persisted per title.
//
// Two on-disk shapes exist for the same key pattern. Early installs wrote
// only {season, episode}; current installs also record the title's id, slug,
// a millisecond timestamp, and a completion fraction so the record can drive
// the Continue Watching view. Reads accept either shape; missing fields are
// simply absent, never an error.
type WatchProgress struct {
	AnimeID   string   `json:"animeId,omitempty"`
	Slug      *string  `json:"slug,omitempty"`
	Season    int      `json:"season"`
	Episode   int      `json:"episode"`
	Timestamp int64    `json:"timestamp,omitempty"`
	Progress  *float64 `json:"progress,omitempty"`
}

// Resumable reports whether the record carries enough identity to appear in
// the Continue Watching view. Legacy {season, episode} records do not.
func (p WatchProgress) Resumable() bool {
	return p.AnimeID != "" && p.Slug != nil && *p.Slug != ""
}

// HistoryEntry is one watch-progress record resolved against the catalog.
type HistoryEntry struct {
	Anime    catalog.Anime `json:"anime"`
	Progress WatchProgress `json:"progress"`
}
