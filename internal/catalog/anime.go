// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package catalog

import (
	"strings"

	"github.com/dublix/dublix/pkg/pointer"
)

// Anime is one catalog title as served by the external row store.
//
// Rows are read-only from this service's perspective: the catalog source
// owns their lifecycle, and most display columns are nullable text.
type Anime struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Slug      string  `json:"slug"`
	Banner    *string `json:"banner"`
	Score     *string `json:"score"`
	Japanese  *string `json:"japanese"`
	Episodes  *string `json:"episodes"`
	Status    *string `json:"status"`
	Aired     *string `json:"aired"`
	Genres    *string `json:"genres"`
	Duration  *string `json:"duration"`
	Rating    *string `json:"rating"`
	CreatedAt string  `json:"created_at"`
}

// GenreTags splits the comma-joined genre column into trimmed tags.
// A title with no genre data yields an empty set.
func (a Anime) GenreTags() []string {
	raw := pointer.Val(a.Genres)
	if raw == "" {
		return nil
	}

	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if clean := strings.TrimSpace(tag); clean != "" {
			tags = append(tags, clean)
		}
	}
	return tags
}

// Episode is one playable episode belonging to exactly one [Anime].
//
// Within a title, (season, episode) pairs are unique and the row store
// returns them ordered by season then episode; next/previous navigation
// depends on that ordering.
type Episode struct {
	ID        string  `json:"id"`
	AnimeID   string  `json:"anime_id"`
	Season    int     `json:"season"`
	Episode   int     `json:"episode"`
	Title     *string `json:"title"`
	Iframe    *string `json:"iframe"`
	URL       *string `json:"url"`
	CreatedAt string  `json:"created_at"`
}
