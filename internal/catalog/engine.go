// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package catalog

import (
	"sort"
	"strings"

	"github.com/dublix/dublix/pkg/convert"
	"github.com/dublix/dublix/pkg/pointer"
	"github.com/dublix/dublix/pkg/slice"
)

// Sort keys accepted by [Filter.SortBy]. An empty key preserves source order.
const (
	// SortScore orders by numeric score, highest first. Missing or
	// unparseable scores count as 0 and sink to the bottom.
	SortScore = "score"

	// SortAired orders by the broadcast-date text, newest first. The column
	// holds ISO-like date text, so lexicographic order is chronological.
	SortAired = "aired"

	// SortTitle orders by title, A to Z.
	SortTitle = "title"
)

// Filter is the client-side query specification. All fields are optional and
// compose by logical AND; within Genres the match is OR.
type Filter struct {
	// Search matches case-insensitively as a substring of the title or the
	// japanese title. Empty matches everything.
	Search string

	// Genres matches titles whose genre-tag set contains ANY of these tags,
	// case-insensitively. Titles without genre data never match a non-empty
	// genre filter.
	Genres []string

	// Status matches the lifecycle status exactly (case-sensitive).
	Status string

	// Rating matches the content rating exactly.
	Rating string

	// SortBy is one of [SortScore], [SortAired], [SortTitle], or empty.
	SortBy string
}

// Page is a 1-based pagination request. Size must be at least 1; that is a
// caller contract, enforced upstream by pagination parameter clamping.
type Page struct {
	Number int
	Size   int
}

// Result is one page of query output plus pre-pagination totals.
type Result struct {
	Items      []Anime `json:"items"`
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
}

// Query applies filtering, sorting, and pagination to the full in-memory
// catalog and returns a deterministic page of results.
//
// # Semantics
//
// Predicates are independent and commutative, so application order does not
// matter. The sort is stable: entries with equal sort keys keep their relative
// source order. Total counts the filtered set before pagination, and a page
// past the end yields empty Items with unchanged totals.
//
// Query never fails on malformed entries — nullable columns default (score to
// 0, aired to "") rather than excluding the row. The function does not mutate
// the input slice.
func Query(entries []Anime, filter Filter, page Page) Result {
	filtered := applyPredicates(entries, filter)
	sorted := applySort(filtered, filter.SortBy)

	total := len(sorted)
	totalPages := 0
	if total > 0 {
		totalPages = (total + page.Size - 1) / page.Size
	}

	return Result{
		Items:      slicePage(sorted, page),
		Total:      total,
		TotalPages: totalPages,
	}
}

// applyPredicates runs every active filter predicate, AND-composed.
func applyPredicates(entries []Anime, filter Filter) []Anime {
	filtered := entries

	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		filtered = slice.Filter(filtered, func(a Anime) bool {
			return strings.Contains(strings.ToLower(a.Title), needle) ||
				strings.Contains(strings.ToLower(pointer.Val(a.Japanese)), needle)
		})
	}

	if len(filter.Genres) > 0 {
		wanted := lowerSet(filter.Genres)
		filtered = slice.Filter(filtered, func(a Anime) bool {
			for _, tag := range a.GenreTags() {
				if wanted[strings.ToLower(tag)] {
					return true
				}
			}
			return false
		})
	}

	if filter.Status != "" {
		filtered = slice.Filter(filtered, func(a Anime) bool {
			return pointer.Val(a.Status) == filter.Status
		})
	}

	if filter.Rating != "" {
		filtered = slice.Filter(filtered, func(a Anime) bool {
			return pointer.Val(a.Rating) == filter.Rating
		})
	}

	return filtered
}

// applySort orders the filtered set by the single requested key.
//
// The input may share backing storage with the caller's catalog, so sorting
// always works on a copy.
func applySort(entries []Anime, sortBy string) []Anime {
	if sortBy == "" {
		return entries
	}

	sorted := make([]Anime, len(entries))
	copy(sorted, entries)

	switch sortBy {
	case SortScore:
		sort.SliceStable(sorted, func(i, j int) bool {
			return convert.ToFloat(pointer.Val(sorted[i].Score)) >
				convert.ToFloat(pointer.Val(sorted[j].Score))
		})
	case SortAired:
		sort.SliceStable(sorted, func(i, j int) bool {
			return pointer.Val(sorted[i].Aired) > pointer.Val(sorted[j].Aired)
		})
	case SortTitle:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Title < sorted[j].Title
		})
	}

	return sorted
}

// slicePage cuts the 1-based page window out of the filtered, sorted set.
func slicePage(entries []Anime, page Page) []Anime {
	from := (page.Number - 1) * page.Size
	if from < 0 || from >= len(entries) {
		return []Anime{}
	}

	to := from + page.Size
	if to > len(entries) {
		to = len(entries)
	}

	return entries[from:to]
}

// lowerSet builds a lowercase membership set from a tag list.
func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}
