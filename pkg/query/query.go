// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

// Package query parses filter values out of URL query strings.
package query

import (
	"strconv"
	"strings"
)

// Int parses a single integer query parameter, falling back to def when the
// value is absent or malformed.
func Int(val string, def int) int {
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return n
}

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
//
// "Action, Comedy," becomes ["Action", "Comedy"]; empty segments are dropped.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
