// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

/*
Package convert provides quick type-conversion utilities.

It wraps standards like [strconv] to provide fault-tolerant conversions
(e.g., returning 0 when string parsing fails). This mirrors how the catalog
treats its loosely-typed text columns: a score of "N/A" simply counts as 0.

Do not use this package if distinguishing between malformed data and zero values
is important in your domain logic; use explicit standard libraries instead.
*/
package convert

import "strconv"

// ToInt converts a string to an integer, silencing parsing errors.
// It returns 0 if the string is empty or cannot be parsed.
func ToInt(s string) int {
	if s == "" {
		return 0
	}
	v, _ := strconv.Atoi(s)
	return v
}

// ToFloat converts a string to a float64, silencing parsing errors.
// It returns 0 if the string is empty or cannot be parsed.
func ToFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
