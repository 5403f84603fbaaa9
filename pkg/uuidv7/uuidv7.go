// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// # Why UUIDv7?
//
// Every identifier the service mints locally (guest identity, comment ids,
// request correlation ids) combines a millisecond time component with random
// bits, so ids sort by creation time and remain unique without coordination.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// # Safety
//
// It panics only if the OS random source is unavailable (extremely rare).
// This is acceptable as OS entropy failure is an unrecoverable system-level error.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}
