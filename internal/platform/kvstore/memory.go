// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package kvstore

import (
	"context"
	"strings"
	"sync"
)

// Memory is a volatile, map-backed [Store].
//
// It is the test double for the persistence layer and the KV_BACKEND=memory
// option for throwaway installs. All state is lost on restart.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]string)}
}

// Get returns the document stored at key, or [ErrNotFound].
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.docs[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set overwrites the document at key unconditionally.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs[key] = value
	return nil
}

// Delete removes the document at key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.docs, key)
	return nil
}

// Keys enumerates every key beginning with prefix.
func (m *Memory) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0)
	for key := range m.docs {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Ping always succeeds for the in-memory backend.
func (m *Memory) Ping(_ context.Context) error {
	return nil
}
