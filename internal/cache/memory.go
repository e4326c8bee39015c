// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// memoryCache is a bounded in-process cache: LRU eviction plus a default TTL.
// Per-call TTLs shorter than the default are honored by storing an explicit
// deadline alongside the value.
type memoryCache struct {
	lru *expirable.LRU[string, memoryEntry]
}

type memoryEntry struct {
	value    []byte
	deadline time.Time
}

// NewMemory creates a bounded LRU cache with the given capacity and default TTL.
func NewMemory(maxItems int, defaultTTL time.Duration) Cache {
	if maxItems <= 0 {
		maxItems = 1024
	}
	return &memoryCache{
		lru: expirable.NewLRU[string, memoryEntry](maxItems, nil, defaultTTL),
	}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	entry, ok := m.lru.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	if !entry.deadline.IsZero() && time.Now().After(entry.deadline) {
		m.lru.Remove(key)
		return nil, ErrMiss
	}
	return entry.value, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.deadline = time.Now().Add(ttl)
	}
	m.lru.Add(key, entry)
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.lru.Remove(key)
	return nil
}

func (m *memoryCache) Close() error {
	m.lru.Purge()
	return nil
}
