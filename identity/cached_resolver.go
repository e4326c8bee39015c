// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/wisp-social/wisp/internal/cache"
	"github.com/wisp-social/wisp/internal/pkg/log"
)

// cachedResolver decorates a Resolver with a short-TTL cache keyed by a digest
// of the bearer. Resolution happens on every authenticated request, so a warm
// cache removes the validation cost from the hot path; the TTL bounds how long
// a revoked credential keeps resolving.
type cachedResolver struct {
	inner Resolver
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedResolver wraps a resolver with the given cache and TTL.
func NewCachedResolver(inner Resolver, c cache.Cache, ttl time.Duration) Resolver {
	return &cachedResolver{inner: inner, cache: c, ttl: ttl}
}

func (r *cachedResolver) Resolve(ctx context.Context, bearer string) (*Identity, error) {
	key := cacheKey(bearer)

	if raw, err := r.cache.Get(ctx, key); err == nil {
		var identity Identity
		if err := json.Unmarshal(raw, &identity); err == nil {
			return &identity, nil
		}
		// Corrupt entry: drop it and fall through to a fresh resolution.
		_ = r.cache.Delete(ctx, key)
	} else if !errors.Is(err, cache.ErrMiss) {
		// Cache backend trouble is not an auth failure; resolve directly.
		log.WarnWithContext(ctx, "identity cache read failed: %v", err)
	}

	identity, err := r.inner.Resolve(ctx, bearer)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(identity); err == nil {
		if err := r.cache.Set(ctx, key, raw, r.ttl); err != nil {
			log.WarnWithContext(ctx, "identity cache write failed: %v", err)
		}
	}

	return identity, nil
}

// cacheKey digests the bearer so raw credentials never sit in cache storage.
func cacheKey(bearer string) string {
	sum := sha256.Sum256([]byte(bearer))
	return "identity:" + hex.EncodeToString(sum[:])
}
