// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cache

import (
	"context"
	"fmt"

	platformconfig "github.com/wisp-social/wisp/internal/platform/config"
)

// New selects a cache backend from configuration. The memory backend is the
// default; redis is opt-in for multi-replica deployments.
func New(ctx context.Context, cfg *platformconfig.CacheConfig) (Cache, error) {
	switch cfg.Backend {
	case "memory", "":
		return NewMemory(cfg.MaxItems, cfg.TTL), nil
	case "redis":
		return NewRedis(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}
