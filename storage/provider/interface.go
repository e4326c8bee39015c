// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package provider

import (
	"context"
	"io"
)

// BlobProvider is the object-store interface the core depends on. Keys are
// opaque and generated by the core; the store never assigns them.
type BlobProvider interface {
	// Put stores the bytes under key. length must be the exact byte count.
	Put(ctx context.Context, key string, body io.Reader, contentType string, length int64) error

	// URLFor yields a retrieval URL for a stored key. The URL may be a public
	// CDN path or a signed link; its lifetime is provider-defined.
	URLFor(ctx context.Context, key string) (string, error)

	// Delete removes a stored object.
	Delete(ctx context.Context, key string) error

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}
