// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package provider

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockBlobProvider is a testify mock of BlobProvider for service tests.
type MockBlobProvider struct {
	mock.Mock
}

func (m *MockBlobProvider) Put(ctx context.Context, key string, body io.Reader, contentType string, length int64) error {
	args := m.Called(ctx, key, body, contentType, length)
	return args.Error(0)
}

func (m *MockBlobProvider) URLFor(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockBlobProvider) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockBlobProvider) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
