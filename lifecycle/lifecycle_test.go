package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestInitialExpiry(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		want time.Time
	}{
		{"post gets 24h", KindPost, t0.Add(24 * time.Hour)},
		{"comment gets 7d", KindComment, t0.Add(7 * 24 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InitialExpiry(tt.kind, t0))
		})
	}
}

func TestApplyUpvote(t *testing.T) {
	t.Run("extends by six hours", func(t *testing.T) {
		expires := t0.Add(CommentTTL)
		got := ApplyUpvote(expires, t0)
		assert.Equal(t, expires.Add(6*time.Hour), got)
	})

	t.Run("caps at thirty days from creation", func(t *testing.T) {
		expires := t0.Add(MaxLifetime).Add(-time.Hour)
		got := ApplyUpvote(expires, t0)
		assert.Equal(t, t0.Add(MaxLifetime), got)
	})

	t.Run("stays capped under repeated events", func(t *testing.T) {
		expires := t0.Add(CommentTTL)
		for i := 0; i < 100; i++ {
			expires = ApplyUpvote(expires, t0)
		}
		assert.Equal(t, t0.Add(MaxLifetime), expires)
	})

	t.Run("deterministic over a stable pair", func(t *testing.T) {
		expires := t0.Add(CommentTTL)
		assert.Equal(t, ApplyUpvote(expires, t0), ApplyUpvote(expires, t0))
	})
}

func TestApplyDownvote(t *testing.T) {
	tests := []struct {
		downvotes int64
		terminate bool
	}{
		{0, false},
		{4, false},
		{5, true},
		{6, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.terminate, ApplyDownvote(tt.downvotes), "downvotes=%d", tt.downvotes)
	}
}

func TestShouldReap(t *testing.T) {
	expires := t0.Add(24 * time.Hour)

	tests := []struct {
		name        string
		now         time.Time
		softDeleted bool
		want        bool
	}{
		{"before expiry", expires.Add(-time.Second), false, false},
		{"exactly at expiry", expires, false, true},
		{"after expiry", expires.Add(time.Second), false, true},
		{"already soft deleted", expires.Add(time.Second), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldReap(expires, tt.softDeleted, tt.now))
		})
	}
}
