package validation

import (
	"strings"

	"github.com/rivo/uniseg"
	"github.com/wisp-social/wisp/internal/apierr"
	"github.com/wisp-social/wisp/posts/models"
)

const (
	// MaxBodyGraphemes bounds the textual body, counted in grapheme clusters
	// so composed emoji and combining marks count once.
	MaxBodyGraphemes = 500

	// MaxMediaBytes bounds an uploaded video.
	MaxMediaBytes = 100 << 20
)

// ValidateCreatePost checks body length, visibility, and media constraints.
func ValidateCreatePost(req *models.CreatePostRequest) error {
	if req == nil {
		return apierr.Invalid("create post request is required")
	}

	if uniseg.GraphemeClusterCount(req.Body) > MaxBodyGraphemes {
		return apierr.Invalid("body exceeds 500 characters")
	}

	if !req.Visibility.Valid() {
		return apierr.Invalid("visibility must be public or friends")
	}

	if req.Media != nil {
		if req.Media.Size > MaxMediaBytes {
			return apierr.New(apierr.KindPayloadTooLarge, "media exceeds 100 MiB")
		}
		if req.Media.Size <= 0 {
			return apierr.Invalid("media is empty")
		}
		if !IsVideoContentType(req.Media.ContentType) {
			return apierr.New(apierr.KindUnsupportedMedia, "media must be a video")
		}
	}

	return nil
}

// IsVideoContentType reports whether the declared MIME type is a video type.
func IsVideoContentType(contentType string) bool {
	mediaType := strings.TrimSpace(strings.ToLower(contentType))
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = strings.TrimSpace(mediaType[:idx])
	}
	return strings.HasPrefix(mediaType, "video/")
}
