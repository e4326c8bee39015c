package validation

import (
	"github.com/rivo/uniseg"
	"github.com/wisp-social/wisp/internal/apierr"
)

const (
	maxDisplayNameGraphemes = 64
	maxBioGraphemes         = 280
)

// ValidateProfile checks the mutable profile fields.
func ValidateProfile(displayName, bio string) error {
	if displayName == "" {
		return apierr.Invalid("display name is required")
	}
	if uniseg.GraphemeClusterCount(displayName) > maxDisplayNameGraphemes {
		return apierr.Invalid("display name exceeds 64 characters")
	}
	if uniseg.GraphemeClusterCount(bio) > maxBioGraphemes {
		return apierr.Invalid("bio exceeds 280 characters")
	}
	return nil
}
