package domain

import (
	"fmt"
	"strings"

	"github.com/cesargomez89/mediacache/internal/constants"
)

// ResourceKind distinguishes the two cached artifacts of a media id
type ResourceKind string

const (
	KindAudio     ResourceKind = "audio"
	KindThumbnail ResourceKind = "thumbnail"
)

// CacheKey identifies one cached artifact
type CacheKey struct {
	Kind    ResourceKind
	MediaID string
}

func (k CacheKey) String() string {
	return string(k.Kind) + ":" + k.MediaID
}

// ValidateMediaID rejects ids that are empty or could not be used as a file name.
func ValidateMediaID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: empty media id", ErrInvalidRequest)
	}
	if id == "." || id == ".." || strings.ContainsAny(id, constants.InvalidPathChars) {
		return fmt.Errorf("%w: media id %q is not a valid identifier", ErrInvalidRequest, id)
	}
	return nil
}
