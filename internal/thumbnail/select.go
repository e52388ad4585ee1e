// Package thumbnail picks the image variant to download for a media item.
package thumbnail

import "github.com/cesargomez89/mediacache/internal/domain"

// Best returns the variant with the largest width*height. Ties keep the
// earliest variant.
func Best(variants []domain.Thumbnail) (domain.Thumbnail, error) {
	if len(variants) == 0 {
		return domain.Thumbnail{}, domain.ErrNoVariants
	}
	best := variants[0]
	for _, v := range variants[1:] {
		if v.Area() > best.Area() {
			best = v
		}
	}
	return best, nil
}
