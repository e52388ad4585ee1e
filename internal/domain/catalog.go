package domain

// Artist is the artist reference on a catalog item
type Artist struct {
	ArtistID string `json:"artistId,omitempty"`
	Name     string `json:"name"`
}

// Album is the album reference on a catalog item
type Album struct {
	AlbumID string `json:"albumId,omitempty"`
	Name    string `json:"name"`
}

// CatalogItem is a single search result
type CatalogItem struct {
	Type       string      `json:"type"`
	VideoID    string      `json:"videoId"`
	Name       string      `json:"name"`
	Artist     Artist      `json:"artist"`
	Album      *Album      `json:"album,omitempty"`
	Duration   int         `json:"duration"` // seconds, 0 when unknown
	Thumbnails []Thumbnail `json:"thumbnails,omitempty"`
}

// Thumbnail is one image variant of a media item
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Area is width*height, the measure thumbnail selection maximizes
func (t Thumbnail) Area() int {
	return t.Width * t.Height
}
