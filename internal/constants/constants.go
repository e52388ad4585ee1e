// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort             = "8787"
	DefaultDBPath           = "mediacache.db"
	DefaultSettingsPath     = "./settings.json"
	DefaultCacheDir         = "./cache"
	DefaultCatalogURL       = "http://127.0.0.1:8000"
	DefaultOriginURL        = "http://127.0.0.1:8001"
	DefaultAudioFilter      = "audioonly"
	DefaultAudioQuality     = "highestaudio"
	DefaultPlayerClients    = "IOS,WEB_CREATOR"
	DefaultCompression      = 6
	DefaultCatalogCacheTTL  = 12 * time.Hour
	DefaultHTTPTimeout      = 5 * time.Minute
	CatalogHTTPTimeout      = 15 * time.Second
	ImageHTTPTimeout        = 30 * time.Second
	DefaultRetryCount       = 3
	DefaultRetryBase        = 1 * time.Second
	CatalogRequestInterval  = 100 * time.Millisecond
	ShutdownTimeout         = 5 * time.Second
	DefaultCookieDomain     = ".youtube.com"
	DefaultCookiePath       = "/"
	MaxCompressionLevel     = 11
	MaxSettingsRequestBytes = 1 << 20
)

// Catalog filtering
const (
	// MaxPlayableDuration excludes mixes and full albums from search results.
	MaxPlayableDuration = 1200 // seconds
	ItemTypeSong        = "SONG"
	ItemTypeVideo       = "VIDEO"
)

// Cache file naming
const (
	CacheFileExt        = ".cache"
	ThumbnailFileSuffix = "-img"
	TempFileExt         = ".tmp"
)

// Fan-out between the caller and the cache writer
const (
	FanoutQueueChunks = 256
)

// MIME Types
const (
	MimeTypeFLAC        = "audio/flac"
	MimeTypeMP3         = "audio/mpeg"
	MimeTypeMP4         = "audio/mp4"
	MimeTypeOGG         = "audio/ogg"
	MimeTypeWebM        = "audio/webm"
	MimeTypeJSON        = "application/json"
	MimeTypeOctetStream = "application/octet-stream"
)

// File Permissions
const (
	DirPermissions  = 0755
	FilePermissions = 0644
)

// Characters that may not appear in a media id used as a file name
const InvalidPathChars = "<>:\"/\\|?*"
