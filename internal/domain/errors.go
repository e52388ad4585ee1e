package domain

import "errors"

// Sentinel errors for media acquisition. Only ErrInvalidRequest and
// ErrUpstreamUnavailable are returned to callers of the fetcher; the rest are
// absorbed and turned into a fallback action.
var (
	// ErrInvalidRequest indicates a malformed request, such as an empty media id
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUpstreamUnavailable indicates the origin fetch failed
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrCacheCorrupt indicates a non-empty cache entry could not be decompressed
	ErrCacheCorrupt = errors.New("cache entry corrupt")

	// ErrCacheUnavailable indicates the cache directory cannot be used
	ErrCacheUnavailable = errors.New("cache unavailable")

	// ErrSettingsCorrupt indicates the persisted settings document could not be parsed
	ErrSettingsCorrupt = errors.New("settings corrupt")

	// ErrNoVariants indicates a thumbnail selection over an empty set
	ErrNoVariants = errors.New("no thumbnail variants")
)
