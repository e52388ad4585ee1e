// Package fetcher answers "give me the bytes for this media id" from the disk
// cache or the origin, populating the cache on the way through.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/cesargomez89/mediacache/internal/cache"
	"github.com/cesargomez89/mediacache/internal/constants"
	"github.com/cesargomez89/mediacache/internal/domain"
	"github.com/cesargomez89/mediacache/internal/logger"
	"github.com/cesargomez89/mediacache/internal/origin"
	"github.com/cesargomez89/mediacache/internal/settings"
	"github.com/cesargomez89/mediacache/internal/thumbnail"
)

// Origin is the remote side of a fetch.
type Origin interface {
	Audio(ctx context.Context, agent *origin.Agent, id string, opts origin.AudioOptions) (io.ReadCloser, error)
	Thumbnails(ctx context.Context, agent *origin.Agent, id string) ([]domain.Thumbnail, error)
	Image(ctx context.Context, url string) (io.ReadCloser, error)
}

type Fetcher struct {
	origin     Origin
	settings   settings.Provider
	cache      *cache.Store
	audioOpts  origin.AudioOptions
	queueDepth int
	logger     *logger.Logger

	group  singleflight.Group
	writes sync.WaitGroup
}

type Option func(*Fetcher)

// WithAudioOptions overrides what is asked of the origin for audio.
func WithAudioOptions(opts origin.AudioOptions) Option {
	return func(f *Fetcher) { f.audioOpts = opts }
}

// WithQueueDepth sets how many chunks the cache writer may fall behind by.
func WithQueueDepth(chunks int) Option {
	return func(f *Fetcher) { f.queueDepth = chunks }
}

func WithLogger(log *logger.Logger) Option {
	return func(f *Fetcher) { f.logger = log }
}

func New(o Origin, sp settings.Provider, store *cache.Store, opts ...Option) *Fetcher {
	f := &Fetcher{
		origin:     o,
		settings:   sp,
		cache:      store,
		audioOpts:  origin.DefaultAudioOptions(),
		queueDepth: constants.FanoutQueueChunks,
		logger:     logger.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.WithComponent("fetcher")
	return f
}

// Audio returns the audio bytes for id. The slice may be shared with
// concurrent callers for the same id and must not be modified.
func (f *Fetcher) Audio(ctx context.Context, id string) ([]byte, error) {
	return f.fetch(ctx, domain.CacheKey{Kind: domain.KindAudio, MediaID: id})
}

// Thumbnail returns the largest cover image for id. The slice may be shared
// with concurrent callers for the same id and must not be modified.
func (f *Fetcher) Thumbnail(ctx context.Context, id string) ([]byte, error) {
	return f.fetch(ctx, domain.CacheKey{Kind: domain.KindThumbnail, MediaID: id})
}

// Wait blocks until every background cache write has finished.
func (f *Fetcher) Wait() {
	f.writes.Wait()
}

func (f *Fetcher) fetch(ctx context.Context, key domain.CacheKey) ([]byte, error) {
	if err := domain.ValidateMediaID(key.MediaID); err != nil {
		return nil, err
	}

	// The fetch outlives a caller that goes away, so the other callers
	// sharing it and the cache write still complete.
	ctx = context.WithoutCancel(ctx)
	v, err, shared := f.group.Do(key.String(), func() (interface{}, error) {
		return f.load(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		f.logger.Debug("Shared in-flight fetch", "key", key.String())
	}
	return v.([]byte), nil
}

func (f *Fetcher) load(ctx context.Context, key domain.CacheKey) ([]byte, error) {
	log := f.logger.WithMedia(string(key.Kind), key.MediaID)

	if f.cache.Exists(key) {
		data, err := f.readCache(key)
		if err == nil {
			log.Debug("Served from cache", "bytes", len(data))
			return data, nil
		}
		log.Warn("Cache entry unreadable, fetching from origin", "error", err)
	}

	snap := f.settings.Current()
	body, err := f.open(ctx, snap.Agent, key)
	if err != nil {
		log.Error("Origin fetch failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer body.Close()

	if !snap.Settings.Cache {
		data, err := io.ReadAll(body)
		if err != nil {
			log.Error("Origin stream failed", "error", err)
			return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
		}
		return data, nil
	}

	branch := newFanout(f.queueDepth)
	f.writes.Add(1)
	go f.populate(key, branch, log)

	data, err := io.ReadAll(io.TeeReader(body, branch))
	branch.finish(err)
	if err != nil {
		log.Error("Origin stream failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	log.Info("Fetched from origin", "bytes", len(data))
	return data, nil
}

func (f *Fetcher) readCache(key domain.CacheKey) ([]byte, error) {
	rc, err := f.cache.Open(key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (f *Fetcher) open(ctx context.Context, agent *origin.Agent, key domain.CacheKey) (io.ReadCloser, error) {
	switch key.Kind {
	case domain.KindAudio:
		return f.origin.Audio(ctx, agent, key.MediaID, f.audioOpts)
	case domain.KindThumbnail:
		variants, err := f.origin.Thumbnails(ctx, agent, key.MediaID)
		if err != nil {
			return nil, err
		}
		best, err := thumbnail.Best(variants)
		if err != nil {
			return nil, err
		}
		return f.origin.Image(ctx, best.URL)
	default:
		return nil, fmt.Errorf("%w: unknown resource kind %q", domain.ErrInvalidRequest, key.Kind)
	}
}

// populate drains the cache branch into the store. Failures only cost the
// cache entry.
func (f *Fetcher) populate(key domain.CacheKey, branch *fanout, log *logger.Logger) {
	defer f.writes.Done()
	if err := f.cache.Write(key, branch); err != nil {
		log.Warn("Cache write skipped", "error", err)
		return
	}
	log.Debug("Cache entry written", "path", f.cache.Path(key))
}
