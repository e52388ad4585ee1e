// Package cache stores fetched media as brotli-compressed files, one file per
// (kind, media id). Entries are written once through a temp file and never
// updated in place or evicted.
package cache

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"

	"github.com/cesargomez89/mediacache/internal/constants"
	"github.com/cesargomez89/mediacache/internal/domain"
	"github.com/cesargomez89/mediacache/internal/storage"
)

type Store struct {
	dir   string
	level int
}

// NewStore returns a store rooted at dir. The directory is created lazily on
// the first write.
func NewStore(dir string, level int) *Store {
	if level < 0 || level > constants.MaxCompressionLevel {
		level = constants.DefaultCompression
	}
	return &Store{dir: dir, level: level}
}

func (s *Store) Dir() string {
	return s.dir
}

// Path maps a key to its file: <id>.cache for audio, <id>-img.cache for thumbnails.
func (s *Store) Path(key domain.CacheKey) string {
	name := key.MediaID
	if key.Kind == domain.KindThumbnail {
		name += constants.ThumbnailFileSuffix
	}
	return filepath.Join(s.dir, name+constants.CacheFileExt)
}

// Exists reports whether a usable entry is present. A zero-byte file is a miss.
func (s *Store) Exists(key domain.CacheKey) bool {
	info, err := os.Stat(s.Path(key))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > 0
}

// Open streams the decompressed entry. Decode failures surface from Read as
// domain.ErrCacheCorrupt.
func (s *Store) Open(key domain.CacheKey) (io.ReadCloser, error) {
	f, err := os.Open(s.Path(key))
	if err != nil {
		return nil, err
	}
	return &entryReader{file: f, br: brotli.NewReader(f)}, nil
}

// Write compresses src into the entry for key as it is read. The entry only
// becomes visible once src is drained and the compressed file is complete.
func (s *Store) Write(key domain.CacheKey, src io.Reader) (err error) {
	if err = s.ensureDir(); err != nil {
		return err
	}

	final := s.Path(key)
	tmp := storage.TempPath(final)

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = storage.RemoveFile(tmp)
		}
	}()

	bw := brotli.NewWriterLevel(f, s.level)
	if _, err = io.Copy(bw, src); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err = bw.Close(); err != nil {
		return fmt.Errorf("failed to flush cache entry: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close cache entry: %w", err)
	}
	if err = storage.MoveFile(tmp, final); err != nil {
		return fmt.Errorf("failed to commit cache entry: %w", err)
	}
	return nil
}

func (s *Store) ensureDir() error {
	info, err := os.Stat(s.dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", domain.ErrCacheUnavailable, s.dir)
		}
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	if err := storage.EnsureDir(s.dir); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
	}
	return nil
}

// Stats summarizes what is on disk
type Stats struct {
	AudioEntries     int   `json:"audio_entries"`
	ThumbnailEntries int   `json:"thumbnail_entries"`
	TotalBytes       int64 `json:"total_bytes"`
}

// Stats counts committed entries. A missing directory is an empty cache.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return st, nil
		}
		return st, err
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, constants.CacheFileExt) {
			continue
		}
		info, err := e.Info()
		if err != nil || info.Size() == 0 {
			continue
		}
		if strings.HasSuffix(name, constants.ThumbnailFileSuffix+constants.CacheFileExt) {
			st.ThumbnailEntries++
		} else {
			st.AudioEntries++
		}
		st.TotalBytes += info.Size()
	}
	return st, nil
}

type entryReader struct {
	file *os.File
	br   *brotli.Reader
}

func (r *entryReader) Read(p []byte) (int, error) {
	n, err := r.br.Read(p)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w: %v", domain.ErrCacheCorrupt, err)
	}
	return n, err
}

func (r *entryReader) Close() error {
	return r.file.Close()
}
