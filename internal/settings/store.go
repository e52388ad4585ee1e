// Package settings persists the user's settings document and derives the
// origin Agent from the credentials it holds.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/cesargomez89/mediacache/internal/domain"
	"github.com/cesargomez89/mediacache/internal/logger"
	"github.com/cesargomez89/mediacache/internal/origin"
	"github.com/cesargomez89/mediacache/internal/storage"
)

// Snapshot is an immutable view of the settings and the Agent derived from
// them. Holders keep using the snapshot they read; updates publish a new one.
type Snapshot struct {
	Settings domain.Settings
	Agent    *origin.Agent
}

// Provider hands out the current snapshot.
type Provider interface {
	Current() *Snapshot
}

type Store struct {
	path    string
	logger  *logger.Logger
	current atomic.Pointer[Snapshot]
	writeMu sync.Mutex
}

var _ Provider = (*Store)(nil)

// NewStore serves defaults until Load is called.
func NewStore(path string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Default()
	}
	s := &Store{path: path, logger: log.WithComponent("settings")}
	s.publish(domain.DefaultSettings())
	return s
}

// document mirrors the file with optional fields so absent keys get defaults.
type document struct {
	Cookies []domain.Credential `json:"cookies"`
	Cache   *bool               `json:"cache"`
}

// Load reads the settings file. A missing or unparsable file is replaced with
// the defaults on disk; the returned error is only non-nil when that rewrite
// fails, and the defaults are in effect either way.
func (s *Store) Load() (domain.Settings, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	loaded, err := s.read()
	if err == nil {
		s.publish(loaded)
		s.logger.Info("Settings loaded", "path", s.path, "cookies", len(loaded.Cookies), "cache", loaded.Cache)
		return loaded.Clone(), nil
	}

	s.logger.Warn("Resetting settings to defaults", "path", s.path, "error", err)
	defaults := domain.DefaultSettings()
	s.publish(defaults)
	if werr := s.write(defaults); werr != nil {
		return defaults, fmt.Errorf("failed to write default settings: %w", werr)
	}
	return defaults, nil
}

func (s *Store) read() (domain.Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Settings{}, err
		}
		return domain.Settings{}, fmt.Errorf("%w: %v", domain.ErrSettingsCorrupt, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Settings{}, fmt.Errorf("%w: %v", domain.ErrSettingsCorrupt, err)
	}

	out := domain.DefaultSettings()
	if doc.Cookies != nil {
		out.Cookies = doc.Cookies
	}
	if doc.Cache != nil {
		out.Cache = *doc.Cache
	}
	return out, nil
}

// Get returns a copy of the current settings.
func (s *Store) Get() domain.Settings {
	return s.Current().Settings.Clone()
}

// Update persists next as the whole document and then makes it current. On a
// write failure the previous settings stay in effect.
func (s *Store) Update(next domain.Settings) error {
	next = next.Clone()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.write(next); err != nil {
		return err
	}
	snap := s.publish(next)
	if err := snap.Agent.Err(); err != nil {
		s.logger.Warn("Credentials saved but unusable", "error", err)
	}
	s.logger.Info("Settings updated", "cookies", len(next.Cookies), "cache", next.Cache)
	return nil
}

// Current returns the active snapshot.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// CurrentAgent returns the Agent of the active snapshot. Do not hold it across
// an Update.
func (s *Store) CurrentAgent() *origin.Agent {
	return s.Current().Agent
}

func (s *Store) publish(st domain.Settings) *Snapshot {
	snap := &Snapshot{Settings: st, Agent: origin.NewAgent(st.Cookies)}
	s.current.Store(snap)
	return snap
}

func (s *Store) write(st domain.Settings) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := storage.WriteFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
