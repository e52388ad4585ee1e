package httpapp

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/mediacache/internal/cache"
	"github.com/cesargomez89/mediacache/internal/domain"
	"github.com/cesargomez89/mediacache/internal/logger"
)

type MediaFetcher interface {
	Audio(ctx context.Context, id string) ([]byte, error)
	Thumbnail(ctx context.Context, id string) ([]byte, error)
}

type Catalog interface {
	Search(ctx context.Context, query string) ([]domain.CatalogItem, error)
	Suggest(ctx context.Context, query string) ([]string, error)
}

type SettingsStore interface {
	Get() domain.Settings
	Update(next domain.Settings) error
}

type CacheStats interface {
	Stats() (cache.Stats, error)
}

type Handler struct {
	Fetcher  MediaFetcher
	Catalog  Catalog
	Settings SettingsStore
	Cache    CacheStats
	Logger   *logger.Logger
}

func NewHandler(f MediaFetcher, c Catalog, s SettingsStore, cs CacheStats, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Default()
	}
	return &Handler{
		Fetcher:  f,
		Catalog:  c,
		Settings: s,
		Cache:    cs,
		Logger:   log.WithComponent("http"),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/play/{id}", h.Play)
	r.Get("/thumbnail/{id}", h.Thumbnail)

	r.Get("/search", h.Search)
	r.Get("/suggest", h.Suggest)

	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.UpdateSettings)

	r.Get("/cache/stats", h.CacheStats)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Error("Failed to encode response", "error", err)
	}
}
