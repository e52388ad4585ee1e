package catalog

import (
	"context"
	"strings"

	"github.com/cesargomez89/mediacache/internal/constants"
	"github.com/cesargomez89/mediacache/internal/domain"
	"github.com/cesargomez89/mediacache/internal/logger"
)

// Gateway is what the request surface calls for search and suggest.
type Gateway struct {
	provider Provider
	logger   *logger.Logger
}

func NewGateway(provider Provider, log *logger.Logger) *Gateway {
	if log == nil {
		log = logger.Default()
	}
	return &Gateway{provider: provider, logger: log.WithComponent("catalog")}
}

// Search returns the provider's results that are playable, in provider order.
func (g *Gateway) Search(ctx context.Context, query string) ([]domain.CatalogItem, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.CatalogItem{}, nil
	}

	items, err := g.provider.Search(ctx, query)
	if err != nil {
		g.logger.Warn("Search failed", "query", query, "error", err)
		return nil, err
	}

	playable := FilterPlayable(items)
	g.logger.Debug("Search", "query", query, "results", len(items), "playable", len(playable))
	return playable, nil
}

// Suggest passes completions through unchanged.
func (g *Gateway) Suggest(ctx context.Context, query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return []string{}, nil
	}

	out, err := g.provider.Suggest(ctx, query)
	if err != nil {
		g.logger.Warn("Suggest failed", "query", query, "error", err)
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// Playable keeps songs and videos that have an id and are shorter than the
// duration ceiling. Unknown duration passes.
func Playable(item domain.CatalogItem) bool {
	if item.Type != constants.ItemTypeSong && item.Type != constants.ItemTypeVideo {
		return false
	}
	if item.VideoID == "" {
		return false
	}
	return item.Duration < constants.MaxPlayableDuration
}

func FilterPlayable(items []domain.CatalogItem) []domain.CatalogItem {
	out := make([]domain.CatalogItem, 0, len(items))
	for _, item := range items {
		if Playable(item) {
			out = append(out, item)
		}
	}
	return out
}
