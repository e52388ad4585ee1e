// Package catalog wraps the external search and suggest service and narrows
// its results to items the media pipeline can play.
package catalog

import (
	"context"

	"github.com/cesargomez89/mediacache/internal/domain"
)

type Provider interface {
	Search(ctx context.Context, query string) ([]domain.CatalogItem, error)
	Suggest(ctx context.Context, query string) ([]string, error)
}
