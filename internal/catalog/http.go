package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/cesargomez89/mediacache/internal/constants"
	"github.com/cesargomez89/mediacache/internal/domain"
	"github.com/cesargomez89/mediacache/internal/httpclient"
)

// HTTPProvider talks to a JSON catalog API.
type HTTPProvider struct {
	BaseURL string
	client  *httpclient.Client
}

func NewHTTPProvider(baseURL string, client *httpclient.Client) *HTTPProvider {
	if client == nil {
		client = httpclient.NewClient(nil, constants.CatalogRequestInterval)
	}
	return &HTTPProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type searchResponse struct {
	Results []domain.CatalogItem `json:"results"`
}

func (p *HTTPProvider) Search(ctx context.Context, query string) ([]domain.CatalogItem, error) {
	u := fmt.Sprintf("%s/search?q=%s", p.BaseURL, url.QueryEscape(query))

	var resp searchResponse
	if err := p.client.GetJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("catalog search: %w", err)
	}
	return resp.Results, nil
}

func (p *HTTPProvider) Suggest(ctx context.Context, query string) ([]string, error) {
	u := fmt.Sprintf("%s/suggest?q=%s", p.BaseURL, url.QueryEscape(query))

	var resp []string
	if err := p.client.GetJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("catalog suggest: %w", err)
	}
	return resp, nil
}

var _ Provider = (*HTTPProvider)(nil)
