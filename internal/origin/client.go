// Package origin talks to the remote media origin: audio streams, media
// metadata and thumbnail images.
package origin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/cesargomez89/mediacache/internal/constants"
	"github.com/cesargomez89/mediacache/internal/domain"
)

var originLogger = slog.Default().WithGroup("origin")

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"

// AudioOptions is passed through to the origin. PlayerClients is the ordered
// list of client profiles the origin falls back through.
type AudioOptions struct {
	Filter        string
	Quality       string
	PlayerClients []string
}

// DefaultAudioOptions asks for the best audio-only stream.
func DefaultAudioOptions() AudioOptions {
	return AudioOptions{
		Filter:        constants.DefaultAudioFilter,
		Quality:       constants.DefaultAudioQuality,
		PlayerClients: strings.Split(constants.DefaultPlayerClients, ","),
	}
}

type Client struct {
	BaseURL     string
	Client      *http.Client
	ImageClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		Client:      &http.Client{Timeout: constants.DefaultHTTPTimeout},
		ImageClient: &http.Client{Timeout: constants.ImageHTTPTimeout},
	}
}

// Audio opens the audio stream for id. The caller closes the body.
func (c *Client) Audio(ctx context.Context, agent *Agent, id string, opts AudioOptions) (io.ReadCloser, error) {
	q := url.Values{}
	q.Set("id", id)
	if opts.Filter != "" {
		q.Set("filter", opts.Filter)
	}
	if opts.Quality != "" {
		q.Set("quality", opts.Quality)
	}
	if len(opts.PlayerClients) > 0 {
		q.Set("clients", strings.Join(opts.PlayerClients, ","))
	}
	u := c.BaseURL + "/audio?" + q.Encode()
	originLogger.Debug("audio request", "url", u, "credentials", agent.Len())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if err := agent.Apply(req, id); err != nil {
		return nil, fmt.Errorf("agent unusable: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("audio fetch failed: %s", resp.Status)
	}
	return resp.Body, nil
}

type infoResponse struct {
	VideoDetails struct {
		VideoID    string             `json:"videoId"`
		Title      string             `json:"title"`
		Thumbnails []domain.Thumbnail `json:"thumbnails"`
	} `json:"videoDetails"`
}

// Thumbnails returns the image variants the origin advertises for id.
func (c *Client) Thumbnails(ctx context.Context, agent *Agent, id string) ([]domain.Thumbnail, error) {
	u := c.BaseURL + "/info?id=" + url.QueryEscape(id)
	var resp infoResponse
	if err := c.get(ctx, agent, id, u, &resp); err != nil {
		return nil, err
	}
	return resp.VideoDetails.Thumbnails, nil
}

// Image is a plain GET of a thumbnail URL, without credentials.
func (c *Client) Image(ctx context.Context, urlStr string) (io.ReadCloser, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid image URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL scheme: %s (only http/https allowed)", parsedURL.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.ImageClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("failed to download image: status %d (URL: %s)", resp.StatusCode, urlStr)
	}
	return resp.Body, nil
}

func (c *Client) get(ctx context.Context, agent *Agent, id, u string, target interface{}) error {
	originLogger.Debug("API request", "url", u, "base_url", c.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if err := agent.Apply(req, id); err != nil {
		return fmt.Errorf("agent unusable: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed: %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
