package googlebooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tair/bookbank/internal/config"
	"github.com/tair/bookbank/pkg/logger"
)

// ErrUpstream marks a failure of the external book catalog. Both call
// sites (page and API) surface it instead of degrading silently.
var ErrUpstream = errors.New("book catalog upstream failure")

// BookSummary is the reshaped catalog entry returned to callers
type BookSummary struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	CoverImage  string  `json:"cover_image"`
	Rating      float64 `json:"rating"`
}

// volumesResponse mirrors the upstream JSON shape
type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Description   string   `json:"description"`
			AverageRating float64  `json:"averageRating"`
			ImageLinks    struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Client queries the Google Books volumes API. The API key and base URL
// are injected at construction, not read from process globals.
type Client struct {
	cfg        config.GoogleBooksConfig
	httpClient *http.Client
}

// NewClient creates a new Google Books client with a bounded request timeout
func NewClient(cfg config.GoogleBooksConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Search forwards a free-text query upstream and reshapes the response.
// An empty query returns an empty list without calling upstream.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]BookSummary, error) {
	if strings.TrimSpace(query) == "" {
		return []BookSummary{}, nil
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("key", c.cfg.APIKey)
	params.Set("maxResults", strconv.Itoa(maxResults))

	endpoint := fmt.Sprintf("%s/volumes?%s", strings.TrimRight(c.cfg.BaseURL, "/"), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn(ctx).
			Int("status", resp.StatusCode).
			Str("query", query).
			Msg("Book catalog returned non-OK status")
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var payload volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUpstream, err)
	}

	books := make([]BookSummary, 0, len(payload.Items))
	for _, item := range payload.Items {
		info := item.VolumeInfo
		books = append(books, BookSummary{
			Title:       info.Title,
			Author:      strings.Join(info.Authors, ", "),
			Description: info.Description,
			CoverImage:  info.ImageLinks.Thumbnail,
			Rating:      info.AverageRating,
		})
	}

	return books, nil
}
