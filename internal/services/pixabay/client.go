// Package pixabay wraps the Pixabay image search API. Search parameters are
// fixed to business-category landscape photos at hero resolution, so results
// need no further suitability screening.
package pixabay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://pixabay.com/api/"
	defaultHTTPTimeout = 15 * time.Second
)

// Client wraps the Pixabay search endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = base
		}
	}
}

// NewClient constructs a Pixabay API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Image is one Pixabay search hit.
type Image struct {
	ID           int64  `json:"id"`
	Tags         string `json:"tags"`
	User         string `json:"user"`
	WebformatURL string `json:"webformatURL"`
	FullHDURL    string `json:"fullHDURL"`
	ImageWidth   int    `json:"imageWidth"`
	ImageHeight  int    `json:"imageHeight"`
}

type searchResponse struct {
	Hits []Image `json:"hits"`
}

// SearchImages queries for horizontal business photos at 1920x1080 minimum.
func (c *Client) SearchImages(ctx context.Context, query string, perPage int) ([]Image, error) {
	if c.apiKey == "" {
		return nil, errors.New("pixabay search: api key required")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("pixabay search: query required")
	}
	if perPage <= 0 {
		perPage = 10
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", query)
	params.Set("image_type", "photo")
	params.Set("orientation", "horizontal")
	params.Set("category", "business")
	params.Set("min_width", "1920")
	params.Set("min_height", "1080")
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("safesearch", "true")

	endpoint := c.baseURL
	if strings.Contains(endpoint, "?") {
		endpoint += "&" + params.Encode()
	} else {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("pixabay search: request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pixabay search: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("pixabay search: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("pixabay search: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("pixabay search: decode response: %w", err)
	}
	return parsed.Hits, nil
}
