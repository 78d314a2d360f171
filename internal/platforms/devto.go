package platforms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	devtoBaseURL = "https://dev.to/api"
	devtoMaxTags = 4
)

// DevTo posts markdown drafts through the Dev.to (Forem) API.
type DevTo struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// DevToOption customizes the Dev.to client.
type DevToOption func(*DevTo)

// WithDevToBaseURL overrides the API base (useful for tests/mocks).
func WithDevToBaseURL(base string) DevToOption {
	return func(d *DevTo) {
		base = strings.TrimSpace(base)
		if base != "" {
			d.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithDevToHTTPClient overrides the default HTTP client.
func WithDevToHTTPClient(client *http.Client) DevToOption {
	return func(d *DevTo) {
		if client != nil {
			d.httpClient = client
		}
	}
}

// NewDevTo constructs a Dev.to client.
func NewDevTo(apiKey string, opts ...DevToOption) *DevTo {
	d := &DevTo{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    devtoBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the rotation name for Dev.to.
func (d *DevTo) Name() string { return NameDevTo }

type devtoArticleRequest struct {
	Article struct {
		Title        string   `json:"title"`
		BodyMarkdown string   `json:"body_markdown"`
		Published    bool     `json:"published"`
		Tags         []string `json:"tags,omitempty"`
	} `json:"article"`
}

type devtoArticleResponse struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// CreateDraft creates an unpublished markdown article.
func (d *DevTo) CreateDraft(ctx context.Context, draft Draft) (*PostRef, error) {
	var payload devtoArticleRequest
	payload.Article.Title = draft.Title
	payload.Article.BodyMarkdown = draft.Body
	payload.Article.Published = false
	payload.Article.Tags = truncateTags(draft.Tags, devtoMaxTags)

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("devto: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/articles", bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("devto: request: %w", err)
	}
	req.Header.Set("api-key", d.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("devto: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("devto: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("devto: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed devtoArticleResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("devto: decode response: %w", err)
	}
	return &PostRef{ID: strconv.FormatInt(parsed.ID, 10), URL: parsed.URL}, nil
}
