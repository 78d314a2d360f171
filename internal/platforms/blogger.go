package platforms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	bloggerBaseURL   = "https://www.googleapis.com/blogger/v3"
	bloggerMaxLabels = 10
)

// Blogger posts HTML drafts through the Blogger v3 API.
type Blogger struct {
	apiKey     string
	blogID     string
	baseURL    string
	httpClient *http.Client
}

// BloggerOption customizes the Blogger client.
type BloggerOption func(*Blogger)

// WithBloggerBaseURL overrides the API base (useful for tests/mocks).
func WithBloggerBaseURL(base string) BloggerOption {
	return func(b *Blogger) {
		base = strings.TrimSpace(base)
		if base != "" {
			b.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithBloggerHTTPClient overrides the default HTTP client.
func WithBloggerHTTPClient(client *http.Client) BloggerOption {
	return func(b *Blogger) {
		if client != nil {
			b.httpClient = client
		}
	}
}

// NewBlogger constructs a Blogger client for a single blog.
func NewBlogger(apiKey, blogID string, opts ...BloggerOption) *Blogger {
	b := &Blogger{
		apiKey:     strings.TrimSpace(apiKey),
		blogID:     strings.TrimSpace(blogID),
		baseURL:    bloggerBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the rotation name for Blogger.
func (b *Blogger) Name() string { return NameBlogger }

type bloggerPostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Labels  []string `json:"labels,omitempty"`
	Status  string   `json:"status"`
}

type bloggerPostResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateDraft creates a draft post on the configured blog.
func (b *Blogger) CreateDraft(ctx context.Context, draft Draft) (*PostRef, error) {
	if b.blogID == "" {
		return nil, fmt.Errorf("blogger: blog id not configured")
	}
	payload := bloggerPostRequest{
		Title:   draft.Title,
		Content: draft.Body,
		Labels:  truncateTags(draft.Tags, bloggerMaxLabels),
		Status:  "DRAFT",
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("blogger: encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/blogs/%s/posts?key=%s", b.baseURL, url.PathEscape(b.blogID), url.QueryEscape(b.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("blogger: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("blogger: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("blogger: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("blogger: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed bloggerPostResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("blogger: decode response: %w", err)
	}
	return &PostRef{ID: parsed.ID, URL: parsed.URL}, nil
}
