package platforms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	mediumBaseURL = "https://api.medium.com/v1"
	mediumMaxTags = 5
)

// Medium posts markdown drafts through the Medium API. Creating a post
// requires the authenticated user's id, which is looked up once and cached.
type Medium struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	userID     string
}

// MediumOption customizes the Medium client.
type MediumOption func(*Medium)

// WithMediumBaseURL overrides the API base (useful for tests/mocks).
func WithMediumBaseURL(base string) MediumOption {
	return func(m *Medium) {
		base = strings.TrimSpace(base)
		if base != "" {
			m.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithMediumHTTPClient overrides the default HTTP client.
func WithMediumHTTPClient(client *http.Client) MediumOption {
	return func(m *Medium) {
		if client != nil {
			m.httpClient = client
		}
	}
}

// NewMedium constructs a Medium client.
func NewMedium(apiKey string, opts ...MediumOption) *Medium {
	m := &Medium{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    mediumBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the rotation name for Medium.
func (m *Medium) Name() string { return NameMedium }

type mediumEnvelope struct {
	Data struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"data"`
}

// CreateDraft creates a markdown draft post for the authenticated user.
func (m *Medium) CreateDraft(ctx context.Context, draft Draft) (*PostRef, error) {
	userID, err := m.resolveUserID(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"title":         draft.Title,
		"contentFormat": "markdown",
		"content":       draft.Body,
		"publishStatus": "draft",
	}
	if len(draft.Tags) > 0 {
		payload["tags"] = truncateTags(draft.Tags, mediumMaxTags)
	}

	var envelope mediumEnvelope
	if err := m.post(ctx, "/users/"+userID+"/posts", payload, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data.ID == "" && envelope.Data.URL == "" {
		return nil, errors.New("medium: create post returned no id")
	}
	return &PostRef{ID: envelope.Data.ID, URL: envelope.Data.URL}, nil
}

func (m *Medium) resolveUserID(ctx context.Context) (string, error) {
	if m.userID != "" {
		return m.userID, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/me", nil)
	if err != nil {
		return "", fmt.Errorf("medium: me request: %w", err)
	}
	m.setHeaders(req)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("medium: me request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("medium: read me body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("medium: me http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var envelope mediumEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("medium: decode me response: %w", err)
	}
	if envelope.Data.ID == "" {
		return "", errors.New("medium: me returned no user id")
	}
	m.userID = envelope.Data.ID
	return m.userID, nil
}

func (m *Medium) post(ctx context.Context, path string, payload any, out any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("medium: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("medium: request: %w", err)
	}
	m.setHeaders(req)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("medium: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("medium: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("medium: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("medium: decode response: %w", err)
	}
	return nil
}

func (m *Medium) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
