package platforms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"moneypress/internal/config"
)

func TestMediumCreateDraft(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-1" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/me":
			_, _ = w.Write([]byte(`{"data":{"id":"user-9"}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/users/user-9/posts":
			if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
				t.Fatalf("decode request: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"data":{"id":"post-1","url":"https://medium.com/p/post-1"}}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewMedium("token-1", WithMediumBaseURL(server.URL))
	ref, err := client.CreateDraft(context.Background(), Draft{
		Title: "Quick Guide: Credit Cards",
		Body:  "# Hello",
		Tags:  []string{"a", "b", "c", "d", "e", "f"},
	})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if ref.ID != "post-1" || ref.URL != "https://medium.com/p/post-1" {
		t.Fatalf("ref = %+v", ref)
	}
	if captured["contentFormat"] != "markdown" {
		t.Errorf("contentFormat = %v", captured["contentFormat"])
	}
	if captured["publishStatus"] != "draft" {
		t.Errorf("publishStatus = %v", captured["publishStatus"])
	}
	tags, _ := captured["tags"].([]any)
	if len(tags) != 5 {
		t.Errorf("tags = %v, want 5 entries", tags)
	}

	// User id is cached: a second draft must not repeat the /me lookup.
	if _, err := client.CreateDraft(context.Background(), Draft{Title: "x", Body: "y"}); err != nil {
		t.Fatalf("second CreateDraft: %v", err)
	}
}

func TestDevToCreateDraft(t *testing.T) {
	var captured devtoArticleRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/articles" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("api-key"); got != "devto-key" {
			t.Errorf("api-key = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":4821,"url":"https://dev.to/u/quick-guide"}`))
	}))
	defer server.Close()

	client := NewDevTo("devto-key", WithDevToBaseURL(server.URL))
	ref, err := client.CreateDraft(context.Background(), Draft{
		Title: "Quick Guide: Loans",
		Body:  "body",
		Tags:  []string{"finance", "money", "personalfinance", "fintech", "extra"},
	})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if ref.ID != "4821" || ref.URL != "https://dev.to/u/quick-guide" {
		t.Fatalf("ref = %+v", ref)
	}
	if captured.Article.Published {
		t.Error("article published = true, want draft")
	}
	if len(captured.Article.Tags) != 4 {
		t.Errorf("tags = %v, want 4 entries", captured.Article.Tags)
	}
}

func TestBloggerCreateDraft(t *testing.T) {
	var captured bloggerPostRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/blogs/blog-7/posts" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "blogger-key" {
			t.Errorf("key = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"id":"99","url":"https://example.blogspot.com/p"}`))
	}))
	defer server.Close()

	client := NewBlogger("blogger-key", "blog-7", WithBloggerBaseURL(server.URL))
	tags := make([]string, 12)
	for i := range tags {
		tags[i] = "t"
	}
	ref, err := client.CreateDraft(context.Background(), Draft{Title: "Quick Guide", Body: "<p>hi</p>", Tags: tags})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if ref.ID != "99" {
		t.Fatalf("ref = %+v", ref)
	}
	if captured.Status != "DRAFT" {
		t.Errorf("status = %q", captured.Status)
	}
	if len(captured.Labels) != 10 {
		t.Errorf("labels = %d entries, want 10", len(captured.Labels))
	}
}

func TestBloggerRequiresBlogID(t *testing.T) {
	client := NewBlogger("key", "")
	if _, err := client.CreateDraft(context.Background(), Draft{Title: "x"}); err == nil {
		t.Fatal("expected error without blog id")
	}
}

func TestConfiguredFollowsRotationAndSkipsPlaceholders(t *testing.T) {
	cfg := config.Default()
	cfg.Platforms.Rotation = []string{"blogger", "medium", "dev_to"}
	cfg.Platforms.Medium.APIKey = "real-medium"
	cfg.Platforms.DevTo.APIKey = "YOUR_DEVTO_API_KEY"
	cfg.Platforms.Blogger.APIKey = "real-blogger"
	cfg.Platforms.Blogger.BlogID = "blog-1"

	clients := Configured(&cfg)
	if len(clients) != 2 {
		t.Fatalf("got %d clients, want 2", len(clients))
	}
	if clients[0].Name() != NameBlogger || clients[1].Name() != NameMedium {
		t.Fatalf("order = %s, %s", clients[0].Name(), clients[1].Name())
	}
}

func TestConfiguredBloggerNeedsBlogID(t *testing.T) {
	cfg := config.Default()
	cfg.Platforms.Rotation = []string{"blogger"}
	cfg.Platforms.Blogger.APIKey = "real-blogger"
	cfg.Platforms.Blogger.BlogID = ""

	if clients := Configured(&cfg); len(clients) != 0 {
		t.Fatalf("got %d clients, want 0", len(clients))
	}
}
