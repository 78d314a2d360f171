package unsplash_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"moneypress/internal/services/unsplash"
)

func TestSearchPhotos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Client-ID test-key" {
			t.Errorf("auth header = %q", got)
		}
		q := r.URL.Query()
		if q.Get("query") != "credit card" {
			t.Errorf("query = %q", q.Get("query"))
		}
		if q.Get("orientation") != "landscape" || q.Get("content_filter") != "high" {
			t.Errorf("unexpected params: %v", q)
		}
		if q.Get("per_page") != "5" {
			t.Errorf("per_page = %q", q.Get("per_page"))
		}
		_, _ = w.Write([]byte(`{"results":[{
			"id":"abc123","width":1600,"height":1000,
			"alt_description":"credit card on desk",
			"urls":{"regular":"https://img/regular","full":"https://img/full"},
			"user":{"name":"Jane","links":{"html":"https://unsplash.com/@jane"}}
		}]}`))
	}))
	defer server.Close()

	client := unsplash.NewClient("test-key", unsplash.WithBaseURL(server.URL))
	photos, err := client.SearchPhotos(context.Background(), "credit card", 5)
	if err != nil {
		t.Fatalf("SearchPhotos: %v", err)
	}
	if len(photos) != 1 {
		t.Fatalf("got %d photos", len(photos))
	}
	photo := photos[0]
	if photo.ID != "abc123" || photo.Width != 1600 || photo.Height != 1000 {
		t.Fatalf("photo = %+v", photo)
	}
	if photo.URLs.Full != "https://img/full" || photo.User.Name != "Jane" {
		t.Fatalf("photo urls/user = %+v", photo)
	}
}

func TestSearchPhotosHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limit", http.StatusForbidden)
	}))
	defer server.Close()

	client := unsplash.NewClient("key", unsplash.WithBaseURL(server.URL))
	if _, err := client.SearchPhotos(context.Background(), "money", 5); err == nil {
		t.Fatal("expected error")
	}
}

func TestSearchPhotosRequiresKey(t *testing.T) {
	client := unsplash.NewClient("")
	if _, err := client.SearchPhotos(context.Background(), "money", 5); err == nil {
		t.Fatal("expected access key error")
	}
}
