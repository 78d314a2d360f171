package pixabay_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"moneypress/internal/services/pixabay"
)

func TestSearchImages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("key") != "test-key" {
			t.Errorf("key = %q", q.Get("key"))
		}
		if q.Get("q") != "business finance" {
			t.Errorf("q = %q", q.Get("q"))
		}
		for param, want := range map[string]string{
			"image_type":  "photo",
			"orientation": "horizontal",
			"category":    "business",
			"min_width":   "1920",
			"min_height":  "1080",
			"safesearch":  "true",
		} {
			if q.Get(param) != want {
				t.Errorf("%s = %q, want %q", param, q.Get(param), want)
			}
		}
		_, _ = w.Write([]byte(`{"hits":[{
			"id":42,"tags":"finance, money, office","user":"bob",
			"webformatURL":"https://img/web","fullHDURL":"https://img/hd",
			"imageWidth":1920,"imageHeight":1280
		}]}`))
	}))
	defer server.Close()

	client := pixabay.NewClient("test-key", pixabay.WithBaseURL(server.URL))
	images, err := client.SearchImages(context.Background(), "business finance", 5)
	if err != nil {
		t.Fatalf("SearchImages: %v", err)
	}
	if len(images) != 1 {
		t.Fatalf("got %d images", len(images))
	}
	img := images[0]
	if img.ID != 42 || img.User != "bob" || img.FullHDURL != "https://img/hd" {
		t.Fatalf("image = %+v", img)
	}
}

func TestSearchImagesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusBadRequest)
	}))
	defer server.Close()

	client := pixabay.NewClient("key", pixabay.WithBaseURL(server.URL))
	if _, err := client.SearchImages(context.Background(), "money", 5); err == nil {
		t.Fatal("expected error")
	}
}
