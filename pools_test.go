package szurubooru

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreatePool(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/pool" {
			t.Errorf("Expected path /api/pool, got %s", r.URL.Path)
		}
		var body CreateUpdatePool
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body.Posts) != 2 || body.Posts[0] != 3 || body.Posts[1] != 1 {
			t.Errorf("Expected posts [3 1], got %v", body.Posts)
		}
		_, _ = w.Write([]byte(`{"version": 1, "id": 1, "names": ["series"], "posts": [
			{"id": 3, "thumbnailUrl": "data/generated-thumbnails/3.jpg"},
			{"id": 1, "thumbnailUrl": "data/generated-thumbnails/1.jpg"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	pool, err := client.Request().CreatePool(context.Background(), &CreateUpdatePool{
		Names: []string{"series"},
		Posts: []int{3, 1},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(pool.Posts) != 2 || pool.Posts[0].ID != 3 {
		t.Errorf("Expected ordered posts, got %+v", pool.Posts)
	}
	if pool.Posts[0].ThumbnailURL != server.URL+"/data/generated-thumbnails/3.jpg" {
		t.Errorf("Expected propagated thumbnail URL, got %q", pool.Posts[0].ThumbnailURL)
	}
}

func TestMergePools(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/pool-merge" {
			t.Errorf("Expected path /api/pool-merge, got %s", r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["remove"] != float64(1) || body["mergeTo"] != float64(2) {
			t.Errorf("Expected remove=1 mergeTo=2, got %v", body)
		}
		_, _ = w.Write([]byte(`{"version": 2, "id": 2, "names": ["combined"]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	pool, err := client.Request().MergePools(context.Background(), &MergePools{
		RemoveVersion:  1,
		Remove:         1,
		MergeToVersion: 1,
		MergeTo:        2,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if pool.ID != 2 {
		t.Errorf("Expected pool 2, got %d", pool.ID)
	}
}

func TestListPoolCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/pool-categories" {
			t.Errorf("Expected path /api/pool-categories, got %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"results": [{"version": 1, "name": "default", "color": "blue", "default": true}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Request().ListPoolCategories(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Results) != 1 || !result.Results[0].Default {
		t.Errorf("Expected one default category, got %+v", result.Results)
	}
}
