package tiles

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestHTTPTileSourceRequiresPlaceholders(t *testing.T) {
	if _, err := NewHTTPTileSource("https://tiles.example.com/static.png", "test"); err == nil {
		t.Fatal("expected error for template without placeholders")
	}
}

func TestHTTPTileSourceFetchesTile(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("tile-bytes"))
	}))
	defer server.Close()

	source, err := NewHTTPTileSource(server.URL+"/{z}/{x}/{y}.png", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := source.FetchTile(context.Background(), 12, 2044, 1983)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if gotPath != "/12/2044/1983.png" {
		t.Fatalf("requested path %q, want /12/2044/1983.png", gotPath)
	}
	if !bytes.Equal(data, []byte("tile-bytes")) {
		t.Fatalf("got %q, want tile-bytes", data)
	}
}

func TestHTTPTileSourceRetriesTransientFailures(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("tile-bytes"))
	}))
	defer server.Close()

	source, err := NewHTTPTileSource(server.URL+"/{z}/{x}/{y}.png", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := source.FetchTile(context.Background(), 1, 0, 0)
	if err != nil {
		t.Fatalf("fetch should have recovered after retry: %v", err)
	}
	if string(data) != "tile-bytes" {
		t.Fatalf("got %q, want tile-bytes", data)
	}
	if hits.Load() != 2 {
		t.Fatalf("server saw %d requests, want 2", hits.Load())
	}
}

func TestHTTPTileSourceGivesUpOnPermanentFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	source, err := NewHTTPTileSource(server.URL+"/{z}/{x}/{y}.png", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := source.FetchTile(context.Background(), 1, 0, 0); err == nil {
		t.Fatal("expected error for 404 response")
	}
}
