package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTavily_ParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req tavilyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.URLs) != 1 || req.URLs[0] != "https://example.com" {
			t.Errorf("unexpected urls: %v", req.URLs)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"url": "https://example.com", "raw_content": "Body paragraph.", "title": "Example"},
			},
		})
	}))
	defer srv.Close()

	e := &TavilyEngine{APIKey: "key", BaseURL: srv.URL, Client: srv.Client()}
	raw, err := e.Extract(context.Background(), Input{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if raw.Title != "Example" {
		t.Fatalf("title = %q", raw.Title)
	}
	if !strings.HasPrefix(raw.Markdown, "# Example") {
		t.Fatalf("markdown missing title heading: %q", raw.Markdown)
	}
}

func TestTavily_EmptyResultsIsRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results":        []any{},
			"failed_results": []string{"https://example.com"},
		})
	}))
	defer srv.Close()

	e := &TavilyEngine{APIKey: "key", BaseURL: srv.URL, Client: srv.Client()}
	_, err := e.Extract(context.Background(), Input{URL: "https://example.com"})
	if KindOf(err) != KindRemoteFailure {
		t.Fatalf("kind = %v, want remote_failure", KindOf(err))
	}
}

func TestTavily_UnavailableWithoutKey(t *testing.T) {
	e := &TavilyEngine{}
	if e.Available() {
		t.Fatal("engine should be unavailable without a key")
	}
}
