package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJina_ParsesReaderResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key-1" {
			t.Errorf("missing auth header, got %q", got)
		}
		_, _ = w.Write([]byte("Title: Example Page\nURL Source: https://example.com\n\nMarkdown Content:\n# Heading\n\nSome **bold** body text."))
	}))
	defer srv.Close()

	e := &JinaEngine{APIKey: "key-1", BaseURL: srv.URL, Client: srv.Client()}
	raw, err := e.Extract(context.Background(), Input{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if raw.Title != "Example Page" {
		t.Fatalf("title = %q", raw.Title)
	}
	if !strings.Contains(raw.Markdown, "# Heading") {
		t.Fatalf("markdown missing heading: %q", raw.Markdown)
	}
	if strings.Contains(raw.Text, "**") {
		t.Fatalf("text should have markdown stripped: %q", raw.Text)
	}
}

func TestJina_UnavailableWithoutKey(t *testing.T) {
	e := &JinaEngine{}
	if e.Available() {
		t.Fatal("engine should be unavailable without a key")
	}
	_, err := e.Extract(context.Background(), Input{URL: "https://example.com"})
	if KindOf(err) != KindUnavailable {
		t.Fatalf("kind = %v, want unavailable", KindOf(err))
	}
}

func TestJina_RemoteFailureOnRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	e := &JinaEngine{APIKey: "k", BaseURL: srv.URL, Client: srv.Client()}
	_, err := e.Extract(context.Background(), Input{URL: "https://example.com"})
	if KindOf(err) != KindRemoteFailure {
		t.Fatalf("kind = %v, want remote_failure", KindOf(err))
	}
}

func TestJina_UnsupportedWithoutURL(t *testing.T) {
	e := &JinaEngine{APIKey: "k"}
	_, err := e.Extract(context.Background(), Input{Text: "hello"})
	if KindOf(err) != KindUnsupported {
		t.Fatalf("kind = %v, want unsupported", KindOf(err))
	}
}
