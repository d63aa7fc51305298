package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/contentcore/contentd/internal/fetch"
)

func TestTextEngine_Passthrough(t *testing.T) {
	raw, err := TextEngine{}.Extract(context.Background(), Input{Text: "hello world"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if raw.Text != "hello world" {
		t.Fatalf("text = %q", raw.Text)
	}
}

func TestTextEngine_UnsupportedWithoutText(t *testing.T) {
	_, err := TextEngine{}.Extract(context.Background(), Input{URL: "https://example.com"})
	if KindOf(err) != KindUnsupported {
		t.Fatalf("kind = %v, want unsupported", KindOf(err))
	}
}

func TestURLSimple_ExtractsHTMLPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Page</title></head><body><main><p>page body text</p></main></body></html>`))
	}))
	defer srv.Close()

	e := &URLSimpleEngine{Fetcher: &fetch.Client{HTTPClient: srv.Client()}}
	raw, err := e.Extract(context.Background(), Input{URL: srv.URL})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(raw.Text, "page body text") {
		t.Fatalf("text = %q", raw.Text)
	}
	if raw.Metadata["url"] != srv.URL {
		t.Fatalf("metadata url = %q", raw.Metadata["url"])
	}
}

func TestURLSimple_RemoteFailureOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	e := &URLSimpleEngine{Fetcher: &fetch.Client{HTTPClient: srv.Client()}}
	_, err := e.Extract(context.Background(), Input{URL: srv.URL})
	if KindOf(err) != KindRemoteFailure {
		t.Fatalf("kind = %v, want remote_failure", KindOf(err))
	}
}

func TestDocSimple_ReadsPlainText(t *testing.T) {
	path := writeTempFile(t, "notes.txt", "plain file content")
	raw, err := DocSimpleEngine{}.Extract(context.Background(), Input{FilePath: path, Filename: "notes.txt"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if raw.Text != "plain file content" {
		t.Fatalf("text = %q", raw.Text)
	}
}

func TestDocSimple_MarkdownKeepsStructure(t *testing.T) {
	path := writeTempFile(t, "doc.md", "# Title\n\nbody")
	raw, err := DocSimpleEngine{}.Extract(context.Background(), Input{FilePath: path, Filename: "doc.md"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if raw.Markdown != "# Title\n\nbody" {
		t.Fatalf("markdown = %q", raw.Markdown)
	}
}

func TestDocSimple_UnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "image.png", "binary")
	_, err := DocSimpleEngine{}.Extract(context.Background(), Input{FilePath: path, Filename: "image.png"})
	if KindOf(err) != KindUnsupported {
		t.Fatalf("kind = %v, want unsupported", KindOf(err))
	}
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f fakeTranscriber) CreateTranscription(_ context.Context, _ openai.AudioRequest) (openai.AudioResponse, error) {
	return openai.AudioResponse{Text: f.text}, f.err
}

func TestMedia_Transcribes(t *testing.T) {
	path := writeTempFile(t, "talk.mp3", "audio-bytes")
	e := &MediaEngine{Client: fakeTranscriber{text: "spoken words"}}
	raw, err := e.Extract(context.Background(), Input{FilePath: path, Filename: "talk.mp3"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if raw.Text != "spoken words" {
		t.Fatalf("text = %q", raw.Text)
	}
}

func TestMedia_UnavailableWithoutClient(t *testing.T) {
	path := writeTempFile(t, "talk.mp3", "audio-bytes")
	e := &MediaEngine{}
	_, err := e.Extract(context.Background(), Input{FilePath: path, Filename: "talk.mp3"})
	if KindOf(err) != KindUnavailable {
		t.Fatalf("kind = %v, want unavailable", KindOf(err))
	}
}

func TestMedia_RemoteFailure(t *testing.T) {
	path := writeTempFile(t, "talk.wav", "audio-bytes")
	e := &MediaEngine{Client: fakeTranscriber{err: fmt.Errorf("rate limited")}}
	_, err := e.Extract(context.Background(), Input{FilePath: path, Filename: "talk.wav"})
	if KindOf(err) != KindRemoteFailure {
		t.Fatalf("kind = %v, want remote_failure", KindOf(err))
	}
}

func TestWrapError_MapsContextDeadlineToTimeout(t *testing.T) {
	err := WrapError("url-simple", KindRemoteFailure, fmt.Errorf("get: %w", context.DeadlineExceeded))
	if err.Kind != KindTimeout {
		t.Fatalf("kind = %v, want timeout", err.Kind)
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("expected *Error")
	}
}
