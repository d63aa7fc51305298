package engine

import (
	"context"
	"strings"

	"github.com/contentcore/contentd/internal/extract"
	"github.com/contentcore/contentd/internal/fetch"
)

// URLSimpleEngine fetches a page directly and extracts readable content
// locally. It is the default URL engine and needs no credential.
type URLSimpleEngine struct {
	Fetcher *fetch.Client
}

func (e *URLSimpleEngine) Name() string    { return "url-simple" }
func (e *URLSimpleEngine) Kind() Kind      { return KindURL }
func (e *URLSimpleEngine) Available() bool { return true }

func (e *URLSimpleEngine) Extract(ctx context.Context, in Input) (*Raw, error) {
	if in.URL == "" {
		return nil, NewError(e.Name(), KindUnsupported, "no URL input")
	}

	page, err := e.Fetcher.Get(ctx, in.URL)
	if err != nil {
		return nil, WrapError(e.Name(), KindRemoteFailure, err)
	}

	ct := strings.ToLower(page.ContentType)
	switch {
	case strings.Contains(ct, "text/html"), strings.Contains(ct, "application/xhtml"), ct == "":
		doc := extract.FromHTML(page.Body, in.URL)
		if strings.TrimSpace(doc.Text) == "" {
			return nil, NewError(e.Name(), KindParseFailure, "no readable content in %s", in.URL)
		}
		meta := map[string]string{"url": in.URL}
		if doc.Title != "" {
			meta["title"] = doc.Title
		}
		return &Raw{Title: doc.Title, Text: doc.Text, Markdown: doc.Markdown, Metadata: meta}, nil
	case strings.Contains(ct, "text/plain"), strings.Contains(ct, "text/markdown"):
		return &Raw{Text: string(page.Body), Metadata: map[string]string{"url": in.URL}}, nil
	default:
		return nil, NewError(e.Name(), KindUnsupported, "content type %q", page.ContentType)
	}
}
