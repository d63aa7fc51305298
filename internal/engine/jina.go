package engine

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// JinaEngine extracts page content through the Jina Reader API
// (r.jina.ai). It is a candidate only when an API key is configured.
type JinaEngine struct {
	APIKey  string
	BaseURL string // overridable for tests; defaults to https://r.jina.ai
	Client  *http.Client
}

func (e *JinaEngine) Name() string    { return "jina" }
func (e *JinaEngine) Kind() Kind      { return KindURL }
func (e *JinaEngine) Available() bool { return e.APIKey != "" }

func (e *JinaEngine) Extract(ctx context.Context, in Input) (*Raw, error) {
	if in.URL == "" {
		return nil, NewError(e.Name(), KindUnsupported, "no URL input")
	}
	if !e.Available() {
		return nil, NewError(e.Name(), KindUnavailable, "API key not configured")
	}

	base := e.BaseURL
	if base == "" {
		base = "https://r.jina.ai"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/"+in.URL, nil)
	if err != nil {
		return nil, WrapError(e.Name(), KindRemoteFailure, err)
	}
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpClient().Do(req)
	if err != nil {
		return nil, WrapError(e.Name(), KindRemoteFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError(e.Name(), KindRemoteFailure, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewError(e.Name(), KindRemoteFailure, "HTTP %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	content := string(body)
	title := jinaField(content, "Title:")
	markdown := jinaMarkdown(content)
	if markdown == "" {
		markdown = content
	}

	meta := map[string]string{"url": in.URL}
	if title != "" {
		meta["title"] = title
	}
	return &Raw{
		Title:    title,
		Text:     stripMarkdown(markdown),
		Markdown: markdown,
		Metadata: meta,
	}, nil
}

func (e *JinaEngine) httpClient() *http.Client {
	if e.Client != nil {
		return e.Client
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// jinaField pulls a named header line out of the Reader response, which is
// structured as "Title:", "URL Source:", then "Markdown Content:".
func jinaField(content, field string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, field) {
			return strings.TrimSpace(strings.TrimPrefix(line, field))
		}
	}
	return ""
}

func jinaMarkdown(content string) string {
	const marker = "Markdown Content:"
	idx := strings.Index(content, marker)
	if idx == -1 {
		return ""
	}
	return strings.TrimSpace(content[idx+len(marker):])
}

func stripMarkdown(md string) string {
	lines := strings.Split(md, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, "#")
		trimmed = strings.ReplaceAll(trimmed, "**", "")
		trimmed = strings.ReplaceAll(trimmed, "__", "")
		out = append(out, strings.TrimSpace(trimmed))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
