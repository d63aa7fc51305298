package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TavilyEngine extracts page content through the Tavily Extract API.
// Requires a configured API key.
type TavilyEngine struct {
	APIKey       string
	ExtractDepth string // "basic" or "advanced"; defaults to basic
	BaseURL      string // overridable for tests
	Client       *http.Client
}

func (e *TavilyEngine) Name() string    { return "tavily" }
func (e *TavilyEngine) Kind() Kind      { return KindURL }
func (e *TavilyEngine) Available() bool { return e.APIKey != "" }

type tavilyRequest struct {
	URLs         []string `json:"urls"`
	ExtractDepth string   `json:"extract_depth,omitempty"`
}

type tavilyResponse struct {
	Results []struct {
		URL        string `json:"url"`
		RawContent string `json:"raw_content"`
		Title      string `json:"title"`
	} `json:"results"`
	FailedURLs []string `json:"failed_results"`
}

func (e *TavilyEngine) Extract(ctx context.Context, in Input) (*Raw, error) {
	if in.URL == "" {
		return nil, NewError(e.Name(), KindUnsupported, "no URL input")
	}
	if !e.Available() {
		return nil, NewError(e.Name(), KindUnavailable, "API key not configured")
	}

	depth := e.ExtractDepth
	if depth == "" {
		depth = "basic"
	}
	payload, err := json.Marshal(tavilyRequest{URLs: []string{in.URL}, ExtractDepth: depth})
	if err != nil {
		return nil, WrapError(e.Name(), KindRemoteFailure, err)
	}

	base := e.BaseURL
	if base == "" {
		base = "https://api.tavily.com/extract"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base, bytes.NewReader(payload))
	if err != nil {
		return nil, WrapError(e.Name(), KindRemoteFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")
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

	var parsed tavilyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, WrapError(e.Name(), KindRemoteFailure, fmt.Errorf("parse response: %w", err))
	}
	if len(parsed.Results) == 0 {
		return nil, NewError(e.Name(), KindRemoteFailure, "no results for %s", in.URL)
	}

	result := parsed.Results[0]
	markdown := result.RawContent
	if result.Title != "" {
		markdown = fmt.Sprintf("# %s\n\n%s", result.Title, markdown)
	}
	meta := map[string]string{"url": in.URL}
	if result.Title != "" {
		meta["title"] = result.Title
	}
	return &Raw{
		Title:    result.Title,
		Text:     stripMarkdown(result.RawContent),
		Markdown: markdown,
		Metadata: meta,
	}, nil
}

func (e *TavilyEngine) httpClient() *http.Client {
	if e.Client != nil {
		return e.Client
	}
	return &http.Client{Timeout: 30 * time.Second}
}
