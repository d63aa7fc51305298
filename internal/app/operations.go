package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/contentcore/contentd/internal/config"
	"github.com/contentcore/contentd/internal/engine"
	"github.com/contentcore/contentd/internal/postprocess"
	"github.com/contentcore/contentd/internal/summarize"
)

// ValidationError rejects a malformed or ambiguous request before any
// engine is tried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ExtractRequest is one extraction call. Exactly one of the Input fields
// must be set.
type ExtractRequest struct {
	Input          engine.Input
	OutputFormat   string // empty means the configured default
	EngineOverride string
}

// CombinedResult pairs an extraction with its summary.
type CombinedResult struct {
	Extraction *postprocess.Result `json:"extraction"`
	Summary    *summarize.Result   `json:"summary"`
}

func (a *App) validate(req *ExtractRequest) error {
	sources := 0
	if req.Input.URL != "" {
		sources++
	}
	if req.Input.FilePath != "" {
		sources++
	}
	if req.Input.Text != "" {
		sources++
	}
	switch {
	case sources == 0:
		return &ValidationError{Msg: "one of url, file, or content must be provided"}
	case sources > 1:
		return &ValidationError{Msg: "only one of url, file, or content may be provided"}
	}

	if req.OutputFormat == "" {
		req.OutputFormat = a.cfg.DefaultFormat
	}
	req.OutputFormat = strings.ToLower(req.OutputFormat)
	if !config.SupportedFormat(req.OutputFormat) {
		return &ValidationError{Msg: fmt.Sprintf("unsupported output format %q", req.OutputFormat)}
	}
	return nil
}

// Extract runs engine selection with fallback, then post-processing.
func (a *App) Extract(ctx context.Context, req ExtractRequest) (*postprocess.Result, error) {
	if err := a.validate(&req); err != nil {
		return nil, err
	}
	started := time.Now()
	raw, engineName, err := a.selector.SelectAndExtract(ctx, req.Input, req.EngineOverride)
	if err != nil {
		return nil, err
	}
	return a.pipeline.Process(ctx, raw, req.Input, req.OutputFormat, engineName, started)
}

// ExtractAndSummarize runs Extract and, only on success, summarization
// under the given context label. An extraction failure short-circuits;
// no partial result is returned.
func (a *App) ExtractAndSummarize(ctx context.Context, req ExtractRequest, contextLabel, providerOverride string) (*CombinedResult, error) {
	res, err := a.Extract(ctx, req)
	if err != nil {
		return nil, err
	}
	summary, err := a.dispatcher.Summarize(ctx, summarizable(res), contextLabel, providerOverride)
	if err != nil {
		return nil, err
	}
	return &CombinedResult{Extraction: res, Summary: summary}, nil
}

// Summarize produces a summary of already-extracted content.
func (a *App) Summarize(ctx context.Context, content, contextLabel, providerOverride string) (*summarize.Result, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &ValidationError{Msg: "content must not be empty"}
	}
	return a.dispatcher.Summarize(ctx, content, contextLabel, providerOverride)
}

// Clean reformats already-extracted text without engine selection. It is
// idempotent: cleaning clean text returns it unchanged.
func (a *App) Clean(text string) string {
	return postprocess.Clean(text)
}

// summarizable returns the text to feed the summarizer. JSON output
// wraps the extracted text, so the summarizer still receives the raw
// content string.
func summarizable(res *postprocess.Result) string {
	return res.Content
}
