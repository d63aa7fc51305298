// Package summarize dispatches summarization to a configured LLM
// provider. Unlike extraction engines, providers are not drop-in
// equivalents, so a provider failure is surfaced rather than retried
// against a different provider.
package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/contentcore/contentd/internal/cache"
	"github.com/contentcore/contentd/internal/llm"
)

// ErrNoProviderConfigured means no provider credential is set and none
// was overridden. A configuration error, never retried.
var ErrNoProviderConfigured = errors.New("no summarization provider configured")

// ProviderErrorKind classifies provider call failures.
type ProviderErrorKind string

const (
	KindUnavailable   ProviderErrorKind = "unavailable"
	KindTimeout       ProviderErrorKind = "timeout"
	KindRateLimited   ProviderErrorKind = "rate_limited"
	KindRemoteFailure ProviderErrorKind = "remote_failure"
)

// ProviderError is a failed call to a specific provider.
type ProviderError struct {
	Provider string
	Kind     ProviderErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("provider %s: %s", e.Provider, e.Kind)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Result is a produced summary plus which backend produced it.
type Result struct {
	Summary  string `json:"summary"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// Dispatcher selects a provider and runs the summarization prompt.
// Providers keeps configured preference order; built once at startup.
type Dispatcher struct {
	Providers []llm.Provider
	// DefaultProvider optionally pins the provider used when a request
	// has no override. Empty means first available wins.
	DefaultProvider string
	// Cache, when non-nil, stores results on disk keyed by provider,
	// model, context label, and content.
	Cache *cache.SummaryCache
}

const systemPrompt = `You are a precise summarization assistant. Summarize
the provided content faithfully: keep critical facts, names, numbers, and
dates; drop filler. Answer in the same language as the content. Output
only the summary, no preamble.`

// Summarize picks a provider and returns its summary. The context label
// steers summary style and is passed through uninterpreted; any string is
// accepted.
func (d *Dispatcher) Summarize(ctx context.Context, content, contextLabel, override string) (*Result, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("empty content")
	}

	provider, err := d.pick(override)
	if err != nil {
		return nil, err
	}

	key := cache.Key(provider.Name(), provider.Model(), contextLabel, content)
	if cached, ok, _ := d.Cache.Get(ctx, key); ok {
		var res Result
		if err := json.Unmarshal(cached, &res); err == nil {
			log.Debug().Str("provider", res.Provider).Msg("summary served from cache")
			return &res, nil
		}
	}

	user := buildPrompt(content, contextLabel)
	log.Debug().Str("provider", provider.Name()).Str("model", provider.Model()).Msg("summarizing")
	summary, err := provider.Complete(ctx, systemPrompt, user)
	if err != nil {
		return nil, &ProviderError{Provider: provider.Name(), Kind: classify(err), Err: err}
	}
	res := &Result{Summary: summary, Provider: provider.Name(), Model: provider.Model()}
	if data, err := json.Marshal(res); err == nil {
		if err := d.Cache.Save(ctx, key, data); err != nil {
			log.Warn().Err(err).Msg("summary cache write failed")
		}
	}
	return res, nil
}

// Available lists configured provider names for the health endpoint.
func (d *Dispatcher) Available() []string {
	names := make([]string, 0, len(d.Providers))
	for _, p := range d.Providers {
		if p.Available() {
			names = append(names, p.Name())
		}
	}
	return names
}

func (d *Dispatcher) pick(override string) (llm.Provider, error) {
	if override == "" {
		override = d.DefaultProvider
	}
	if override != "" {
		for _, p := range d.Providers {
			if p.Name() != override {
				continue
			}
			if !p.Available() {
				// No silent substitution for an explicit choice.
				return nil, &ProviderError{Provider: override, Kind: KindUnavailable}
			}
			return p, nil
		}
		return nil, &ProviderError{Provider: override, Kind: KindUnavailable}
	}
	for _, p := range d.Providers {
		if p.Available() {
			return p, nil
		}
	}
	return nil, ErrNoProviderConfigured
}

func buildPrompt(content, contextLabel string) string {
	var b strings.Builder
	if label := strings.TrimSpace(contextLabel); label != "" {
		b.WriteString("Summarization goal: ")
		b.WriteString(label)
		b.WriteString("\n\n")
	}
	b.WriteString("Content:\n")
	b.WriteString(content)
	return b.String()
}

func classify(err error) ProviderErrorKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindTimeout
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "rate limit") || strings.Contains(msg, "429") {
		return KindRateLimited
	}
	return KindRemoteFailure
}
