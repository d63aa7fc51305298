// Package llm abstracts the chat model backends used for summarization.
// Each provider is a candidate only when its credential (or endpoint) is
// configured; availability is fixed at startup.
package llm

import "context"

// Provider is the minimal interface the summarization dispatcher needs.
// Implementations adapt a concrete SDK client and must be safe for
// concurrent use.
type Provider interface {
	// Name returns the stable identifier used in configuration and
	// override requests ("openai", "gemini", "ollama").
	Name() string

	// Model returns the configured model identifier, for result
	// metadata.
	Model() string

	// Available reports whether the provider is configured. Derived
	// once from configuration; never re-probed.
	Available() bool

	// Complete sends a system and user message and returns the
	// assistant text.
	Complete(ctx context.Context, system, user string) (string, error)
}
