// Package engine defines the uniform contract that every extraction backend
// implements, plus the typed failure kinds the fallback policy keys on.
package engine

import "context"

// Kind classifies what an engine consumes.
type Kind string

const (
	KindDocument Kind = "document"
	KindURL      Kind = "url"
	KindText     Kind = "text"
	KindMedia    Kind = "media"
)

// Input is one request's extraction source. Exactly one of URL, FilePath,
// or Text is set; callers validate before handing it to an engine.
type Input struct {
	URL      string
	FilePath string
	Filename string // original upload name, for extension classification
	Text     string
}

// Raw is the native output of a single engine run, before post-processing.
// Markdown is optional; engines that produce only plain text leave it empty
// and the post-processor will not fabricate structure.
type Raw struct {
	Title    string
	Text     string
	Markdown string
	Metadata map[string]string
}

// Engine is the capability interface every extraction backend implements.
// Implementations must be safe for concurrent use; they hold no per-request
// state.
type Engine interface {
	// Name returns the stable identifier used in configuration, overrides,
	// and failure records.
	Name() string

	// Kind reports what category of input the engine consumes.
	Kind() Kind

	// Available reports whether the engine can be attempted at all. It is
	// derived from configuration at startup (credential or endpoint
	// present) and never changes afterwards.
	Available() bool

	// Extract runs the backend against the input. All failures are
	// returned as *Error with a populated kind; internal panics or
	// untyped errors must not escape.
	Extract(ctx context.Context, in Input) (*Raw, error)
}
