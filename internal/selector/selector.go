// Package selector decides which extraction engines to try for a given
// input and runs them in order until one succeeds.
package selector

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/contentcore/contentd/internal/engine"
)

// Attempt records one failed engine try. Skipped engines (unsupported or
// unavailable) do not produce attempts.
type Attempt struct {
	Engine string           `json:"engine"`
	Kind   engine.ErrorKind `json:"kind"`
	Reason string           `json:"reason"`
}

// AllEnginesFailed is returned when every candidate failed or none was
// eligible. Attempts preserves try order so callers can see exactly what
// was tried and why each failed.
type AllEnginesFailed struct {
	InputKind engine.Kind
	Attempts  []Attempt
}

func (e *AllEnginesFailed) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("no extraction engine eligible for %s input", e.InputKind)
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s (%s)", a.Engine, a.Kind))
	}
	return fmt.Sprintf("all extraction engines failed for %s input: %s", e.InputKind, strings.Join(parts, ", "))
}

// Selector holds the closed set of engines in configured preference
// order. Built once at startup; immutable afterwards.
type Selector struct {
	Engines []engine.Engine
	// DocumentPreference and URLPreference come from configuration.
	// "auto" (or empty) keeps the default order; an engine name pins
	// that category to a single engine.
	DocumentPreference string
	URLPreference      string
}

// Classify determines the input kind from the request shape and, for
// files, the declared extension.
func Classify(in engine.Input) engine.Kind {
	switch {
	case in.URL != "":
		return engine.KindURL
	case in.Text != "":
		return engine.KindText
	default:
		ext := strings.ToLower(filepath.Ext(in.Filename))
		if ext == "" {
			ext = strings.ToLower(filepath.Ext(in.FilePath))
		}
		if engine.IsMediaExtension(ext) {
			return engine.KindMedia
		}
		return engine.KindDocument
	}
}

// SelectAndExtract classifies the input, builds the candidate list, and
// tries candidates in order. A request-level override pins extraction to
// that single engine and fails immediately when it is unknown or
// unavailable, rather than silently substituting another engine.
func (s *Selector) SelectAndExtract(ctx context.Context, in engine.Input, override string) (*engine.Raw, string, error) {
	kind := Classify(in)

	if override == "" {
		override = s.configuredPreference(kind)
	}
	if override != "" {
		eng := s.lookup(override)
		if eng == nil {
			return nil, "", engine.NewError(override, engine.KindUnavailable, "unknown engine")
		}
		if !eng.Available() {
			return nil, "", engine.NewError(override, engine.KindUnavailable, "engine not configured")
		}
		raw, err := eng.Extract(ctx, in)
		if err != nil {
			return nil, "", err
		}
		return raw, eng.Name(), nil
	}

	var attempts []Attempt
	for _, eng := range s.Engines {
		if eng.Kind() != kind {
			continue
		}
		if !eng.Available() {
			// Configuration-time exclusion, not a runtime failure.
			continue
		}
		raw, err := eng.Extract(ctx, in)
		if err == nil {
			return raw, eng.Name(), nil
		}
		errKind := engine.KindOf(err)
		if errKind == engine.KindUnsupported || errKind == engine.KindUnavailable {
			continue
		}
		log.Debug().Str("engine", eng.Name()).Str("kind", string(errKind)).Err(err).Msg("engine attempt failed, trying next candidate")
		attempts = append(attempts, Attempt{Engine: eng.Name(), Kind: errKind, Reason: err.Error()})
		if errKind == engine.KindTimeout && ctx.Err() != nil {
			// The request deadline is gone; further candidates would
			// fail the same way.
			break
		}
	}

	return nil, "", &AllEnginesFailed{InputKind: kind, Attempts: attempts}
}

func (s *Selector) configuredPreference(kind engine.Kind) string {
	var pref string
	switch kind {
	case engine.KindDocument:
		pref = s.DocumentPreference
	case engine.KindURL:
		pref = s.URLPreference
	}
	if pref == "auto" {
		return ""
	}
	return pref
}

func (s *Selector) lookup(name string) engine.Engine {
	for _, eng := range s.Engines {
		if eng.Name() == name {
			return eng
		}
	}
	return nil
}

// Available lists the names of currently available engines, for the
// health endpoint. Derived from configuration, not a live probe.
func (s *Selector) Available() []string {
	names := make([]string, 0, len(s.Engines))
	for _, eng := range s.Engines {
		if eng.Available() {
			names = append(names, eng.Name())
		}
	}
	return names
}
