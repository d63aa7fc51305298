// Package postprocess transforms raw engine output into the requested
// output format and runs the optional formula recognition step.
package postprocess

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/contentcore/contentd/internal/config"
	"github.com/contentcore/contentd/internal/engine"
)

// Result is the final extraction output handed to callers.
type Result struct {
	Content  string            `json:"content"`
	Format   string            `json:"format"`
	Metadata map[string]string `json:"metadata"`
}

// jsonContent is the structured shape emitted for the json output format.
type jsonContent struct {
	Title    string            `json:"title,omitempty"`
	Content  string            `json:"content"`
	Markdown string            `json:"markdown,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Options controls the optional formula recognition branch.
type Options struct {
	OCREnabled       bool
	FormulaThreshold float64
	Recognizer       Recognizer // nil disables recognition regardless of flag
}

// Pipeline applies format conversion and the formula side branch. It is
// stateless and safe for concurrent use.
type Pipeline struct {
	Opts Options
}

// Process converts raw engine output into the requested format. The
// formula step runs only when enabled and the content is formula-dense;
// its failure degrades to a metadata warning and never fails the request.
func (p *Pipeline) Process(ctx context.Context, raw *engine.Raw, in engine.Input, format, engineName string, started time.Time) (*Result, error) {
	meta := map[string]string{"engine": engineName}
	for k, v := range raw.Metadata {
		meta[k] = v
	}

	text := Clean(raw.Text)
	markdown := raw.Markdown

	if p.Opts.OCREnabled && p.Opts.Recognizer != nil {
		if density := FormulaDensity(text); density >= p.Opts.FormulaThreshold {
			formulas, err := p.Opts.Recognizer.Recognize(ctx, in)
			if err != nil {
				// Degrade to the non-OCR result; record why.
				meta["warning"] = fmt.Sprintf("formula recognition failed: %v", err)
				log.Warn().Err(err).Msg("formula recognition failed, keeping plain extraction")
			} else {
				// Both output streams carry the merge, so the metadata
				// flag holds for every format.
				text = MergeFormulas(text, formulas)
				if markdown != "" {
					markdown = MergeFormulas(markdown, formulas)
				}
				meta["formula_ocr"] = "applied"
			}
		}
	}

	var content string
	switch format {
	case config.FormatMarkdown:
		// Markdown is used when the engine produced it; structure is
		// never invented from plain text.
		if markdown != "" {
			content = markdown
		} else {
			content = text
		}
	case config.FormatJSON:
		payload, err := json.Marshal(jsonContent{
			Title:    raw.Title,
			Content:  text,
			Markdown: markdown,
			Metadata: meta,
		})
		if err != nil {
			return nil, fmt.Errorf("encode json output: %w", err)
		}
		content = string(payload)
	default:
		content = text
	}

	meta["duration_ms"] = fmt.Sprintf("%d", time.Since(started).Milliseconds())
	return &Result{Content: content, Format: format, Metadata: meta}, nil
}
