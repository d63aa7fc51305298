package postprocess

import (
	"context"
	"strings"

	"github.com/contentcore/contentd/internal/engine"
)

// Formula is one recognized expression. Anchor is a short snippet of
// surrounding text used to place the formula near its original position.
type Formula struct {
	Anchor string `json:"anchor"`
	LaTeX  string `json:"latex"`
}

// Recognizer recognizes mathematical formulas in the original source
// (file or page) that plain text extraction mangled.
type Recognizer interface {
	Recognize(ctx context.Context, in engine.Input) ([]Formula, error)
}

// formulaMarkers are tokens whose presence suggests mangled math notation.
var formulaMarkers = []string{
	"\\frac", "\\sum", "\\int", "\\sqrt", "\\alpha", "\\beta", "\\cdot",
	"\\times", "\\partial", "\\infty", "$$", "\\(", "\\[",
	"≈", "≤", "≥", "∑", "∫", "√", "∂", "∞", "±", "×", "÷",
}

// FormulaDensity estimates how formula-dense the text is: marker
// occurrences per rune. Zero for empty text.
func FormulaDensity(text string) float64 {
	n := len([]rune(text))
	if n == 0 {
		return 0
	}
	count := 0
	for _, marker := range formulaMarkers {
		count += strings.Count(text, marker)
	}
	// Inline single-$ pairs count once per pair.
	count += strings.Count(text, "$") / 2
	return float64(count) / float64(n)
}

// MergeFormulas inserts recognized formulas into the text near their
// anchors. A formula whose anchor cannot be located is appended at the
// end rather than dropped.
func MergeFormulas(text string, formulas []Formula) string {
	var orphans []string
	for _, f := range formulas {
		latex := strings.TrimSpace(f.LaTeX)
		if latex == "" {
			continue
		}
		block := "\n$$" + latex + "$$\n"
		anchor := strings.TrimSpace(f.Anchor)
		if anchor == "" {
			orphans = append(orphans, block)
			continue
		}
		idx := strings.Index(text, anchor)
		if idx == -1 {
			orphans = append(orphans, block)
			continue
		}
		pos := idx + len(anchor)
		text = text[:pos] + block + text[pos:]
	}
	for _, block := range orphans {
		text += "\n" + strings.TrimSpace(block)
	}
	return text
}
