// Package ocr recognizes mathematical formulas in source documents using
// a multimodal model, for the optional post-processing branch.
package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	genai "google.golang.org/genai"

	"github.com/contentcore/contentd/internal/engine"
	"github.com/contentcore/contentd/internal/postprocess"
)

const recognizePrompt = `You are a formula recognition engine. Find every
mathematical formula in this document. Return ONLY valid JSON, no code
fences, with this shape:
{"formulas":[{"anchor":"short text snippet immediately before the formula","latex":"the formula as LaTeX"}]}
Anchors must be copied verbatim from the surrounding prose. If the
document has no formulas, return {"formulas":[]}.`

// GeminiRecognizer sends the original document to a Gemini model and asks
// for formulas as LaTeX with placement anchors.
type GeminiRecognizer struct {
	client *genai.Client
	model  string
}

// NewGeminiRecognizer builds a recognizer. model defaults to a flash tier
// model when empty.
func NewGeminiRecognizer(ctx context.Context, apiKey, model string) (*GeminiRecognizer, error) {
	if apiKey == "" {
		return nil, errors.New("missing Gemini API key")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiRecognizer{client: client, model: model}, nil
}

type recognizeResponse struct {
	Formulas []postprocess.Formula `json:"formulas"`
}

// Recognize implements postprocess.Recognizer. Only file-backed inputs
// can be re-examined; URL and text inputs yield no formulas.
func (g *GeminiRecognizer) Recognize(ctx context.Context, in engine.Input) ([]postprocess.Formula, error) {
	if in.FilePath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(in.FilePath)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	name := in.Filename
	if name == "" {
		name = filepath.Base(in.FilePath)
	}
	mimeType := mime.TypeByExtension(filepath.Ext(name))
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	content := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: recognizePrompt},
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
		},
	}}
	res, err := g.client.Models.GenerateContent(ctx, g.model, content, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini call: %w", err)
	}

	var parsed recognizeResponse
	if err := json.Unmarshal([]byte(stripCodeFences(res.Text())), &parsed); err != nil {
		return nil, fmt.Errorf("parse recognition response: %w", err)
	}
	return parsed.Formulas, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
