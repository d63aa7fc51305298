package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "google.golang.org/genai"
)

// GeminiProvider adapts the Gemini SDK to the Provider interface.
type GeminiProvider struct {
	ModelName string
	client    *genai.Client
}

// NewGeminiProvider builds the "gemini" provider. With an empty key it is
// constructed unavailable so it still appears in the health listing.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	p := &GeminiProvider{ModelName: model}
	if apiKey == "" {
		return p, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	p.client = client
	return p, nil
}

func (p *GeminiProvider) Name() string    { return "gemini" }
func (p *GeminiProvider) Model() string   { return p.ModelName }
func (p *GeminiProvider) Available() bool { return p.client != nil }

func (p *GeminiProvider) Complete(ctx context.Context, system, user string) (string, error) {
	if p.client == nil {
		return "", errors.New("provider not configured")
	}
	res, err := p.client.Models.GenerateContent(ctx, p.ModelName, []*genai.Content{
		genai.NewContentFromText(system+"\n\n"+user, genai.RoleUser),
	}, nil)
	if err != nil {
		return "", err
	}
	out := strings.TrimSpace(res.Text())
	if out == "" {
		return "", errors.New("model returned empty content")
	}
	return out, nil
}
