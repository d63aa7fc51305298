package llm

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ChatCompleter is the slice of the OpenAI SDK client the providers use.
// Test doubles implement it directly.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider adapts an OpenAI chat client. The same adapter backs the
// "ollama" provider, which speaks the OpenAI-compatible API against a
// local base URL and needs no key.
type OpenAIProvider struct {
	ProviderName string
	ModelName    string
	Client       ChatCompleter // nil when not configured
	Temperature  float32
}

// NewOpenAIProvider builds a provider named "openai" for the hosted API.
// A nil client marks it unavailable.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	p := &OpenAIProvider{ProviderName: "openai", ModelName: model, Temperature: 0.2}
	if apiKey != "" {
		p.Client = openai.NewClient(apiKey)
	}
	return p
}

// NewOllamaProvider builds a provider named "ollama" speaking the
// OpenAI-compatible chat API at baseURL (e.g. http://localhost:11434/v1).
func NewOllamaProvider(baseURL, model string) *OpenAIProvider {
	p := &OpenAIProvider{ProviderName: "ollama", ModelName: model, Temperature: 0.2}
	if baseURL != "" {
		cfg := openai.DefaultConfig("ollama")
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
		p.Client = openai.NewClientWithConfig(cfg)
	}
	return p
}

func (p *OpenAIProvider) Name() string    { return p.ProviderName }
func (p *OpenAIProvider) Model() string   { return p.ModelName }
func (p *OpenAIProvider) Available() bool { return p.Client != nil }

func (p *OpenAIProvider) Complete(ctx context.Context, system, user string) (string, error) {
	if p.Client == nil {
		return "", errors.New("provider not configured")
	}
	resp, err := p.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.ModelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: p.Temperature,
		N:           1,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", errors.New("chat completion returned empty content")
	}
	return out, nil
}
