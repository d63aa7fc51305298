package llm

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

type fakeCompleter struct {
	resp openai.ChatCompletionResponse
	err  error
	got  openai.ChatCompletionRequest
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.got = req
	return f.resp, f.err
}

func TestOpenAIProvider_Complete(t *testing.T) {
	fake := &fakeCompleter{resp: openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: "  a summary  "}},
		},
	}}
	p := &OpenAIProvider{ProviderName: "openai", ModelName: "gpt-4o-mini", Client: fake}

	out, err := p.Complete(context.Background(), "system msg", "user msg")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out != "a summary" {
		t.Fatalf("out = %q", out)
	}
	if fake.got.Model != "gpt-4o-mini" {
		t.Fatalf("model = %q", fake.got.Model)
	}
	if len(fake.got.Messages) != 2 || fake.got.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Fatalf("messages = %+v", fake.got.Messages)
	}
}

func TestOpenAIProvider_EmptyChoices(t *testing.T) {
	p := &OpenAIProvider{ProviderName: "openai", Client: &fakeCompleter{}}
	if _, err := p.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestOpenAIProvider_PropagatesError(t *testing.T) {
	p := &OpenAIProvider{ProviderName: "openai", Client: &fakeCompleter{err: errors.New("boom")}}
	if _, err := p.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewOpenAIProvider_AvailabilityFromKey(t *testing.T) {
	if NewOpenAIProvider("", "m").Available() {
		t.Fatal("provider without key must be unavailable")
	}
	if !NewOpenAIProvider("sk-test", "m").Available() {
		t.Fatal("provider with key must be available")
	}
}

func TestNewOllamaProvider_AvailabilityFromBaseURL(t *testing.T) {
	if NewOllamaProvider("", "llama3.1").Available() {
		t.Fatal("ollama without base URL must be unavailable")
	}
	p := NewOllamaProvider("http://localhost:11434/v1/", "llama3.1")
	if !p.Available() {
		t.Fatal("ollama with base URL must be available")
	}
	if p.Name() != "ollama" {
		t.Fatalf("name = %q", p.Name())
	}
}
