// Package app composes engine selection, post-processing, and
// summarization into the operations the HTTP surface exposes.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/contentcore/contentd/internal/cache"
	"github.com/contentcore/contentd/internal/config"
	"github.com/contentcore/contentd/internal/engine"
	"github.com/contentcore/contentd/internal/fetch"
	"github.com/contentcore/contentd/internal/llm"
	"github.com/contentcore/contentd/internal/ocr"
	"github.com/contentcore/contentd/internal/postprocess"
	"github.com/contentcore/contentd/internal/selector"
	"github.com/contentcore/contentd/internal/summarize"
)

// App wires the configured engines and providers together. Built once at
// startup; all fields are read-only afterwards and safe for concurrent
// requests.
type App struct {
	cfg        *config.Config
	selector   *selector.Selector
	pipeline   *postprocess.Pipeline
	dispatcher *summarize.Dispatcher
}

// New builds the closed set of engines and providers from configuration.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	fetcher := &fetch.Client{
		HTTPClient:        newHTTPClient(),
		UserAgent:         cfg.UserAgent,
		MaxAttempts:       2,
		PerRequestTimeout: cfg.FetchTimeout,
	}

	var transcriber engine.Transcriber
	if cfg.OpenAIAPIKey != "" {
		transcriber = openai.NewClient(cfg.OpenAIAPIKey)
	}

	engines := []engine.Engine{
		engine.TextEngine{},
		&engine.URLSimpleEngine{Fetcher: fetcher},
		&engine.JinaEngine{APIKey: cfg.JinaAPIKey},
		&engine.TavilyEngine{APIKey: cfg.TavilyAPIKey},
		engine.DocSimpleEngine{},
		&engine.DoclingEngine{BaseURL: cfg.DoclingBaseURL, OCR: cfg.OCREnabled},
		&engine.MediaEngine{Client: transcriber},
	}

	var recognizer postprocess.Recognizer
	if cfg.OCREnabled && cfg.GeminiAPIKey != "" {
		rec, err := ocr.NewGeminiRecognizer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("formula recognizer: %w", err)
		}
		recognizer = rec
	}

	gemini, err := llm.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, err
	}
	providers := []llm.Provider{
		llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel),
		gemini,
		llm.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel),
	}

	a := &App{
		cfg: cfg,
		selector: &selector.Selector{
			Engines:            engines,
			DocumentPreference: cfg.DocumentEngine,
			URLPreference:      cfg.URLEngine,
		},
		pipeline: &postprocess.Pipeline{Opts: postprocess.Options{
			OCREnabled:       cfg.OCREnabled,
			FormulaThreshold: cfg.FormulaThreshold,
			Recognizer:       recognizer,
		}},
		dispatcher: &summarize.Dispatcher{
			Providers:       providers,
			DefaultProvider: cfg.SummaryProvider,
			Cache:           summaryCache(cfg),
		},
	}

	log.Info().
		Str("document_engine", cfg.DocumentEngine).
		Str("url_engine", cfg.URLEngine).
		Strs("engines", a.selector.Available()).
		Strs("providers", a.dispatcher.Available()).
		Msg("engines and providers configured")
	return a, nil
}

func summaryCache(cfg *config.Config) *cache.SummaryCache {
	if cfg.CacheDir == "" {
		return nil
	}
	return &cache.SummaryCache{Dir: cfg.CacheDir, MaxAge: cfg.CacheMaxAge}
}

// newHTTPClient returns a client tuned for parallel extraction requests
// without client-side throttling.
func newHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		ForceAttemptHTTP2:   true,
		MaxIdleConnsPerHost: 64,
		IdleConnTimeout:     90 * time.Second,
	}
	return &http.Client{Transport: transport, Timeout: 60 * time.Second}
}
