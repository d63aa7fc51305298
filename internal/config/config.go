package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Output formats accepted by the API.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Config holds process-wide runtime configuration. It is loaded once at
// startup and read-only afterwards; no component mutates it.
type Config struct {
	Port     int    `env:"CCORE_PORT" envDefault:"8000"`
	LogLevel string `env:"CCORE_LOG_LEVEL" envDefault:"info"`

	// Engine preference. "auto" means configured order with availability
	// filtering; any other value acts as a global engine override.
	DocumentEngine string `env:"CCORE_DOCUMENT_ENGINE" envDefault:"auto"`
	URLEngine      string `env:"CCORE_URL_ENGINE" envDefault:"auto"`

	// Remote scraping services. Each engine is a candidate only when its
	// credential (or endpoint) is set.
	JinaAPIKey     string `env:"CCORE_JINA_API_KEY"`
	TavilyAPIKey   string `env:"CCORE_TAVILY_API_KEY"`
	DoclingBaseURL string `env:"CCORE_DOCLING_BASE_URL"`

	// LLM providers.
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	OllamaBaseURL string `env:"OLLAMA_BASE_URL"`

	// Summarization defaults.
	SummaryProvider string `env:"CCORE_SUMMARY_PROVIDER"`
	OpenAIModel     string `env:"CCORE_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	GeminiModel     string `env:"CCORE_GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	OllamaModel     string `env:"CCORE_OLLAMA_MODEL" envDefault:"llama3.1"`

	// OCR / formula recognition.
	OCREnabled       bool    `env:"CCORE_OCR_ENABLED"`
	FormulaThreshold float64 `env:"CCORE_FORMULA_THRESHOLD" envDefault:"0.01"`

	// Summary cache. Empty CacheDir disables caching.
	CacheDir    string        `env:"CCORE_CACHE_DIR"`
	CacheMaxAge time.Duration `env:"CCORE_CACHE_MAX_AGE"`

	DefaultFormat  string        `env:"CCORE_DEFAULT_FORMAT" envDefault:"text"`
	MaxUploadBytes int64         `env:"CCORE_MAX_UPLOAD_BYTES" envDefault:"52428800"`
	RequestTimeout time.Duration `env:"CCORE_REQUEST_TIMEOUT" envDefault:"120s"`
	FetchTimeout   time.Duration `env:"CCORE_FETCH_TIMEOUT" envDefault:"30s"`
	UserAgent      string        `env:"CCORE_USER_AGENT" envDefault:"contentd/1.0"`
}

// Load parses environment variables into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field values that cannot be expressed as struct tags.
func (c *Config) Validate() error {
	switch strings.ToLower(c.DefaultFormat) {
	case FormatText, FormatMarkdown, FormatJSON:
	default:
		return fmt.Errorf("unsupported default format: %q", c.DefaultFormat)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive, got %d", c.MaxUploadBytes)
	}
	if c.FormulaThreshold < 0 {
		return fmt.Errorf("formula threshold must be non-negative, got %g", c.FormulaThreshold)
	}
	return nil
}

// SupportedFormat reports whether name is a valid output format.
func SupportedFormat(name string) bool {
	switch name {
	case FormatText, FormatMarkdown, FormatJSON:
		return true
	}
	return false
}
