package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// fileConfig is the YAML schema. Pointer fields distinguish "absent from
// the file" from an explicit zero, so the overlay only touches fields the
// file actually sets.
type fileConfig struct {
	Port     *int    `yaml:"port"`
	LogLevel *string `yaml:"logLevel"`

	DocumentEngine *string `yaml:"documentEngine"`
	URLEngine      *string `yaml:"urlEngine"`

	JinaAPIKey     *string `yaml:"jinaAPIKey"`
	TavilyAPIKey   *string `yaml:"tavilyAPIKey"`
	DoclingBaseURL *string `yaml:"doclingBaseURL"`

	OpenAIAPIKey  *string `yaml:"openAIAPIKey"`
	GeminiAPIKey  *string `yaml:"geminiAPIKey"`
	OllamaBaseURL *string `yaml:"ollamaBaseURL"`

	SummaryProvider *string `yaml:"summaryProvider"`
	OpenAIModel     *string `yaml:"openAIModel"`
	GeminiModel     *string `yaml:"geminiModel"`
	OllamaModel     *string `yaml:"ollamaModel"`

	OCREnabled       *bool    `yaml:"ocrEnabled"`
	FormulaThreshold *float64 `yaml:"formulaThreshold"`

	CacheDir    *string   `yaml:"cacheDir"`
	CacheMaxAge *duration `yaml:"cacheMaxAge"`

	DefaultFormat  *string   `yaml:"defaultFormat"`
	MaxUploadBytes *int64    `yaml:"maxUploadBytes"`
	RequestTimeout *duration `yaml:"requestTimeout"`
	FetchTimeout   *duration `yaml:"fetchTimeout"`
	UserAgent      *string   `yaml:"userAgent"`
}

// duration parses "30s"/"2m" style values, which yaml.v3 does not decode
// into time.Duration on its own.
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = duration(v)
	return nil
}

// LoadFile reads an optional YAML configuration file and overlays it
// under environment values: a field from the file applies only when its
// environment variable is unset, so env always wins over the file and
// the file wins over built-in defaults. A missing file at the default
// path is not an error; an explicitly requested file must exist.
func LoadFile(path string, explicit bool, cfg *Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	overlay(&cfg.Port, file.Port, "CCORE_PORT")
	overlay(&cfg.LogLevel, file.LogLevel, "CCORE_LOG_LEVEL")
	overlay(&cfg.DocumentEngine, file.DocumentEngine, "CCORE_DOCUMENT_ENGINE")
	overlay(&cfg.URLEngine, file.URLEngine, "CCORE_URL_ENGINE")
	overlay(&cfg.JinaAPIKey, file.JinaAPIKey, "CCORE_JINA_API_KEY")
	overlay(&cfg.TavilyAPIKey, file.TavilyAPIKey, "CCORE_TAVILY_API_KEY")
	overlay(&cfg.DoclingBaseURL, file.DoclingBaseURL, "CCORE_DOCLING_BASE_URL")
	overlay(&cfg.OpenAIAPIKey, file.OpenAIAPIKey, "OPENAI_API_KEY")
	overlay(&cfg.GeminiAPIKey, file.GeminiAPIKey, "GEMINI_API_KEY")
	overlay(&cfg.OllamaBaseURL, file.OllamaBaseURL, "OLLAMA_BASE_URL")
	overlay(&cfg.SummaryProvider, file.SummaryProvider, "CCORE_SUMMARY_PROVIDER")
	overlay(&cfg.OpenAIModel, file.OpenAIModel, "CCORE_OPENAI_MODEL")
	overlay(&cfg.GeminiModel, file.GeminiModel, "CCORE_GEMINI_MODEL")
	overlay(&cfg.OllamaModel, file.OllamaModel, "CCORE_OLLAMA_MODEL")
	overlay(&cfg.OCREnabled, file.OCREnabled, "CCORE_OCR_ENABLED")
	overlay(&cfg.FormulaThreshold, file.FormulaThreshold, "CCORE_FORMULA_THRESHOLD")
	overlay(&cfg.CacheDir, file.CacheDir, "CCORE_CACHE_DIR")
	overlayDuration(&cfg.CacheMaxAge, file.CacheMaxAge, "CCORE_CACHE_MAX_AGE")
	overlay(&cfg.DefaultFormat, file.DefaultFormat, "CCORE_DEFAULT_FORMAT")
	overlay(&cfg.MaxUploadBytes, file.MaxUploadBytes, "CCORE_MAX_UPLOAD_BYTES")
	overlayDuration(&cfg.RequestTimeout, file.RequestTimeout, "CCORE_REQUEST_TIMEOUT")
	overlayDuration(&cfg.FetchTimeout, file.FetchTimeout, "CCORE_FETCH_TIMEOUT")
	overlay(&cfg.UserAgent, file.UserAgent, "CCORE_USER_AGENT")

	return cfg.Validate()
}

// overlay applies a file value unless the field's env var is set. An
// env var set to the empty string still counts as set.
func overlay[T any](dst *T, v *T, envKey string) {
	if v == nil {
		return
	}
	if _, ok := os.LookupEnv(envKey); ok {
		return
	}
	*dst = *v
}

func overlayDuration(dst *time.Duration, v *duration, envKey string) {
	if v == nil {
		return
	}
	if _, ok := os.LookupEnv(envKey); ok {
		return
	}
	*dst = time.Duration(*v)
}
