package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8000 {
		t.Errorf("port = %d, want 8000", cfg.Port)
	}
	if cfg.DocumentEngine != "auto" {
		t.Errorf("document engine = %q, want auto", cfg.DocumentEngine)
	}
	if cfg.URLEngine != "auto" {
		t.Errorf("url engine = %q, want auto", cfg.URLEngine)
	}
	if cfg.DefaultFormat != FormatText {
		t.Errorf("default format = %q, want text", cfg.DefaultFormat)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CCORE_DOCUMENT_ENGINE", "docling")
	t.Setenv("CCORE_REQUEST_TIMEOUT", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DocumentEngine != "docling" {
		t.Errorf("document engine = %q, want docling", cfg.DocumentEngine)
	}
	if cfg.RequestTimeout.Seconds() != 45 {
		t.Errorf("request timeout = %v, want 45s", cfg.RequestTimeout)
	}
}

func TestValidateRejectsBadFormat(t *testing.T) {
	cfg := &Config{DefaultFormat: "xml", MaxUploadBytes: 1}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported default format")
	}
}

func TestValidateRejectsNonPositiveUploadLimit(t *testing.T) {
	cfg := &Config{DefaultFormat: FormatText, MaxUploadBytes: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero upload limit")
	}
}

func TestLoadFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contentd.yaml")
	content := "jinaAPIKey: file-key\ndocumentEngine: docling\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg := &Config{DocumentEngine: "auto", DefaultFormat: FormatText, MaxUploadBytes: 1}
	if err := LoadFile(path, true, cfg); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.JinaAPIKey != "file-key" {
		t.Errorf("jina key = %q, want file-key", cfg.JinaAPIKey)
	}
	if cfg.DocumentEngine != "docling" {
		t.Errorf("document engine = %q, want docling", cfg.DocumentEngine)
	}
}

func TestLoadFileOverlaysEveryField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contentd.yaml")
	content := `port: 9100
logLevel: debug
defaultFormat: markdown
formulaThreshold: 0.05
maxUploadBytes: 1024
requestTimeout: 45s
fetchTimeout: 5s
openAIModel: gpt-4o
cacheDir: /tmp/contentd-cache
cacheMaxAge: 2h
userAgent: custom/1.0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg := &Config{
		Port:           8000,
		LogLevel:       "info",
		DocumentEngine: "auto",
		URLEngine:      "auto",
		DefaultFormat:  FormatText,
		MaxUploadBytes: 52428800,
	}
	if err := LoadFile(path, true, cfg); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Port != 9100 {
		t.Errorf("port = %d, want 9100", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q, want debug", cfg.LogLevel)
	}
	if cfg.DefaultFormat != FormatMarkdown {
		t.Errorf("default format = %q, want markdown", cfg.DefaultFormat)
	}
	if cfg.FormulaThreshold != 0.05 {
		t.Errorf("formula threshold = %g, want 0.05", cfg.FormulaThreshold)
	}
	if cfg.MaxUploadBytes != 1024 {
		t.Errorf("max upload bytes = %d, want 1024", cfg.MaxUploadBytes)
	}
	if cfg.RequestTimeout != 45*time.Second {
		t.Errorf("request timeout = %v, want 45s", cfg.RequestTimeout)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Errorf("fetch timeout = %v, want 5s", cfg.FetchTimeout)
	}
	if cfg.OpenAIModel != "gpt-4o" {
		t.Errorf("openai model = %q, want gpt-4o", cfg.OpenAIModel)
	}
	if cfg.CacheDir != "/tmp/contentd-cache" {
		t.Errorf("cache dir = %q", cfg.CacheDir)
	}
	if cfg.CacheMaxAge != 2*time.Hour {
		t.Errorf("cache max age = %v, want 2h", cfg.CacheMaxAge)
	}
	if cfg.UserAgent != "custom/1.0" {
		t.Errorf("user agent = %q, want custom/1.0", cfg.UserAgent)
	}
}

func TestLoadFileEnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contentd.yaml")
	content := "jinaAPIKey: file-key\ndocumentEngine: docling\nport: 9100\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("CCORE_JINA_API_KEY", "env-key")
	t.Setenv("CCORE_DOCUMENT_ENGINE", "jina")
	t.Setenv("CCORE_PORT", "9200")

	cfg := &Config{
		Port:           9200,
		JinaAPIKey:     "env-key",
		DocumentEngine: "jina",
		DefaultFormat:  FormatText,
		MaxUploadBytes: 1,
	}
	if err := LoadFile(path, true, cfg); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.JinaAPIKey != "env-key" {
		t.Errorf("jina key = %q, want env value kept", cfg.JinaAPIKey)
	}
	if cfg.DocumentEngine != "jina" {
		t.Errorf("document engine = %q, want env value kept", cfg.DocumentEngine)
	}
	if cfg.Port != 9200 {
		t.Errorf("port = %d, want env value kept", cfg.Port)
	}
}

func TestLoadFileRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contentd.yaml")
	if err := os.WriteFile(path, []byte("requestTimeout: soon\n"), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	cfg := &Config{DefaultFormat: FormatText, MaxUploadBytes: 1}
	if err := LoadFile(path, true, cfg); err == nil {
		t.Fatal("expected error for unparseable duration")
	}
}

func TestLoadFileMissingDefaultPathIgnored(t *testing.T) {
	cfg := &Config{DefaultFormat: FormatText, MaxUploadBytes: 1}
	if err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"), false, cfg); err != nil {
		t.Fatalf("missing default file should be ignored: %v", err)
	}
}

func TestLoadFileMissingExplicitPathErrors(t *testing.T) {
	cfg := &Config{DefaultFormat: FormatText, MaxUploadBytes: 1}
	if err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"), true, cfg); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}
