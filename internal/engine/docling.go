package engine

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DoclingEngine converts documents through a docling-serve instance. It
// handles formats the simple parser cannot (scanned PDFs, office files)
// and can run OCR server-side. A candidate only when a base URL is
// configured.
type DoclingEngine struct {
	BaseURL string
	OCR     bool
	Client  *http.Client
}

func (e *DoclingEngine) Name() string    { return "docling" }
func (e *DoclingEngine) Kind() Kind      { return KindDocument }
func (e *DoclingEngine) Available() bool { return e.BaseURL != "" }

var doclingExtensions = map[string]bool{
	".pdf": true, ".docx": true, ".pptx": true, ".xlsx": true,
	".html": true, ".htm": true, ".md": true, ".csv": true,
	".png": true, ".jpg": true, ".jpeg": true, ".tiff": true,
}

type doclingRequest struct {
	Options     doclingOptions  `json:"options"`
	FileSources []doclingSource `json:"file_sources"`
}

type doclingOptions struct {
	ToFormats []string `json:"to_formats"`
	DoOCR     bool     `json:"do_ocr"`
}

type doclingSource struct {
	Base64String string `json:"base64_string"`
	Filename     string `json:"filename"`
}

type doclingResponse struct {
	Status   string `json:"status"`
	Document struct {
		MDContent   string `json:"md_content"`
		TextContent string `json:"text_content"`
	} `json:"document"`
	Errors []struct {
		ErrorMessage string `json:"error_message"`
	} `json:"errors"`
}

func (e *DoclingEngine) Extract(ctx context.Context, in Input) (*Raw, error) {
	if in.FilePath == "" {
		return nil, NewError(e.Name(), KindUnsupported, "no file input")
	}
	if !e.Available() {
		return nil, NewError(e.Name(), KindUnavailable, "base URL not configured")
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(in.FilePath))
	}
	if !doclingExtensions[ext] {
		return nil, NewError(e.Name(), KindUnsupported, "extension %q", ext)
	}

	data, err := os.ReadFile(in.FilePath)
	if err != nil {
		return nil, WrapError(e.Name(), KindParseFailure, err)
	}

	name := in.Filename
	if name == "" {
		name = filepath.Base(in.FilePath)
	}
	payload, err := json.Marshal(doclingRequest{
		Options:     doclingOptions{ToFormats: []string{"md", "text"}, DoOCR: e.OCR},
		FileSources: []doclingSource{{Base64String: base64.StdEncoding.EncodeToString(data), Filename: name}},
	})
	if err != nil {
		return nil, WrapError(e.Name(), KindRemoteFailure, err)
	}

	endpoint := strings.TrimRight(e.BaseURL, "/") + "/v1alpha/convert/source"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, WrapError(e.Name(), KindRemoteFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient().Do(req)
	if err != nil {
		return nil, WrapError(e.Name(), KindRemoteFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError(e.Name(), KindRemoteFailure, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewError(e.Name(), KindRemoteFailure, "HTTP %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed doclingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, WrapError(e.Name(), KindRemoteFailure, fmt.Errorf("parse response: %w", err))
	}
	if parsed.Status != "" && parsed.Status != "success" {
		msg := parsed.Status
		if len(parsed.Errors) > 0 {
			msg = parsed.Errors[0].ErrorMessage
		}
		return nil, NewError(e.Name(), KindRemoteFailure, "conversion failed: %s", msg)
	}

	text := parsed.Document.TextContent
	if text == "" {
		text = stripMarkdown(parsed.Document.MDContent)
	}
	if strings.TrimSpace(text) == "" {
		return nil, NewError(e.Name(), KindRemoteFailure, "empty conversion result for %s", name)
	}
	return &Raw{
		Text:     text,
		Markdown: parsed.Document.MDContent,
		Metadata: map[string]string{"filename": name},
	}, nil
}

func (e *DoclingEngine) httpClient() *http.Client {
	if e.Client != nil {
		return e.Client
	}
	return &http.Client{Timeout: 120 * time.Second}
}
