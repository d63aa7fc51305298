package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/contentcore/contentd/internal/app"
	"github.com/contentcore/contentd/internal/engine"
)

type extractRequest struct {
	URL          string `json:"url"`
	Content      string `json:"content"`
	OutputFormat string `json:"output_format"`
	Engine       string `json:"engine"`
	Context      string `json:"context"`  // extract-and-summarize only
	Provider     string `json:"provider"` // extract-and-summarize only
}

type cleanRequest struct {
	Content string `json:"content"`
}

type summarizeRequest struct {
	Content  string `json:"content"`
	Context  string `json:"context"`
	Provider string `json:"provider"`
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "contentd",
		"endpoints": []string{
			"GET /health - process status and engine/provider availability",
			"POST /extract - extract content from a URL or raw text",
			"POST /extract/file - extract content from an uploaded file",
			"POST /clean - normalize already-extracted text",
			"POST /summarize - summarize content with an optional context",
			"POST /extract-and-summarize - combined extraction and summary",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.App.Health())
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, &app.ValidationError{Msg: err.Error()})
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	res, err := s.App.Extract(ctx, app.ExtractRequest{
		Input:          engine.Input{URL: req.URL, Text: req.Content},
		OutputFormat:   req.OutputFormat,
		EngineOverride: req.Engine,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	source := "text"
	if req.URL != "" {
		source = "url"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"content":  res.Content,
		"format":   res.Format,
		"metadata": res.Metadata,
		"source":   source,
	})
}

func (s *Server) handleExtractFile(w http.ResponseWriter, r *http.Request) {
	path, filename, err := s.saveUpload(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	defer removeTemp(path)

	ctx, cancel := s.requestContext(r)
	defer cancel()

	res, err := s.App.Extract(ctx, app.ExtractRequest{
		Input:          engine.Input{FilePath: path, Filename: filename},
		OutputFormat:   r.FormValue("output_format"),
		EngineOverride: r.FormValue("engine"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"content":   res.Content,
		"format":    res.Format,
		"metadata":  res.Metadata,
		"filename":  filename,
		"file_type": filepath.Ext(filename),
	})
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	var req cleanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, &app.ValidationError{Msg: err.Error()})
		return
	}
	if req.Content == "" {
		writeError(w, &app.ValidationError{Msg: "content must not be empty"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"cleaned_content": s.App.Clean(req.Content),
	})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, &app.ValidationError{Msg: err.Error()})
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	res, err := s.App.Summarize(ctx, req.Content, req.Context, req.Provider)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"summary":  res.Summary,
		"provider": res.Provider,
		"model":    res.Model,
		"context":  req.Context,
	})
}

// handleExtractAndSummarize accepts either a JSON body (url or content)
// or a multipart upload (file), mirroring the extraction endpoints.
func (s *Server) handleExtractAndSummarize(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	var (
		req          app.ExtractRequest
		contextLabel string
		provider     string
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		path, filename, err := s.saveUpload(w, r)
		if err != nil {
			writeError(w, err)
			return
		}
		defer removeTemp(path)
		req = app.ExtractRequest{
			Input:        engine.Input{FilePath: path, Filename: filename},
			OutputFormat: r.FormValue("output_format"),
		}
		contextLabel = r.FormValue("context")
		provider = r.FormValue("provider")
		s.writeCombined(w, ctx, req, contextLabel, provider)
		return
	}

	var body extractRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, &app.ValidationError{Msg: err.Error()})
		return
	}
	req = app.ExtractRequest{
		Input:          engine.Input{URL: body.URL, Text: body.Content},
		OutputFormat:   body.OutputFormat,
		EngineOverride: body.Engine,
	}
	s.writeCombined(w, ctx, req, body.Context, body.Provider)
}

func (s *Server) writeCombined(w http.ResponseWriter, ctx context.Context, req app.ExtractRequest, contextLabel, provider string) {
	combined, err := s.App.ExtractAndSummarize(ctx, req, contextLabel, provider)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"content":  combined.Extraction.Content,
		"format":   combined.Extraction.Format,
		"metadata": combined.Extraction.Metadata,
		"summary":  combined.Summary.Summary,
		"provider": combined.Summary.Provider,
		"model":    combined.Summary.Model,
		"context":  contextLabel,
	})
}

// saveUpload writes the "file" part to a temp file whose suffix keeps the
// original extension so document engines can classify it. The caller owns
// removal via removeTemp on every exit path.
func (s *Server) saveUpload(w http.ResponseWriter, r *http.Request) (path, filename string, err error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.Cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.Cfg.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if ok := errors.As(err, &maxErr); ok {
			return "", "", &app.ValidationError{Msg: fmt.Sprintf("upload exceeds %d bytes", s.Cfg.MaxUploadBytes)}
		}
		return "", "", &app.ValidationError{Msg: "malformed multipart body"}
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", "", &app.ValidationError{Msg: "missing file field"}
	}
	defer file.Close()
	return writeTemp(file, header)
}

func writeTemp(file multipart.File, header *multipart.FileHeader) (string, string, error) {
	tmp, err := os.CreateTemp("", "contentd-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		removeTemp(tmp.Name())
		return "", "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		removeTemp(tmp.Name())
		return "", "", fmt.Errorf("close temp file: %w", err)
	}
	return tmp.Name(), header.Filename, nil
}

func removeTemp(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", path).Msg("temp file cleanup failed")
	}
}
