// Package server exposes the extraction and summarization operations
// over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/contentcore/contentd/internal/app"
	"github.com/contentcore/contentd/internal/config"
)

// Server routes HTTP requests to the orchestration facade.
type Server struct {
	App *app.App
	Cfg *config.Config
}

// Handler builds the route table. Method patterns require Go 1.22+.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /extract", s.handleExtract)
	mux.HandleFunc("POST /extract/file", s.handleExtractFile)
	mux.HandleFunc("POST /clean", s.handleClean)
	mux.HandleFunc("POST /summarize", s.handleSummarize)
	mux.HandleFunc("POST /extract-and-summarize", s.handleExtractAndSummarize)
	return s.withRequestLog(mux)
}

// withRequestLog tags each request with an id and logs its outcome.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
		log.Info().
			Str("request_id", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(started)).
			Msg("request handled")
	})
}

// requestContext bounds one request by the configured timeout so a stuck
// engine attempt cannot hold the connection forever. The deadline
// surfaces inside engines as a timeout failure kind.
func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.Cfg.RequestTimeout <= 0 {
		return r.Context(), func() {}
	}
	return context.WithTimeout(r.Context(), s.Cfg.RequestTimeout)
}
