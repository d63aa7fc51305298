package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/contentcore/contentd/internal/app"
	"github.com/contentcore/contentd/internal/engine"
	"github.com/contentcore/contentd/internal/selector"
	"github.com/contentcore/contentd/internal/summarize"
)

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return errors.New("request body is not valid JSON")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("response write failed")
	}
}

type errorBody struct {
	Kind     string           `json:"kind"`
	Message  string           `json:"message"`
	Attempts []attemptSummary `json:"attempts,omitempty"`
	Engine   string           `json:"engine,omitempty"`
	Provider string           `json:"provider,omitempty"`
}

type attemptSummary struct {
	Engine string `json:"engine"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// writeError maps domain errors to HTTP statuses. Input problems are 400,
// extraction failures 422, a missing summarizer configuration 503, and an
// upstream provider failure 502. Anything unrecognized is a 500 and logged.
func writeError(w http.ResponseWriter, err error) {
	var (
		valErr  *app.ValidationError
		allErr  *selector.AllEnginesFailed
		engErr  *engine.Error
		provErr *summarize.ProviderError
	)

	switch {
	case errors.As(err, &valErr):
		writeErrorBody(w, http.StatusBadRequest, errorBody{
			Kind:    "validation_error",
			Message: valErr.Error(),
		})
	case errors.As(err, &allErr):
		attempts := make([]attemptSummary, 0, len(allErr.Attempts))
		for _, a := range allErr.Attempts {
			attempts = append(attempts, attemptSummary{
				Engine: a.Engine,
				Kind:   string(a.Kind),
				Reason: a.Reason,
			})
		}
		writeErrorBody(w, http.StatusUnprocessableEntity, errorBody{
			Kind:     "all_engines_failed",
			Message:  allErr.Error(),
			Attempts: attempts,
		})
	case errors.As(err, &engErr):
		writeErrorBody(w, http.StatusUnprocessableEntity, errorBody{
			Kind:    "extraction_error",
			Message: engErr.Error(),
			Engine:  engErr.Engine,
		})
	case errors.Is(err, summarize.ErrNoProviderConfigured):
		writeErrorBody(w, http.StatusServiceUnavailable, errorBody{
			Kind:    "no_provider_configured",
			Message: err.Error(),
		})
	case errors.As(err, &provErr):
		writeErrorBody(w, http.StatusBadGateway, errorBody{
			Kind:     "provider_error",
			Message:  provErr.Error(),
			Provider: provErr.Provider,
		})
	default:
		log.Error().Err(err).Msg("unhandled request error")
		writeErrorBody(w, http.StatusInternalServerError, errorBody{
			Kind:    "internal_error",
			Message: "internal error",
		})
	}
}

func writeErrorBody(w http.ResponseWriter, status int, body errorBody) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   body,
	})
}
