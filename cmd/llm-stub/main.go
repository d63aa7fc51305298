// Command llm-stub serves a minimal OpenAI-compatible API for running
// contentd without network access or credentials. Point OLLAMA_BASE_URL
// at it to exercise summarization, or OPENAI_API_KEY plus a client base
// URL override to exercise media transcription.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "stub-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		// Echo the summarization goal back so callers can see the context
		// label flowed through the prompt.
		goal := ""
		for _, m := range req.Messages {
			for _, line := range strings.Split(m.Content, "\n") {
				if g, ok := strings.CutPrefix(line, "Summarization goal: "); ok {
					goal = strings.TrimSpace(g)
				}
			}
		}
		content := "Stub summary of the provided content."
		if goal != "" {
			content = "Stub summary focused on " + goal + "."
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	})
	mux.HandleFunc("/v1/audio/transcriptions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"text": "Stub transcript of the uploaded media file.",
		})
	})

	log.Printf("llm-stub listening on %s (model=%s)", addr, model)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}
