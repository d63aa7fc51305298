package engine

import (
	"context"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Transcriber is the slice of the OpenAI client the media engine needs.
type Transcriber interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// MediaEngine produces transcripts from audio and video files using the
// Whisper transcription API. A candidate only when an OpenAI key is
// configured.
type MediaEngine struct {
	Client Transcriber // nil when no credential is configured
	Model  string      // defaults to whisper-1
}

func (e *MediaEngine) Name() string    { return "media" }
func (e *MediaEngine) Kind() Kind      { return KindMedia }
func (e *MediaEngine) Available() bool { return e.Client != nil }

var mediaExtensions = map[string]bool{
	".mp3": true, ".mp4": true, ".mpeg": true, ".mpga": true,
	".m4a": true, ".wav": true, ".webm": true, ".ogg": true, ".flac": true,
}

// IsMediaExtension reports whether ext (with leading dot) is a media
// format the transcription engine accepts.
func IsMediaExtension(ext string) bool {
	return mediaExtensions[strings.ToLower(ext)]
}

func (e *MediaEngine) Extract(ctx context.Context, in Input) (*Raw, error) {
	if in.FilePath == "" {
		return nil, NewError(e.Name(), KindUnsupported, "no file input")
	}
	ext := strings.ToLower(filepath.Ext(in.Filename))
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(in.FilePath))
	}
	if !IsMediaExtension(ext) {
		return nil, NewError(e.Name(), KindUnsupported, "extension %q", ext)
	}
	if !e.Available() {
		return nil, NewError(e.Name(), KindUnavailable, "transcription credential not configured")
	}

	model := e.Model
	if model == "" {
		model = openai.Whisper1
	}
	resp, err := e.Client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    model,
		FilePath: in.FilePath,
	})
	if err != nil {
		return nil, WrapError(e.Name(), KindRemoteFailure, err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return nil, NewError(e.Name(), KindRemoteFailure, "empty transcript for %s", in.Filename)
	}

	meta := map[string]string{"model": model}
	if in.Filename != "" {
		meta["filename"] = in.Filename
	}
	return &Raw{Text: resp.Text, Metadata: meta}, nil
}
