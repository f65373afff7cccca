// Package stt provides speech-to-text functionality.
package stt

import (
	"context"
	"io"
)

// Provider is the interface for speech-to-text services.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// Transcribe converts audio to text.
	Transcribe(ctx context.Context, audio io.Reader, opts TranscribeOptions) (*Transcript, error)
}

// TranscribeOptions configures transcription.
type TranscribeOptions struct {
	Model    string // Provider-specific model
	Filename string // Original upload name; the extension is the format hint
	Language string // ISO language code
}

// Transcript is the result of transcription.
type Transcript struct {
	Text     string // Full transcribed text
	Language string // Detected or specified language
}
