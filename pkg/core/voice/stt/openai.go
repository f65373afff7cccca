package stt

import (
	"context"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Shivsankar1987/deutschcoach/pkg/core"
)

const defaultTranscribeModel = "gpt-4o-mini-transcribe"

// OpenAIProvider implements the STT Provider interface using OpenAI's
// transcription API.
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAI creates a new OpenAI STT provider.
func NewOpenAI(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{client: openai.NewClient(apiKey)}
}

// NewOpenAIWithClient creates a provider backed by an existing client.
func NewOpenAIWithClient(client *openai.Client) *OpenAIProvider {
	return &OpenAIProvider{client: client}
}

// Name returns the provider identifier.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Transcribe converts audio to text via the transcription endpoint.
func (p *OpenAIProvider) Transcribe(ctx context.Context, audio io.Reader, opts TranscribeOptions) (*Transcript, error) {
	model := opts.Model
	if model == "" {
		model = defaultTranscribeModel
	}
	filename := strings.TrimSpace(opts.Filename)
	if filename == "" {
		// The API infers the container format from the file extension.
		filename = "speech.webm"
	}

	resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    model,
		Reader:   audio,
		FilePath: filename,
		Language: opts.Language,
	})
	if err != nil {
		return nil, core.NewUpstreamError("transcription", err)
	}

	return &Transcript{
		Text:     strings.TrimSpace(resp.Text),
		Language: resp.Language,
	}, nil
}
