package tts

import (
	"context"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Shivsankar1987/deutschcoach/pkg/core"
)

const (
	defaultTTSModel = "gpt-4o-mini-tts"
	defaultVoice    = "marin"
)

// OpenAIProvider implements the TTS Provider interface using OpenAI's
// speech API.
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAI creates a new OpenAI TTS provider.
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

// Synthesize converts text to audio via the speech endpoint.
func (p *OpenAIProvider) Synthesize(ctx context.Context, text string, opts SynthesizeOptions) (*Synthesis, error) {
	model := opts.Model
	if model == "" {
		model = defaultTTSModel
	}
	voice := opts.Voice
	if voice == "" {
		voice = defaultVoice
	}
	format := opts.Format
	if format == "" {
		format = "mp3"
	}

	resp, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(model),
		Input:          text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormat(format),
		Speed:          opts.Speed,
	})
	if err != nil {
		return nil, core.NewUpstreamError("synthesis", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, core.NewUpstreamError("synthesis", err)
	}

	return &Synthesis{Audio: audio, Format: format}, nil
}
