package chat

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Shivsankar1987/deutschcoach/pkg/core"
)

const (
	defaultChatModel   = "gpt-4o-mini"
	defaultTemperature = 0.4
)

// OpenAIProvider implements the chat Provider interface using OpenAI's
// chat completions API.
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAI creates a new OpenAI chat provider.
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

// Complete generates the assistant reply for the given messages.
func (p *OpenAIProvider) Complete(ctx context.Context, messages []Message, opts CompleteOptions) (string, error) {
	model := opts.Model
	if model == "" {
		model = defaultChatModel
	}
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: temperature,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", core.NewUpstreamError("completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", core.NewUpstreamError("completion", errors.New("no choices returned"))
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
