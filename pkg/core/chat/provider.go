// Package chat provides chat-completion functionality.
package chat

import (
	"context"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation record.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is the interface for chat-completion services.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// Complete generates the assistant reply for the given messages.
	Complete(ctx context.Context, messages []Message, opts CompleteOptions) (string, error)
}

// CompleteOptions configures completion.
type CompleteOptions struct {
	Model       string
	Temperature float32
}
