// Package llm sends a single chat completion to an OpenAI-compatible provider.
package llm

import (
	"context"
	"errors"
)

// Role is the author of a chat message.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one entry of a completion conversation.
type Message struct {
	Role    Role
	Content string
}

// Completer produces the assistant's reply text for a conversation.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

var (
	// ErrEmptyCompletion indicates the provider answered without any choices.
	ErrEmptyCompletion = errors.New("completion returned no choices")

	// ErrNotConfigured indicates no API key is configured.
	ErrNotConfigured = errors.New("completion provider not configured")
)
