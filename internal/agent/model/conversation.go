package model

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/meridianbank/nova/internal/agent/session"
)

type ConversationRepository interface {
	// AddMessage appends a message to the conversation history for the given thread
	AddMessage(ctx context.Context, conversationID string, message *schema.Message) error

	// ReplaceLastMessage overwrites the most recent message in the history.
	// Used by the guardrail, which rewrites a draft instead of appending.
	ReplaceLastMessage(ctx context.Context, conversationID string, message *schema.Message) error

	// LoadHistory retrieves the conversation history for a thread
	LoadHistory(ctx context.Context, conversationID string) (*ConversationHistory, error)

	// ClearHistory removes all conversation history for a thread
	ClearHistory(ctx context.Context, conversationID string) error

	// GetMessageCount returns the number of messages in the conversation
	GetMessageCount(ctx context.Context, conversationID string) (int, error)
}

// SessionRepository persists the per-thread flow state between HTTP requests.
type SessionRepository interface {
	LoadState(ctx context.Context, conversationID string) (session.State, error)
	SaveState(ctx context.Context, conversationID string, state session.State) error
}

// ConversationHistory represents loaded conversation data with metadata.
type ConversationHistory struct {
	ConversationID string
	Messages       []*schema.Message
}
