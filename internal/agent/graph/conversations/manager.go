package conversations

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/meridianbank/nova/internal/agent/model"
)

// MessagesManager mediates between the graph and the conversation
// repository: it persists user turns, assembles the model context, and saves
// or overwrites the assistant reply at the end of a turn.
type MessagesManager struct {
	conversationRepo model.ConversationRepository
}

func NewMessagesManager(conversationRepo model.ConversationRepository) *MessagesManager {
	return &MessagesManager{conversationRepo: conversationRepo}
}

// BuildTurnContext saves the incoming user message and returns the full model
// context: system prompt followed by the stored history (which now ends with
// the new user turn).
func (cm *MessagesManager) BuildTurnContext(ctx context.Context, conversationID, systemPrompt, query string) ([]*schema.Message, error) {
	if err := cm.conversationRepo.AddMessage(ctx, conversationID, schema.UserMessage(query)); err != nil {
		return nil, err
	}

	history, err := cm.conversationRepo.LoadHistory(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	messages := make([]*schema.Message, 0, len(history.Messages)+1)
	messages = append(messages, schema.SystemMessage(systemPrompt))
	messages = append(messages, history.Messages...)
	return messages, nil
}

// SaveResponse appends the final assistant reply to the stored history.
func (cm *MessagesManager) SaveResponse(ctx context.Context, conversationID string, content string) error {
	assistantMsg := schema.AssistantMessage(content, nil)
	return cm.conversationRepo.AddMessage(ctx, conversationID, assistantMsg)
}

// ReplaceResponse overwrites the most recent stored reply with corrected
// content. History length is unchanged: replies are rewritten, never stacked.
func (cm *MessagesManager) ReplaceResponse(ctx context.Context, conversationID string, content string) error {
	assistantMsg := schema.AssistantMessage(content, nil)
	return cm.conversationRepo.ReplaceLastMessage(ctx, conversationID, assistantMsg)
}
