package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/meridianbank/nova/internal/agent/model"
)

//go:embed template/system_prompt.txt
var coreSystemPrompt string

//go:embed template/verification_prompt.txt
var verificationPrompt string

// VerifyToolName is injected into the system prompt so the instruction text
// always names the bound tool correctly.
const VerifyToolName = "verify_identity"

// RenderSystem renders the assistant system prompt and triggers prompt callbacks.
func RenderSystem(ctx context.Context, config model.ResponsePromptConfig) (string, error) {
	// Render via Eino prompt component (Go template) to both format and emit callbacks
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(coreSystemPrompt),
	)
	vars := map[string]any{
		"AssistantName": config.AssistantName,
		"BankName":      config.BankName,
		"VerifyTool":    VerifyToolName,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("system prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("system prompt render: empty result")
	}
	return msgs[0].Content, nil
}

// RenderVerification builds the guardrail's verification messages from the
// raw eligibility tool output and the drafted reply.
func RenderVerification(ctx context.Context, eligibilityOutput, draft string) ([]*schema.Message, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.UserMessage(verificationPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"EligibilityOutput": eligibilityOutput,
		"Draft":             draft,
	})
	if err != nil {
		return nil, fmt.Errorf("verification prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return nil, fmt.Errorf("verification prompt render: empty result")
	}
	return msgs, nil
}
