package guardrail

import (
	"context"
	"errors"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatModel struct {
	reply *schema.Message
	err   error
	calls int
}

func (s *stubChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.reply, nil
}

const rawDecision = `{"eligible":true,"max_approved_amount":800000,"requested_amount":900000}`

// TestShouldVerify_Trigger verifies both trigger conditions must hold.
func TestShouldVerify_Trigger(t *testing.T) {
	v := NewVerifier(&stubChatModel{}, 0)

	assert.True(t, v.ShouldVerify(true, "You are approved for up to 8 lakh."))
	assert.False(t, v.ShouldVerify(false, "You are approved for up to 8 lakh."))
	assert.False(t, v.ShouldVerify(true, "Could you share your PAN number?"))
	assert.False(t, v.ShouldVerify(false, "Could you share your PAN number?"))
}

// TestVerify_RewritesInconsistentDraft verifies a differing reviewer output replaces the draft.
func TestVerify_RewritesInconsistentDraft(t *testing.T) {
	stub := &stubChatModel{reply: schema.AssistantMessage("You are approved for up to 8,00,000.", nil)}
	v := NewVerifier(stub, 0)

	draft := schema.AssistantMessage("You are approved for up to 9,00,000.", nil)
	got, rewritten := v.Verify(context.Background(), "conv-1", draft, rawDecision)

	require.True(t, rewritten)
	assert.Equal(t, "You are approved for up to 8,00,000.", got.Content)
	assert.Equal(t, 1, stub.calls)
}

// TestVerify_KeepsConsistentDraft verifies an identical reviewer output is not a rewrite.
func TestVerify_KeepsConsistentDraft(t *testing.T) {
	stub := &stubChatModel{reply: schema.AssistantMessage("You are approved for up to 8,00,000.", nil)}
	v := NewVerifier(stub, 0)

	draft := schema.AssistantMessage("You are approved for up to 8,00,000.", nil)
	got, rewritten := v.Verify(context.Background(), "conv-1", draft, rawDecision)

	assert.False(t, rewritten)
	assert.Same(t, draft, got)
}

// TestVerify_ModelFailureKeepsDraft verifies the guardrail fails open.
func TestVerify_ModelFailureKeepsDraft(t *testing.T) {
	stub := &stubChatModel{err: errors.New("deadline exceeded")}
	v := NewVerifier(stub, 0)

	draft := schema.AssistantMessage("You are approved for up to 9,00,000.", nil)
	got, rewritten := v.Verify(context.Background(), "conv-1", draft, rawDecision)

	assert.False(t, rewritten)
	assert.Same(t, draft, got)
}

// TestVerify_EmptyDraftSkipped verifies blank drafts never reach the model.
func TestVerify_EmptyDraftSkipped(t *testing.T) {
	stub := &stubChatModel{reply: schema.AssistantMessage("anything", nil)}
	v := NewVerifier(stub, 0)

	got, rewritten := v.Verify(context.Background(), "conv-1", schema.AssistantMessage("  ", nil), rawDecision)

	assert.False(t, rewritten)
	assert.Equal(t, 0, stub.calls)
	assert.NotNil(t, got)
}

// TestVerify_PreservesMetadata verifies only Content changes on a rewrite.
func TestVerify_PreservesMetadata(t *testing.T) {
	stub := &stubChatModel{reply: schema.AssistantMessage("Corrected figure: 8,00,000.", nil)}
	v := NewVerifier(stub, 0)

	draft := schema.AssistantMessage("Wrong figure: 9,00,000.", nil)
	draft.ResponseMeta = &schema.ResponseMeta{FinishReason: "stop"}

	got, rewritten := v.Verify(context.Background(), "conv-1", draft, rawDecision)

	require.True(t, rewritten)
	require.NotNil(t, got.ResponseMeta)
	assert.Equal(t, "stop", got.ResponseMeta.FinishReason)
	assert.Equal(t, schema.Assistant, got.Role)
}
