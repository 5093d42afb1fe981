package guardrail

import (
	"context"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/meridianbank/nova/internal/agent/graph/prompts"
	logx "github.com/meridianbank/nova/pkg/logger"
)

// ChatModel is the slice of the eino chat model the verifier needs.
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error)
}

// Verifier runs the single corrective pass over a drafted reply. It is
// best-effort: any upstream failure keeps the original draft, and it never
// verifies its own output, so there is no correction loop.
type Verifier struct {
	model   ChatModel
	timeout time.Duration
}

// NewVerifier builds a verifier around the given chat model. A non-positive
// timeout falls back to 20s.
func NewVerifier(m ChatModel, timeout time.Duration) *Verifier {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Verifier{model: m, timeout: timeout}
}

// ShouldVerify applies the trigger condition: an eligibility check ran this
// turn and the draft quotes at least one monetary figure.
func (v *Verifier) ShouldVerify(eligibilityInvoked bool, draft string) bool {
	return eligibilityInvoked && ContainsMonetaryFigure(draft)
}

// Verify cross-checks the draft against the raw eligibility output and
// returns the message to use plus whether a rewrite happened. The returned
// message keeps the draft's tool-call and usage metadata so downstream
// accounting stays consistent; only Content changes.
func (v *Verifier) Verify(ctx context.Context, conversationID string, draft *schema.Message, rawEligibility string) (*schema.Message, bool) {
	if draft == nil || strings.TrimSpace(draft.Content) == "" {
		return draft, false
	}

	msgs, err := prompts.RenderVerification(ctx, rawEligibility, draft.Content)
	if err != nil {
		logx.Warn().Err(err).Str("conversation_id", conversationID).Msg("guardrail prompt render failed; keeping original draft")
		return draft, false
	}

	vctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	out, err := v.model.Generate(vctx, msgs)
	if err != nil {
		logx.Warn().Err(err).Str("conversation_id", conversationID).Msg("guardrail verification call failed; keeping original draft")
		return draft, false
	}
	rewritten := strings.TrimSpace(out.Content)
	if rewritten == "" || rewritten == strings.TrimSpace(draft.Content) {
		return draft, false
	}

	logx.Info().
		Str("conversation_id", conversationID).
		Strs("draft_figures", Figures(draft.Content)).
		Msg("guardrail rewrote draft with inconsistent monetary figures")

	corrected := *draft
	corrected.Content = rewritten
	return &corrected, true
}
