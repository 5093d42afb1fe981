// Package session tracks per-thread conversation state that must outlive a
// single model turn: the flow stage, the last eligibility decision, and the
// raw tool output the guardrail verifies drafts against.
package session

import (
	"context"
	"sync"

	errx "github.com/meridianbank/nova/internal/core/error"
	"github.com/meridianbank/nova/internal/loan"
)

// State is the persisted portion of a tracker, stored per thread id.
type State struct {
	Stage       Stage          `json:"stage"`
	Decision    *loan.Decision `json:"decision,omitempty"`
	RawDecision string         `json:"raw_decision,omitempty"`
}

// Tracker holds the live session state for the turn currently processing a
// thread. Turn-scoped fields (eligibility invocation flag) reset on Restore.
type Tracker struct {
	threadID string

	mu                 sync.Mutex
	stage              Stage
	decision           *loan.Decision
	rawDecision        string
	eligibilityInvoked bool
}

// NewTracker builds a tracker for a fresh thread.
func NewTracker(threadID string) *Tracker {
	return &Tracker{threadID: threadID, stage: StageNew}
}

// ThreadID returns the opaque thread identifier this tracker belongs to.
func (t *Tracker) ThreadID() string {
	return t.threadID
}

// Restore loads persisted state into the tracker and resets turn-scoped flags.
func (t *Tracker) Restore(s State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stage = s.Stage
	if t.stage == "" {
		t.stage = StageNew
	}
	t.decision = s.Decision
	t.rawDecision = s.RawDecision
	t.eligibilityInvoked = false
}

// Snapshot returns the persistable state.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return State{Stage: t.stage, Decision: t.decision, RawDecision: t.rawDecision}
}

// Stage returns the current flow stage.
func (t *Tracker) Stage() Stage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stage
}

// Advance moves the stage forward; earlier stages never override later ones.
func (t *Tracker) Advance(next Stage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stage = advance(t.stage, next)
}

// RecordDecision stores the authoritative eligibility decision for the thread
// together with the raw tool output, advances the stage accordingly, and
// marks the current turn as having invoked an eligibility check.
func (t *Tracker) RecordDecision(d loan.Decision, raw string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.decision = &d
	t.rawDecision = raw
	t.eligibilityInvoked = true
	if d.Eligible {
		t.stage = advance(t.stage, StageEligibilityChecked)
	} else {
		t.stage = advance(t.stage, StageRejected)
	}
}

// LastDecision returns the thread's most recent eligibility decision, or nil.
func (t *Tracker) LastDecision() *loan.Decision {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.decision
}

// RawDecision returns the raw eligibility tool output for guardrail prompts.
func (t *Tracker) RawDecision() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rawDecision
}

// EligibilityInvoked reports whether this turn ran an eligibility check.
func (t *Tracker) EligibilityInvoked() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.eligibilityInvoked
}

// AllowTool gates a tool call against the current stage and recorded
// decision. A refusal is returned as a validation error whose message the
// model can read and act on.
func (t *Tracker) AllowTool(toolName string) *errx.AppError {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch toolName {
	case "verify_identity":
		return nil
	case "fetch_credit_report", "fetch_financial_profile":
		if !t.stage.AtLeast(StageAuthenticating) {
			return errx.Validation("identity must be verified before accessing customer records")
		}
		return nil
	case "search_loan_products", "calculate_emi", "check_eligibility":
		if !t.stage.AtLeast(StageProfiled) {
			return errx.Validation("credit report and financial profile must be fetched first")
		}
		return nil
	case "generate_pre_approval":
		if t.decision == nil {
			return errx.Validation("a successful eligibility check is required before pre-approval")
		}
		if !t.decision.Eligible {
			return errx.Validation("customer is not eligible for a pre-approval on this request")
		}
		return nil
	default:
		return errx.Validation("unknown tool")
	}
}

// CapAmount enforces that a pre-approval amount never exceeds the last
// decision's approved maximum.
func (t *Tracker) CapAmount(amount int) *errx.AppError {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.decision == nil {
		return errx.Validation("a successful eligibility check is required before pre-approval")
	}
	if amount > t.decision.MaxApprovedAmount {
		return errx.Validation("amount exceeds the approved maximum for this customer")
	}
	return nil
}

type ctxKey struct{}

// NewContext attaches the tracker to ctx so tools can reach it mid-graph.
func NewContext(ctx context.Context, t *Tracker) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext returns the tracker attached to ctx, or nil.
func FromContext(ctx context.Context) *Tracker {
	t, _ := ctx.Value(ctxKey{}).(*Tracker)
	return t
}
