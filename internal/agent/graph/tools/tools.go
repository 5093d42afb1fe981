// Package tools exposes the loan origination operations as eino tools. This
// is the tool boundary from the error-handling contract: every fault is
// converted into a structured {"error": message} result so the model can
// react (re-ask for an identifier, pick another product) instead of the turn
// crashing.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/meridianbank/nova/internal/agent/session"
	errx "github.com/meridianbank/nova/internal/core/error"
	"github.com/meridianbank/nova/internal/store"
	logx "github.com/meridianbank/nova/pkg/logger"
)

// Tool names form a closed set; dispatch outside it is rejected by the graph.
const (
	ToolVerifyIdentity        = "verify_identity"
	ToolFetchCreditReport     = "fetch_credit_report"
	ToolFetchFinancialProfile = "fetch_financial_profile"
	ToolSearchLoanProducts    = "search_loan_products"
	ToolCheckEligibility      = "check_eligibility"
	ToolCalculateEMI          = "calculate_emi"
	ToolGeneratePreApproval   = "generate_pre_approval"
)

// Result is the uniform tool output payload.
type Result map[string]any

func errResult(err error) Result {
	return Result{"error": errx.SafeMessage(err)}
}

func errMessage(msg string) Result {
	return Result{"error": msg}
}

// structResult converts a typed payload into a Result via its JSON form, so
// tool outputs and persisted decisions share one serialization.
func structResult(v any) (Result, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	var m Result
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unmarshal tool result: %w", err)
	}
	return m, nil
}

// guarded wraps a tool body with stage gating and panic conversion. The
// tracker travels in ctx from the runner; a missing tracker means the tool is
// being invoked outside a conversation turn, which is a wiring bug.
func guarded[T any](name string, fn func(ctx context.Context, tr *session.Tracker, in T) (Result, error)) func(context.Context, T) (Result, error) {
	return func(ctx context.Context, in T) (out Result, err error) {
		defer func() {
			if r := recover(); r != nil {
				logx.Error().Str("tool", name).Msgf("panic recovered: %v", r)
				out = errMessage(errx.SystemErrorMessage)
				err = nil
			}
		}()

		tr := session.FromContext(ctx)
		if tr == nil {
			logx.Error().Str("tool", name).Msg("no session tracker in context")
			return errMessage(errx.SystemErrorMessage), nil
		}
		if gateErr := tr.AllowTool(name); gateErr != nil {
			logx.Warn().
				Str("tool", name).
				Str("stage", string(tr.Stage())).
				Str("reason", gateErr.Message).
				Msg("tool call refused by stage gate")
			return errResult(gateErr), nil
		}
		return fn(ctx, tr, in)
	}
}

// GetToolInfos resolves the schema infos for binding tools to the chat model.
func GetToolInfos(ctx context.Context, ts []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(ts))
	for _, t := range ts {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// GetLoanTools binds the full tool set against the given data store.
func GetLoanTools(st *store.Store) []tool.BaseTool {
	return []tool.BaseTool{
		createVerifyIdentityTool(st),
		createFetchCreditReportTool(st),
		createFetchFinancialProfileTool(st),
		createSearchLoanProductsTool(st),
		createCheckEligibilityTool(st),
		createCalculateEMITool(),
		createGeneratePreApprovalTool(st),
	}
}
