package tools

import (
	"context"
	"time"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/meridianbank/nova/internal/agent/session"
	errx "github.com/meridianbank/nova/internal/core/error"
	"github.com/meridianbank/nova/internal/loan"
	"github.com/meridianbank/nova/internal/store"
)

type GeneratePreApprovalInput struct {
	CustomerID    string  `json:"customer_id"`
	ProductID     string  `json:"product_id"`
	Amount        int     `json:"amount"`
	AnnualRatePct float64 `json:"annual_rate_pct"`
	TenureMonths  int     `json:"tenure_months"`
}

func createGeneratePreApprovalTool(st *store.Store) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGeneratePreApproval,
			Desc: "Generate a pre-approval reference for an eligible customer. Only call after a successful eligibility check.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"customer_id": {
					Type:     "string",
					Desc:     "The customer id of the customer",
					Required: true,
				},
				"product_id": {
					Type:     "string",
					Desc:     "The product id of the selected loan product",
					Required: true,
				},
				"amount": {
					Type:     "number",
					Desc:     "The approved loan amount from the eligibility check",
					Required: true,
				},
				"annual_rate_pct": {
					Type:     "number",
					Desc:     "The annual interest rate of the selected product",
					Required: true,
				},
				"tenure_months": {
					Type:     "number",
					Desc:     "The loan tenure in months",
					Required: true,
				},
			}),
		},
		guarded(ToolGeneratePreApproval, func(ctx context.Context, tr *session.Tracker, in *GeneratePreApprovalInput) (Result, error) {
			// The stage gate already required an eligible decision; the cap
			// below pins the amount to that decision's approved maximum.
			if err := tr.CapAmount(in.Amount); err != nil {
				return errResult(err), nil
			}
			if _, err := st.FindCustomer(in.CustomerID); err != nil {
				return errResult(err), nil
			}

			pa, err := loan.IssuePreApproval(in.CustomerID, in.ProductID, in.Amount, in.AnnualRatePct, in.TenureMonths, time.Now())
			if err != nil {
				return errResult(err), nil
			}

			out, serr := structResult(pa)
			if serr != nil {
				return errMessage(errx.SystemErrorMessage), nil
			}
			tr.Advance(session.StagePreApproved)
			return out, nil
		}),
	)
}
