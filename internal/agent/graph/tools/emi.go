package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/meridianbank/nova/internal/agent/session"
	"github.com/meridianbank/nova/internal/loan"
)

type CalculateEMIInput struct {
	Principal     float64 `json:"principal"`
	AnnualRatePct float64 `json:"annual_rate_pct"`
	TenureMonths  int     `json:"tenure_months"`
}

func createCalculateEMITool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolCalculateEMI,
			Desc: "Calculate exact EMI for a given loan amount, interest rate, and tenure.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"principal": {
					Type:     "number",
					Desc:     "The loan principal amount",
					Required: true,
				},
				"annual_rate_pct": {
					Type:     "number",
					Desc:     "The annual interest rate as a percentage",
					Required: true,
				},
				"tenure_months": {
					Type:     "number",
					Desc:     "The loan tenure in months",
					Required: true,
				},
			}),
		},
		guarded(ToolCalculateEMI, func(ctx context.Context, tr *session.Tracker, in *CalculateEMIInput) (Result, error) {
			emi, err := loan.CalculateEMI(in.Principal, in.AnnualRatePct, in.TenureMonths)
			if err != nil {
				return errResult(err), nil
			}
			return Result{
				"monthly_emi":     emi,
				"principal":       in.Principal,
				"annual_rate_pct": in.AnnualRatePct,
				"tenure_months":   in.TenureMonths,
			}, nil
		}),
	)
}
