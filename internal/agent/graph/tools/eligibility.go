package tools

import (
	"context"
	"encoding/json"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/meridianbank/nova/internal/agent/session"
	errx "github.com/meridianbank/nova/internal/core/error"
	"github.com/meridianbank/nova/internal/loan"
	"github.com/meridianbank/nova/internal/store"
	logx "github.com/meridianbank/nova/pkg/logger"
)

type CheckEligibilityInput struct {
	CustomerID             string `json:"customer_id"`
	CreditScore            int    `json:"credit_score"`
	MonthlyIncome          int    `json:"monthly_income"`
	ExistingMonthlyEMI     int    `json:"existing_monthly_emi"`
	RequestedAmount        int    `json:"requested_amount"`
	EmploymentType         string `json:"employment_type"`
	EmploymentTenureMonths int    `json:"employment_tenure_months"`
}

func createCheckEligibilityTool(st *store.Store) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolCheckEligibility,
			Desc: "Check loan eligibility based on credit and financial profile. Returns maximum approved amount and a decision on eligibility.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"customer_id": {
					Type:     "string",
					Desc:     "The customer id of the customer",
					Required: true,
				},
				"credit_score": {
					Type:     "number",
					Desc:     "The customer's current credit score",
					Required: true,
				},
				"monthly_income": {
					Type:     "number",
					Desc:     "The customer's monthly income",
					Required: true,
				},
				"existing_monthly_emi": {
					Type:     "number",
					Desc:     "The customer's existing monthly EMI obligations",
					Required: true,
				},
				"requested_amount": {
					Type:     "number",
					Desc:     "The loan amount requested by the customer",
					Required: true,
				},
				"employment_type": {
					Type:     "string",
					Desc:     "Type of employment",
					Required: true,
				},
				"employment_tenure_months": {
					Type:     "number",
					Desc:     "Duration of current employment in months",
					Required: true,
				},
			}),
		},
		guarded(ToolCheckEligibility, func(ctx context.Context, tr *session.Tracker, in *CheckEligibilityInput) (Result, error) {
			customer, err := st.FindCustomer(in.CustomerID)
			if err != nil {
				return errResult(err), nil
			}

			decision, err := loan.Evaluate(st.Products(), loan.EligibilityInput{
				CustomerID:             customer.CustomerID,
				CreditScore:            in.CreditScore,
				MonthlyIncome:          in.MonthlyIncome,
				ExistingMonthlyEMI:     in.ExistingMonthlyEMI,
				RequestedAmount:        in.RequestedAmount,
				EmploymentType:         in.EmploymentType,
				EmploymentTenureMonths: in.EmploymentTenureMonths,
				DefaultsLast3Years:     customer.CreditReport.DefaultsLast3Years,
			})
			if err != nil {
				logx.Warn().Err(err).Str("customer_id", in.CustomerID).Msg("eligibility evaluation failed")
				return errResult(err), nil
			}

			raw, err := json.Marshal(decision)
			if err != nil {
				return errMessage(errx.SystemErrorMessage), nil
			}
			// The recorded decision is the single source of truth the
			// guardrail verifies drafts against and the pre-approval gate
			// enforces; the tool output below is the same bytes.
			tr.RecordDecision(decision, string(raw))

			var out Result
			if err := json.Unmarshal(raw, &out); err != nil {
				return errMessage(errx.SystemErrorMessage), nil
			}
			return out, nil
		}),
	)
}
