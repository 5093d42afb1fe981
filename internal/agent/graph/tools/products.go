package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/meridianbank/nova/internal/agent/session"
	"github.com/meridianbank/nova/internal/loan"
	"github.com/meridianbank/nova/internal/store"
)

type SearchLoanProductsInput struct {
	ApprovedAmount int    `json:"approved_amount"`
	CreditScore    int    `json:"credit_score"`
	EmploymentType string `json:"employment_type"`
}

func createSearchLoanProductsTool(st *store.Store) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSearchLoanProducts,
			Desc: "Search available loan products matching the customer's profile and approved amount.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"approved_amount": {
					Type:     "number",
					Desc:     "The maximum loan amount approved for the customer",
					Required: true,
				},
				"credit_score": {
					Type:     "number",
					Desc:     "The customer's current credit score",
					Required: true,
				},
				"employment_type": {
					Type:     "string",
					Desc:     `Type of employment (e.g., "salaried", "self-employed", "business")`,
					Required: true,
				},
			}),
		},
		guarded(ToolSearchLoanProducts, func(ctx context.Context, tr *session.Tracker, in *SearchLoanProductsInput) (Result, error) {
			products := loan.FilterProducts(st.Products(), in.CreditScore, 0)
			tr.Advance(session.StageNegotiatingProduct)
			// An empty slice is a valid outcome: it tells the model no
			// product clears the customer's credit score.
			return Result{"loan_products": products}, nil
		}),
	)
}
