package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/meridianbank/nova/internal/agent/session"
	errx "github.com/meridianbank/nova/internal/core/error"
	"github.com/meridianbank/nova/internal/store"
)

type CustomerLookupInput struct {
	CustomerID string `json:"customer_id"`
}

func createFetchCreditReportTool(st *store.Store) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolFetchCreditReport,
			Desc: "Fetch credit score and loan history for a verified customer.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"customer_id": {
					Type:     "string",
					Desc:     "The customer id of the customer",
					Required: true,
				},
			}),
		},
		guarded(ToolFetchCreditReport, func(ctx context.Context, tr *session.Tracker, in *CustomerLookupInput) (Result, error) {
			customer, err := st.FindCustomer(in.CustomerID)
			if err != nil {
				return errResult(err), nil
			}
			out, err := structResult(customer.CreditReport)
			if err != nil {
				return errMessage(errx.SystemErrorMessage), nil
			}
			tr.Advance(session.StageProfiled)
			return out, nil
		}),
	)
}

func createFetchFinancialProfileTool(st *store.Store) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolFetchFinancialProfile,
			Desc: "Fetch income, employment, and banking details for a verified customer.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"customer_id": {
					Type:     "string",
					Desc:     "The customer id of the customer",
					Required: true,
				},
			}),
		},
		guarded(ToolFetchFinancialProfile, func(ctx context.Context, tr *session.Tracker, in *CustomerLookupInput) (Result, error) {
			customer, err := st.FindCustomer(in.CustomerID)
			if err != nil {
				return errResult(err), nil
			}
			out, err := structResult(customer.FinancialProfile)
			if err != nil {
				return errMessage(errx.SystemErrorMessage), nil
			}
			tr.Advance(session.StageProfiled)
			return out, nil
		}),
	)
}
