package tools

import (
	"context"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/meridianbank/nova/internal/agent/session"
	"github.com/meridianbank/nova/internal/store"
)

type VerifyIdentityInput struct {
	IdentifierType  string `json:"identifier_type"`
	IdentifierValue string `json:"identifier_value"`
}

func createVerifyIdentityTool(st *store.Store) tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolVerifyIdentity,
			Desc: "Verify customer identity using PAN, Aadhaar, or phone number. Must be called before any other tool.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"identifier_type": {
					Type:     "string",
					Desc:     `One of these values - "PAN", "AADHAR", "PHONE"`,
					Required: true,
				},
				"identifier_value": {
					Type:     "string",
					Desc:     "Value of the identifier type",
					Required: true,
				},
			}),
		},
		guarded(ToolVerifyIdentity, func(ctx context.Context, tr *session.Tracker, in *VerifyIdentityInput) (Result, error) {
			idType, err := store.ParseIdentifierType(in.IdentifierType)
			if err != nil {
				return errMessage("invalid identifier type"), nil
			}

			customer, err := st.FindCustomerByIdentifier(idType, in.IdentifierValue)
			if err != nil {
				return errResult(err), nil
			}

			if customer.Verified {
				tr.Advance(session.StageAuthenticating)
			}

			// risk_flag stays in the tool channel for the model's policy
			// instructions; it must never be relayed to the customer.
			return Result{
				"verified":    customer.Verified,
				"customer_id": customer.CustomerID,
				"full_name":   customer.FullName,
				"kyc_status":  customer.KYCStatus,
				"risk_flag":   customer.RiskFlag,
			}, nil
		}),
	)
}
