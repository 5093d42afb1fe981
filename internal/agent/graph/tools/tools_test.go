package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianbank/nova/internal/agent/session"
	"github.com/meridianbank/nova/internal/loan"
	"github.com/meridianbank/nova/internal/store"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open()
	require.NoError(t, err)
	return st
}

func findTool(t *testing.T, st *store.Store, name string) tool.InvokableTool {
	t.Helper()
	for _, bt := range GetLoanTools(st) {
		info, err := bt.Info(context.Background())
		require.NoError(t, err)
		if info.Name == name {
			inv, ok := bt.(tool.InvokableTool)
			require.True(t, ok, "tool %s is not invokable", name)
			return inv
		}
	}
	t.Fatalf("tool %s not found", name)
	return nil
}

func invoke(t *testing.T, ctx context.Context, tl tool.InvokableTool, args string) Result {
	t.Helper()
	out, err := tl.InvokableRun(ctx, args)
	require.NoError(t, err)
	var res Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	return res
}

func trackerCtx(stage session.Stage) (context.Context, *session.Tracker) {
	tr := session.NewTracker("thread-test")
	tr.Advance(stage)
	return session.NewContext(context.Background(), tr), tr
}

// TestVerifyIdentity_AdvancesOnVerifiedCustomer checks the happy path.
func TestVerifyIdentity_AdvancesOnVerifiedCustomer(t *testing.T) {
	st := testStore(t)
	ctx, tr := trackerCtx(session.StageNew)

	res := invoke(t, ctx, findTool(t, st, ToolVerifyIdentity),
		`{"identifier_type":"PAN","identifier_value":"ABCPI1234K"}`)

	assert.Equal(t, true, res["verified"])
	assert.Equal(t, "CUST-1001", res["customer_id"])
	assert.Equal(t, "Ananya Iyer", res["full_name"])
	assert.Equal(t, session.StageAuthenticating, tr.Stage())
}

// TestVerifyIdentity_UnverifiedCustomerDoesNotAdvance checks the stage stays put.
func TestVerifyIdentity_UnverifiedCustomerDoesNotAdvance(t *testing.T) {
	st := testStore(t)
	ctx, tr := trackerCtx(session.StageNew)

	res := invoke(t, ctx, findTool(t, st, ToolVerifyIdentity),
		`{"identifier_type":"PAN","identifier_value":"CPQPS7788E"}`)

	assert.Equal(t, false, res["verified"])
	assert.Equal(t, session.StageNew, tr.Stage())
}

// TestVerifyIdentity_InvalidType checks the closed identifier set.
func TestVerifyIdentity_InvalidType(t *testing.T) {
	st := testStore(t)
	ctx, _ := trackerCtx(session.StageNew)

	res := invoke(t, ctx, findTool(t, st, ToolVerifyIdentity),
		`{"identifier_type":"PASSPORT","identifier_value":"X1234567"}`)

	assert.Equal(t, "invalid identifier type", res["error"])
}

// TestVerifyIdentity_UnknownCustomer checks the exact not-found message.
func TestVerifyIdentity_UnknownCustomer(t *testing.T) {
	st := testStore(t)
	ctx, _ := trackerCtx(session.StageNew)

	res := invoke(t, ctx, findTool(t, st, ToolVerifyIdentity),
		`{"identifier_type":"PAN","identifier_value":"ZZZZZ9999Z"}`)

	assert.Equal(t, "Customer does not exist", res["error"])
}

// TestStageGate_RefusesEarlyCalls checks tools before their stage return an error result.
func TestStageGate_RefusesEarlyCalls(t *testing.T) {
	st := testStore(t)
	ctx, _ := trackerCtx(session.StageNew)

	res := invoke(t, ctx, findTool(t, st, ToolFetchCreditReport), `{"customer_id":"CUST-1001"}`)
	assert.Contains(t, res["error"], "identity must be verified")

	res = invoke(t, ctx, findTool(t, st, ToolCheckEligibility),
		`{"customer_id":"CUST-1001","credit_score":782,"monthly_income":145000,"existing_monthly_emi":10500,"requested_amount":500000,"employment_type":"salaried","employment_tenure_months":36}`)
	assert.Contains(t, res["error"], "must be fetched first")
}

// TestMissingTracker_ReturnsGenericError checks a tool invoked outside a turn fails safe.
func TestMissingTracker_ReturnsGenericError(t *testing.T) {
	st := testStore(t)

	res := invoke(t, context.Background(), findTool(t, st, ToolVerifyIdentity),
		`{"identifier_type":"PAN","identifier_value":"ABCPI1234K"}`)

	assert.Equal(t, "An error occurred", res["error"])
}

// TestCheckEligibility_RecordsDecision checks the eligible path and the tracker record.
func TestCheckEligibility_RecordsDecision(t *testing.T) {
	st := testStore(t)
	ctx, tr := trackerCtx(session.StageProfiled)

	res := invoke(t, ctx, findTool(t, st, ToolCheckEligibility),
		`{"customer_id":"CUST-1001","credit_score":782,"monthly_income":145000,"existing_monthly_emi":10500,"requested_amount":500000,"employment_type":"salaried","employment_tenure_months":36}`)

	assert.Equal(t, true, res["eligible"])
	assert.Equal(t, float64(500000), res["max_approved_amount"])

	require.True(t, tr.EligibilityInvoked())
	require.NotNil(t, tr.LastDecision())
	assert.True(t, tr.LastDecision().Eligible)
	assert.Equal(t, session.StageEligibilityChecked, tr.Stage())

	// raw record and tool output are the same serialization
	var recorded loan.Decision
	require.NoError(t, json.Unmarshal([]byte(tr.RawDecision()), &recorded))
	assert.Equal(t, *tr.LastDecision(), recorded)
}

// TestCheckEligibility_RejectionMovesToRejected checks the ineligible path.
func TestCheckEligibility_RejectionMovesToRejected(t *testing.T) {
	st := testStore(t)
	ctx, tr := trackerCtx(session.StageProfiled)

	res := invoke(t, ctx, findTool(t, st, ToolCheckEligibility),
		`{"customer_id":"CUST-1003","credit_score":588,"monthly_income":52000,"existing_monthly_emi":0,"requested_amount":200000,"employment_type":"self-employed","employment_tenure_months":14}`)

	assert.Equal(t, false, res["eligible"])
	reasons, ok := res["rejection_reasons"].([]any)
	require.True(t, ok)
	require.Len(t, reasons, 1)
	assert.Equal(t, "credit score below minimum threshold", reasons[0])
	assert.Equal(t, session.StageRejected, tr.Stage())
}

// TestCalculateEMI_Tool checks the tool channel around the engine.
func TestCalculateEMI_Tool(t *testing.T) {
	st := testStore(t)
	ctx, _ := trackerCtx(session.StageProfiled)

	res := invoke(t, ctx, findTool(t, st, ToolCalculateEMI),
		`{"principal":100000,"annual_rate_pct":10,"tenure_months":12}`)

	emi, ok := res["monthly_emi"].(float64)
	require.True(t, ok)
	assert.InDelta(t, 8791.59, emi, 0.01)
}

// TestGeneratePreApproval_CapsAtApprovedMaximum checks the issuance gate.
func TestGeneratePreApproval_CapsAtApprovedMaximum(t *testing.T) {
	st := testStore(t)
	ctx, tr := trackerCtx(session.StageProfiled)
	tr.RecordDecision(loan.Decision{Eligible: true, MaxApprovedAmount: 500000}, `{"eligible":true}`)

	preApprove := findTool(t, st, ToolGeneratePreApproval)

	res := invoke(t, ctx, preApprove,
		`{"customer_id":"CUST-1001","product_id":"PL-FLEXI","amount":600000,"annual_rate_pct":12.75,"tenure_months":36}`)
	assert.Contains(t, res["error"], "exceeds the approved maximum")

	res = invoke(t, ctx, preApprove,
		`{"customer_id":"CUST-1001","product_id":"PL-FLEXI","amount":400000,"annual_rate_pct":12.75,"tenure_months":36}`)
	ref, ok := res["reference_id"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(ref, "PA-"))
	assert.Equal(t, "PRE_APPROVED", res["status"])
	assert.Equal(t, loan.Disclaimer, res["disclaimer"])
	assert.Equal(t, session.StagePreApproved, tr.Stage())
}

// TestGeneratePreApproval_RefusedWithoutDecision checks the eligibility precondition.
func TestGeneratePreApproval_RefusedWithoutDecision(t *testing.T) {
	st := testStore(t)
	ctx, _ := trackerCtx(session.StageProfiled)

	res := invoke(t, ctx, findTool(t, st, ToolGeneratePreApproval),
		`{"customer_id":"CUST-1001","product_id":"PL-FLEXI","amount":400000,"annual_rate_pct":12.75,"tenure_months":36}`)

	assert.Contains(t, res["error"], "eligibility check is required")
}

// TestSearchLoanProducts_OrdersByMaxAmount checks catalog filtering through the tool.
func TestSearchLoanProducts_OrdersByMaxAmount(t *testing.T) {
	st := testStore(t)
	ctx, tr := trackerCtx(session.StageProfiled)

	res := invoke(t, ctx, findTool(t, st, ToolSearchLoanProducts), `{"credit_score":710}`)

	products, ok := res["loan_products"].([]any)
	require.True(t, ok)
	require.Len(t, products, 2)
	first := products[0].(map[string]any)
	second := products[1].(map[string]any)
	assert.Equal(t, "PL-STARTER", first["product_id"])
	assert.Equal(t, "PL-FLEXI", second["product_id"])
	assert.Equal(t, session.StageNegotiatingProduct, tr.Stage())
}
