package loan

import (
	"time"

	"github.com/google/uuid"

	errx "github.com/meridianbank/nova/internal/core/error"
)

// preApprovalValidity is the fixed window a pre-approval stays actionable.
const preApprovalValidity = 7 * 24 * time.Hour

// StatusPreApproved is the status carried by every issued pre-approval.
const StatusPreApproved = "PRE_APPROVED"

var defaultNextSteps = []string{
	"Visit your nearest Meridian Bank branch with original KYC documents.",
	"Carry salary slips or income proof for the last 3 months.",
	"Quote your pre-approval reference id at the branch to continue the application.",
}

// IssuePreApproval builds a pre-approval record for an already-confirmed
// eligible request. It deliberately performs no eligibility re-check: that
// gate lives with the caller, next to the thread's last recorded decision.
// Each issuance gets a fresh reference id.
func IssuePreApproval(customerID, productID string, amount int, annualRatePct float64, tenureMonths int, now time.Time) (PreApproval, error) {
	if customerID == "" || productID == "" {
		return PreApproval{}, errx.Validation("customer_id and product_id are required")
	}
	if amount <= 0 {
		return PreApproval{}, errx.Validation("amount must be positive")
	}
	if tenureMonths <= 0 {
		return PreApproval{}, errx.Validation("tenure_months must be positive")
	}

	return PreApproval{
		ReferenceID:   "PA-" + uuid.NewString(),
		CustomerID:    customerID,
		ProductID:     productID,
		Amount:        amount,
		AnnualRatePct: annualRatePct,
		TenureMonths:  tenureMonths,
		Status:        StatusPreApproved,
		ValidUntil:    now.Add(preApprovalValidity),
		Disclaimer:    Disclaimer,
		NextSteps:     defaultNextSteps,
	}, nil
}
