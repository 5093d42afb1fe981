package loan

import "time"

// PolicyVersion tags every eligibility decision with the policy revision that
// produced it. Internal field, never exposed to customers.
const PolicyVersion = "lending-policy/2025-08"

// Disclaimer is the mandated pre-approval disclaimer, reproduced verbatim.
const Disclaimer = "This pre-approval is subject to final verification and does not guarantee loan disbursal. Please visit your nearest branch with original documents to complete the application."

// Product is an immutable loan catalog entry shared across all sessions.
type Product struct {
	ProductID             string  `json:"product_id"`
	Name                  string  `json:"name"`
	InterestRateAnnualPct float64 `json:"interest_rate_annual_pct"`
	MinCreditScore        int     `json:"min_credit_score"`
	AvailableTenureMonths []int   `json:"available_tenures_months"`
	ProcessingFeePct      float64 `json:"processing_fee_pct"`
	MaxAmount             int     `json:"max_amount"`
}

// HasTenure reports whether the product can be repaid over the given number of months.
func (p Product) HasTenure(months int) bool {
	for _, t := range p.AvailableTenureMonths {
		if t == months {
			return true
		}
	}
	return false
}

// Decision is the authoritative eligibility artifact for a conversation turn.
// The guardrail compares generated text against it; it must never be
// recomputed differently by a second code path.
type Decision struct {
	Eligible          bool     `json:"eligible"`
	MaxApprovedAmount int      `json:"max_approved_amount"`
	RequestedAmount   int      `json:"requested_amount"`
	DebtToIncomeRatio float64  `json:"debt_to_income_ratio"`
	RejectionReasons  []string `json:"rejection_reasons"`
	PolicyVersion     string   `json:"policy_version"`
}

// PreApproval is the issuance record returned to an eligible customer.
type PreApproval struct {
	ReferenceID   string    `json:"reference_id"`
	CustomerID    string    `json:"customer_id"`
	ProductID     string    `json:"product_id"`
	Amount        int       `json:"amount"`
	AnnualRatePct float64   `json:"annual_rate_pct"`
	TenureMonths  int       `json:"tenure_months"`
	Status        string    `json:"status"`
	ValidUntil    time.Time `json:"valid_until"`
	Disclaimer    string    `json:"disclaimer"`
	NextSteps     []string  `json:"next_steps"`
}
