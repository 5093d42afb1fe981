package loan

import (
	"fmt"

	errx "github.com/meridianbank/nova/internal/core/error"
)

// maxDebtToIncomeRatio is the policy ceiling above which a request is rejected.
const maxDebtToIncomeRatio = 0.50

// Rejection reason templates. Reasons accumulate in check order and the order
// is part of the engine contract, callers and tests rely on it.
const (
	reasonCreditScore = "credit score below minimum threshold"
	reasonTenure      = "employment tenure below required minimum"
)

// EligibilityInput carries the customer figures an eligibility check runs on.
type EligibilityInput struct {
	CustomerID             string
	CreditScore            int
	MonthlyIncome          int
	ExistingMonthlyEMI     int
	RequestedAmount        int
	EmploymentType         string
	EmploymentTenureMonths int
	DefaultsLast3Years     int
}

// Evaluate runs the deterministic eligibility policy against the catalog and
// produces a Decision. Checks accumulate rather than short-circuit so that
// every simultaneous failure is reported: debt-to-income first, then credit
// score, employment tenure, and finally the requested-amount ceiling.
//
// The debt-to-income numerator is the trailing-3-year default count, not an
// outstanding monetary amount. This mirrors the upstream policy source and is
// under review with the policy owners; do not change it unilaterally.
func Evaluate(catalog []Product, in EligibilityInput) (Decision, error) {
	if in.MonthlyIncome <= 0 {
		return Decision{}, errx.Computation(fmt.Errorf("monthly income must be positive, got %d", in.MonthlyIncome))
	}
	if in.RequestedAmount <= 0 {
		return Decision{}, errx.Validation("requested_amount must be positive")
	}

	dti := float64(in.DefaultsLast3Years) / float64(in.MonthlyIncome)

	decision := Decision{
		RequestedAmount:   in.RequestedAmount,
		DebtToIncomeRatio: dti,
		RejectionReasons:  []string{},
		PolicyVersion:     PolicyVersion,
	}

	if dti > maxDebtToIncomeRatio {
		decision.RejectionReasons = append(decision.RejectionReasons,
			fmt.Sprintf("debt-to-income ratio %.2f exceeds the %.2f policy maximum", dti, maxDebtToIncomeRatio))
	}

	scoreEligible := FilterProducts(catalog, in.CreditScore, 0)
	if len(scoreEligible) == 0 {
		decision.RejectionReasons = append(decision.RejectionReasons, reasonCreditScore)
	} else {
		// Tenure and amount ceilings only apply when at least one product
		// clears the score bar; otherwise the comparisons are skipped.
		tenureEligible := FilterProducts(scoreEligible, in.CreditScore, in.EmploymentTenureMonths)
		if len(tenureEligible) == 0 {
			decision.RejectionReasons = append(decision.RejectionReasons, reasonTenure)
		}

		ceiling := maxLoanableAmount(scoreEligible)
		decision.MaxApprovedAmount = min(in.RequestedAmount, ceiling)
		if in.RequestedAmount > ceiling {
			decision.RejectionReasons = append(decision.RejectionReasons,
				fmt.Sprintf("requested amount %d exceeds the maximum loanable amount %d by %d",
					in.RequestedAmount, ceiling, in.RequestedAmount-ceiling))
		}
	}

	decision.Eligible = len(decision.RejectionReasons) == 0
	return decision, nil
}
