package loan

import (
	"fmt"
	"math"

	errx "github.com/meridianbank/nova/internal/core/error"
)

// CalculateEMI computes the monthly installment for an amortizing loan.
// The zero-rate case degenerates to straight principal division; the standard
// formula divides by zero there and must not be applied. The result carries
// full float precision, rounding is a presentation concern.
func CalculateEMI(principal float64, annualRatePct float64, tenureMonths int) (float64, error) {
	if principal <= 0 {
		return 0, errx.Validation("principal must be positive")
	}
	if tenureMonths <= 0 {
		return 0, errx.Validation("tenure_months must be positive")
	}
	if annualRatePct < 0 {
		return 0, errx.Validation("annual_rate_pct must not be negative")
	}

	if annualRatePct == 0 {
		return principal / float64(tenureMonths), nil
	}

	monthlyRate := annualRatePct / 12 / 100
	growth := math.Pow(1+monthlyRate, float64(tenureMonths))
	emi := principal * monthlyRate * growth / (growth - 1)
	if math.IsNaN(emi) || math.IsInf(emi, 0) {
		return 0, errx.Computation(fmt.Errorf("emi not finite for principal=%v rate=%v tenure=%d", principal, annualRatePct, tenureMonths))
	}
	return emi, nil
}
