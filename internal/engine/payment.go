package engine

import "math"

// MonthlyPayment returns the fixed monthly payment that fully amortizes a loan
// of the given principal over termYears at annualRatePct (whole-number
// percentage, 6.825 means 6.825%).
//
// Uses the standard annuity formula P = principal * r / (1 - (1+r)^-n) with
// r = annualRatePct/100/12 and n = termYears*12. A zero rate would make the
// closed form 0/0, so that case falls back to straight-line amortization.
func MonthlyPayment(principal, annualRatePct float64, termYears int) float64 {
	n := float64(termYears * 12)
	if annualRatePct == 0 {
		return principal / n
	}
	r := annualRatePct / 100 / 12
	return principal * r / (1 - math.Pow(1+r, -n))
}
