package engine

import "hfp-go-api/internal/models"

// CashFlow sums base income and recurring entries into a net monthly flow
// given that month's housing cost. All components are constant across the
// horizon except the mortgage payment, which is passed in each month.
type CashFlow struct {
	baseMonthlyIncome float64
	extraMonthly      float64
	nonMortgageCost   float64
}

// NewCashFlow precomputes the constant monthly components.
func NewCashFlow(cfg models.ProjectionConfig) CashFlow {
	extra := 0.0
	for _, e := range cfg.ExtraCashFlowEntries {
		extra += e.AmountPerMonth
	}
	return CashFlow{
		baseMonthlyIncome: (cfg.Income.HusbandAnnualIncome + cfg.Income.WifeAnnualIncome) / 12,
		extraMonthly:      extra,
		nonMortgageCost:   cfg.Housing.NonMortgageCost(),
	}
}

// BaseMonthlyIncome returns the combined W2 income per month.
func (c CashFlow) BaseMonthlyIncome() float64 { return c.baseMonthlyIncome }

// Month returns the total housing cost and net cash flow for a month with
// the given effective mortgage payment (zero once the loan is paid off).
func (c CashFlow) Month(mortgagePayment float64) (housingCost, net float64) {
	housingCost = c.nonMortgageCost + mortgagePayment
	net = c.baseMonthlyIncome + c.extraMonthly - housingCost
	return housingCost, net
}
