package engine

import "hfp-go-api/internal/models"

// MortgagePayment is the breakdown of one month's mortgage payment.
// After payoff all fields except RemainingBalance are zero.
type MortgagePayment struct {
	Payment          float64
	Interest         float64
	Principal        float64
	RemainingBalance float64
}

// Mortgage steps a fixed-rate mortgage forward one month at a time, splitting
// each payment into interest and principal and clamping the final payment so
// the balance never goes negative.
type Mortgage struct {
	balance      float64
	monthlyRate  float64
	fixedPayment float64
	extraPct     float64
	cumInterest  float64
	cumPrincipal float64
}

// NewMortgage primes an amortizer from the config. The fixed payment is
// derived once via MonthlyPayment.
func NewMortgage(cfg models.MortgageConfig) *Mortgage {
	return &Mortgage{
		balance:      cfg.Principal,
		monthlyRate:  cfg.AnnualInterestRatePct / 100 / 12,
		fixedPayment: MonthlyPayment(cfg.Principal, cfg.AnnualInterestRatePct, cfg.TermYears),
		extraPct:     cfg.ExtraPaymentPct,
	}
}

// FixedPayment returns the base monthly payment without the extra percentage.
func (m *Mortgage) FixedPayment() float64 { return m.fixedPayment }

// Balance returns the remaining principal, never negative.
func (m *Mortgage) Balance() float64 { return m.balance }

// PaidOff reports whether the loan has been fully retired.
func (m *Mortgage) PaidOff() bool { return m.balance <= 0 }

// CumulativeInterest returns total interest paid so far.
func (m *Mortgage) CumulativeInterest() float64 { return m.cumInterest }

// CumulativePrincipal returns total principal retired so far.
func (m *Mortgage) CumulativePrincipal() float64 { return m.cumPrincipal }

// Step advances the mortgage by one month. After payoff it reports a zero
// payment and contributes nothing further to housing cost.
func (m *Mortgage) Step() MortgagePayment {
	if m.PaidOff() {
		return MortgagePayment{RemainingBalance: 0}
	}

	payment := m.fixedPayment * (1 + m.extraPct/100)
	interest := m.balance * m.monthlyRate
	principal := payment - interest

	// Final partial payment: pay off exactly what remains.
	if principal > m.balance {
		principal = m.balance
		payment = interest + principal
	}

	m.balance -= principal
	m.cumInterest += interest
	m.cumPrincipal += principal

	return MortgagePayment{
		Payment:          payment,
		Interest:         interest,
		Principal:        principal,
		RemainingBalance: m.balance,
	}
}
