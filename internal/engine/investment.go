package engine

import (
	"math"

	"hfp-go-api/internal/models"
)

// Account models one compounding investment balance. The annual return is
// converted once to a monthly rate m = (1+annual/100)^(1/12) - 1; when the
// account is taxable the rate is scaled by (1 - capGainsPct/100), applying
// the capital-gains drag uniformly to every month's growth. That drag is a
// documented approximation: real taxes fall on realized gains only.
//
// Negative annual returns are valid; the balance may shrink without a floor.
type Account struct {
	balance     float64
	monthlyRate float64
}

// NewAccount primes an account from config plus the shared tax treatment.
func NewAccount(cfg models.InvestmentAccountConfig, taxable bool, capGainsPct float64) *Account {
	m := math.Pow(1+cfg.AnnualReturnPct/100, 1.0/12) - 1
	if taxable {
		m *= 1 - capGainsPct/100
	}
	return &Account{balance: cfg.StartingBalance, monthlyRate: m}
}

// Balance returns the current balance.
func (a *Account) Balance() float64 { return a.balance }

// Step applies one month of growth, then adds the contribution, and returns
// the new balance.
func (a *Account) Step(contribution float64) float64 {
	a.balance = a.balance*(1+a.monthlyRate) + contribution
	return a.balance
}
