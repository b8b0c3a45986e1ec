package engine

import (
	"errors"
	"fmt"
	"math"

	"hfp-go-api/internal/models"
)

var (
	// ErrInvalidConfig marks a config that must be rejected before any
	// simulation is attempted.
	ErrInvalidConfig = errors.New("invalid projection config")

	// ErrMalformedEntry marks a recurring cash-flow entry whose amount is
	// not a finite number. Letting NaN into the monthly sum would poison
	// every cumulative field downstream.
	ErrMalformedEntry = errors.New("malformed cash flow entry")
)

// Validate checks a ProjectionConfig before simulation. It fails fast so no
// partial snapshot sequence is ever produced from degenerate input.
func Validate(cfg models.ProjectionConfig) error {
	if cfg.Mortgage.Principal <= 0 {
		return fmt.Errorf("%w: mortgage principal must be > 0", ErrInvalidConfig)
	}
	if cfg.Mortgage.TermYears <= 0 {
		return fmt.Errorf("%w: mortgage term must be > 0 years", ErrInvalidConfig)
	}
	if cfg.Mortgage.AnnualInterestRatePct < 0 {
		return fmt.Errorf("%w: mortgage rate must be >= 0", ErrInvalidConfig)
	}
	if cfg.Mortgage.ExtraPaymentPct < 0 {
		return fmt.Errorf("%w: extra payment percentage must be >= 0", ErrInvalidConfig)
	}
	if cfg.HorizonMonths <= 0 {
		return fmt.Errorf("%w: horizon must be > 0 months", ErrInvalidConfig)
	}
	if cfg.Housing.PropertyTaxPerMonth < 0 || cfg.Housing.InsurancePerMonth < 0 || cfg.Housing.UtilitiesPerMonth < 0 {
		return fmt.Errorf("%w: housing costs must be >= 0", ErrInvalidConfig)
	}
	if cfg.Income.HusbandAnnualIncome < 0 || cfg.Income.WifeAnnualIncome < 0 {
		return fmt.Errorf("%w: incomes must be >= 0", ErrInvalidConfig)
	}
	for _, acct := range []models.InvestmentAccountConfig{cfg.Investments.AccountA, cfg.Investments.AccountB} {
		if acct.StartingBalance < 0 {
			return fmt.Errorf("%w: account starting balance must be >= 0", ErrInvalidConfig)
		}
		// A return of -100% or worse has no monthly equivalent.
		if acct.AnnualReturnPct <= -100 {
			return fmt.Errorf("%w: annual return must be > -100%%", ErrInvalidConfig)
		}
	}
	if cfg.Investments.CapitalGainsTaxRatePct < 0 || cfg.Investments.CapitalGainsTaxRatePct > 100 {
		return fmt.Errorf("%w: capital gains rate must be between 0 and 100", ErrInvalidConfig)
	}
	for _, e := range cfg.ExtraCashFlowEntries {
		if math.IsNaN(e.AmountPerMonth) || math.IsInf(e.AmountPerMonth, 0) {
			return fmt.Errorf("%w: %q amount is not a finite number", ErrMalformedEntry, e.Description)
		}
	}
	return nil
}
