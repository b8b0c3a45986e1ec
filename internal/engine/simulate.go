// Package engine projects a household's monthly finances over a fixed
// horizon: mortgage amortization, recurring cash flows, and compounding
// investment accounts combined into one ordered series of snapshots.
//
// The engine is a pure, synchronous computation. Given the same config it
// produces a bit-identical series, holds no shared state, and is safe to
// invoke concurrently from multiple callers.
package engine

import "hfp-go-api/internal/models"

// Simulate runs the full projection and returns HorizonMonths+1 snapshots,
// month 0 being the start-of-simulation baseline. The config is validated
// first; on error no snapshots are produced.
//
// Each transition month runs the mortgage step (while a balance remains),
// aggregates that month's cash flow, then allocates any surplus evenly into
// both accounts as contributions. Deficits are never drawn from the accounts;
// they only depress cumulative cash.
func Simulate(cfg models.ProjectionConfig) ([]models.MonthlySnapshot, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	mortgage := NewMortgage(cfg.Mortgage)
	accountA := NewAccount(cfg.Investments.AccountA, cfg.Investments.AccountsAreTaxable, cfg.Investments.CapitalGainsTaxRatePct)
	accountB := NewAccount(cfg.Investments.AccountB, cfg.Investments.AccountsAreTaxable, cfg.Investments.CapitalGainsTaxRatePct)
	cashFlow := NewCashFlow(cfg)

	snapshots := make([]models.MonthlySnapshot, 0, cfg.HorizonMonths+1)

	// Month 0 baseline: cumulative fields zero, balances at start values.
	snapshots = append(snapshots, models.MonthlySnapshot{
		Month:                    0,
		AccountABalance:          accountA.Balance(),
		AccountBBalance:          accountB.Balance(),
		TotalBrokerage:           accountA.Balance() + accountB.Balance(),
		TotalNetWorth:            accountA.Balance() + accountB.Balance(),
		RemainingMortgageBalance: mortgage.Balance(),
	})

	var (
		cumulativeW2      float64
		cumulativeHousing float64
		cumulativeCash    float64
	)

	for month := 1; month <= cfg.HorizonMonths; month++ {
		payment := mortgage.Step()
		housingCost, net := cashFlow.Month(payment.Payment)

		var contribution float64
		if net > 0 {
			contribution = net / 2
		} else {
			cumulativeCash += net
		}

		balanceA := accountA.Step(contribution)
		balanceB := accountB.Step(contribution)

		cumulativeW2 += cashFlow.BaseMonthlyIncome()
		cumulativeHousing += housingCost

		snapshots = append(snapshots, models.MonthlySnapshot{
			Month:                       month,
			CumulativeW2Income:          cumulativeW2,
			CumulativeHousingCost:       cumulativeHousing,
			NetMonthlyCashFlow:          net,
			CumulativeCash:              cumulativeCash,
			AccountABalance:             balanceA,
			AccountBBalance:             balanceB,
			TotalBrokerage:              balanceA + balanceB,
			TotalNetWorth:               balanceA + balanceB + cumulativeCash,
			RemainingMortgageBalance:    mortgage.Balance(),
			CumulativeMortgageInterest:  mortgage.CumulativeInterest(),
			CumulativeMortgagePrincipal: mortgage.CumulativePrincipal(),
		})
	}

	return snapshots, nil
}
