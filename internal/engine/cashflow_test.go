package engine

import (
	"testing"

	"hfp-go-api/internal/models"
)

func TestCashFlow_Month(t *testing.T) {
	cfg := models.ProjectionConfig{
		Housing: models.HousingConfig{PropertyTaxPerMonth: 800, InsurancePerMonth: 196, UtilitiesPerMonth: 200},
		Income:  models.IncomeConfig{HusbandAnnualIncome: 150000, WifeAnnualIncome: 100000},
		ExtraCashFlowEntries: []models.CashFlowEntry{
			{Description: "car payment", AmountPerMonth: -450},
			{Description: "rental income", AmountPerMonth: 1200},
		},
	}
	cf := NewCashFlow(cfg)

	assertCloseTo(t, 250000.0/12, cf.BaseMonthlyIncome(), 1e-9, "base monthly income")

	housing, net := cf.Month(3627.43)
	assertCloseTo(t, 1196+3627.43, housing, 1e-9, "housing cost while mortgage active")
	assertCloseTo(t, 250000.0/12-450+1200-4823.43, net, 1e-9, "net monthly cash flow")

	// After payoff the mortgage payment drops out of housing cost.
	housing, net = cf.Month(0)
	assertCloseTo(t, 1196, housing, 1e-9, "housing cost after payoff")
	assertCloseTo(t, 250000.0/12+750-1196, net, 1e-9, "net flow after payoff")
}

func TestCashFlow_NoEntries(t *testing.T) {
	cf := NewCashFlow(models.ProjectionConfig{
		Income: models.IncomeConfig{HusbandAnnualIncome: 60000},
	})
	_, net := cf.Month(0)
	assertCloseTo(t, 5000, net, 1e-9, "income only, no costs")
}
