package models

import "time"

// MortgageConfig describes a fixed-rate amortizing mortgage.
// Rate fields are whole-number percentages (6.825 means 6.825%).
type MortgageConfig struct {
	Principal             float64 `json:"principal" yaml:"principal"`
	AnnualInterestRatePct float64 `json:"annualInterestRatePct" yaml:"annual_interest_rate_pct"`
	TermYears             int     `json:"termYears" yaml:"term_years"`
	ExtraPaymentPct       float64 `json:"extraPaymentPct" yaml:"extra_payment_pct"`
}

// HousingConfig holds the recurring non-mortgage housing costs, per month.
type HousingConfig struct {
	PropertyTaxPerMonth float64 `json:"propertyTaxPerMonth" yaml:"property_tax_per_month"`
	InsurancePerMonth   float64 `json:"insurancePerMonth" yaml:"insurance_per_month"`
	UtilitiesPerMonth   float64 `json:"utilitiesPerMonth" yaml:"utilities_per_month"`
}

// NonMortgageCost returns the constant monthly housing cost excluding the
// mortgage payment.
func (h HousingConfig) NonMortgageCost() float64 {
	return h.PropertyTaxPerMonth + h.InsurancePerMonth + h.UtilitiesPerMonth
}

// IncomeConfig holds annual post-tax W2 income for both earners.
type IncomeConfig struct {
	HusbandAnnualIncome float64 `json:"husbandAnnualIncome" yaml:"husband_annual_income"`
	WifeAnnualIncome    float64 `json:"wifeAnnualIncome" yaml:"wife_annual_income"`
}

// CashFlowEntry is a flat monthly-recurring cash flow. Amount is signed:
// positive adds income, negative adds a cost. The ID is a stable generated
// identifier so entries are edited by id, never by list position.
type CashFlowEntry struct {
	ID             string  `json:"id,omitempty" yaml:"id,omitempty"`
	Description    string  `json:"description" yaml:"description"`
	AmountPerMonth float64 `json:"amountPerMonth" yaml:"amount_per_month"`
}

// InvestmentAccountConfig describes one compounding account.
// AnnualReturnPct is signed and whole-number (9 means +9%/year).
type InvestmentAccountConfig struct {
	StartingBalance float64 `json:"startingBalance" yaml:"starting_balance"`
	AnnualReturnPct float64 `json:"annualReturnPct" yaml:"annual_return_pct"`
}

// InvestmentsConfig holds both brokerage accounts and the tax treatment.
//
// When AccountsAreTaxable is set, CapitalGainsTaxRatePct (whole-number
// percentage, 0-100) is applied as a flat monthly drag on the growth portion
// of both accounts. This is a deliberate simplification, not a realized-gains
// tax model: every month's growth is taxed as if it were sold that month.
type InvestmentsConfig struct {
	AccountA               InvestmentAccountConfig `json:"accountA" yaml:"account_a"`
	AccountB               InvestmentAccountConfig `json:"accountB" yaml:"account_b"`
	AccountsAreTaxable     bool                    `json:"accountsAreTaxable" yaml:"accounts_are_taxable"`
	CapitalGainsTaxRatePct float64                 `json:"capitalGainsTaxRatePct" yaml:"capital_gains_tax_rate_pct"`
}

// ProjectionConfig is the immutable input of the projection engine.
// It fully determines the output series.
type ProjectionConfig struct {
	Mortgage             MortgageConfig    `json:"mortgage" yaml:"mortgage"`
	Housing              HousingConfig     `json:"housing" yaml:"housing"`
	Income               IncomeConfig      `json:"income" yaml:"income"`
	ExtraCashFlowEntries []CashFlowEntry   `json:"extraCashFlowEntries,omitempty" yaml:"extra_cash_flow_entries,omitempty"`
	Investments          InvestmentsConfig `json:"investments" yaml:"investments"`
	HorizonMonths        int               `json:"horizonMonths" yaml:"horizon_months"`
}

// MonthlySnapshot is one month of projected household state. Month 0 is the
// simulation start baseline; the full series has HorizonMonths+1 elements.
type MonthlySnapshot struct {
	Month                       int     `json:"month"`
	CumulativeW2Income          float64 `json:"cumulativeW2Income"`
	CumulativeHousingCost       float64 `json:"cumulativeHousingCost"`
	NetMonthlyCashFlow          float64 `json:"netMonthlyCashFlow"`
	CumulativeCash              float64 `json:"cumulativeCash"`
	AccountABalance             float64 `json:"accountABalance"`
	AccountBBalance             float64 `json:"accountBBalance"`
	TotalBrokerage              float64 `json:"totalBrokerage"`
	TotalNetWorth               float64 `json:"totalNetWorth"`
	RemainingMortgageBalance    float64 `json:"remainingMortgageBalance"`
	CumulativeMortgageInterest  float64 `json:"cumulativeMortgageInterest"`
	CumulativeMortgagePrincipal float64 `json:"cumulativeMortgagePrincipal"`
}

// ProjectionResponse wraps the snapshot series for the API.
type ProjectionResponse struct {
	Snapshots   []MonthlySnapshot `json:"snapshots"`
	GeneratedAt time.Time         `json:"generatedAt"`
	CacheHit    bool              `json:"cacheHit"`
}

// Scenario is a named, stored projection config.
type Scenario struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Config    ProjectionConfig `json:"config"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// MarketRate is an advisory trailing annualized return for a symbol, used to
// prefill an account's annualReturnPct. It never feeds the engine directly.
type MarketRate struct {
	Symbol          string    `json:"symbol"`
	AnnualReturnPct float64   `json:"annualReturnPct"`
	PeriodYears     int       `json:"periodYears"`
	LastUpdated     time.Time `json:"lastUpdated"`
	Source          string    `json:"source"` // "alphavantage" or "yahoo"
}

// ErrorResponse represents API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}
