package engine

import (
	"math"
	"testing"

	"hfp-go-api/internal/models"
)

func testMortgageConfig() models.MortgageConfig {
	return models.MortgageConfig{
		Principal:             555000,
		AnnualInterestRatePct: 6.825,
		TermYears:             30,
	}
}

// stepsToPayoff runs the amortizer until the balance reaches zero and returns
// the number of months taken.
func stepsToPayoff(t *testing.T, m *Mortgage) int {
	t.Helper()
	months := 0
	for !m.PaidOff() {
		months++
		m.Step()
		if months > 10000 {
			t.Fatal("mortgage never paid off")
		}
	}
	return months
}

func TestMortgage_FirstMonthSplit(t *testing.T) {
	m := NewMortgage(testMortgageConfig())
	p := m.Step()

	assertCloseTo(t, 3156.56, p.Interest, 0.01, "month-1 interest")
	assertCloseTo(t, 470.87, p.Principal, 0.5, "month-1 principal")
	assertCloseTo(t, 554529.13, p.RemainingBalance, 0.5, "month-1 remaining balance")
	assertCloseTo(t, p.Interest+p.Principal, p.Payment, 1e-9, "payment = interest + principal")
}

func TestMortgage_AmortizationCompleteness(t *testing.T) {
	cfg := testMortgageConfig()
	m := NewMortgage(cfg)

	n := cfg.TermYears * 12
	for i := 0; i < n; i++ {
		m.Step()
	}

	if math.Abs(m.Balance()) > 0.01 {
		t.Errorf("balance at month %d should be ~0, got %.6f", n, m.Balance())
	}
	assertCloseTo(t, cfg.Principal, m.CumulativePrincipal(), 0.01, "cumulative principal equals original principal")
}

func TestMortgage_ZeroRateLinearPaydown(t *testing.T) {
	m := NewMortgage(models.MortgageConfig{Principal: 120000, AnnualInterestRatePct: 0, TermYears: 10})

	balance := 120000.0
	for i := 1; i <= 120; i++ {
		p := m.Step()
		if p.Interest != 0 {
			t.Fatalf("month %d: zero-rate loan accrued interest %.6f", i, p.Interest)
		}
		balance -= 1000
		if math.Abs(p.RemainingBalance-balance) > 1e-6 {
			t.Fatalf("month %d: expected balance %.2f, got %.6f", i, balance, p.RemainingBalance)
		}
	}
	if !m.PaidOff() {
		t.Error("loan should be paid off after 120 months")
	}
}

func TestMortgage_ExtraPaymentAccelerates(t *testing.T) {
	base := testMortgageConfig()
	withExtra := base
	withExtra.ExtraPaymentPct = 10

	baseMonths := stepsToPayoff(t, NewMortgage(base))
	extraMonths := stepsToPayoff(t, NewMortgage(withExtra))

	if extraMonths >= baseMonths {
		t.Errorf("extra payments should accelerate payoff: %d months with extra vs %d without",
			extraMonths, baseMonths)
	}
}

func TestMortgage_BalanceMonotonicNonNegative(t *testing.T) {
	m := NewMortgage(models.MortgageConfig{
		Principal:             300000,
		AnnualInterestRatePct: 5.5,
		TermYears:             15,
		ExtraPaymentPct:       25,
	})

	prev := m.Balance()
	for i := 0; i < 15*12+12; i++ {
		m.Step()
		if m.Balance() < 0 {
			t.Fatalf("balance went negative: %.6f", m.Balance())
		}
		if m.Balance() > prev {
			t.Fatalf("balance increased from %.6f to %.6f", prev, m.Balance())
		}
		prev = m.Balance()
	}
}

func TestMortgage_FinalPaymentClamped(t *testing.T) {
	m := NewMortgage(models.MortgageConfig{
		Principal:             100000,
		AnnualInterestRatePct: 6,
		TermYears:             5,
		ExtraPaymentPct:       50,
	})

	fixed := m.FixedPayment() * 1.5
	var last MortgagePayment
	for !m.PaidOff() {
		last = m.Step()
	}

	if last.Payment > fixed {
		t.Errorf("final payment %.2f exceeds the scheduled payment %.2f", last.Payment, fixed)
	}
	if last.RemainingBalance != 0 {
		t.Errorf("final balance should be exactly 0, got %.10f", last.RemainingBalance)
	}
}

func TestMortgage_NoOutputAfterPayoff(t *testing.T) {
	m := NewMortgage(models.MortgageConfig{Principal: 1200, AnnualInterestRatePct: 0, TermYears: 1})
	for i := 0; i < 12; i++ {
		m.Step()
	}
	if !m.PaidOff() {
		t.Fatal("loan should be paid off")
	}

	p := m.Step()
	if p.Payment != 0 || p.Interest != 0 || p.Principal != 0 {
		t.Errorf("post-payoff step should be all zeros, got %+v", p)
	}
	if m.Balance() != 0 {
		t.Errorf("balance should stay at 0, got %.10f", m.Balance())
	}
}
