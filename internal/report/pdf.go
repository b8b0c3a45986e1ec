// Package report renders a projection series into a PDF summary. Calendar
// labels are a display concern only: month 0 maps to January 2025 and the
// engine's data model is unaffected by relabeling.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"hfp-go-api/internal/engine"
	"hfp-go-api/internal/models"
)

const baseYear = 2025

// CalendarLabel maps a zero-based month index to a display label.
func CalendarLabel(month int) string {
	return fmt.Sprintf("%d-%02d", baseYear+month/12, month%12+1)
}

// ProjectionPDF renders the snapshot series as a landscape table of annual
// rows with a summary header.
func ProjectionPDF(cfg models.ProjectionConfig, snapshots []models.MonthlySnapshot) ([]byte, error) {
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("no snapshots to report")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Household Financial Projection", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeSummary(pdf, cfg, snapshots)
	pdf.Ln(4)
	writeTable(pdf, snapshots)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummary(pdf *fpdf.Fpdf, cfg models.ProjectionConfig, snapshots []models.MonthlySnapshot) {
	payment := engine.MonthlyPayment(cfg.Mortgage.Principal, cfg.Mortgage.AnnualInterestRatePct, cfg.Mortgage.TermYears)
	last := snapshots[len(snapshots)-1]

	payoff := "beyond horizon"
	for _, s := range snapshots[1:] {
		if s.RemainingMortgageBalance == 0 {
			payoff = CalendarLabel(s.Month)
			break
		}
	}

	lines := []string{
		fmt.Sprintf("Mortgage: %.0f at %.3f%% over %d years, payment %.2f/month (extra %.1f%%)",
			cfg.Mortgage.Principal, cfg.Mortgage.AnnualInterestRatePct, cfg.Mortgage.TermYears,
			payment, cfg.Mortgage.ExtraPaymentPct),
		fmt.Sprintf("Mortgage paid off: %s", payoff),
		fmt.Sprintf("Final net worth after %d months: %.2f", last.Month, last.TotalNetWorth),
		fmt.Sprintf("Total mortgage interest paid: %.2f", last.CumulativeMortgageInterest),
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range lines {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
}

func writeTable(pdf *fpdf.Fpdf, snapshots []models.MonthlySnapshot) {
	headers := []string{"Month", "Date", "Net Flow", "Cash", "Account A", "Account B", "Brokerage", "Net Worth", "Mortgage Bal", "Interest Paid"}
	widths := []float64{16, 20, 24, 26, 30, 30, 30, 32, 30, 28}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(245, 247, 250)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, s := range snapshots {
		// Annual rows keep the report readable; the API serves the full series.
		if s.Month%12 != 0 {
			continue
		}
		cells := []string{
			fmt.Sprintf("%d", s.Month),
			CalendarLabel(s.Month),
			fmt.Sprintf("%.0f", s.NetMonthlyCashFlow),
			fmt.Sprintf("%.0f", s.CumulativeCash),
			fmt.Sprintf("%.0f", s.AccountABalance),
			fmt.Sprintf("%.0f", s.AccountBBalance),
			fmt.Sprintf("%.0f", s.TotalBrokerage),
			fmt.Sprintf("%.0f", s.TotalNetWorth),
			fmt.Sprintf("%.0f", s.RemainingMortgageBalance),
			fmt.Sprintf("%.0f", s.CumulativeMortgageInterest),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
