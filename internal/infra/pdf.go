package infra

// pdf.go — EOD report export using go-pdf/fpdf. Produces an A4 summary an
// administrator can download or mail: header with branch and date, balance
// figures, per-currency denomination tables, teller balances and variances.

import (
	"fmt"
	"os"
	"path/filepath"

	"gkms/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateEODReportPDF renders a submitted report to a PDF file under
// storagePath (created if needed) and returns the absolute path.
func GenerateEODReportPDF(report *model.EODReport, locationName string, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("eod_%s_%s.pdf", report.LocationID, report.ProcessingDate.Format("2006-01-02"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "End of Day Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, locationName, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 6, report.ProcessingDate.Format("02 Jan 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Balances ─────────────────────────────────────────────────────────────
	line := func(label string, amount decimal.Decimal) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW*0.6, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW*0.4, 6, "$"+amount.StringFixed(2), "", 1, "R", false, 0, "")
	}
	line("Closing balance", report.ClosingBalance)
	line("Funds from BXP / Webex", report.FundsFromBXPWebex)
	if report.CashSentToCourier {
		if report.CourierJMDAmount != nil {
			line("Sent to courier (JMD)", *report.CourierJMDAmount)
		}
		if report.CourierUSDAmount != nil {
			line("Sent to courier (USD)", *report.CourierUSDAmount)
		}
	}
	pdf.Ln(4)

	// ── Denomination breakdowns ──────────────────────────────────────────────
	for _, b := range report.Breakdowns {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, b.Currency+" Breakdown", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)

		row := func(label string, count int) {
			if count == 0 {
				return
			}
			pdf.CellFormat(contentW*0.6, 5, label, "", 0, "L", false, 0, "")
			pdf.CellFormat(contentW*0.4, 5, fmt.Sprintf("x%d", count), "", 1, "R", false, 0, "")
		}
		switch b.Currency {
		case model.CurrencyJMD:
			row("$5000 notes", b.Count5000)
			row("$1000 notes", b.Count1000)
			row("$500 notes", b.Count500)
			row("$100 notes", b.Count100)
			row("$50 notes", b.Count50)
			if !b.CoinsAmount.IsZero() {
				line("Coins", b.CoinsAmount)
			}
		case model.CurrencyUSD:
			row("$100 notes", b.Count100)
			row("$50 notes", b.Count50)
			row("$20 notes", b.Count20)
			row("$10 notes", b.Count10)
			if !b.SmallBillsCoinsAmount.IsZero() {
				line("Small bills and coins", b.SmallBillsCoinsAmount)
			}
		}
		line("Total", b.Total())
		pdf.Ln(3)
	}

	// ── Teller balances ──────────────────────────────────────────────────────
	if len(report.TellerBalances) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, "Teller Balances", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, t := range report.TellerBalances {
			pdf.CellFormat(contentW*0.4, 5, t.TellerName, "", 0, "L", false, 0, "")
			pdf.CellFormat(contentW*0.3, 5, "JMD "+t.JMDAmount.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(contentW*0.3, 5, "USD "+t.USDAmount.StringFixed(2), "", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}

	// ── Variances ────────────────────────────────────────────────────────────
	if !report.AllTellersBalanced {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, "Teller Variances", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, v := range report.Variances {
			pdf.CellFormat(contentW*0.6, 5, "Teller "+v.TellerNumber, "", 0, "L", false, 0, "")
			pdf.CellFormat(contentW*0.4, 5, v.Variance.StringFixed(2), "", 1, "R", false, 0, "")
		}
		line("Total variance", report.TotalVariance)
		pdf.Ln(3)
	}

	if report.Notes != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, "Notes: "+report.Notes, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
