package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
)

// PDFReport generates a printable report for one simulation run
type PDFReport struct {
	pdf    *fpdf.Fpdf
	result SimulationResult
}

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// GeneratePDFReport renders the full report into a buffer
func GeneratePDFReport(result SimulationResult) (*bytes.Buffer, error) {
	report := &PDFReport{
		pdf:    fpdf.New("P", "mm", "A4", ""),
		result: result,
	}

	report.pdf.SetMargins(marginLeft, marginTop, marginRight)
	report.pdf.SetAutoPageBreak(true, marginBottom)

	report.addTitlePage()
	report.addYearlySchedule()
	report.addFundingBreakdown()

	var buf bytes.Buffer
	if err := report.pdf.Output(&buf); err != nil {
		return nil, err
	}

	return &buf, nil
}

// SavePDFReport writes the report to a file
func SavePDFReport(filename string, result SimulationResult) error {
	buf, err := GeneratePDFReport(result)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, buf.Bytes(), 0644)
}

func (r *PDFReport) addTitlePage() {
	r.pdf.AddPage()
	params := r.result.Params
	summary := r.result.Summary

	// Title
	r.pdf.SetFont("Arial", "B", 26)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.Ln(30)
	r.pdf.CellFormat(contentWidth, 14, "Property Investment Report", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "", 14)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.Ln(6)
	r.pdf.CellFormat(contentWidth, 10, fmt.Sprintf("%s Strategy", params.Strategy), "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 11)
	r.pdf.Ln(8)
	r.pdf.CellFormat(contentWidth, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")

	// Assumptions box
	r.pdf.Ln(12)
	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetDrawColor(200, 200, 200)

	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, "Assumptions", "1", 1, "C", true, 0, "")

	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	assumptions := []string{
		fmt.Sprintf("Purchase price %s  |  Deposit %s  |  Upfront fees %s",
			FormatMoneyFull(params.PurchasePrice), FormatMoneyFull(params.Deposit), FormatMoneyFull(params.UpfrontFees)),
		fmt.Sprintf("Bond %s at %s over %d years  |  Contract payment %s/month",
			FormatMoneyFull(params.LoanAmount()), FormatPercent(params.AnnualInterestRate),
			params.TermYears, FormatMoneyFull(params.ContractPayment())),
		fmt.Sprintf("Rent %s/month escalating %s per year  |  Costs %s/month escalating %s per year",
			FormatMoneyFull(params.StartingMonthlyRent), FormatPercent(params.RentalEscalation),
			FormatMoneyFull(params.StartingMonthlyCosts), FormatPercent(params.CostsEscalation)),
		fmt.Sprintf("Capital growth %s per year  |  Initial outlay %s",
			FormatPercent(params.CapitalGrowth), FormatMoneyFull(params.InitialOutlay())),
	}
	for _, line := range assumptions {
		r.pdf.CellFormat(contentWidth, 7, line, "LR", 1, "C", true, 0, "")
	}
	r.pdf.CellFormat(contentWidth, 1, "", "LRB", 1, "C", true, 0, "")

	// Outcome box
	r.pdf.Ln(10)
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, "Outcome at End of Term", "1", 1, "C", true, 0, "")

	payoffLine := "Bond not settled inside the term"
	if r.result.PaidOff() {
		saved := params.TotalPeriods() - summary.PayoffMonth
		payoffLine = fmt.Sprintf("Bond settled in month %d (%d months early)", summary.PayoffMonth, saved)
	}

	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	outcomes := []string{
		payoffLine,
		fmt.Sprintf("Total interest paid %s, of which %s came out of the investor's pocket",
			FormatMoneyFull(summary.TotalInterestPaid), FormatMoneyFull(summary.TotalInterestFromCash)),
		fmt.Sprintf("Final equity %s  |  Property value %s",
			FormatMoneyFull(summary.FinalEquity), FormatMoneyFull(summary.FinalPropertyValue)),
		fmt.Sprintf("Gain from rent %s  |  Capital gain %s",
			FormatMoneyFull(summary.FinalGainFromRent), FormatMoneyFull(summary.FinalCapitalGain)),
		fmt.Sprintf("Total return %s on %s cash invested  |  Total ROI %.1f%%",
			FormatMoneyFull(summary.FinalTotalReturn), FormatMoneyFull(summary.FinalCashInvested),
			summary.FinalTotalROI),
	}
	for _, line := range outcomes {
		r.pdf.CellFormat(contentWidth, 7, line, "LR", 1, "C", true, 0, "")
	}
	r.pdf.CellFormat(contentWidth, 1, "", "LRB", 1, "C", true, 0, "")
}

// yearlyRows picks the December record of each year plus the payoff month
func (r *PDFReport) yearlyRows() []MonthlyRecord {
	payoff := r.result.Summary.PayoffMonth
	var rows []MonthlyRecord
	for i, rec := range r.result.Records {
		if rec.Month%12 == 0 || rec.Month == payoff || i == len(r.result.Records)-1 {
			rows = append(rows, rec)
		}
	}
	return rows
}

func (r *PDFReport) addYearlySchedule() {
	r.pdf.AddPage()
	r.drawSectionHeader("Year-by-Year Schedule")

	headers := []string{"Month", "Rent", "Net Rent", "Payment", "Extra", "Interest", "Balance", "Equity", "Value", "ROI"}
	widths := []float64{14, 18, 18, 18, 18, 18, 20, 20, 20, 16}

	r.drawTableHeader(headers, widths)

	payoff := r.result.Summary.PayoffMonth
	for _, rec := range r.yearlyRows() {
		if r.pdf.GetY() > 260 {
			r.pdf.AddPage()
			r.drawTableHeader(headers, widths)
		}
		cells := []string{
			fmt.Sprintf("%d", rec.Month),
			FormatMoney(rec.Rent),
			FormatMoney(rec.NetRent),
			FormatMoney(rec.TotalPayment),
			FormatMoney(rec.ExtraPayment),
			FormatMoney(rec.InterestPaid),
			FormatMoney(rec.LoanBalance),
			FormatMoney(rec.Equity),
			FormatMoney(rec.PropertyValue),
			fmt.Sprintf("%.0f%%", rec.TotalROI),
		}
		r.drawTableRow(cells, widths, rec.Month == payoff)
	}

	r.pdf.Ln(4)
	r.pdf.SetFont("Arial", "I", 8)
	r.pdf.SetTextColor(100, 100, 100)
	r.pdf.CellFormat(contentWidth, 5, "Rows show the December position of each year; the highlighted row is the month the bond settles.", "", 1, "L", false, 0, "")
}

// addFundingBreakdown shows, per year, the cumulative split of interest and
// principal between rental income and the investor's own cash.
func (r *PDFReport) addFundingBreakdown() {
	r.pdf.Ln(8)
	if r.pdf.GetY() > 200 {
		r.pdf.AddPage()
	}
	r.drawSectionHeader("Funding Split by Source")

	headers := []string{"Month", "Int. from Rent", "Int. from Cash", "Prin. from Rent", "Prin. from Cash", "Cash Invested"}
	widths := []float64{16, 33, 33, 33, 33, 32}

	r.drawTableHeader(headers, widths)

	var intRent, intCash, prinRent, prinCash float64
	next := 0
	yearly := r.yearlyRows()
	for _, rec := range r.result.Records {
		intRent += rec.InterestFromRent
		intCash += rec.InterestFromCash
		prinRent += rec.PrincipalFromRent
		prinCash += rec.PrincipalFromCash

		if next < len(yearly) && rec.Month == yearly[next].Month {
			next++
			if r.pdf.GetY() > 260 {
				r.pdf.AddPage()
				r.drawTableHeader(headers, widths)
			}
			cells := []string{
				fmt.Sprintf("%d", rec.Month),
				FormatMoney(intRent),
				FormatMoney(intCash),
				FormatMoney(prinRent),
				FormatMoney(prinCash),
				FormatMoney(rec.CashInvested),
			}
			r.drawTableRow(cells, widths, rec.Month == r.result.Summary.PayoffMonth)
		}
	}

	r.pdf.Ln(4)
	r.pdf.SetFont("Arial", "I", 8)
	r.pdf.SetTextColor(100, 100, 100)
	r.pdf.CellFormat(contentWidth, 5, "Values are cumulative since purchase. Interest from cash erodes equity; principal from rent builds it.", "", 1, "L", false, 0, "")
}

func (r *PDFReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 10, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(5)
}

func (r *PDFReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *PDFReport) drawTableRow(cells []string, widths []float64, highlight bool) {
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.SetFont("Arial", "", 9)
	if highlight {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(222, 242, 226)
	} else {
		r.pdf.SetFillColor(250, 250, 250)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, cell, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
