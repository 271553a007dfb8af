package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// FormatMoney formats a Rand amount with k/M abbreviations for summaries
func FormatMoney(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	if amount >= 1000000 {
		return fmt.Sprintf("%sR%.2fM", sign, amount/1000000)
	}
	if amount >= 1000 {
		return fmt.Sprintf("%sR%.0fk", sign, amount/1000)
	}
	return fmt.Sprintf("%sR%.0f", sign, amount)
}

// FormatMoneyFull formats a Rand amount in full with thousands separators
func FormatMoneyFull(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	whole := strconv.FormatFloat(math.Round(amount), 'f', 0, 64)
	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return sign + "R " + b.String()
}

// FormatPercent formats a fractional rate as a percentage
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

// PrintHeader prints the dashboard banner and the assumption set
func PrintHeader(params SimulationParameters) {
	fmt.Println("╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Println("║           PROPERTY INVESTMENT DASHBOARD - RENTAL ROI & CAPITAL GAINS          ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Println("Assumptions:")
	fmt.Println("────────────")
	fmt.Printf("  Purchase: %s with %s deposit (%.0f%%) and %s fees\n",
		FormatMoney(params.PurchasePrice),
		FormatMoney(params.Deposit),
		params.Deposit/params.PurchasePrice*100,
		FormatMoney(params.UpfrontFees))
	fmt.Printf("  Bond:     %s over %d years at %.2f%% (contract payment %s/month)\n",
		FormatMoney(params.LoanAmount()),
		params.TermYears,
		params.AnnualInterestRate*100,
		FormatMoney(params.ContractPayment()))
	fmt.Printf("  Rental:   %s/month less %s costs, escalating %s / %s per year\n",
		FormatMoney(params.StartingMonthlyRent),
		FormatMoney(params.StartingMonthlyCosts),
		FormatPercent(params.RentalEscalation),
		FormatPercent(params.CostsEscalation))
	fmt.Printf("  Growth:   %s property appreciation per year\n", FormatPercent(params.CapitalGrowth))
	fmt.Printf("  Strategy: %s\n", params.Strategy)
	fmt.Println()
}

// PrintResultSummary prints the headline numbers for a finished run
func PrintResultSummary(result SimulationResult) {
	s := result.Summary
	fmt.Println()
	fmt.Printf("╔══════════════════════════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║ Strategy: %-67s ║\n", result.Params.Strategy.String())
	fmt.Printf("╚══════════════════════════════════════════════════════════════════════════════╝\n")
	fmt.Println()

	if result.PaidOff() {
		fmt.Printf("  Bond settled:             month %d (year %d of %d)\n",
			s.PayoffMonth, (s.PayoffMonth-1)/12+1, result.Params.TermYears)
	} else {
		fmt.Printf("  Bond settled:             not inside the %d-year term\n", result.Params.TermYears)
	}
	fmt.Printf("  Total interest paid:      %s\n", FormatMoney(s.TotalInterestPaid))
	fmt.Printf("  Interest paid from cash:  %s\n", FormatMoney(s.TotalInterestFromCash))
	fmt.Printf("  Extra principal paid:     %s\n", FormatMoney(s.TotalExtraPaid))
	fmt.Printf("  Principal funded by rent: %s\n", FormatMoney(s.TotalPrincipalFromRent))
	fmt.Printf("  Total cash invested:      %s\n", FormatMoney(s.FinalCashInvested))
	fmt.Println()
	fmt.Println("  At end of term:")
	fmt.Printf("    Equity:          %-12s  Gain from rent:  %-12s (%.1f%% ROI)\n",
		FormatMoney(s.FinalEquity), FormatMoney(s.FinalGainFromRent),
		result.FinalRecord().ROIFromRent)
	fmt.Printf("    Property value:  %-12s  Capital gain:    %-12s (%.1f%% ROI)\n",
		FormatMoney(s.FinalPropertyValue), FormatMoney(s.FinalCapitalGain),
		result.FinalRecord().ROIFromCapital)
	fmt.Printf("    Total return:    %-12s  Total ROI:       %.1f%%\n",
		FormatMoney(s.FinalTotalReturn), s.FinalTotalROI)
}

// PrintSchedule prints the amortization schedule. By default a yearly view
// (month 1, every December, the payoff month and the final month); with
// everyMonth set, all rows.
func PrintSchedule(result SimulationResult, everyMonth bool) {
	fmt.Println()
	fmt.Printf("%-6s %-5s │ %11s %11s │ %11s %11s %11s │ %12s %12s │ %8s\n",
		"Month", "Year", "Rent", "Net Rent", "Payment", "Extra", "Interest", "Balance", "Equity", "ROI")
	fmt.Println(strings.Repeat("─", 124))

	for i, rec := range result.Records {
		isKeyMonth := i == 0 || i == len(result.Records)-1 ||
			rec.Month%12 == 0 || rec.Month == result.Summary.PayoffMonth

		if everyMonth || isKeyMonth {
			fmt.Printf("%-6d %-5d │ %11s %11s │ %11s %11s %11s │ %12s %12s │ %7.1f%%\n",
				rec.Month, rec.Year,
				FormatMoney(rec.Rent),
				FormatMoney(rec.NetRent),
				FormatMoney(rec.TotalPayment),
				FormatMoney(rec.ExtraPayment),
				FormatMoney(rec.InterestPaid),
				FormatMoney(rec.LoanBalance),
				FormatMoney(rec.Equity),
				rec.TotalROI)
		}
	}

	fmt.Println(strings.Repeat("─", 124))
}

// PrintComparison prints strategies side by side
func PrintComparison(results []SimulationResult) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                              STRATEGY COMPARISON                              ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Println()

	fmt.Printf("%-28s", "Metric")
	for _, r := range results {
		fmt.Printf(" │ %-16s", r.Params.Strategy.ShortName())
	}
	fmt.Println()
	fmt.Println(strings.Repeat("─", 28+len(results)*19))

	fmt.Printf("%-28s", "Bond settled")
	for _, r := range results {
		status := "inside term: no"
		if r.PaidOff() {
			status = fmt.Sprintf("month %d", r.Summary.PayoffMonth)
		}
		fmt.Printf(" │ %-16s", status)
	}
	fmt.Println()

	fmt.Printf("%-28s", "Total interest paid")
	for _, r := range results {
		fmt.Printf(" │ %-16s", FormatMoney(r.Summary.TotalInterestPaid))
	}
	fmt.Println()

	fmt.Printf("%-28s", "Interest paid from cash")
	for _, r := range results {
		fmt.Printf(" │ %-16s", FormatMoney(r.Summary.TotalInterestFromCash))
	}
	fmt.Println()

	fmt.Printf("%-28s", "Extra principal paid")
	for _, r := range results {
		fmt.Printf(" │ %-16s", FormatMoney(r.Summary.TotalExtraPaid))
	}
	fmt.Println()

	fmt.Printf("%-28s", "Final equity")
	for _, r := range results {
		fmt.Printf(" │ %-16s", FormatMoney(r.Summary.FinalEquity))
	}
	fmt.Println()

	fmt.Printf("%-28s", "Final total return")
	for _, r := range results {
		fmt.Printf(" │ %-16s", FormatMoney(r.Summary.FinalTotalReturn))
	}
	fmt.Println()

	fmt.Printf("%-28s", "Final total ROI")
	for _, r := range results {
		fmt.Printf(" │ %-16s", fmt.Sprintf("%.1f%%", r.Summary.FinalTotalROI))
	}
	fmt.Println()

	fmt.Println(strings.Repeat("─", 28+len(results)*19))

	// Quantify what the access bond buys when both strategies are present
	var accessBond, contractOnly *SimulationResult
	for i := range results {
		switch results[i].Params.Strategy {
		case StrategyAccessBond:
			accessBond = &results[i]
		case StrategyContractOnly:
			contractOnly = &results[i]
		}
	}
	if accessBond != nil && contractOnly != nil && accessBond.PaidOff() {
		monthsSaved := contractOnly.Params.TotalPeriods() - accessBond.Summary.PayoffMonth
		if contractOnly.PaidOff() {
			monthsSaved = contractOnly.Summary.PayoffMonth - accessBond.Summary.PayoffMonth
		}
		interestSaved := contractOnly.Summary.TotalInterestPaid - accessBond.Summary.TotalInterestPaid
		fmt.Println()
		fmt.Printf("  Recycling rental surplus settles the bond %d months earlier and saves %s in interest.\n",
			monthsSaved, FormatMoney(interestSaved))
	}
}

// scheduleCSVHeader matches the dashboard table columns
var scheduleCSVHeader = []string{
	"Month", "Year", "Rent (ZAR)", "Costs (ZAR)", "Net Rental",
	"Mortgage Payment", "Base Payment", "Extra Payment",
	"Interest Paid", "Interest from Rent", "Interest from Cash",
	"Principal from Rent", "Principal from Cash",
	"Loan Balance", "Equity", "Gain From Rent", "ROI From Rent (%)",
	"Property Value", "Capital Gain", "ROI From Capital (%)",
	"Total Return", "Total ROI (%)", "Total Cash Invested",
}

// WriteScheduleCSV writes the full month-by-month schedule as CSV
func WriteScheduleCSV(w io.Writer, result SimulationResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(scheduleCSVHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	money := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

	for _, rec := range result.Records {
		row := []string{
			strconv.Itoa(rec.Month),
			strconv.Itoa(rec.Year),
			money(rec.Rent),
			money(rec.Costs),
			money(rec.NetRent),
			money(rec.TotalPayment),
			money(rec.BasePayment),
			money(rec.ExtraPayment),
			money(rec.InterestPaid),
			money(rec.InterestFromRent),
			money(rec.InterestFromCash),
			money(rec.PrincipalFromRent),
			money(rec.PrincipalFromCash),
			money(rec.LoanBalance),
			money(rec.Equity),
			money(rec.GainFromRent),
			money(rec.ROIFromRent),
			money(rec.PropertyValue),
			money(rec.CapitalGain),
			money(rec.ROIFromCapital),
			money(rec.TotalReturn),
			money(rec.TotalROI),
			money(rec.CashInvested),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", rec.Month, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
