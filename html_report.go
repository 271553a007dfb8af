package main

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"
)

// GenerateHTMLReport writes a self-contained report for one simulation run.
// Everything is inline: styles, SVG charts, the full yearly schedule. The
// file opens offline in any browser.
func GenerateHTMLReport(result SimulationResult, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	// Write HTML header
	fmt.Fprintf(f, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Property Investment Report: %s</title>
    <style>
        :root {
            --primary: #2563eb;
            --success: #16a34a;
            --warning: #ea580c;
            --danger: #dc2626;
            --bg: #f8fafc;
            --card-bg: #ffffff;
            --text: #1e293b;
            --text-muted: #64748b;
            --border: #e2e8f0;
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: var(--bg);
            color: var(--text);
            line-height: 1.6;
            padding: 2rem;
        }
        .container { max-width: 1200px; margin: 0 auto; }
        h1 {
            font-size: 1.75rem;
            margin-bottom: 0.5rem;
            color: var(--primary);
        }
        h2 {
            font-size: 1.25rem;
            margin: 1.5rem 0 1rem;
            padding-bottom: 0.5rem;
            border-bottom: 2px solid var(--primary);
        }
        .subtitle {
            color: var(--text-muted);
            margin-bottom: 1.5rem;
        }
        .card {
            background: var(--card-bg);
            border-radius: 8px;
            box-shadow: 0 1px 3px rgba(0,0,0,0.1);
            padding: 1.5rem;
            margin-bottom: 1.5rem;
        }
        .grid { display: grid; gap: 1rem; }
        .grid-2 { grid-template-columns: repeat(2, 1fr); }
        .grid-4 { grid-template-columns: repeat(4, 1fr); }
        @media (max-width: 768px) {
            .grid-2, .grid-4 { grid-template-columns: 1fr; }
        }
        .metric {
            text-align: center;
            padding: 1rem;
            border-radius: 8px;
            background: var(--bg);
        }
        .metric-value {
            font-size: 1.5rem;
            font-weight: 700;
            color: var(--primary);
        }
        .metric-label {
            font-size: 0.875rem;
            color: var(--text-muted);
        }
        .metric.success .metric-value { color: var(--success); }
        .metric.warning .metric-value { color: var(--warning); }
        .metric.danger .metric-value { color: var(--danger); }
        table {
            width: 100%%;
            border-collapse: collapse;
            font-size: 0.875rem;
        }
        th, td {
            padding: 0.6rem 0.5rem;
            text-align: right;
            border-bottom: 1px solid var(--border);
            white-space: nowrap;
        }
        th {
            background: var(--bg);
            font-weight: 600;
            text-align: right;
            position: sticky;
            top: 0;
        }
        th:first-child, td:first-child { text-align: left; }
        tr:hover { background: #f1f5f9; }
        .highlight { background: #dcfce7 !important; font-weight: 600; }
        .negative { color: var(--danger); }
        .chart { width: 100%%; height: auto; }
        .chart .gridline { stroke: var(--border); stroke-width: 1; }
        .chart .zeroline { stroke: var(--text-muted); stroke-width: 1; stroke-dasharray: 4 3; }
        .chart .payoffline { stroke: var(--success); stroke-width: 1.5; stroke-dasharray: 5 4; }
        .chart .tick { font-size: 11px; fill: var(--text-muted); }
        .legend { display: flex; gap: 1rem; flex-wrap: wrap; margin-top: 0.5rem; font-size: 0.8rem; color: var(--text-muted); }
        .legend-item { display: inline-flex; align-items: center; gap: 0.3rem; }
        .swatch { display: inline-block; width: 10px; height: 10px; border-radius: 2px; }
        .note { font-size: 0.8rem; color: var(--text-muted); margin-top: 0.5rem; }
    </style>
</head>
<body>
<div class="container">
    <h1>Property Investment Report</h1>
    <p class="subtitle">%s strategy &middot; Generated %s</p>
`, result.Params.Strategy, result.Params.Strategy, time.Now().Format("2 January 2006"))

	writeAssumptionsHTML(f, result.Params)
	writeSummaryCardsHTML(f, result)
	writeChartsHTML(f, result)
	writeScheduleTableHTML(f, result)

	fmt.Fprint(f, `</div>
</body>
</html>
`)
	return nil
}

func writeAssumptionsHTML(f *os.File, params SimulationParameters) {
	fmt.Fprint(f, `    <div class="card">
        <h2>Assumptions</h2>
        <div class="grid grid-4">
`)
	items := []struct {
		label string
		value string
	}{
		{"Purchase price", FormatMoneyFull(params.PurchasePrice)},
		{"Deposit", FormatMoneyFull(params.Deposit)},
		{"Upfront fees", FormatMoneyFull(params.UpfrontFees)},
		{"Bond amount", FormatMoneyFull(params.LoanAmount())},
		{"Interest rate", FormatPercent(params.AnnualInterestRate)},
		{"Term", fmt.Sprintf("%d years", params.TermYears)},
		{"Starting rent", FormatMoneyFull(params.StartingMonthlyRent) + "/m"},
		{"Starting costs", FormatMoneyFull(params.StartingMonthlyCosts) + "/m"},
		{"Rent escalation", FormatPercent(params.RentalEscalation) + "/y"},
		{"Costs escalation", FormatPercent(params.CostsEscalation) + "/y"},
		{"Capital growth", FormatPercent(params.CapitalGrowth) + "/y"},
		{"Contract payment", FormatMoneyFull(params.ContractPayment()) + "/m"},
	}
	for _, item := range items {
		fmt.Fprintf(f, `            <div class="metric"><div class="metric-value">%s</div><div class="metric-label">%s</div></div>
`, item.value, item.label)
	}
	fmt.Fprint(f, `        </div>
    </div>
`)
}

func writeSummaryCardsHTML(f *os.File, result SimulationResult) {
	summary := result.Summary
	payoffValue, payoffClass := "Not in term", "warning"
	if result.PaidOff() {
		payoffValue = fmt.Sprintf("Month %d", summary.PayoffMonth)
		payoffClass = "success"
	}
	roiClass := "success"
	if summary.FinalTotalROI < 0 {
		roiClass = "danger"
	}

	fmt.Fprint(f, `    <div class="card">
        <h2>Outcome at End of Term</h2>
        <div class="grid grid-4">
`)
	cards := []struct {
		label string
		value string
		class string
	}{
		{"Bond settled", payoffValue, payoffClass},
		{"Total interest", FormatMoney(summary.TotalInterestPaid), ""},
		{"Interest from cash", FormatMoney(summary.TotalInterestFromCash), ""},
		{"Extra paid in", FormatMoney(summary.TotalExtraPaid), ""},
		{"Final equity", FormatMoney(summary.FinalEquity), ""},
		{"Property value", FormatMoney(summary.FinalPropertyValue), ""},
		{"Total return", FormatMoney(summary.FinalTotalReturn), "success"},
		{"Total ROI", fmt.Sprintf("%.1f%%", summary.FinalTotalROI), roiClass},
	}
	for _, card := range cards {
		fmt.Fprintf(f, `            <div class="metric %s"><div class="metric-value">%s</div><div class="metric-label">%s</div></div>
`, card.class, card.value, card.label)
	}
	fmt.Fprint(f, `        </div>
    </div>
`)
}

// chartSeries is one line on a report chart
type chartSeries struct {
	label string
	color string
	pick  func(MonthlyRecord) float64
}

func writeChartsHTML(f *os.File, result SimulationResult) {
	payoff := result.Summary.PayoffMonth

	roiChart := buildLineChartSVG(result.Records, []chartSeries{
		{"ROI from rent", "#16a34a", func(r MonthlyRecord) float64 { return r.ROIFromRent }},
		{"ROI from capital", "#ea580c", func(r MonthlyRecord) float64 { return r.ROIFromCapital }},
		{"Total ROI", "#2563eb", func(r MonthlyRecord) float64 { return r.TotalROI }},
	}, false, payoff)

	gainChart := buildLineChartSVG(result.Records, []chartSeries{
		{"Gain from rent", "#16a34a", func(r MonthlyRecord) float64 { return r.GainFromRent }},
		{"Capital gain", "#ea580c", func(r MonthlyRecord) float64 { return r.CapitalGain }},
		{"Total return", "#2563eb", func(r MonthlyRecord) float64 { return r.TotalReturn }},
	}, true, payoff)

	fmt.Fprintf(f, `    <div class="grid grid-2">
        <div class="card">
            <h2>Return on Investment (%%)</h2>
            %s
        </div>
        <div class="card">
            <h2>Cumulative Gains</h2>
            %s
        </div>
    </div>
`, roiChart, gainChart)
}

// buildLineChartSVG renders one inline SVG line chart over the monthly records.
// The y-range always includes zero so gains and losses read against the axis.
func buildLineChartSVG(records []MonthlyRecord, series []chartSeries, money bool, payoffMonth int) string {
	if len(records) < 2 {
		return `<p class="note">Not enough data to chart.</p>`
	}

	const (
		width, height = 760.0, 300.0
		padL, padR    = 64.0, 14.0
		padT, padB    = 14.0, 34.0
	)

	minV, maxV := 0.0, math.Inf(-1)
	for _, s := range series {
		for _, rec := range records {
			v := s.pick(rec)
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}
	if maxV <= minV {
		maxV = minV + 1
	}

	plotW, plotH := width-padL-padR, height-padT-padB
	x := func(i int) float64 { return padL + float64(i)/float64(len(records)-1)*plotW }
	y := func(v float64) float64 { return padT + (1-(v-minV)/(maxV-minV))*plotH }

	var b strings.Builder
	fmt.Fprintf(&b, `<svg viewBox="0 0 %.0f %.0f" class="chart" preserveAspectRatio="xMidYMid meet">`, width, height)

	// Horizontal gridlines with y-axis labels
	for t := 0; t <= 5; t++ {
		v := minV + (maxV-minV)*float64(t)/5
		yy := y(v)
		fmt.Fprintf(&b, `<line class="gridline" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`, padL, yy, width-padR, yy)
		label := fmt.Sprintf("%.0f%%", v)
		if money {
			label = FormatMoney(v)
		}
		fmt.Fprintf(&b, `<text class="tick" x="%.1f" y="%.1f" text-anchor="end">%s</text>`, padL-6, yy+4, label)
	}

	// X-axis labels once per year (every other year on long terms)
	step := 12
	if len(records) > 150 {
		step = 24
	}
	for i := step - 1; i < len(records); i += step {
		fmt.Fprintf(&b, `<text class="tick" x="%.1f" y="%.1f" text-anchor="middle">Y%d</text>`, x(i), height-10, records[i].Year)
	}

	if minV < 0 {
		fmt.Fprintf(&b, `<line class="zeroline" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`, padL, y(0), width-padR, y(0))
	}
	if payoffMonth > 0 && payoffMonth <= len(records) {
		px := x(payoffMonth - 1)
		fmt.Fprintf(&b, `<line class="payoffline" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`, px, padT, px, height-padB)
	}

	for _, s := range series {
		fmt.Fprintf(&b, `<polyline fill="none" stroke="%s" stroke-width="2" points="`, s.color)
		for i, rec := range records {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%.1f,%.1f", x(i), y(s.pick(rec)))
		}
		b.WriteString(`"/>`)
	}
	b.WriteString(`</svg>`)

	b.WriteString(`<div class="legend">`)
	for _, s := range series {
		fmt.Fprintf(&b, `<span class="legend-item"><span class="swatch" style="background:%s"></span>%s</span>`, s.color, s.label)
	}
	if payoffMonth > 0 {
		b.WriteString(`<span class="legend-item"><span class="swatch" style="background:#16a34a"></span>Bond settled</span>`)
	}
	b.WriteString(`</div>`)

	return b.String()
}

func writeScheduleTableHTML(f *os.File, result SimulationResult) {
	payoff := result.Summary.PayoffMonth

	fmt.Fprint(f, `    <div class="card">
        <h2>Yearly Schedule</h2>
        <table>
            <thead><tr>
                <th>Month</th><th>Year</th><th>Rent</th><th>Net Rent</th><th>Payment</th>
                <th>Extra</th><th>Interest</th><th>Balance</th><th>Equity</th><th>Value</th><th>Total ROI</th>
            </tr></thead>
            <tbody>
`)
	for i, rec := range result.Records {
		if rec.Month != 1 && rec.Month%12 != 0 && rec.Month != payoff && i != len(result.Records)-1 {
			continue
		}
		rowClass := ""
		if rec.Month == payoff {
			rowClass = ` class="highlight"`
		}
		netClass := ""
		if rec.NetRent < 0 {
			netClass = ` class="negative"`
		}
		fmt.Fprintf(f, `            <tr%s><td>%d</td><td>%d</td><td>%s</td><td%s>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%.1f%%</td></tr>
`,
			rowClass, rec.Month, rec.Year,
			FormatMoneyFull(rec.Rent), netClass, FormatMoneyFull(rec.NetRent),
			FormatMoneyFull(rec.TotalPayment), FormatMoneyFull(rec.ExtraPayment),
			FormatMoneyFull(rec.InterestPaid), FormatMoneyFull(rec.LoanBalance),
			FormatMoneyFull(rec.Equity), FormatMoneyFull(rec.PropertyValue),
			rec.TotalROI)
	}
	fmt.Fprint(f, `            </tbody>
        </table>
        <p class="note">Rows show month 1, each December, and the month the bond settles (highlighted).</p>
    </div>
`)
}
