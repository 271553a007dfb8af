package main

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// GridOptions holds the sweep ranges for a sensitivity run
type GridOptions struct {
	CapitalGrowthMin    float64
	CapitalGrowthMax    float64
	RentalEscalationMin float64
	RentalEscalationMax float64
	StepSize            float64
}

// SensitivityCell holds the outcome of a single rate combination
type SensitivityCell struct {
	CapitalGrowth    float64 `json:"capital_growth"`
	RentalEscalation float64 `json:"rental_escalation"`
	PayoffMonth      int     `json:"payoff_month"` // 0 when the bond is not settled inside the term
	FinalEquity      float64 `json:"final_equity"`
	FinalTotalReturn float64 `json:"final_total_return"`
	FinalTotalROI    float64 `json:"final_total_roi"`
}

// SensitivityGrid holds the complete sweep.
// Cells are indexed [capital growth][rental escalation].
type SensitivityGrid struct {
	Base                  SimulationParameters `json:"-"`
	CapitalGrowthRates    []float64            `json:"capital_growth_rates"`
	RentalEscalationRates []float64            `json:"rental_escalation_rates"`
	Cells                 [][]SensitivityCell  `json:"cells"`
}

// buildRateRange generates a slice of rates from min to max with given step
func buildRateRange(min, max, step float64) []float64 {
	var rates []float64
	for r := min; r <= max+0.0001; r += step { // small epsilon for float comparison
		rates = append(rates, r)
	}
	return rates
}

// RunSensitivityGrid re-runs the full simulation for every combination of
// capital growth and rental escalation in the requested ranges. Cells are
// computed concurrently; the grid layout is fixed up front so the output is
// identical to a serial run.
func RunSensitivityGrid(base SimulationParameters, opts GridOptions) (*SensitivityGrid, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if opts.StepSize <= 0 {
		return nil, invalidInput("sensitivity step size must be positive")
	}

	growthRates := buildRateRange(opts.CapitalGrowthMin, opts.CapitalGrowthMax, opts.StepSize)
	escalationRates := buildRateRange(opts.RentalEscalationMin, opts.RentalEscalationMax, opts.StepSize)

	grid := &SensitivityGrid{
		Base:                  base,
		CapitalGrowthRates:    growthRates,
		RentalEscalationRates: escalationRates,
		Cells:                 make([][]SensitivityCell, len(growthRates)),
	}
	for gi := range grid.Cells {
		grid.Cells[gi] = make([]SensitivityCell, len(escalationRates))
	}

	var g errgroup.Group
	for gi, growth := range growthRates {
		for ei, escalation := range escalationRates {
			gi, ei, growth, escalation := gi, ei, growth, escalation
			g.Go(func() error {
				params := base
				params.CapitalGrowth = growth
				params.RentalEscalation = escalation

				result, err := Simulate(params)
				if err != nil {
					return fmt.Errorf("grid cell growth=%.2f escalation=%.2f: %w", growth, escalation, err)
				}

				grid.Cells[gi][ei] = SensitivityCell{
					CapitalGrowth:    growth,
					RentalEscalation: escalation,
					PayoffMonth:      result.Summary.PayoffMonth,
					FinalEquity:      result.Summary.FinalEquity,
					FinalTotalReturn: result.Summary.FinalTotalReturn,
					FinalTotalROI:    result.Summary.FinalTotalROI,
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return grid, nil
}

// PrintSensitivityGrid renders the grid as a console matrix: rows are capital
// growth rates, columns are rental escalation rates, each cell shows the final
// total ROI and the payoff month.
func PrintSensitivityGrid(grid *SensitivityGrid) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                  SENSITIVITY: CAPITAL GROWTH × RENT ESCALATION                ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Println("  Each cell: final total ROI | bond payoff month (- = not settled inside term)")
	fmt.Println()

	fmt.Printf("%12s", "Growth\\Esc")
	for _, esc := range grid.RentalEscalationRates {
		fmt.Printf(" │ %12s", FormatPercent(esc))
	}
	fmt.Println()
	fmt.Println(strings.Repeat("─", 12+len(grid.RentalEscalationRates)*15))

	for gi, growth := range grid.CapitalGrowthRates {
		fmt.Printf("%12s", FormatPercent(growth))
		for ei := range grid.RentalEscalationRates {
			cell := grid.Cells[gi][ei]
			payoff := "-"
			if cell.PayoffMonth > 0 {
				payoff = fmt.Sprintf("m%d", cell.PayoffMonth)
			}
			fmt.Printf(" │ %6.0f%% %5s", cell.FinalTotalROI, payoff)
		}
		fmt.Println()
	}

	fmt.Println(strings.Repeat("─", 12+len(grid.RentalEscalationRates)*15))
}
