package main

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Configuration loading tests: the embedded defaults, the percentage
// preprocessing that lets config files say "10%" instead of 0.10, and the
// save/load round trip used by -save-config.

func TestConfig_LoadDefaultConfig(t *testing.T) {
	cfg, err := LoadDefaultConfig()
	require.NoError(t, err, "embedded default config must parse")

	assert.Equal(t, 1000000.0, cfg.Property.PurchasePrice)
	assert.Equal(t, 200000.0, cfg.Property.Deposit)
	assert.Equal(t, 50000.0, cfg.Property.UpfrontFees)
	assert.InDelta(t, 0.10, cfg.Loan.AnnualInterestRate, 1e-9, "10% should load as 0.10")
	assert.Equal(t, 20, cfg.Loan.TermYears)
	assert.Equal(t, 15000.0, cfg.Rental.MonthlyRent)
	assert.Equal(t, 5000.0, cfg.Rental.MonthlyCosts)
	assert.InDelta(t, 0.05, cfg.Rental.RentalEscalation, 1e-9)
	assert.InDelta(t, 0.03, cfg.Rental.CostsEscalation, 1e-9)
	assert.InDelta(t, 0.04, cfg.Growth.CapitalGrowth, 1e-9)
	assert.Equal(t, "access-bond", cfg.Simulation.Strategy)

	assert.InDelta(t, 0.02, cfg.Sensitivity.CapitalGrowthMin, 1e-9)
	assert.InDelta(t, 0.06, cfg.Sensitivity.CapitalGrowthMax, 1e-9)
	assert.InDelta(t, 0.03, cfg.Sensitivity.RentalEscalationMin, 1e-9)
	assert.InDelta(t, 0.07, cfg.Sensitivity.RentalEscalationMax, 1e-9)
	assert.InDelta(t, 0.01, cfg.Sensitivity.StepSize, 1e-9)

	params, err := cfg.Parameters()
	require.NoError(t, err, "default config must be simulatable")
	assert.Equal(t, StrategyAccessBond, params.Strategy)
}

func TestConfig_PreprocessPercentages(t *testing.T) {
	// The rewritten value is the shortest round-trip form of value/100,
	// which for numbers like 3.89 is not the textbook decimal. The YAML
	// parser only sees the parsed float, so compare numerically.
	percentCases := []struct {
		input string
		key   string
		want  float64
	}{
		{"annual_interest_rate: 10%", "annual_interest_rate", 0.10},
		{"rental_escalation: 5%", "rental_escalation", 0.05},
		{"capital_growth: 3.89%", "capital_growth", 0.0389},
		{"step_size: 0.5%", "step_size", 0.005},
	}
	for _, tc := range percentCases {
		out := preprocessPercentages(tc.input)
		require.True(t, strings.HasPrefix(out, tc.key+": "), "input %q gave %q", tc.input, out)
		assert.NotContains(t, out, "%", "input %q", tc.input)

		got, err := strconv.ParseFloat(strings.TrimPrefix(out, tc.key+": "), 64)
		require.NoError(t, err, "rewritten value must parse: %q", out)
		assert.InDelta(t, tc.want, got, 1e-15, "input %q", tc.input)
	}

	// Lines without a percent form pass through byte for byte
	passThrough := []string{
		"annual_interest_rate: 0.1",
		"term_years: 20",
		"strategy: access-bond",
	}
	for _, line := range passThrough {
		assert.Equal(t, line, preprocessPercentages(line))
	}
}

func TestConfig_PercentAndDecimalFormsAgree(t *testing.T) {
	// The same config written with percentages must load to the same
	// parameter set as the decimal form
	percentYAML := `
property:
  purchase_price: 1000000
  deposit: 150000
  upfront_fees: 40000
loan:
  annual_interest_rate: 11.5%
  term_years: 20
rental:
  monthly_rent: 14000
  monthly_costs: 4500
  rental_escalation: 6%
  costs_escalation: 4%
growth:
  capital_growth: 3.5%
simulation:
  strategy: contract-only
`

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(percentYAML), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.InDelta(t, 0.115, cfg.Loan.AnnualInterestRate, 1e-9)
	assert.InDelta(t, 0.06, cfg.Rental.RentalEscalation, 1e-9)
	assert.InDelta(t, 0.04, cfg.Rental.CostsEscalation, 1e-9)
	assert.InDelta(t, 0.035, cfg.Growth.CapitalGrowth, 1e-9)

	params, err := cfg.Parameters()
	require.NoError(t, err)
	assert.Equal(t, StrategyContractOnly, params.Strategy)
	assert.Equal(t, 850000.0, params.LoanAmount())
	assert.Equal(t, 190000.0, params.InitialOutlay())
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	original := &Config{
		Property: PropertyConfig{
			PurchasePrice: 1250000,
			Deposit:       250000,
			UpfrontFees:   62000,
		},
		Loan: LoanConfig{
			AnnualInterestRate: 0.1075,
			TermYears:          25,
		},
		Rental: RentalConfig{
			MonthlyRent:      13500,
			MonthlyCosts:     4200,
			RentalEscalation: 0.055,
			CostsEscalation:  0.045,
		},
		Growth: GrowthConfig{
			CapitalGrowth: 0.06,
		},
		Simulation: SimulationConfig{
			Strategy: "contract-only",
		},
		Sensitivity: SensitivityConfig{
			CapitalGrowthMin:    0.03,
			CapitalGrowthMax:    0.09,
			RentalEscalationMin: 0.02,
			RentalEscalationMax: 0.08,
			StepSize:            0.015,
		},
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SaveConfig(original, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded, "config must survive a save/load round trip")
}

func TestConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "missing file should surface as ErrNotExist")
}

func TestConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("property: [not: valid"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestConfig_ParametersValidation(t *testing.T) {
	cfg, err := LoadDefaultConfig()
	require.NoError(t, err)

	cfg.Property.Deposit = cfg.Property.PurchasePrice * 2
	_, err = cfg.Parameters()
	require.Error(t, err)

	var invalid *InvalidInputError
	assert.True(t, errors.As(err, &invalid), "expected InvalidInputError, got %T", err)
}

func TestConfig_UnknownStrategyRejected(t *testing.T) {
	cfg, err := LoadDefaultConfig()
	require.NoError(t, err)

	cfg.Simulation.Strategy = "interest-only"
	_, err = cfg.Parameters()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown payment strategy")
}

func TestConfig_GridOptionsPassthrough(t *testing.T) {
	cfg, err := LoadDefaultConfig()
	require.NoError(t, err)
	params, err := cfg.Parameters()
	require.NoError(t, err)

	opts := cfg.GridOptions(params)
	assert.InDelta(t, 0.02, opts.CapitalGrowthMin, 1e-9)
	assert.InDelta(t, 0.06, opts.CapitalGrowthMax, 1e-9)
	assert.InDelta(t, 0.03, opts.RentalEscalationMin, 1e-9)
	assert.InDelta(t, 0.07, opts.RentalEscalationMax, 1e-9)
	assert.InDelta(t, 0.01, opts.StepSize, 1e-9)
}

func TestConfig_GridOptionsFallbackBand(t *testing.T) {
	// With no sensitivity section the sweep defaults to two steps either
	// side of the base assumptions, floored at zero
	cfg := &Config{}
	base := SimulationParameters{
		CapitalGrowth:    0.04,
		RentalEscalation: 0.05,
	}

	opts := cfg.GridOptions(base)
	assert.InDelta(t, 0.01, opts.StepSize, 1e-9, "step defaults to 1%")
	assert.InDelta(t, 0.02, opts.CapitalGrowthMin, 1e-9)
	assert.InDelta(t, 0.06, opts.CapitalGrowthMax, 1e-9)
	assert.InDelta(t, 0.03, opts.RentalEscalationMin, 1e-9)
	assert.InDelta(t, 0.07, opts.RentalEscalationMax, 1e-9)

	// Bases near zero clamp the lower edge instead of going negative
	low := SimulationParameters{CapitalGrowth: 0.01, RentalEscalation: 0.01}
	opts = cfg.GridOptions(low)
	assert.Equal(t, 0.0, opts.CapitalGrowthMin)
	assert.Equal(t, 0.0, opts.RentalEscalationMin)
	assert.InDelta(t, 0.03, opts.CapitalGrowthMax, 1e-9)
}
