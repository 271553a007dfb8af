package main

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed default-config.yaml
var defaultConfigYAML string

// PropertyConfig holds the purchase details
type PropertyConfig struct {
	PurchasePrice float64 `yaml:"purchase_price" json:"purchase_price"` // Property purchase price (ZAR)
	Deposit       float64 `yaml:"deposit" json:"deposit"`               // Initial cash deposit, must be below the purchase price
	UpfrontFees   float64 `yaml:"upfront_fees" json:"upfront_fees"`     // Transfer duty, bond registration, legal fees
}

// LoanConfig holds the bond terms
type LoanConfig struct {
	AnnualInterestRate float64 `yaml:"annual_interest_rate" json:"annual_interest_rate"` // Fixed bond rate (e.g., 0.10 or "10%")
	TermYears          int     `yaml:"term_years" json:"term_years"`                     // Bond term in years
}

// RentalConfig holds the rental income assumptions
type RentalConfig struct {
	MonthlyRent      float64 `yaml:"monthly_rent" json:"monthly_rent"`           // Rent in month 1 (ZAR)
	MonthlyCosts     float64 `yaml:"monthly_costs" json:"monthly_costs"`         // Rates, levies and other holding costs in month 1 (ZAR)
	RentalEscalation float64 `yaml:"rental_escalation" json:"rental_escalation"` // Annual rent escalation (e.g., 0.05 or "5%")
	CostsEscalation  float64 `yaml:"costs_escalation" json:"costs_escalation"`   // Annual costs escalation
}

// GrowthConfig holds the capital appreciation assumption
type GrowthConfig struct {
	CapitalGrowth float64 `yaml:"capital_growth" json:"capital_growth"` // Annual property appreciation (e.g., 0.04 or "4%")
}

// SimulationConfig holds run options
type SimulationConfig struct {
	Strategy string `yaml:"strategy" json:"strategy"` // "access-bond" (default) or "contract-only"
}

// SensitivityConfig holds the sweep ranges for the sensitivity grid
type SensitivityConfig struct {
	CapitalGrowthMin    float64 `yaml:"capital_growth_min" json:"capital_growth_min"`       // Min appreciation rate (e.g., 0.02 = 2%)
	CapitalGrowthMax    float64 `yaml:"capital_growth_max" json:"capital_growth_max"`       // Max appreciation rate
	RentalEscalationMin float64 `yaml:"rental_escalation_min" json:"rental_escalation_min"` // Min rent escalation rate
	RentalEscalationMax float64 `yaml:"rental_escalation_max" json:"rental_escalation_max"` // Max rent escalation rate
	StepSize            float64 `yaml:"step_size" json:"step_size"`                         // Step between grid points (e.g., 0.01 = 1%)
}

// Config holds the complete configuration
type Config struct {
	Property    PropertyConfig    `yaml:"property" json:"property"`
	Loan        LoanConfig        `yaml:"loan" json:"loan"`
	Rental      RentalConfig      `yaml:"rental" json:"rental"`
	Growth      GrowthConfig      `yaml:"growth" json:"growth"`
	Simulation  SimulationConfig  `yaml:"simulation" json:"simulation"`
	Sensitivity SensitivityConfig `yaml:"sensitivity" json:"sensitivity"`
}

// Parameters converts the configuration into a validated parameter set
func (c *Config) Parameters() (SimulationParameters, error) {
	strategy, err := ParsePaymentStrategy(c.Simulation.Strategy)
	if err != nil {
		return SimulationParameters{}, err
	}

	params := SimulationParameters{
		PurchasePrice:        c.Property.PurchasePrice,
		Deposit:              c.Property.Deposit,
		UpfrontFees:          c.Property.UpfrontFees,
		AnnualInterestRate:   c.Loan.AnnualInterestRate,
		TermYears:            c.Loan.TermYears,
		StartingMonthlyRent:  c.Rental.MonthlyRent,
		StartingMonthlyCosts: c.Rental.MonthlyCosts,
		RentalEscalation:     c.Rental.RentalEscalation,
		CostsEscalation:      c.Rental.CostsEscalation,
		CapitalGrowth:        c.Growth.CapitalGrowth,
		Strategy:             strategy,
	}
	if err := params.Validate(); err != nil {
		return SimulationParameters{}, err
	}
	return params, nil
}

// GridOptions converts the sensitivity section into sweep options,
// falling back to a band around the base assumptions when unset
func (c *Config) GridOptions(base SimulationParameters) GridOptions {
	opts := GridOptions{
		CapitalGrowthMin:    c.Sensitivity.CapitalGrowthMin,
		CapitalGrowthMax:    c.Sensitivity.CapitalGrowthMax,
		RentalEscalationMin: c.Sensitivity.RentalEscalationMin,
		RentalEscalationMax: c.Sensitivity.RentalEscalationMax,
		StepSize:            c.Sensitivity.StepSize,
	}
	if opts.StepSize <= 0 {
		opts.StepSize = 0.01
	}
	if opts.CapitalGrowthMax <= opts.CapitalGrowthMin {
		opts.CapitalGrowthMin = math.Max(base.CapitalGrowth-2*opts.StepSize, 0)
		opts.CapitalGrowthMax = base.CapitalGrowth + 2*opts.StepSize
	}
	if opts.RentalEscalationMax <= opts.RentalEscalationMin {
		opts.RentalEscalationMin = math.Max(base.RentalEscalation-2*opts.StepSize, 0)
		opts.RentalEscalationMax = base.RentalEscalation + 2*opts.StepSize
	}
	return opts
}

// LoadConfig loads configuration from a YAML file.
// Percentage values like "10%" are accepted and converted to decimals.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content := preprocessPercentages(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", filename, err)
	}

	return &config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	// Add a header comment with instructions
	header := []byte(`# Property Investment Dashboard Configuration
#
# ═══════════════════════════════════════════════════════════════════════════════
# VALUE FORMATS
# ═══════════════════════════════════════════════════════════════════════════════
#   Percentages: 0.05 or "5%" both mean 5%
#   Money: values are in South African Rand (e.g., 1000000 = R 1m)
#
# ═══════════════════════════════════════════════════════════════════════════════
# STRATEGIES
# ═══════════════════════════════════════════════════════════════════════════════
#   access-bond:   rental surplus above the bond payment goes in as extra
#                  principal and shortens the payoff (default)
#   contract-only: only the scheduled payment is made; surplus stays with you
#
# ═══════════════════════════════════════════════════════════════════════════════
# RUN COMMANDS
# ═══════════════════════════════════════════════════════════════════════════════
#   ./propertyroi                      Console summary with yearly schedule
#   ./propertyroi -details             Full month-by-month schedule
#   ./propertyroi -compare             Access-bond vs contract-only comparison
#   ./propertyroi -sensitivity         Growth/escalation sensitivity grid
#   ./propertyroi -web                 Interactive dashboard in the browser
#   ./propertyroi -ui                  Interactive dashboard in a desktop window
#   ./propertyroi -help                Show all options

`)
	content := append(header, data...)
	return os.WriteFile(filename, content, 0644)
}

// LoadDefaultConfig loads the default configuration from embedded default-config.yaml
// It handles percentage format (e.g., "5%" -> 0.05)
func LoadDefaultConfig() (*Config, error) {
	content := preprocessPercentages(defaultConfigYAML)

	var config Config
	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return nil, fmt.Errorf("parsing embedded default config: %w", err)
	}

	return &config, nil
}

// preprocessPercentages converts percentage values like "5%" to decimal "0.05"
func preprocessPercentages(content string) string {
	// Match patterns like: key: 5% or key: 3.89%
	// But not inside strings (already quoted)
	re := regexp.MustCompile(`(:\s*)(\d+\.?\d*)%`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		// Extract the number before %
		parts := re.FindStringSubmatch(match)
		if len(parts) >= 3 {
			numStr := parts[2]
			num, err := strconv.ParseFloat(numStr, 64)
			if err == nil {
				return parts[1] + strconv.FormatFloat(num/100.0, 'f', -1, 64)
			}
		}
		return match
	})
}
