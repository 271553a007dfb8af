package main

// ScenarioPreset is a complete, named parameter set bundled with the binary.
// Presets are starting points for the dashboard and the -preset flag; every
// value can still be changed afterwards.
type ScenarioPreset struct {
	ID          string // Unique identifier (e.g., "cash-cow")
	Name        string // Full display name
	Description string // Brief description
	Params      SimulationParameters
}

// ScenarioPresets contains all bundled scenario presets.
// Amounts are in Rand; values are plausible for the SA residential market
// and are illustrations, not advice.
var ScenarioPresets = []ScenarioPreset{
	{
		ID:          "default",
		Name:        "Suburban Buy-to-Let",
		Description: "1.0m suburban house, 20% deposit, rent comfortably above the bond payment",
		Params: SimulationParameters{
			PurchasePrice:        1000000,
			Deposit:              200000,
			UpfrontFees:          50000,
			AnnualInterestRate:   0.10,
			TermYears:            20,
			StartingMonthlyRent:  15000,
			StartingMonthlyCosts: 5000,
			RentalEscalation:     0.05,
			CostsEscalation:      0.03,
			CapitalGrowth:        0.04,
		},
	},
	{
		ID:          "high-growth",
		Name:        "Coastal Growth",
		Description: "1.5m coastal apartment, strong appreciation and rent escalation",
		Params: SimulationParameters{
			PurchasePrice:        1500000,
			Deposit:              300000,
			UpfrontFees:          80000,
			AnnualInterestRate:   0.105,
			TermYears:            20,
			StartingMonthlyRent:  18000,
			StartingMonthlyCosts: 6500,
			RentalEscalation:     0.07,
			CostsEscalation:      0.05,
			CapitalGrowth:        0.08,
		},
	},
	{
		ID:          "stress-rate",
		Name:        "Rate Shock",
		Description: "Default scenario under a 14.5% bond rate with costs escalating past rent",
		Params: SimulationParameters{
			PurchasePrice:        1000000,
			Deposit:              200000,
			UpfrontFees:          50000,
			AnnualInterestRate:   0.145,
			TermYears:            20,
			StartingMonthlyRent:  15000,
			StartingMonthlyCosts: 5000,
			RentalEscalation:     0.04,
			CostsEscalation:      0.06,
			CapitalGrowth:        0.02,
		},
	},
	{
		ID:          "cash-cow",
		Name:        "Student Rental",
		Description: "850k student unit with a 10% deposit and rent well above costs",
		Params: SimulationParameters{
			PurchasePrice:        850000,
			Deposit:              85000,
			UpfrontFees:          45000,
			AnnualInterestRate:   0.0975,
			TermYears:            20,
			StartingMonthlyRent:  16500,
			StartingMonthlyCosts: 4000,
			RentalEscalation:     0.06,
			CostsEscalation:      0.04,
			CapitalGrowth:        0.03,
		},
	},
	{
		ID:          "tight-margin",
		Name:        "New Build Top-Up",
		Description: "1.2m new build where rent undercuts the payment and the investor tops up monthly",
		Params: SimulationParameters{
			PurchasePrice:        1200000,
			Deposit:              120000,
			UpfrontFees:          60000,
			AnnualInterestRate:   0.11,
			TermYears:            25,
			StartingMonthlyRent:  9500,
			StartingMonthlyCosts: 3800,
			RentalEscalation:     0.04,
			CostsEscalation:      0.05,
			CapitalGrowth:        0.05,
		},
	},
}

// GetPresetByID returns a scenario preset by its ID, or nil if not found
func GetPresetByID(id string) *ScenarioPreset {
	for i := range ScenarioPresets {
		if ScenarioPresets[i].ID == id {
			return &ScenarioPresets[i]
		}
	}
	return nil
}

// PresetIDs returns the preset identifiers in display order
func PresetIDs() []string {
	ids := make([]string, len(ScenarioPresets))
	for i, p := range ScenarioPresets {
		ids[i] = p.ID
	}
	return ids
}
