package main

import (
	"fmt"
	"strings"
)

// PaymentStrategy represents how monthly rental surplus is applied to the bond
type PaymentStrategy int

const (
	StrategyAccessBond   PaymentStrategy = iota // Surplus above the base payment goes in as extra principal
	StrategyContractOnly                        // Only the contract payment is made; surplus stays with the investor
)

func (s PaymentStrategy) String() string {
	switch s {
	case StrategyAccessBond:
		return "Access Bond"
	case StrategyContractOnly:
		return "Contract Only"
	default:
		return "Unknown"
	}
}

// ID returns the identifier used in config files and on the command line
func (s PaymentStrategy) ID() string {
	switch s {
	case StrategyContractOnly:
		return "contract-only"
	default:
		return "access-bond"
	}
}

// ShortName returns a compact label for table columns
func (s PaymentStrategy) ShortName() string {
	switch s {
	case StrategyAccessBond:
		return "AccessBond"
	case StrategyContractOnly:
		return "Contract"
	default:
		return "Unknown"
	}
}

// ParsePaymentStrategy parses a strategy name as used in config files and flags
func ParsePaymentStrategy(name string) (PaymentStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "access-bond", "access bond", "accessbond":
		return StrategyAccessBond, nil
	case "contract-only", "contract only", "contractonly", "contract":
		return StrategyContractOnly, nil
	default:
		return StrategyAccessBond, invalidInput(fmt.Sprintf("unknown payment strategy %q (use access-bond or contract-only)", name))
	}
}

// InvalidInputError reports a parameter set that cannot be simulated.
// It is returned before any records are produced; callers detect it with
// errors.As and must supply corrected parameters.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

func invalidInput(reason string) error {
	return &InvalidInputError{Reason: reason}
}

// SimulationParameters holds the complete input set for one simulation run.
// All monetary amounts are in Rand; all rates are annual fractions (0.10 = 10%).
type SimulationParameters struct {
	PurchasePrice        float64         // Property purchase price
	Deposit              float64         // Initial cash deposit, must be less than the purchase price
	UpfrontFees          float64         // Transfer duty, bond registration, legal fees
	AnnualInterestRate   float64         // Fixed bond rate
	TermYears            int             // Bond term in years
	StartingMonthlyRent  float64         // Rent in month 1
	StartingMonthlyCosts float64         // Rates, levies and other holding costs in month 1
	RentalEscalation     float64         // Annual rent escalation, stepped once per year
	CostsEscalation      float64         // Annual costs escalation, stepped once per year
	CapitalGrowth        float64         // Annual property appreciation
	Strategy             PaymentStrategy // How rental surplus is applied
}

// LoanAmount returns the bond principal
func (p SimulationParameters) LoanAmount() float64 {
	return p.PurchasePrice - p.Deposit
}

// MonthlyRate returns the per-month interest rate
func (p SimulationParameters) MonthlyRate() float64 {
	return p.AnnualInterestRate / 12
}

// TotalPeriods returns the number of months simulated
func (p SimulationParameters) TotalPeriods() int {
	return p.TermYears * 12
}

// InitialOutlay returns the investor's upfront cash commitment (deposit plus fees)
func (p SimulationParameters) InitialOutlay() float64 {
	return p.Deposit + p.UpfrontFees
}

// ContractPayment returns the fixed monthly payment that fully amortizes the
// bond over the term with no extra payments
func (p SimulationParameters) ContractPayment() float64 {
	return CalculateMonthlyPayment(p.LoanAmount(), p.AnnualInterestRate, p.TermYears)
}

// Validate checks the hard constraints and returns an InvalidInputError for
// the first violation found. The simulation refuses to start on any failure.
func (p SimulationParameters) Validate() error {
	if p.PurchasePrice <= 0 {
		return invalidInput("purchase price must be positive")
	}
	if p.LoanAmount() <= 0 {
		return invalidInput("deposit must be less than purchase price")
	}
	if p.TermYears <= 0 {
		return invalidInput("loan term must be at least one period")
	}
	if p.Deposit < 0 {
		return invalidInput("deposit cannot be negative")
	}
	if p.UpfrontFees < 0 {
		return invalidInput("upfront fees cannot be negative")
	}
	if p.AnnualInterestRate < 0 {
		return invalidInput("interest rate cannot be negative")
	}
	if p.StartingMonthlyRent < 0 {
		return invalidInput("monthly rent cannot be negative")
	}
	if p.StartingMonthlyCosts < 0 {
		return invalidInput("monthly costs cannot be negative")
	}
	if p.RentalEscalation < 0 || p.CostsEscalation < 0 {
		return invalidInput("escalation rates cannot be negative")
	}
	if p.CapitalGrowth < 0 {
		return invalidInput("capital growth cannot be negative")
	}
	return nil
}

// SimulationState carries the cumulative position from month to month.
// One instance is threaded through the loop; nothing lives at package level.
type SimulationState struct {
	RemainingBalance  float64 // Outstanding bond principal, floored at 0
	CashInvested      float64 // Investor's own money committed: deposit + fees + any principal paid from cash
	PrincipalFromRent float64 // Cumulative principal funded by rental surplus
	InterestFromCash  float64 // Cumulative interest paid out of the investor's pocket
}

// NewSimulationState returns the month-0 position for a parameter set
func NewSimulationState(p SimulationParameters) SimulationState {
	return SimulationState{
		RemainingBalance: p.LoanAmount(),
		CashInvested:     p.InitialOutlay(),
	}
}

// MonthlyRecord is one emitted row of the simulation. Values are raw float64;
// rounding happens only when rendering.
type MonthlyRecord struct {
	Month             int     // 1-based month index
	Year              int     // 1-based year index (months 1-12 are year 1)
	Rent              float64 // Escalated rent for this month
	Costs             float64 // Escalated rates and levies for this month
	NetRent           float64 // Rent minus costs; may be negative
	TotalPayment      float64 // Total paid into the bond this month
	BasePayment       float64 // max(contract payment, interest due) while the loan is outstanding
	ExtraPayment      float64 // Access-bond extra principal from rental surplus
	InterestPaid      float64
	InterestFromRent  float64
	InterestFromCash  float64
	PrincipalFromRent float64
	PrincipalFromCash float64
	LoanBalance       float64 // Balance after this month's payment
	Equity            float64 // Initial outlay + cumulative rent-funded principal - cumulative cash-funded interest
	GainFromRent      float64 // Equity minus the initial outlay
	ROIFromRent       float64 // Percent return on cumulative cash invested from rental activity
	PropertyValue     float64 // Purchase price compounded at the capital growth rate
	CapitalGain       float64
	ROIFromCapital    float64 // Percent
	TotalReturn       float64 // GainFromRent + CapitalGain
	TotalROI          float64 // Percent
	CashInvested      float64 // Cumulative cash invested after this month
}

// SimulationSummary aggregates a finished run
type SimulationSummary struct {
	PayoffMonth            int // First month the balance hits 0; 0 if never inside the term
	TotalInterestPaid      float64
	TotalInterestFromCash  float64
	TotalPrincipalFromRent float64
	TotalExtraPaid         float64
	FinalEquity            float64
	FinalPropertyValue     float64
	FinalCashInvested      float64
	FinalGainFromRent      float64
	FinalCapitalGain       float64
	FinalTotalReturn       float64
	FinalTotalROI          float64
}

// SimulationResult holds the complete output of a simulation run
type SimulationResult struct {
	Params  SimulationParameters
	Records []MonthlyRecord
	Summary SimulationSummary
}

// PaidOff reports whether the bond was settled inside the term
func (r SimulationResult) PaidOff() bool {
	return r.Summary.PayoffMonth > 0
}

// FinalRecord returns the last emitted month
func (r SimulationResult) FinalRecord() MonthlyRecord {
	return r.Records[len(r.Records)-1]
}
