package main

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// Required-rent solver tests
// These tests verify that the binary search finds the smallest starting rent
// that settles the bond by a target month. Higher rent can only bring the
// payoff forward, so feasibility is monotone in rent and the minimum is
// well defined.

// solverBaseParams is the default scenario: R800k bond at 10% over 20 years,
// R5k monthly costs. At R15k rent it settles around month 98.
func solverBaseParams() SimulationParameters {
	return SimulationParameters{
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
		Strategy:             StrategyAccessBond,
	}
}

// Scenario: Solve for a 10-year payoff
// Given the default scenario already settles around month 98 at R15k rent
// When solving for month 120
// Then the required rent is below R15k, settles in time, and a rand less does not
func TestSolver_TenYearTarget(t *testing.T) {
	base := solverBaseParams()

	solution, err := SolveRequiredRent(base, 120)
	if err != nil {
		t.Fatalf("SolveRequiredRent failed: %v", err)
	}

	if solution.RequiredRent >= base.StartingMonthlyRent {
		t.Errorf("Current rent already beats the target; required should be below R15000, got R%.2f",
			solution.RequiredRent)
	}
	if solution.PayoffMonth == 0 || solution.PayoffMonth > 120 {
		t.Errorf("Solved rent should settle by month 120, got %d", solution.PayoffMonth)
	}

	// The verification run is included and must agree
	if solution.Result.Summary.PayoffMonth != solution.PayoffMonth {
		t.Errorf("Verification run settles at %d, solution says %d",
			solution.Result.Summary.PayoffMonth, solution.PayoffMonth)
	}

	// Minimality: a rand below the solved rent misses the target
	lower := base
	lower.StartingMonthlyRent = solution.RequiredRent - 1
	lowerResult, err := Simulate(lower)
	if err != nil {
		t.Fatalf("Verification simulate failed: %v", err)
	}
	if lowerResult.PaidOff() && lowerResult.Summary.PayoffMonth <= 120 {
		t.Errorf("R%.2f rent (R1 below the solution) still settles by month 120 at month %d",
			lower.StartingMonthlyRent, lowerResult.Summary.PayoffMonth)
	}

	t.Logf("Month-120 target needs R%.2f starting rent (current R%.0f settles at month %d)",
		solution.RequiredRent, base.StartingMonthlyRent, solution.Result.Summary.PayoffMonth)
}

// Scenario: Solve for an immediate settlement
// Given settling in month 1 means net rent must cover the full balance plus
// one month of interest: 800000 × (1 + 0.10/12) + 5000 costs = R811666.67
// When solving for month 1
// Then the solver converges on exactly that boundary
func TestSolver_SingleMonthTarget(t *testing.T) {
	base := solverBaseParams()

	solution, err := SolveRequiredRent(base, 1)
	if err != nil {
		t.Fatalf("SolveRequiredRent failed: %v", err)
	}

	expected := 800000*(1+0.10/12) + 5000
	if math.Abs(solution.RequiredRent-expected) > 1.0 {
		t.Errorf("Month-1 settlement needs R%.2f rent, solver found R%.2f",
			expected, solution.RequiredRent)
	}
	if solution.PayoffMonth != 1 {
		t.Errorf("Expected payoff at month 1, got %d", solution.PayoffMonth)
	}
}

// Scenario: Tighter targets need more rent
func TestSolver_TighterTargetNeedsMoreRent(t *testing.T) {
	base := solverBaseParams()

	fiveYears, err := SolveRequiredRent(base, 60)
	if err != nil {
		t.Fatalf("SolveRequiredRent(60) failed: %v", err)
	}
	tenYears, err := SolveRequiredRent(base, 120)
	if err != nil {
		t.Fatalf("SolveRequiredRent(120) failed: %v", err)
	}

	if fiveYears.RequiredRent <= tenYears.RequiredRent {
		t.Errorf("A 5-year payoff should need more rent than a 10-year payoff: R%.2f vs R%.2f",
			fiveYears.RequiredRent, tenYears.RequiredRent)
	}

	t.Logf("Required rent: R%.0f for 5 years, R%.0f for 10 years",
		fiveYears.RequiredRent, tenYears.RequiredRent)
}

// Scenario: The solver always works on the access bond strategy
// Given a base parameter set marked contract-only
// When solving
// Then the verification run recycles surplus regardless
func TestSolver_ForcesAccessBond(t *testing.T) {
	base := solverBaseParams()
	base.Strategy = StrategyContractOnly

	solution, err := SolveRequiredRent(base, 120)
	if err != nil {
		t.Fatalf("SolveRequiredRent failed: %v", err)
	}

	if solution.Result.Params.Strategy != StrategyAccessBond {
		t.Errorf("Solver should force the access bond strategy, got %s",
			solution.Result.Params.Strategy)
	}
	if solution.PayoffMonth > 120 {
		t.Errorf("Solved rent should settle by month 120, got %d", solution.PayoffMonth)
	}
}

// =============================================================================
// Validation
// =============================================================================

func TestSolver_TargetOutOfRange(t *testing.T) {
	base := solverBaseParams()

	for _, target := range []int{0, -12, 241, 1000} {
		_, err := SolveRequiredRent(base, target)
		if err == nil {
			t.Errorf("Target %d should be rejected", target)
			continue
		}

		var invalid *InvalidInputError
		if !errors.As(err, &invalid) {
			t.Errorf("Target %d: expected InvalidInputError, got %T", target, err)
		}
		if !strings.Contains(err.Error(), "target payoff month must be between 1 and 240") {
			t.Errorf("Target %d: unexpected message %q", target, err.Error())
		}
	}
}

func TestSolver_InvalidBaseRejected(t *testing.T) {
	base := solverBaseParams()
	base.Deposit = base.PurchasePrice

	_, err := SolveRequiredRent(base, 120)
	if err == nil {
		t.Fatal("Invalid base parameters should be rejected")
	}
	if !strings.Contains(err.Error(), "deposit must be less than purchase price") {
		t.Errorf("Unexpected message %q", err.Error())
	}
}
