package main

import (
	"fmt"
)

// RentSolution holds the result of a required-rent search
type RentSolution struct {
	RequiredRent float64          // Smallest starting rent that settles the bond in time
	PayoffMonth  int              // Month the bond settles at the solved rent
	Result       SimulationResult // Verification run at the solved rent
}

// SolveRequiredRent uses binary search to find the smallest starting monthly
// rent whose access-bond run settles the bond by the target month. Higher rent
// can only bring the payoff forward, so the search space is monotone.
func SolveRequiredRent(base SimulationParameters, targetPayoffMonth int) (RentSolution, error) {
	if err := base.Validate(); err != nil {
		return RentSolution{}, err
	}
	if targetPayoffMonth < 1 || targetPayoffMonth > base.TotalPeriods() {
		return RentSolution{}, invalidInput(fmt.Sprintf(
			"target payoff month must be between 1 and %d", base.TotalPeriods()))
	}

	params := base
	params.Strategy = StrategyAccessBond

	settlesBy := func(rent float64) (SimulationResult, bool, error) {
		p := params
		p.StartingMonthlyRent = rent
		result, err := Simulate(p)
		if err != nil {
			return SimulationResult{}, false, err
		}
		ok := result.PaidOff() && result.Summary.PayoffMonth <= targetPayoffMonth
		return result, ok, nil
	}

	// Zero rent is the floor; if the contract payments alone get there, no
	// rental income is needed at all
	if result, ok, err := settlesBy(0); err != nil {
		return RentSolution{}, err
	} else if ok {
		return RentSolution{RequiredRent: 0, PayoffMonth: result.Summary.PayoffMonth, Result: result}, nil
	}

	// Grow the upper bracket until it settles in time
	low := 0.0
	high := params.StartingMonthlyRent
	if high < 1000 {
		high = 1000
	}
	feasible := false
	for i := 0; i < 40; i++ {
		_, ok, err := settlesBy(high)
		if err != nil {
			return RentSolution{}, err
		}
		if ok {
			feasible = true
			break
		}
		low = high
		high *= 2
	}
	if !feasible {
		return RentSolution{}, fmt.Errorf(
			"bond cannot be settled by month %d even at %s rent", targetPayoffMonth, FormatMoney(high))
	}

	// Bisect down to the smallest feasible rent
	tolerance := 0.01
	for i := 0; i < 60 && high-low > tolerance; i++ {
		mid := (low + high) / 2
		_, ok, err := settlesBy(mid)
		if err != nil {
			return RentSolution{}, err
		}
		if ok {
			high = mid
		} else {
			low = mid
		}
	}

	result, _, err := settlesBy(high)
	if err != nil {
		return RentSolution{}, err
	}
	return RentSolution{
		RequiredRent: high,
		PayoffMonth:  result.Summary.PayoffMonth,
		Result:       result,
	}, nil
}
