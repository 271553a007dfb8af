package main

import (
	"math"
)

// CalculateMonthlyPayment calculates the fixed monthly payment for a repayment bond
// Using formula: M = P * [r(1+r)^n] / [(1+r)^n - 1]
func CalculateMonthlyPayment(principal, annualRate float64, termYears int) float64 {
	if principal <= 0 || termYears <= 0 {
		return 0
	}

	monthlyRate := annualRate / 12
	numPayments := float64(termYears * 12)

	if monthlyRate == 0 {
		return principal / numPayments
	}

	factor := math.Pow(1+monthlyRate, numPayments)
	return principal * (monthlyRate * factor) / (factor - 1)
}

// CalculateRemainingBalance calculates the outstanding principal after a number
// of scheduled payments with no extra contributions
// Remaining balance formula: B = P * [(1+r)^n - (1+r)^p] / [(1+r)^n - 1]
func CalculateRemainingBalance(principal, annualRate float64, termYears, monthsElapsed int) float64 {
	if principal <= 0 || termYears <= 0 {
		return 0
	}
	if monthsElapsed <= 0 {
		return principal
	}

	totalPayments := float64(termYears * 12)
	if float64(monthsElapsed) >= totalPayments {
		return 0
	}

	monthlyRate := annualRate / 12
	paymentsMade := float64(monthsElapsed)

	if monthlyRate == 0 {
		// No interest: simple linear payoff
		return principal * (1 - paymentsMade/totalPayments)
	}

	factorN := math.Pow(1+monthlyRate, totalPayments)
	factorP := math.Pow(1+monthlyRate, paymentsMade)

	return principal * (factorN - factorP) / (factorN - 1)
}

// Simulate runs the complete month-by-month simulation for a parameter set.
// It validates first and produces no records on failure. The run is a pure
// fold over the months: identical parameters give bit-identical output.
func Simulate(params SimulationParameters) (SimulationResult, error) {
	if err := params.Validate(); err != nil {
		return SimulationResult{}, err
	}

	contractPayment := params.ContractPayment()
	monthlyRate := params.MonthlyRate()
	totalPeriods := params.TotalPeriods()
	initialOutlay := params.InitialOutlay()

	state := NewSimulationState(params)
	result := SimulationResult{
		Params:  params,
		Records: make([]MonthlyRecord, 0, totalPeriods),
	}

	payoffMonth := 0
	totalInterestPaid := 0.0
	totalExtraPaid := 0.0

	// Run simulation month by month
	for m := 1; m <= totalPeriods; m++ {
		yearsElapsed := (m - 1) / 12

		// Rent and costs escalate once per year and stay flat inside the year
		rent := params.StartingMonthlyRent * math.Pow(1+params.RentalEscalation, float64(yearsElapsed))
		costs := params.StartingMonthlyCosts * math.Pow(1+params.CostsEscalation, float64(yearsElapsed))
		netRent := rent - costs

		var basePayment, extraPayment, totalPayment float64
		var interestPaid, interestFromRent, interestFromCash float64
		var principalFromRent, principalFromCash float64

		if state.RemainingBalance <= 0 {
			// Bond settled: all net rent counts as rent-funded principal.
			// Negative net rent (costs above rent) flows through unmodified
			// and shrinks the rent-funded position.
			extraPayment = netRent
			totalPayment = netRent
			principalFromRent = netRent
			state.RemainingBalance = 0
			state.PrincipalFromRent += principalFromRent
		} else {
			// Standard payment with access bond handling
			interestDue := state.RemainingBalance * monthlyRate
			basePayment = math.Max(contractPayment, interestDue)
			if params.Strategy != StrategyContractOnly {
				extraPayment = math.Max(netRent-basePayment, 0)
			}
			totalPayment = math.Min(basePayment+extraPayment, state.RemainingBalance+interestDue)

			// Allocate the payment between interest and principal, split by
			// funding source. Net rent covers interest first; any shortfall
			// comes out of the investor's pocket.
			interestPaid = math.Min(totalPayment, interestDue)
			interestFromCash = math.Max(interestPaid-netRent, 0)
			interestFromRent = interestPaid - interestFromCash
			principalPaid := totalPayment - interestPaid
			principalFromCash = math.Max(principalPaid-math.Max(netRent-interestPaid, 0), 0)
			principalFromRent = principalPaid - principalFromCash

			state.RemainingBalance -= principalPaid
			if state.RemainingBalance < 0 {
				state.RemainingBalance = 0
			}
			state.CashInvested += principalFromCash
			state.InterestFromCash += interestFromCash
			state.PrincipalFromRent += principalFromRent

			totalExtraPaid += extraPayment
		}

		// Equity attributable to the investment: upfront cash plus principal
		// the rent has bought, less interest the investor funded themselves
		equity := initialOutlay + state.PrincipalFromRent - state.InterestFromCash
		gainFromRent := equity - initialOutlay
		roiFromRent := 0.0
		if state.CashInvested > 0 {
			roiFromRent = gainFromRent / state.CashInvested * 100
		}

		// Capital appreciation compounds monthly via a fractional-year exponent
		propertyValue := params.PurchasePrice * math.Pow(1+params.CapitalGrowth, float64(m)/12)
		capitalGain := propertyValue - params.PurchasePrice
		roiFromCapital := 0.0
		if state.CashInvested > 0 {
			roiFromCapital = capitalGain / state.CashInvested * 100
		}

		totalReturn := gainFromRent + capitalGain
		totalROI := 0.0
		if state.CashInvested > 0 {
			totalROI = totalReturn / state.CashInvested * 100
		}

		result.Records = append(result.Records, MonthlyRecord{
			Month:             m,
			Year:              yearsElapsed + 1,
			Rent:              rent,
			Costs:             costs,
			NetRent:           netRent,
			TotalPayment:      totalPayment,
			BasePayment:       basePayment,
			ExtraPayment:      extraPayment,
			InterestPaid:      interestPaid,
			InterestFromRent:  interestFromRent,
			InterestFromCash:  interestFromCash,
			PrincipalFromRent: principalFromRent,
			PrincipalFromCash: principalFromCash,
			LoanBalance:       state.RemainingBalance,
			Equity:            equity,
			GainFromRent:      gainFromRent,
			ROIFromRent:       roiFromRent,
			PropertyValue:     propertyValue,
			CapitalGain:       capitalGain,
			ROIFromCapital:    roiFromCapital,
			TotalReturn:       totalReturn,
			TotalROI:          totalROI,
			CashInvested:      state.CashInvested,
		})

		totalInterestPaid += interestPaid
		if payoffMonth == 0 && state.RemainingBalance == 0 {
			payoffMonth = m
		}
	}

	final := result.FinalRecord()
	result.Summary = SimulationSummary{
		PayoffMonth:            payoffMonth,
		TotalInterestPaid:      totalInterestPaid,
		TotalInterestFromCash:  state.InterestFromCash,
		TotalPrincipalFromRent: state.PrincipalFromRent,
		TotalExtraPaid:         totalExtraPaid,
		FinalEquity:            final.Equity,
		FinalPropertyValue:     final.PropertyValue,
		FinalCashInvested:      final.CashInvested,
		FinalGainFromRent:      final.GainFromRent,
		FinalCapitalGain:       final.CapitalGain,
		FinalTotalReturn:       final.TotalReturn,
		FinalTotalROI:          final.TotalROI,
	}

	return result, nil
}
