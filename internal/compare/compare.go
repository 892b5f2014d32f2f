// Package compare derives comparative metrics across computed scenarios.
package compare

import (
	"fmt"

	"github.com/iwvelando/loan-scenarios/internal/scenario"
	"github.com/iwvelando/loan-scenarios/pkg/constants"
	"github.com/iwvelando/loan-scenarios/pkg/loans"
	"github.com/iwvelando/loan-scenarios/pkg/mathutil"
)

// Metrics holds one scenario's figures relative to the baseline scenario.
type Metrics struct {
	Name             string        `json:"name"`
	PITIDelta        float64       `json:"pitiDelta"`
	CashToCloseDelta float64       `json:"cashToCloseDelta"`
	APRDelta         float64       `json:"aprDelta"`
	FinalRateDelta   float64       `json:"finalRateDelta"`
	Amortization     loans.Summary `json:"amortization"`
}

// Pick identifies the scenario that wins one comparison.
type Pick struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// Comparison is the full set of comparative metrics. The first scenario is the
// baseline every delta is measured against.
type Comparison struct {
	Baseline               string    `json:"baseline,omitempty"`
	HorizonMonths          int       `json:"horizonMonths"`
	Scenarios              []Metrics `json:"scenarios"`
	LowestPITI             *Pick     `json:"lowestPiti,omitempty"`
	LowestCashToClose      *Pick     `json:"lowestCashToClose,omitempty"`
	LowestAPR              *Pick     `json:"lowestApr,omitempty"`
	LowestLifetimeInterest *Pick     `json:"lowestLifetimeInterest,omitempty"`
}

// Compare builds the comparison for inputs and their computed results, which
// must be index aligned. Interest and balance are measured over the buydown
// break-even horizon.
func Compare(inputs []scenario.Input, results []scenario.Result) (Comparison, error) {
	comparison := Comparison{
		HorizonMonths: constants.MaxBreakEvenMonths,
		Scenarios:     []Metrics{},
	}
	if len(inputs) != len(results) {
		return comparison, fmt.Errorf("cannot compare %d inputs with %d results", len(inputs), len(results))
	}
	if len(results) == 0 {
		return comparison, nil
	}

	baseline := results[0].Output
	comparison.Baseline = results[0].Name

	for i, result := range results {
		out := result.Output
		schedule := loans.GenerateSchedule(out.LoanAmount, out.FinalRate, inputs[i].TermMonths)
		summary := loans.Summarize(schedule, constants.MaxBreakEvenMonths)
		summary.InterestToHorizon = mathutil.Round(summary.InterestToHorizon)
		summary.PrincipalToHorizon = mathutil.Round(summary.PrincipalToHorizon)
		summary.BalanceAtHorizon = mathutil.Round(summary.BalanceAtHorizon)
		summary.LifetimeInterest = mathutil.Round(summary.LifetimeInterest)

		comparison.Scenarios = append(comparison.Scenarios, Metrics{
			Name:             result.Name,
			PITIDelta:        mathutil.Round(out.PITIMonthly - baseline.PITIMonthly),
			CashToCloseDelta: mathutil.Round(out.CashToClose - baseline.CashToClose),
			APRDelta:         mathutil.RoundTo(out.APREstimate-baseline.APREstimate, constants.RatePlaces),
			FinalRateDelta:   mathutil.RoundTo(out.FinalRate-baseline.FinalRate, constants.RatePlaces),
			Amortization:     summary,
		})
	}

	comparison.LowestPITI = lowest(results, func(i int) float64 { return results[i].Output.PITIMonthly })
	comparison.LowestCashToClose = lowest(results, func(i int) float64 { return results[i].Output.CashToClose })
	comparison.LowestAPR = lowest(results, func(i int) float64 { return results[i].Output.APREstimate })
	comparison.LowestLifetimeInterest = lowest(results, func(i int) float64 {
		return comparison.Scenarios[i].Amortization.LifetimeInterest
	})

	return comparison, nil
}

// lowest returns the first scenario with the strictly smallest value.
func lowest(results []scenario.Result, value func(i int) float64) *Pick {
	best := 0
	for i := 1; i < len(results); i++ {
		if value(i) < value(best) {
			best = i
		}
	}
	return &Pick{Index: best, Name: results[best].Name}
}
