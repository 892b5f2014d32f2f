// Package insurance resolves mortgage insurance premium factors.
package insurance

import (
	"math"

	"github.com/iwvelando/loan-scenarios/pkg/constants"
)

// fhaFactors holds the standard FHA annual MIP factors indexed by
// [longTerm][highBalance][ltvAboveBoundary].
var fhaFactors = [2][2][2]float64{
	// 15 years or less
	{
		{0.0015, 0.0040}, // standard balance
		{0.0040, 0.0065}, // high balance
	},
	// more than 15 years
	{
		{0.0050, 0.0055},
		{0.0055, 0.0060},
	},
}

// ResolveFHAAnnualFactor derives the annual FHA mortgage insurance premium
// factor. The LTV is used when it is positive and finite, otherwise derived as
// loanAmount / price. The loan amount is used when provided, otherwise derived
// as price * ltv. The second return value is false when either value cannot be
// determined or the term is not positive; callers must then leave any PMI
// factor as it is.
func ResolveFHAAnnualFactor(ltv, loanAmount *float64, price float64, termMonths int) (float64, bool) {
	var ratio float64
	switch {
	case ltv != nil && *ltv > 0 && !math.IsInf(*ltv, 0):
		ratio = *ltv
	case loanAmount != nil && *loanAmount > 0 && price > 0:
		ratio = *loanAmount / price
	}

	var amount float64
	switch {
	case loanAmount != nil:
		amount = *loanAmount
	case ltv != nil:
		amount = price * *ltv
	}

	if !determined(ratio) || !determined(amount) || termMonths <= 0 {
		return 0, false
	}

	return fhaFactors[index(termMonths > constants.FHALongTermMonths)][index(amount > constants.FHAHighBalanceThreshold)][index(ratio > constants.FHALTVBoundary)], true
}

func determined(val float64) bool {
	return val > 0 && !math.IsInf(val, 0) && !math.IsNaN(val)
}

func index(cond bool) int {
	if cond {
		return 1
	}
	return 0
}
