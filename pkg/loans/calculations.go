// Package loans provides common loan processing utilities.
package loans

import (
	"math"

	"github.com/iwvelando/loan-scenarios/pkg/constants"
	"github.com/iwvelando/loan-scenarios/pkg/mathutil"
)

// Payment holds the values for a given payment.
type Payment struct {
	Month              int     `json:"month"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// Summary aggregates an amortization schedule over a horizon and over its full life.
type Summary struct {
	HorizonMonths      int     `json:"horizonMonths"`
	InterestToHorizon  float64 `json:"interestToHorizon"`
	PrincipalToHorizon float64 `json:"principalToHorizon"`
	BalanceAtHorizon   float64 `json:"balanceAtHorizon"`
	LifetimeInterest   float64 `json:"lifetimeInterest"`
}

// MonthlyRate converts an annual percentage rate (e.g. 6.875) into a periodic
// monthly rate (e.g. 0.00573).
func MonthlyRate(annualRatePct float64) float64 {
	return annualRatePct / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// CalculateMonthlyPayment calculates the level monthly payment for a
// fixed-rate loan using the standard amortization formula.
func CalculateMonthlyPayment(loanAmount, annualRatePct float64, termMonths int) float64 {
	r := MonthlyRate(annualRatePct)
	if r == 0 {
		// For zero interest, simply divide the loan amount by term
		return loanAmount / float64(termMonths)
	}

	power := math.Pow(1.00+r, float64(termMonths))
	return loanAmount * r * power / (power - 1.00)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualRatePct float64) float64 {
	return remainingPrincipal * MonthlyRate(annualRatePct)
}

// GenerateSchedule creates the complete level-payment amortization schedule
// for a loan. Month numbering starts at 1.
func GenerateSchedule(loanAmount, annualRatePct float64, termMonths int) []Payment {
	if termMonths <= 0 || loanAmount <= 0 {
		return nil
	}

	monthlyPayment := CalculateMonthlyPayment(loanAmount, annualRatePct, termMonths)
	schedule := make([]Payment, 0, termMonths)
	balance := loanAmount

	for month := 1; month <= termMonths; month++ {
		var current Payment
		current.Month = month
		current.Interest = CalculateInterestPayment(balance, annualRatePct)
		current.Principal = monthlyPayment - current.Interest

		if month == termMonths || mathutil.Round(balance-current.Principal) <= 0 {
			// Retire whatever is left instead of carrying machine error forward.
			current.Principal = balance
			current.Payment = current.Principal + current.Interest
			current.RemainingPrincipal = 0.00
			schedule = append(schedule, current)
			break
		}

		current.Payment = monthlyPayment
		current.RemainingPrincipal = balance - current.Principal
		balance = current.RemainingPrincipal
		schedule = append(schedule, current)
	}

	return schedule
}

// Summarize totals interest and principal through horizonMonths and over the
// life of the schedule. A horizon beyond the schedule is clamped to its length.
func Summarize(schedule []Payment, horizonMonths int) Summary {
	summary := Summary{HorizonMonths: horizonMonths}
	if horizonMonths > len(schedule) {
		summary.HorizonMonths = len(schedule)
	}

	for i, payment := range schedule {
		summary.LifetimeInterest += payment.Interest
		if i < summary.HorizonMonths {
			summary.InterestToHorizon += payment.Interest
			summary.PrincipalToHorizon += payment.Principal
			summary.BalanceAtHorizon = payment.RemainingPrincipal
		}
	}
	if summary.HorizonMonths == 0 && len(schedule) > 0 {
		summary.BalanceAtHorizon = schedule[0].RemainingPrincipal + schedule[0].Principal
	}

	return summary
}
