package scenario

import (
	"context"
	"fmt"
	"math"

	"github.com/iwvelando/loan-scenarios/pkg/constants"
	"github.com/iwvelando/loan-scenarios/pkg/insurance"
	"github.com/iwvelando/loan-scenarios/pkg/loans"
	"github.com/iwvelando/loan-scenarios/pkg/mathutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine computes scenario outputs. It holds no state besides its logger and
// is safe for concurrent use.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a new engine instance.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Compute computes a scenario with a silent engine.
func Compute(in Input) Output {
	return NewEngine(nil).Compute(in)
}

// Compute derives the loan terms, credit allocation, payment breakdown, cash
// to close and warnings for one scenario. It never fails; validating the input
// is the caller's concern.
func (e *Engine) Compute(in Input) Output {
	var out Output

	if in.LoanAmount != nil {
		out.LoanAmount = *in.LoanAmount
	} else {
		out.LoanAmount = in.Price * mathutil.Deref(in.LTV)
	}
	out.PointsCost = mathutil.ApplyPercentage(out.LoanAmount, in.DiscountPointsPct)

	effectiveLTV := out.LoanAmount / in.Price
	if in.LTV != nil {
		effectiveLTV = *in.LTV
	}
	capPct := CapPct(in.Program, effectiveLTV)
	programCapDollars := in.Price * capPct
	maxUsableCredit := mathutil.Min(in.SellerCredit, programCapDollars, out.PointsCost+in.ClosingCosts)

	out.FinalRate = in.NoteRate
	out.AllocationSteps = []AllocationStep{}
	if !in.LockRate {
		out.FinalRate, out.AllocationSteps = e.allocateBuydown(in, out.LoanAmount, maxUsableCredit)
	}
	for _, step := range out.AllocationSteps {
		out.AppliedToPoints += step.PointsCost
	}

	pAndI := loans.CalculateMonthlyPayment(out.LoanAmount, out.FinalRate, in.TermMonths)
	pmiMonthly := e.pmiMonthly(in, out.LoanAmount)

	out.AppliedSellerCredit = out.AppliedToPoints + mathutil.Min(in.ClosingCosts, maxUsableCredit-out.AppliedToPoints)
	out.AppliedToCosts = out.AppliedSellerCredit - out.AppliedToPoints

	piti := pAndI + pmiMonthly + mathutil.Deref(in.TaxesMonthly) + mathutil.Deref(in.InsuranceMonthly) + mathutil.Deref(in.HOAMonthly)
	cashToClose := (in.Price - out.LoanAmount) + (in.ClosingCosts - out.AppliedToCosts)

	// Illustrative only: prepaid points spread at 30/360 on top of the final
	// rate. This is not a regulatory APR.
	pointsSpread := 0.0
	if out.LoanAmount > 0 {
		pointsSpread = (out.AppliedToPoints / out.LoanAmount * constants.PercentageMultiplier) * constants.APRPointsSpreadFactor
	}
	apr := mathutil.Max(out.FinalRate, out.FinalRate+pointsSpread)

	out.Warnings = []string{}
	if in.SellerCredit > programCapDollars {
		out.Warnings = append(out.Warnings, fmt.Sprintf("Seller credit exceeds typical %s cap (~%.1f%%).",
			in.Program, capPct*constants.PercentageMultiplier))
	}
	if out.AppliedSellerCredit < in.SellerCredit &&
		!mathutil.WithinTolerance(out.AppliedSellerCredit, in.SellerCredit, constants.InvariantTolerance) {
		out.Warnings = append(out.Warnings, "Not all seller credit usable given current costs/points.")
	}

	if len(out.AllocationSteps) > 0 {
		totalSave := 0.0
		for _, step := range out.AllocationSteps {
			totalSave += step.MonthlySave
		}
		if totalSave == 0 {
			totalSave = 1
		}
		months := int(math.Round(out.AppliedToPoints / totalSave))
		out.BreakEvenMonthsOnPoints = &months
	}

	out.PAndI = mathutil.Round(pAndI)
	out.PMIMonthly = mathutil.Round(pmiMonthly)
	out.PITIMonthly = mathutil.Round(piti)
	out.CashToClose = mathutil.Round(cashToClose)
	out.APREstimate = mathutil.RoundTo(apr, constants.RatePlaces)

	e.logger.Debug(fmt.Sprintf("computed scenario %q at %.3f%% with %d buydown steps", in.Name, out.FinalRate, len(out.AllocationSteps)),
		zap.String("op", "scenario.Compute"),
		zap.String("program", string(in.Program)),
		zap.Float64("loan_amount", out.LoanAmount),
		zap.Float64("applied_seller_credit", out.AppliedSellerCredit),
		zap.Int("warnings", len(out.Warnings)),
	)

	return out
}

// allocateBuydown greedily buys the rate down in fixed increments while the
// remaining credit covers a whole step and the step breaks even within the
// allowed horizon. Steps are returned in the order they were taken.
func (e *Engine) allocateBuydown(in Input, loanAmount, maxUsableCredit float64) (float64, []AllocationStep) {
	steps := []AllocationStep{}
	rate := in.NoteRate
	remaining := maxUsableCredit
	stepCost := mathutil.ApplyPercentage(loanAmount, constants.BuydownStepCostPct)

	for remaining >= stepCost {
		before := loans.CalculateMonthlyPayment(loanAmount, rate, in.TermMonths)
		after := loans.CalculateMonthlyPayment(loanAmount, rate-constants.BuydownStepRate, in.TermMonths)
		monthlySave := mathutil.Max(0, before-after)

		if monthlySave <= 0 {
			e.logger.Debug(fmt.Sprintf("stopping buydown at %.3f%%: step saves nothing", rate),
				zap.String("op", "scenario.allocateBuydown"),
			)
			break
		}

		breakEven := math.Ceil(stepCost / monthlySave)
		if math.IsInf(breakEven, 0) || breakEven > constants.MaxBreakEvenMonths {
			e.logger.Debug(fmt.Sprintf("stopping buydown at %.3f%%: break-even %.0f months exceeds %d", rate, breakEven, constants.MaxBreakEvenMonths),
				zap.String("op", "scenario.allocateBuydown"),
			)
			break
		}

		remaining -= stepCost
		rate -= constants.BuydownStepRate
		steps = append(steps, AllocationStep{
			Rate:        rate,
			PointsCost:  stepCost,
			MonthlySave: monthlySave,
			BreakEven:   int(breakEven),
		})
		e.logger.Debug(fmt.Sprintf("bought rate down to %.3f%% for %.2f saving %.2f monthly", rate, stepCost, monthlySave),
			zap.String("op", "scenario.allocateBuydown"),
			zap.Int("break_even_months", int(breakEven)),
			zap.Float64("remaining_credit", remaining),
		)
	}

	return rate, steps
}

// pmiMonthly resolves the effective PMI factor and monetizes it. SPMI and LPMI
// are recognized but priced elsewhere, so they contribute nothing here.
func (e *Engine) pmiMonthly(in Input, loanAmount float64) float64 {
	factor := in.PMIAnnualFactor
	if in.Program == FHA && factor == nil {
		if resolved, ok := insurance.ResolveFHAAnnualFactor(in.LTV, &loanAmount, in.Price, in.TermMonths); ok {
			factor = &resolved
		} else {
			e.logger.Debug("FHA MIP factor undetermined, leaving PMI factor unset",
				zap.String("op", "scenario.pmiMonthly"),
			)
		}
	}

	if in.PMIType != BPMI || factor == nil {
		return 0
	}
	return *factor * loanAmount / constants.MonthsPerYear
}

// ComputeBatch computes every input concurrently. Scenarios are independent;
// results keep the order of inputs.
func (e *Engine) ComputeBatch(ctx context.Context, inputs []Input) ([]Result, error) {
	results := make([]Result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)

	for i := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Result{Name: inputs[i].Name, Output: e.Compute(inputs[i])}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scenario batch cancelled: %w", err)
	}
	return results, nil
}
