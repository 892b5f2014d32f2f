package compare

import (
	"math"
	"testing"

	"github.com/iwvelando/loan-scenarios/internal/scenario"
)

func ptr(v float64) *float64 {
	return &v
}

func builderInputs() []scenario.Input {
	base := scenario.Input{
		Name:            "buydown",
		Price:           450000,
		LTV:             ptr(0.95),
		Program:         scenario.Conventional,
		TermMonths:      360,
		NoteRate:        6.875,
		ClosingCosts:    9000,
		SellerCredit:    12000,
		PMIType:         scenario.BPMI,
		PMIAnnualFactor: ptr(0.006),
	}
	locked := base
	locked.Name = "locked"
	locked.LockRate = true

	fha := base
	fha.Name = "fha"
	fha.Program = scenario.FHA
	fha.LTV = ptr(0.965)
	fha.PMIAnnualFactor = nil

	return []scenario.Input{base, locked, fha}
}

func computeAll(inputs []scenario.Input) []scenario.Result {
	results := make([]scenario.Result, 0, len(inputs))
	for _, in := range inputs {
		results = append(results, scenario.Result{Name: in.Name, Output: scenario.Compute(in)})
	}
	return results
}

func TestCompare(t *testing.T) {
	inputs := builderInputs()
	results := computeAll(inputs)

	comparison, err := Compare(inputs, results)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if comparison.Baseline != "buydown" {
		t.Errorf("baseline = %q, expected buydown", comparison.Baseline)
	}
	if comparison.HorizonMonths != 84 {
		t.Errorf("horizon = %d, expected 84", comparison.HorizonMonths)
	}
	if len(comparison.Scenarios) != 3 {
		t.Fatalf("expected 3 scenario metrics, got %d", len(comparison.Scenarios))
	}

	baseline := comparison.Scenarios[0]
	if baseline.PITIDelta != 0 || baseline.CashToCloseDelta != 0 || baseline.APRDelta != 0 {
		t.Errorf("baseline deltas should be zero, got %+v", baseline)
	}

	locked := comparison.Scenarios[1]
	expectedPITIDelta := results[1].Output.PITIMonthly - results[0].Output.PITIMonthly
	if math.Abs(locked.PITIDelta-expectedPITIDelta) > 0.01 {
		t.Errorf("locked PITI delta = %v, expected %v", locked.PITIDelta, expectedPITIDelta)
	}
	if locked.PITIDelta <= 0 {
		t.Errorf("locked scenario should cost more monthly than the buydown, delta %v", locked.PITIDelta)
	}
	if locked.CashToCloseDelta >= 0 {
		t.Errorf("locked scenario applies more credit to costs so should need less cash, delta %v", locked.CashToCloseDelta)
	}
	if math.Abs(locked.FinalRateDelta-0.5) > 1e-9 {
		t.Errorf("locked final rate delta = %v, expected 0.5", locked.FinalRateDelta)
	}
	if locked.Amortization.LifetimeInterest <= baseline.Amortization.LifetimeInterest {
		t.Errorf("locked lifetime interest %v should exceed buydown %v",
			locked.Amortization.LifetimeInterest, baseline.Amortization.LifetimeInterest)
	}

	if comparison.LowestCashToClose == nil || comparison.LowestCashToClose.Name != "locked" {
		t.Errorf("lowest cash to close = %+v, expected locked", comparison.LowestCashToClose)
	}
	if comparison.LowestLifetimeInterest == nil || comparison.LowestLifetimeInterest.Index == 1 {
		t.Errorf("lowest lifetime interest = %+v, should not be the locked scenario", comparison.LowestLifetimeInterest)
	}
	if comparison.LowestPITI == nil || comparison.LowestAPR == nil {
		t.Fatal("expected best-of picks to be set")
	}
}

func TestCompareAmortizationHorizon(t *testing.T) {
	inputs := builderInputs()[:1]
	results := computeAll(inputs)

	comparison, err := Compare(inputs, results)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	summary := comparison.Scenarios[0].Amortization
	if summary.HorizonMonths != 84 {
		t.Errorf("summary horizon = %d, expected 84", summary.HorizonMonths)
	}
	loanAmount := results[0].Output.LoanAmount
	if math.Abs(loanAmount-summary.PrincipalToHorizon-summary.BalanceAtHorizon) > 0.02 {
		t.Errorf("principal %v and balance %v do not reconcile with loan %v",
			summary.PrincipalToHorizon, summary.BalanceAtHorizon, loanAmount)
	}
}

func TestCompareTiesGoToEarliest(t *testing.T) {
	in := builderInputs()[0]
	inputs := []scenario.Input{in, in}
	inputs[1].Name = "copy"
	results := computeAll(inputs)

	comparison, err := Compare(inputs, results)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	for _, pick := range []*Pick{comparison.LowestPITI, comparison.LowestCashToClose, comparison.LowestAPR, comparison.LowestLifetimeInterest} {
		if pick == nil || pick.Index != 0 {
			t.Errorf("tie pick = %+v, expected index 0", pick)
		}
	}
}

func TestCompareEmpty(t *testing.T) {
	comparison, err := Compare(nil, nil)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if len(comparison.Scenarios) != 0 || comparison.LowestPITI != nil {
		t.Errorf("expected empty comparison, got %+v", comparison)
	}
}

func TestCompareMismatchedLengths(t *testing.T) {
	inputs := builderInputs()
	if _, err := Compare(inputs, computeAll(inputs[:1])); err == nil {
		t.Fatal("expected error for mismatched inputs and results")
	}
}
