// Package scenario computes financing scenarios for a builder loan officer:
// loan terms, the allocation of a seller credit between a rate buydown and
// closing costs, the monthly payment breakdown and cash to close.
package scenario

// Program identifies a loan program.
type Program string

// Supported loan programs.
const (
	Conventional Program = "Conventional"
	FHA          Program = "FHA"
	VA           Program = "VA"
	USDA         Program = "USDA"
	Jumbo        Program = "Jumbo"
)

// Programs lists the supported loan programs in display order.
var Programs = []Program{Conventional, FHA, VA, USDA, Jumbo}

// PMITypes lists the recognized mortgage insurance types.
var PMITypes = []PMIType{BPMI, SPMI, LPMI, NoPMI}

// PMIType identifies how mortgage insurance is paid.
type PMIType string

// Mortgage insurance types. Only BPMI is monetized by the engine.
const (
	BPMI  PMIType = "BPMI"
	SPMI  PMIType = "SPMI"
	LPMI  PMIType = "LPMI"
	NoPMI PMIType = "None"
)

// Input describes one financing scenario. Optional values are pointers so that
// "not provided" stays distinct from an explicit zero.
type Input struct {
	Name              string   `json:"name,omitempty" yaml:"name,omitempty"`
	Price             float64  `json:"price" yaml:"price" validate:"gt=0"`
	LTV               *float64 `json:"ltv,omitempty" yaml:"ltv,omitempty" validate:"omitempty,gte=0,lte=1.5"`
	LoanAmount        *float64 `json:"loanAmount,omitempty" yaml:"loanAmount,omitempty" validate:"omitempty,gt=0"`
	Program           Program  `json:"program" yaml:"program" validate:"required,program"`
	TermMonths        int      `json:"termMonths" yaml:"termMonths" validate:"gt=0"`
	NoteRate          float64  `json:"noteRate" yaml:"noteRate" validate:"gte=0"`
	DiscountPointsPct float64  `json:"discountPointsPct" yaml:"discountPointsPct" validate:"gte=0"`
	ClosingCosts      float64  `json:"closingCosts" yaml:"closingCosts" validate:"gte=0"`
	SellerCredit      float64  `json:"sellerCredit" yaml:"sellerCredit" validate:"gte=0"`
	PMIType           PMIType  `json:"pmiType,omitempty" yaml:"pmiType,omitempty" validate:"omitempty,pmitype"`
	PMIAnnualFactor   *float64 `json:"pmiAnnualFactor,omitempty" yaml:"pmiAnnualFactor,omitempty" validate:"omitempty,gte=0"`
	TaxesMonthly      *float64 `json:"taxesMonthly,omitempty" yaml:"taxesMonthly,omitempty" validate:"omitempty,gte=0"`
	InsuranceMonthly  *float64 `json:"insuranceMonthly,omitempty" yaml:"insuranceMonthly,omitempty" validate:"omitempty,gte=0"`
	HOAMonthly        *float64 `json:"hoaMonthly,omitempty" yaml:"hoaMonthly,omitempty" validate:"omitempty,gte=0"`
	LockRate          bool     `json:"lockRate" yaml:"lockRate"`
}

// AllocationStep records one accepted buydown increment.
type AllocationStep struct {
	Rate        float64 `json:"rate"`
	PointsCost  float64 `json:"pointsCost"`
	MonthlySave float64 `json:"monthlySave"`
	BreakEven   int     `json:"breakEven"`
}

// Output is the computed result for one Input.
type Output struct {
	LoanAmount              float64          `json:"loanAmount"`
	PointsCost              float64          `json:"pointsCost"`
	AppliedSellerCredit     float64          `json:"appliedSellerCredit"`
	AppliedToPoints         float64          `json:"appliedToPoints"`
	AppliedToCosts          float64          `json:"appliedToCosts"`
	FinalRate               float64          `json:"finalRate"`
	PAndI                   float64          `json:"pAndI"`
	PMIMonthly              float64          `json:"pmiMonthly"`
	PITIMonthly             float64          `json:"pitiMonthly"`
	CashToClose             float64          `json:"cashToClose"`
	APREstimate             float64          `json:"aprEstimate"`
	BreakEvenMonthsOnPoints *int             `json:"breakEvenMonthsOnPoints,omitempty"`
	Warnings                []string         `json:"warnings"`
	AllocationSteps         []AllocationStep `json:"allocationSteps"`
}

// Result pairs a scenario name with its computed output.
type Result struct {
	Name   string `json:"name"`
	Output Output `json:"output"`
}
