// Package template persists reusable scenario templates.
package template

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/iwvelando/loan-scenarios/internal/scenario"
)

// ErrNotFound is returned when no template has the requested id.
var ErrNotFound = errors.New("template not found")

// Template is a saved scenario without a name. Optional fields stay nil when
// they were never provided.
type Template struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	Price             float64          `json:"price"`
	LTV               *float64         `json:"ltv,omitempty"`
	LoanAmount        *float64         `json:"loanAmount,omitempty"`
	Program           scenario.Program `json:"program"`
	TermMonths        int              `json:"termMonths"`
	NoteRate          float64          `json:"noteRate"`
	DiscountPointsPct float64          `json:"discountPointsPct"`
	ClosingCosts      float64          `json:"closingCosts"`
	SellerCredit      float64          `json:"sellerCredit"`
	PMIType           scenario.PMIType `json:"pmiType,omitempty"`
	PMIAnnualFactor   *float64         `json:"pmiAnnualFactor,omitempty"`
	TaxesMonthly      *float64         `json:"taxesMonthly,omitempty"`
	InsuranceMonthly  *float64         `json:"insuranceMonthly,omitempty"`
	HOAMonthly        *float64         `json:"hoaMonthly,omitempty"`
	LockRate          *bool            `json:"lockRate,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// Store persists templates.
type Store interface {
	Create(ctx context.Context, draft Template) (Template, error)
	Get(ctx context.Context, id string) (Template, error)
	List(ctx context.Context) ([]Template, error)
	Delete(ctx context.Context, id string) error
}

// NewDraft converts a scenario into an unsaved template titled title.
func NewDraft(title string, in scenario.Input) Template {
	lockRate := in.LockRate
	return Template{
		Title:             title,
		Price:             in.Price,
		LTV:               in.LTV,
		LoanAmount:        in.LoanAmount,
		Program:           in.Program,
		TermMonths:        in.TermMonths,
		NoteRate:          in.NoteRate,
		DiscountPointsPct: in.DiscountPointsPct,
		ClosingCosts:      in.ClosingCosts,
		SellerCredit:      in.SellerCredit,
		PMIType:           in.PMIType,
		PMIAnnualFactor:   in.PMIAnnualFactor,
		TaxesMonthly:      in.TaxesMonthly,
		InsuranceMonthly:  in.InsuranceMonthly,
		HOAMonthly:        in.HOAMonthly,
		LockRate:          &lockRate,
	}
}

// Input reconstitutes the scenario the template describes, named after its
// title. An absent lockRate reads as false.
func (t Template) Input() scenario.Input {
	return scenario.Input{
		Name:              t.Title,
		Price:             t.Price,
		LTV:               t.LTV,
		LoanAmount:        t.LoanAmount,
		Program:           t.Program,
		TermMonths:        t.TermMonths,
		NoteRate:          t.NoteRate,
		DiscountPointsPct: t.DiscountPointsPct,
		ClosingCosts:      t.ClosingCosts,
		SellerCredit:      t.SellerCredit,
		PMIType:           t.PMIType,
		PMIAnnualFactor:   t.PMIAnnualFactor,
		TaxesMonthly:      t.TaxesMonthly,
		InsuranceMonthly:  t.InsuranceMonthly,
		HOAMonthly:        t.HOAMonthly,
		LockRate:          t.LockRate != nil && *t.LockRate,
	}
}

// sortTemplates orders templates oldest first, breaking ties by id.
func sortTemplates(templates []Template) {
	sort.Slice(templates, func(i, j int) bool {
		if !templates[i].CreatedAt.Equal(templates[j].CreatedAt) {
			return templates[i].CreatedAt.Before(templates[j].CreatedAt)
		}
		return templates[i].ID < templates[j].ID
	})
}
