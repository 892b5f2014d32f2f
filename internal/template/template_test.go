package template

import (
	"encoding/json"
	"testing"

	"github.com/iwvelando/loan-scenarios/internal/scenario"
)

func ptr(v float64) *float64 {
	return &v
}

func sampleInput() scenario.Input {
	return scenario.Input{
		Name:            "Builder special",
		Price:           450000,
		LTV:             ptr(0.95),
		Program:         scenario.Conventional,
		TermMonths:      360,
		NoteRate:        6.875,
		ClosingCosts:    9000,
		SellerCredit:    12000,
		PMIType:         scenario.BPMI,
		PMIAnnualFactor: ptr(0.006),
		TaxesMonthly:    ptr(0),
		LockRate:        true,
	}
}

func TestNewDraftInput(t *testing.T) {
	in := sampleInput()
	draft := NewDraft("Spring promo", in)

	if draft.ID != "" {
		t.Errorf("draft should not have an id, got %q", draft.ID)
	}
	if draft.LockRate == nil || !*draft.LockRate {
		t.Errorf("expected lockRate true, got %v", draft.LockRate)
	}

	got := draft.Input()
	if got.Name != "Spring promo" {
		t.Errorf("expected input named after the title, got %q", got.Name)
	}
	got.Name = in.Name
	if got.Price != in.Price || got.Program != in.Program || got.TermMonths != in.TermMonths ||
		got.NoteRate != in.NoteRate || got.SellerCredit != in.SellerCredit || !got.LockRate {
		t.Errorf("input did not survive the conversion: %+v", got)
	}
	if got.TaxesMonthly == nil || *got.TaxesMonthly != 0 {
		t.Errorf("explicit zero taxes should be kept, got %v", got.TaxesMonthly)
	}
	if got.LoanAmount != nil || got.HOAMonthly != nil {
		t.Errorf("absent fields should stay absent: %+v", got)
	}
}

func TestTemplateJSON(t *testing.T) {
	raw := `{"id":"abc","title":"FHA starter","price":309278.35,"loanAmount":300000,"program":"FHA","termMonths":360,"noteRate":6.25,"discountPointsPct":0,"closingCosts":7000,"sellerCredit":5000}`

	var tmpl Template
	if err := json.Unmarshal([]byte(raw), &tmpl); err != nil {
		t.Fatalf("failed to decode template: %v", err)
	}
	if tmpl.LockRate != nil {
		t.Errorf("lockRate should be absent, got %v", *tmpl.LockRate)
	}
	if tmpl.LTV != nil {
		t.Errorf("ltv should be absent, got %v", *tmpl.LTV)
	}

	in := tmpl.Input()
	if in.LockRate {
		t.Error("absent lockRate should read as false")
	}
	if in.LoanAmount == nil || *in.LoanAmount != 300000 {
		t.Errorf("expected loan amount 300000, got %v", in.LoanAmount)
	}

	encoded, err := json.Marshal(tmpl)
	if err != nil {
		t.Fatalf("failed to encode template: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(encoded, &fields); err != nil {
		t.Fatalf("failed to decode encoded template: %v", err)
	}
	for _, absent := range []string{"ltv", "lockRate", "pmiAnnualFactor", "hoaMonthly"} {
		if _, ok := fields[absent]; ok {
			t.Errorf("field %s should be omitted", absent)
		}
	}
}
