package scenario

// CapRule describes one band of a program's seller credit cap for display.
type CapRule struct {
	MinLTVExclusive float64 `json:"minLtvExclusive"`
	CapPct          float64 `json:"capPct"`
}

// ProgramInfo summarizes a program's credit cap policy.
type ProgramInfo struct {
	Program Program   `json:"program"`
	Rules   []CapRule `json:"rules"`
}

// programCapRules are evaluated in order; the first rule whose lower LTV bound
// the effective LTV exceeds wins. The last rule of each program is the floor.
var programCapRules = map[Program][]CapRule{
	Conventional: {
		{MinLTVExclusive: 0.90, CapPct: 0.03},
		{MinLTVExclusive: 0.75, CapPct: 0.06},
		{MinLTVExclusive: -1, CapPct: 0.09},
	},
	FHA:   {{MinLTVExclusive: -1, CapPct: 0.06}},
	VA:    {{MinLTVExclusive: -1, CapPct: 0.04}},
	USDA:  {{MinLTVExclusive: -1, CapPct: 0.06}},
	Jumbo: {{MinLTVExclusive: -1, CapPct: 0.03}},
}

// CapPct returns the seller credit cap, as a fraction of price, for a program
// at the given effective LTV. Unknown programs have no allowance.
func CapPct(program Program, ltv float64) float64 {
	for _, rule := range programCapRules[program] {
		if ltv > rule.MinLTVExclusive {
			return rule.CapPct
		}
	}
	rules := programCapRules[program]
	if len(rules) == 0 {
		return 0
	}
	// NaN LTV compares false everywhere and lands on the floor rule.
	return rules[len(rules)-1].CapPct
}

// ProgramCatalog returns the cap policy of every supported program.
func ProgramCatalog() []ProgramInfo {
	catalog := make([]ProgramInfo, 0, len(Programs))
	for _, program := range Programs {
		rules := append([]CapRule(nil), programCapRules[program]...)
		catalog = append(catalog, ProgramInfo{Program: program, Rules: rules})
	}
	return catalog
}

// Valid reports whether the program is supported.
func (p Program) Valid() bool {
	_, ok := programCapRules[p]
	return ok
}

// Valid reports whether the PMI type is recognized.
func (t PMIType) Valid() bool {
	for _, known := range PMITypes {
		if t == known {
			return true
		}
	}
	return false
}
