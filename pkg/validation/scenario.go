package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/iwvelando/loan-scenarios/internal/scenario"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func scenarioValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		_ = validate.RegisterValidation("program", func(fl validator.FieldLevel) bool {
			return scenario.Program(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("pmitype", func(fl validator.FieldLevel) bool {
			return scenario.PMIType(fl.Field().String()).Valid()
		})
	})
	return validate
}

// ValidateScenario checks that a scenario is structurally valid: a positive
// price and term, known program and PMI type, non-negative costs, and at least
// one of ltv or loanAmount to resolve the loan amount from.
func ValidateScenario(in scenario.Input) error {
	var problems []string

	if err := scenarioValidator().Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("failed to validate scenario: %w", err)
		}
		for _, fieldErr := range fieldErrs {
			problems = append(problems, describe(fieldErr))
		}
	}

	if in.LTV == nil && in.LoanAmount == nil {
		problems = append(problems, "one of ltv or loanAmount is required")
	}
	if in.LoanAmount != nil && *in.LoanAmount <= 0 {
		problems = appendOnce(problems, "loanAmount must be greater than 0")
	}
	if in.LTV != nil && (*in.LTV < 0 || *in.LTV > 1.5) {
		problems = appendOnce(problems, "ltv must be between 0 and 1.5")
	}

	if len(problems) == 0 {
		return nil
	}
	label := in.Name
	if label == "" {
		label = "unnamed"
	}
	return fmt.Errorf("invalid scenario %q: %s", label, strings.Join(problems, "; "))
}

// ValidateScenarios validates every scenario and reports the first failure.
func ValidateScenarios(inputs []scenario.Input) error {
	for _, in := range inputs {
		if err := ValidateScenario(in); err != nil {
			return err
		}
	}
	return nil
}

func describe(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	switch fieldErr.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fieldErr.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fieldErr.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fieldErr.Param())
	case "program":
		return fmt.Sprintf("program %q is not one of %s", fmt.Sprint(fieldErr.Value()), joinPrograms())
	case "pmitype":
		return fmt.Sprintf("pmiType %q is not one of BPMI, SPMI, LPMI, None", fmt.Sprint(fieldErr.Value()))
	default:
		return fmt.Sprintf("%s failed %s validation", field, fieldErr.Tag())
	}
}

func joinPrograms() string {
	names := make([]string, 0, len(scenario.Programs))
	for _, program := range scenario.Programs {
		names = append(names, string(program))
	}
	return strings.Join(names, ", ")
}

// appendOnce appends msg unless the tag validation already reported the field.
func appendOnce(problems []string, msg string) []string {
	field := strings.SplitN(msg, " ", 2)[0]
	for _, existing := range problems {
		if strings.HasPrefix(existing, field+" ") {
			return problems
		}
	}
	return append(problems, msg)
}
