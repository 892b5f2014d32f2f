// Package output provides utilities for formatting and displaying scenario results.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iwvelando/loan-scenarios/internal/scenario"
	"github.com/iwvelando/loan-scenarios/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// row is one labelled line of the comparison output.
type row struct {
	label string
	value func(out scenario.Output) string
}

var rows = []row{
	{"Loan amount", func(o scenario.Output) string { return format.NumericCurrency(o.LoanAmount) }},
	{"Points cost", func(o scenario.Output) string { return format.NumericCurrency(o.PointsCost) }},
	{"Final rate", func(o scenario.Output) string { return fmt.Sprintf("%.3f", o.FinalRate) }},
	{"P&I", func(o scenario.Output) string { return format.NumericCurrency(o.PAndI) }},
	{"PMI", func(o scenario.Output) string { return format.NumericCurrency(o.PMIMonthly) }},
	{"PITI", func(o scenario.Output) string { return format.NumericCurrency(o.PITIMonthly) }},
	{"Seller credit applied", func(o scenario.Output) string { return format.NumericCurrency(o.AppliedSellerCredit) }},
	{"Applied to points", func(o scenario.Output) string { return format.NumericCurrency(o.AppliedToPoints) }},
	{"Applied to costs", func(o scenario.Output) string { return format.NumericCurrency(o.AppliedToCosts) }},
	{"Cash to close", func(o scenario.Output) string { return format.NumericCurrency(o.CashToClose) }},
	{"APR estimate", func(o scenario.Output) string { return fmt.Sprintf("%.3f", o.APREstimate) }},
	{"Break-even on points", func(o scenario.Output) string { return format.Months(o.BreakEvenMonthsOnPoints) }},
	{"Warnings", func(o scenario.Output) string { return strings.Join(o.Warnings, " ") }},
}

// PrettyFormat outputs a human-readable rather than machine-readable summary.
func PrettyFormat(results []scenario.Result) {
	WritePretty(os.Stdout, results)
}

// WritePretty writes the human-readable summary of every scenario to w.
func WritePretty(w io.Writer, results []scenario.Result) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		out := result.Output
		_, _ = fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name)
		_, _ = p.Fprintf(w, "Loan amount        | %s\n", format.Currency(out.LoanAmount))
		_, _ = p.Fprintf(w, "Rate               | %s\n", format.Rate(out.FinalRate))
		_, _ = p.Fprintf(w, "P&I                | %s\n", format.Currency(out.PAndI))
		_, _ = p.Fprintf(w, "PMI                | %s\n", format.Currency(out.PMIMonthly))
		_, _ = p.Fprintf(w, "PITI               | %s\n", format.Currency(out.PITIMonthly))
		_, _ = p.Fprintf(w, "Credit to points   | %s\n", format.Currency(out.AppliedToPoints))
		_, _ = p.Fprintf(w, "Credit to costs    | %s\n", format.Currency(out.AppliedToCosts))
		_, _ = p.Fprintf(w, "Cash to close      | %s\n", format.Currency(out.CashToClose))
		_, _ = p.Fprintf(w, "APR estimate       | %s\n", format.Rate(out.APREstimate))
		_, _ = p.Fprintf(w, "Break-even         | %s\n", format.Months(out.BreakEvenMonthsOnPoints))

		if len(out.AllocationSteps) > 0 {
			_, _ = fmt.Fprintf(w, "Rate    | Cost        | Saves/mo | Break-even\n")
			_, _ = fmt.Fprintf(w, "____    | ___________ | ________ | __________\n")
			for _, step := range out.AllocationSteps {
				_, _ = p.Fprintf(w, "%.3f | %s | %s | %d\n",
					step.Rate, format.Currency(step.PointsCost), format.Currency(step.MonthlySave), step.BreakEven)
			}
		}
		for _, warning := range out.Warnings {
			_, _ = fmt.Fprintf(w, "warning: %s\n", warning)
		}
		if len(results) > 1 && i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []scenario.Result) {
	fmt.Print(CsvString(results))
}

// CsvString renders one row per metric and one column per scenario.
func CsvString(results []scenario.Result) string {
	var builder strings.Builder
	builder.WriteString(`"metric"`)
	for _, result := range results {
		builder.WriteString(fmt.Sprintf(`,"%s"`, escape(result.Name)))
	}
	builder.WriteString("\n")

	for _, r := range rows {
		builder.WriteString(fmt.Sprintf(`"%s"`, r.label))
		for _, result := range results {
			builder.WriteString(fmt.Sprintf(`,"%s"`, escape(r.value(result.Output))))
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

func escape(value string) string {
	return strings.ReplaceAll(value, `"`, `""`)
}
