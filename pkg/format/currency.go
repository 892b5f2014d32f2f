// Package format renders currency, rates and durations for display.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := printer.Sprintf("%.2f", math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	formatted := printer.Sprintf("%.2f", math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-" + formatted
	}
	return formatted
}

// Rate renders a percentage rate with three decimals (e.g., "6.875%").
func Rate(ratePct float64) string {
	return printer.Sprintf("%.3f%%", ratePct)
}

// Months renders an optional month count, using "n/a" when it is absent.
func Months(months *int) string {
	if months == nil {
		return "n/a"
	}
	if *months == 1 {
		return "1 month"
	}
	return printer.Sprintf("%d months", *months)
}
