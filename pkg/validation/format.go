// Package validation checks user-supplied settings and scenario inputs before
// they reach the compute engine.
package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/iwvelando/loan-scenarios/pkg/constants"
)

// OutputFormats lists the supported CLI output formats.
var OutputFormats = []string{constants.OutputFormatPretty, constants.OutputFormatCSV}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if !slices.Contains(OutputFormats, format) {
		return fmt.Errorf("expected output format of %s, got %q", strings.Join(OutputFormats, " or "), format)
	}
	return nil
}
