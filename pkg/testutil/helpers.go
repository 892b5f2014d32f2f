// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/loan-scenarios/internal/scenario"
)

// FindResult finds a scenario result by name. It returns a pointer into
// results for the first match, or nil.
func FindResult(results []scenario.Result, name string) *scenario.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// Float64 returns a pointer to v, for populating optional scenario fields.
func Float64(v float64) *float64 {
	return &v
}
