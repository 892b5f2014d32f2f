// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/loan-scenarios/internal/scenario"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for loan-scenarios.
type Configuration struct {
	Common    Common        `yaml:"common,omitempty"`
	Scenarios []Scenario    `yaml:"scenarios"`
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Common holds values shared by every scenario. A scenario inherits a common
// value only when it leaves the corresponding field unset.
type Common struct {
	Program          scenario.Program `yaml:"program,omitempty"`
	TermMonths       int              `yaml:"termMonths,omitempty"`
	PMIType          scenario.PMIType `yaml:"pmiType,omitempty"`
	PMIAnnualFactor  *float64         `yaml:"pmiAnnualFactor,omitempty"`
	TaxesMonthly     *float64         `yaml:"taxesMonthly,omitempty"`
	InsuranceMonthly *float64         `yaml:"insuranceMonthly,omitempty"`
	HOAMonthly       *float64         `yaml:"hoaMonthly,omitempty"`
}

// Scenario is one configured financing scenario.
type Scenario struct {
	Active         bool `yaml:"active"`
	scenario.Input `mapstructure:",squash" yaml:",inline"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ActiveInputs returns the inputs of every active scenario in configuration
// order with the common values applied.
func (c *Configuration) ActiveInputs() []scenario.Input {
	inputs := []scenario.Input{}
	for _, s := range c.Scenarios {
		if !s.Active {
			continue
		}
		inputs = append(inputs, c.Common.apply(s.Input))
	}
	return inputs
}

func (common Common) apply(in scenario.Input) scenario.Input {
	if in.Program == "" {
		in.Program = common.Program
	}
	if in.TermMonths == 0 {
		in.TermMonths = common.TermMonths
	}
	if in.PMIType == "" {
		in.PMIType = common.PMIType
	}
	if in.PMIAnnualFactor == nil {
		in.PMIAnnualFactor = common.PMIAnnualFactor
	}
	if in.TaxesMonthly == nil {
		in.TaxesMonthly = common.TaxesMonthly
	}
	if in.InsuranceMonthly == nil {
		in.InsuranceMonthly = common.InsuranceMonthly
	}
	if in.HOAMonthly == nil {
		in.HOAMonthly = common.HOAMonthly
	}
	return in
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Scenarios) == 0 {
		return append(warnings, "no scenarios are configured")
	}

	seen := make(map[string]int)
	active := 0
	for i, s := range c.Scenarios {
		if s.Active {
			active++
		}
		if s.LTV == nil && s.LoanAmount == nil {
			warnings = append(warnings, fmt.Sprintf("scenario %d supplies neither ltv nor loanAmount", i+1))
		}
		if s.Name == "" {
			warnings = append(warnings, fmt.Sprintf("scenario %d has no name", i+1))
			continue
		}
		if first, ok := seen[s.Name]; ok {
			warnings = append(warnings, fmt.Sprintf("scenario %d reuses the name %q of scenario %d", i+1, s.Name, first+1))
			continue
		}
		seen[s.Name] = i
	}

	if active == 0 {
		warnings = append(warnings, "no scenarios are active")
	}

	return warnings
}
