// Package config loads query scenarios: the operator choices and the crisp
// input rows to evaluate against a system.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/fuzzy/pkg/fuzzy/system"
)

var validate = validator.New()

// Options selects the operators used for a query.
type Options struct {
	AndMethod           string `yaml:"and_method" validate:"omitempty,oneof=min prod"`
	InferenceMethod     string `yaml:"inference_method" validate:"omitempty,oneof=first_of_maxima last_of_maxima"`
	StrictFirstOfMaxima bool   `yaml:"strict_first_of_maxima"`
	Workers             int    `yaml:"workers" validate:"gte=0"`
}

// Scenario is a set of input rows evaluated with the same options.
type Scenario struct {
	Options `yaml:",inline"`
	Inputs  []map[string]float64 `yaml:"inputs" validate:"dive,required"`
}

// Methods converts the option names to system operators. Empty names select
// min and last_of_maxima.
func (o Options) Methods() (system.AndMethod, system.InferenceMethod, error) {
	and := system.AndMin
	if o.AndMethod != "" {
		m, err := system.ParseAndMethod(o.AndMethod)
		if err != nil {
			return 0, 0, err
		}
		and = m
	}

	method := system.LastOfMaxima
	if o.InferenceMethod != "" {
		m, err := system.ParseInferenceMethod(o.InferenceMethod)
		if err != nil {
			return 0, 0, err
		}
		method = m
	}
	return and, method, nil
}

// SystemOptions returns the system options implied by o.
func (o Options) SystemOptions() []system.Option {
	var opts []system.Option
	if o.StrictFirstOfMaxima {
		opts = append(opts, system.WithStrictFirstOfMaxima())
	}
	return opts
}

// Validate checks the field constraints.
func (s *Scenario) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}
	return nil
}

// ParseScenario decodes and validates a YAML scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}
