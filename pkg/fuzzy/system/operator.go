package system

import (
	"fmt"

	"github.com/cognicore/fuzzy/pkg/fuzzy/fuzzyerr"
)

// AndMethod selects how antecedent degrees are combined.
type AndMethod uint8

const (
	// AndMin takes the minimum degree. It is the default.
	AndMin AndMethod = iota
	// AndProd multiplies the degrees.
	AndProd
)

func (m AndMethod) String() string {
	switch m {
	case AndMin:
		return "min"
	case AndProd:
		return "prod"
	default:
		return fmt.Sprintf("AndMethod(%d)", uint8(m))
	}
}

// ParseAndMethod maps "min" or "prod" to an AndMethod.
func ParseAndMethod(s string) (AndMethod, error) {
	switch s {
	case "min":
		return AndMin, nil
	case "prod":
		return AndProd, nil
	}
	return 0, fmt.Errorf("%w: and method %q", fuzzyerr.ErrUnknownOperator, s)
}

func (m AndMethod) validate() error {
	if m > AndProd {
		return fmt.Errorf("%w: %s", fuzzyerr.ErrUnknownOperator, m)
	}
	return nil
}

// InferenceMethod selects how a crisp value is read off the winning output set.
type InferenceMethod uint8

const (
	// LastOfMaxima is the default.
	LastOfMaxima InferenceMethod = iota
	FirstOfMaxima
)

func (m InferenceMethod) String() string {
	switch m {
	case LastOfMaxima:
		return "last_of_maxima"
	case FirstOfMaxima:
		return "first_of_maxima"
	default:
		return fmt.Sprintf("InferenceMethod(%d)", uint8(m))
	}
}

// ParseInferenceMethod maps "first_of_maxima" or "last_of_maxima" to an InferenceMethod.
func ParseInferenceMethod(s string) (InferenceMethod, error) {
	switch s {
	case "last_of_maxima":
		return LastOfMaxima, nil
	case "first_of_maxima":
		return FirstOfMaxima, nil
	}
	return 0, fmt.Errorf("%w: inference method %q", fuzzyerr.ErrUnknownOperator, s)
}

func (m InferenceMethod) validate() error {
	if m > FirstOfMaxima {
		return fmt.Errorf("%w: %s", fuzzyerr.ErrUnknownOperator, m)
	}
	return nil
}

// Conjoin combines antecedent degrees with the given AND method.
// An empty list yields 0, not the identity of the operator.
func Conjoin(method AndMethod, degrees []float64) (float64, error) {
	if err := method.validate(); err != nil {
		return 0, err
	}
	if len(degrees) == 0 {
		return 0, nil
	}

	result := 1.0
	for _, d := range degrees {
		switch method {
		case AndMin:
			if d < result {
				result = d
			}
		case AndProd:
			result *= d
		}
	}
	return result, nil
}
