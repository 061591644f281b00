package system

import (
	"fmt"
	"time"

	"github.com/cognicore/fuzzy/pkg/fuzzy/fuzzyerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/rule"
	"github.com/cognicore/fuzzy/pkg/fuzzy/variable"
)

// FuzzyInputs maps input variable → set → membership degree.
type FuzzyInputs map[string]map[string]float64

// Activation is the weighted firing strength of one rule for its consequent set.
type Activation struct {
	Set    string
	Degree float64
}

// RuleOutputs maps output variable → activations in rule registration order.
// Activations for the same set are not merged.
type RuleOutputs map[string][]Activation

// Observer is notified once per Run.
type Observer interface {
	ObserveQuery(system string, d time.Duration, err error)
}

// Snapshot is a frozen copy of a System. All methods are read-only and safe
// for concurrent use.
type Snapshot struct {
	name        string
	inputs      []*variable.Variable
	outputs     []*variable.Variable
	inputIndex  map[string]int
	outputIndex map[string]int
	rules       [][]rule.Rule
	observer    Observer
	strictFirst bool
}

// Name returns the system name.
func (s *Snapshot) Name() string { return s.name }

// Inputs returns the input variable names in registration order.
func (s *Snapshot) Inputs() []string {
	return names(s.inputs)
}

// Outputs returns the output variable names in registration order.
func (s *Snapshot) Outputs() []string {
	return names(s.outputs)
}

func names(vars []*variable.Variable) []string {
	out := make([]string, len(vars))
	for i, v := range vars {
		out[i] = v.Name()
	}
	return out
}

// Rules returns the rules targeting the given output variable.
func (s *Snapshot) Rules(output string) []rule.Rule {
	i, ok := s.outputIndex[output]
	if !ok {
		return nil
	}
	out := make([]rule.Rule, len(s.rules[i]))
	copy(out, s.rules[i])
	return out
}

// Fuzzify evaluates every input variable against its crisp value. Every
// registered input must be present; extra keys are ignored.
func (s *Snapshot) Fuzzify(inputs map[string]float64) (FuzzyInputs, error) {
	fuzzy := make(FuzzyInputs, len(s.inputs))
	for _, v := range s.inputs {
		x, ok := inputs[v.Name()]
		if !ok {
			return nil, fmt.Errorf("%w: no value for variable %q", fuzzyerr.ErrMissingInput, v.Name())
		}
		fuzzy[v.Name()] = v.Fuzzify(x)
	}
	return fuzzy, nil
}

// ApplyOperator fires every rule: the antecedent degrees are combined with the
// AND method and scaled by the rule weight.
func (s *Snapshot) ApplyOperator(fuzzy FuzzyInputs, and AndMethod) (RuleOutputs, error) {
	if err := and.validate(); err != nil {
		return nil, err
	}

	outputs := make(RuleOutputs, len(s.outputs))
	for i, v := range s.outputs {
		acts := make([]Activation, 0, len(s.rules[i]))
		for _, r := range s.rules[i] {
			ante := r.Antecedents()
			degrees := make([]float64, 0, len(ante))
			for _, a := range ante {
				d, err := degreeOf(fuzzy, a)
				if err != nil {
					return nil, err
				}
				degrees = append(degrees, d)
			}
			strength, err := Conjoin(and, degrees)
			if err != nil {
				return nil, err
			}
			acts = append(acts, Activation{
				Set:    r.Consequent().Set,
				Degree: strength * r.Weight(),
			})
		}
		outputs[v.Name()] = acts
	}
	return outputs, nil
}

func degreeOf(fuzzy FuzzyInputs, t rule.Term) (float64, error) {
	sets, ok := fuzzy[t.Variable]
	if !ok {
		return 0, fmt.Errorf("%w: no fuzzified value for variable %q", fuzzyerr.ErrMissingInput, t.Variable)
	}
	d, ok := sets[t.Set]
	if !ok {
		return 0, fmt.Errorf("%w: no degree for %s", fuzzyerr.ErrMissingInput, t)
	}
	return d, nil
}

// Infer picks, for every output variable, the set with the highest activation
// and returns the point where that set reaches the activation degree.
//
// Ties at a positive maximum go to the candidate with the larger last
// intersection, for both methods. With WithStrictFirstOfMaxima, FirstOfMaxima
// reads first intersections and keeps the smaller one instead. A variable
// without activations above zero infers to 0.
func (s *Snapshot) Infer(outputs RuleOutputs, method InferenceMethod) (map[string]float64, error) {
	if err := method.validate(); err != nil {
		return nil, err
	}

	first := method == FirstOfMaxima && s.strictFirst
	crisp := make(map[string]float64, len(s.outputs))
	for _, v := range s.outputs {
		var (
			maxMu float64
			value float64
		)
		for _, act := range outputs[v.Name()] {
			// NaN degrees never win.
			if !(act.Degree >= maxMu) || (act.Degree == maxMu && act.Degree <= 0) {
				continue
			}
			x, err := intersect(v, act, first)
			if err != nil {
				return nil, err
			}
			switch {
			case act.Degree > maxMu:
				maxMu, value = act.Degree, x
			case first && x < value:
				value = x
			case !first && x > value:
				value = x
			}
		}
		crisp[v.Name()] = value
	}
	return crisp, nil
}

func intersect(v *variable.Variable, act Activation, first bool) (float64, error) {
	if first {
		return v.FirstIntersection(act.Set, act.Degree)
	}
	return v.LastIntersection(act.Set, act.Degree)
}

// Run evaluates the full pipeline.
func (s *Snapshot) Run(inputs map[string]float64, and AndMethod, method InferenceMethod) (out map[string]float64, err error) {
	if s.observer != nil {
		start := time.Now()
		defer func() { s.observer.ObserveQuery(s.name, time.Since(start), err) }()
	}

	fuzzy, err := s.Fuzzify(inputs)
	if err != nil {
		return nil, err
	}
	acts, err := s.ApplyOperator(fuzzy, and)
	if err != nil {
		return nil, err
	}
	return s.Infer(acts, method)
}
