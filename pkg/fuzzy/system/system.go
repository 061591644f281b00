// Package system wires fuzzy variables and rules into a Mamdani inference system.
//
// A System is configured in one phase and queried in another:
//
//	sys := system.New("SongRating")
//	sys.AddIndependent(voice)        // input variables
//	sys.AddDependent(song)           // output variables
//	sys.AddRule(rule.New(...))       // validated against the registries
//
//	snap := sys.Freeze()
//	out, err := snap.Run(inputs, system.AndMin, system.LastOfMaxima)
//
// Queries run fuzzify → apply operator → infer. A Snapshot is immutable and can
// be queried from many goroutines at once.
package system

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/cognicore/fuzzy/pkg/fuzzy/fuzzyerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/rule"
	"github.com/cognicore/fuzzy/pkg/fuzzy/variable"
)

// System holds the variable and rule registries during configuration.
// It is not safe for concurrent configuration.
type System struct {
	name        string
	independent []*variable.Variable
	dependent   []*variable.Variable
	inputIndex  map[string]int
	outputIndex map[string]int
	rules       map[string][]rule.Rule
	logger      *slog.Logger
	observer    Observer
	strictFirst bool
}

// Option configures a System.
type Option func(*System)

// WithLogger sets the logger used for configuration events.
func WithLogger(l *slog.Logger) Option {
	return func(s *System) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver reports every Run to o.
func WithObserver(o Observer) Option {
	return func(s *System) { s.observer = o }
}

// WithStrictFirstOfMaxima makes FirstOfMaxima read the winning set's first
// intersection and break ties towards the smaller value. Without it both
// inference methods resolve through the last intersection.
func WithStrictFirstOfMaxima() Option {
	return func(s *System) { s.strictFirst = true }
}

// New creates an empty system.
func New(name string, opts ...Option) *System {
	s := &System{
		name:        name,
		inputIndex:  make(map[string]int),
		outputIndex: make(map[string]int),
		rules:       make(map[string][]rule.Rule),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the system name.
func (s *System) Name() string { return s.name }

// AddIndependent registers an input variable.
func (s *System) AddIndependent(v *variable.Variable) error {
	if _, ok := s.inputIndex[v.Name()]; ok {
		return fmt.Errorf("%w: independent variable %q already added to %q", fuzzyerr.ErrDuplicateVariable, v.Name(), s.name)
	}
	s.inputIndex[v.Name()] = len(s.independent)
	s.independent = append(s.independent, v)
	s.logger.Debug("independent variable added", "system", s.name, "variable", v.Name(), "sets", len(v.Sets()))
	return nil
}

// AddDependent registers an output variable with an empty rule list.
func (s *System) AddDependent(v *variable.Variable) error {
	if _, ok := s.outputIndex[v.Name()]; ok {
		return fmt.Errorf("%w: dependent variable %q already added to %q", fuzzyerr.ErrDuplicateVariable, v.Name(), s.name)
	}
	s.outputIndex[v.Name()] = len(s.dependent)
	s.dependent = append(s.dependent, v)
	s.rules[v.Name()] = []rule.Rule{}
	s.logger.Debug("dependent variable added", "system", s.name, "variable", v.Name(), "sets", len(v.Sets()))
	return nil
}

// AddRule validates r against the registries and appends it to its consequent
// variable's rule list. Registration order is kept and matters for tie-breaking.
func (s *System) AddRule(r rule.Rule) error {
	if err := s.validateRule(r); err != nil {
		s.logger.Debug("rule rejected", "system", s.name, "rule", r.String(), "error", err)
		return err
	}
	c := r.Consequent()
	s.rules[c.Variable] = append(s.rules[c.Variable], r)
	s.logger.Debug("rule added", "system", s.name, "rule", r.String())
	return nil
}

func (s *System) validateRule(r rule.Rule) error {
	c := r.Consequent()
	i, ok := s.outputIndex[c.Variable]
	if !ok {
		return fmt.Errorf("%w: %q has no dependent variable %q", fuzzyerr.ErrUnknownVariable, s.name, c.Variable)
	}
	if !s.dependent[i].Has(c.Set) {
		return fmt.Errorf("%w: dependent variable %q has no set %q", fuzzyerr.ErrUnknownSet, c.Variable, c.Set)
	}

	for _, a := range r.Antecedents() {
		j, ok := s.inputIndex[a.Variable]
		if !ok {
			return fmt.Errorf("%w: %q has no independent variable %q", fuzzyerr.ErrUnknownVariable, s.name, a.Variable)
		}
		if !s.independent[j].Has(a.Set) {
			return fmt.Errorf("%w: independent variable %q has no set %q", fuzzyerr.ErrUnknownSet, a.Variable, a.Set)
		}
	}
	return nil
}

// Rules returns the rules targeting the given dependent variable, in registration order.
func (s *System) Rules(dependent string) []rule.Rule {
	out := make([]rule.Rule, len(s.rules[dependent]))
	copy(out, s.rules[dependent])
	return out
}

// Freeze copies the current configuration into an immutable Snapshot.
// Later changes to the System or its variables do not affect the snapshot.
func (s *System) Freeze() *Snapshot {
	snap := &Snapshot{
		name:        s.name,
		inputs:      make([]*variable.Variable, len(s.independent)),
		outputs:     make([]*variable.Variable, len(s.dependent)),
		inputIndex:  make(map[string]int, len(s.inputIndex)),
		outputIndex: make(map[string]int, len(s.outputIndex)),
		rules:       make([][]rule.Rule, len(s.dependent)),
		observer:    s.observer,
		strictFirst: s.strictFirst,
	}
	for i, v := range s.independent {
		snap.inputs[i] = v.Clone()
		snap.inputIndex[v.Name()] = i
	}
	for i, v := range s.dependent {
		snap.outputs[i] = v.Clone()
		snap.outputIndex[v.Name()] = i
		snap.rules[i] = s.Rules(v.Name())
	}
	return snap
}

// Fuzzify runs the first stage against the current configuration.
func (s *System) Fuzzify(inputs map[string]float64) (FuzzyInputs, error) {
	return s.Freeze().Fuzzify(inputs)
}

// ApplyOperator runs the second stage against the current configuration.
func (s *System) ApplyOperator(fuzzy FuzzyInputs, and AndMethod) (RuleOutputs, error) {
	return s.Freeze().ApplyOperator(fuzzy, and)
}

// Infer runs the third stage against the current configuration.
func (s *System) Infer(outputs RuleOutputs, method InferenceMethod) (map[string]float64, error) {
	return s.Freeze().Infer(outputs, method)
}

// Run evaluates the full pipeline against the current configuration.
// Hot paths should Freeze once and query the Snapshot instead.
func (s *System) Run(inputs map[string]float64, and AndMethod, method InferenceMethod) (map[string]float64, error) {
	return s.Freeze().Run(inputs, and, method)
}

// RunBatch evaluates many input rows against the current configuration.
func (s *System) RunBatch(ctx context.Context, rows []map[string]float64, and AndMethod, method InferenceMethod, workers int) ([]map[string]float64, error) {
	return s.Freeze().RunBatch(ctx, rows, and, method, workers)
}
