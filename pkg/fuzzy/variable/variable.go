// Package variable groups fuzzy sets under a named linguistic variable.
package variable

import (
	"fmt"

	"github.com/cognicore/fuzzy/pkg/fuzzy/fuzzyerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/set"
)

// Variable is a named collection of fuzzy sets, e.g. VoiceRate{Bad, Medium, Good}.
// It is not safe for concurrent mutation; build it once, then register it.
type Variable struct {
	name  string
	sets  []set.Set
	index map[string]int
}

// New creates an empty variable.
func New(name string) *Variable {
	return &Variable{
		name:  name,
		index: make(map[string]int),
	}
}

// Name returns the variable name.
func (v *Variable) Name() string { return v.name }

// AddSet adds a fuzzy set. Set names are unique within a variable.
func (v *Variable) AddSet(s set.Set) error {
	if _, ok := v.index[s.Name()]; ok {
		return fmt.Errorf("%w: %q already added to variable %q", fuzzyerr.ErrDuplicateName, s.Name(), v.name)
	}
	v.index[s.Name()] = len(v.sets)
	v.sets = append(v.sets, s)
	return nil
}

// Has reports whether a set with the given name exists.
func (v *Variable) Has(name string) bool {
	_, ok := v.index[name]
	return ok
}

// Set returns the named set.
func (v *Variable) Set(name string) (set.Set, bool) {
	i, ok := v.index[name]
	if !ok {
		return set.Set{}, false
	}
	return v.sets[i], true
}

// Sets returns the sets in the order they were added.
func (v *Variable) Sets() []set.Set {
	out := make([]set.Set, len(v.sets))
	copy(out, v.sets)
	return out
}

// Fuzzify evaluates every set against x. The result has one entry per set,
// zero degrees included.
func (v *Variable) Fuzzify(x float64) map[string]float64 {
	out := make(map[string]float64, len(v.sets))
	for _, s := range v.sets {
		out[s.Name()] = s.Membership(x)
	}
	return out
}

// FirstIntersection delegates to the named set.
func (v *Variable) FirstIntersection(setName string, mu float64) (float64, error) {
	s, err := v.lookup(setName)
	if err != nil {
		return 0, err
	}
	return s.FirstIntersection(mu), nil
}

// LastIntersection delegates to the named set.
func (v *Variable) LastIntersection(setName string, mu float64) (float64, error) {
	s, err := v.lookup(setName)
	if err != nil {
		return 0, err
	}
	return s.LastIntersection(mu), nil
}

func (v *Variable) lookup(setName string) (set.Set, error) {
	s, ok := v.Set(setName)
	if !ok {
		return set.Set{}, fmt.Errorf("%w: variable %q has no set %q", fuzzyerr.ErrUnknownSet, v.name, setName)
	}
	return s, nil
}

// Clone returns a deep copy. Sets are values, so copying the slice is enough.
func (v *Variable) Clone() *Variable {
	c := &Variable{
		name:  v.name,
		sets:  v.Sets(),
		index: make(map[string]int, len(v.index)),
	}
	for k, i := range v.index {
		c.index[k] = i
	}
	return c
}
