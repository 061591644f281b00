// Package rule defines fuzzy rules of the form
//
//	IF VoiceRate IS Good AND InstrumentalRate IS Good THEN SongRate IS Good
//
// Rules are plain values and are not validated here; the owning system checks
// every referenced variable and set when the rule is registered.
package rule

import (
	"fmt"
	"sort"
	"strings"
)

// Term names one set of one variable.
type Term struct {
	Variable string
	Set      string
}

func (t Term) String() string {
	return t.Variable + " IS " + t.Set
}

// Rule is an immutable conjunction of antecedent terms implying one consequent term.
type Rule struct {
	antecedents []Term
	consequent  Term
	weight      float64
}

// New creates a rule with weight 1. Antecedents map variable name to set name
// and are combined with AND. They are kept sorted by variable name so that
// evaluation order does not depend on map iteration.
func New(antecedents map[string]string, consequent Term) Rule {
	terms := make([]Term, 0, len(antecedents))
	for v, s := range antecedents {
		terms = append(terms, Term{Variable: v, Set: s})
	}
	sort.Slice(terms, func(i, j int) bool {
		return terms[i].Variable < terms[j].Variable
	})
	return Rule{
		antecedents: terms,
		consequent:  consequent,
		weight:      1,
	}
}

// WithWeight returns a copy of r with the given weight. The weight scales the
// rule's activation and is not range-checked.
func (r Rule) WithWeight(w float64) Rule {
	r.antecedents = r.Antecedents()
	r.weight = w
	return r
}

// Antecedents returns a copy of the antecedent terms, sorted by variable.
func (r Rule) Antecedents() []Term {
	out := make([]Term, len(r.antecedents))
	copy(out, r.antecedents)
	return out
}

// Consequent returns the target term.
func (r Rule) Consequent() Term { return r.consequent }

// Weight returns the activation multiplier.
func (r Rule) Weight() float64 { return r.weight }

func (r Rule) String() string {
	var b strings.Builder
	b.WriteString("IF ")
	for i, t := range r.antecedents {
		if i > 0 {
			b.WriteString(" AND ")
		}
		b.WriteString(t.String())
	}
	b.WriteString(" THEN ")
	b.WriteString(r.consequent.String())
	if r.weight != 1 {
		b.WriteString(fmt.Sprintf(" (weight %.2f)", r.weight))
	}
	return b.String()
}
