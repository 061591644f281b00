// Package explain runs the inference stages one at a time and records every
// intermediate value, so a host can show why a system produced its outputs.
package explain

import (
	"crypto/rand"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/fuzzy/pkg/fuzzy/system"
)

// Builder produces explanation cards.
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// New creates a new explanation builder.
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Explanation is a record of one evaluation.
type Explanation struct {
	ID              string
	System          string
	AndMethod       system.AndMethod
	InferenceMethod system.InferenceMethod
	Inputs          []Input
	Firings         []Firing
	Outputs         map[string]float64
}

// Input is a crisp input and its membership in each set of its variable.
type Input struct {
	Variable    string
	Value       float64
	Memberships []Membership
}

// Membership is the degree of one set.
type Membership struct {
	Set    string
	Degree float64
}

// Firing is one rule's weighted activation.
type Firing struct {
	Output string
	Rule   string
	Set    string
	Degree float64
}

// Explain evaluates inputs on snap stage by stage and returns the record.
// Its outputs are identical to snap.Run with the same arguments.
func (b *Builder) Explain(snap *system.Snapshot, inputs map[string]float64, and system.AndMethod, method system.InferenceMethod) (Explanation, error) {
	fuzzy, err := snap.Fuzzify(inputs)
	if err != nil {
		return Explanation{}, fmt.Errorf("fuzzify: %w", err)
	}
	acts, err := snap.ApplyOperator(fuzzy, and)
	if err != nil {
		return Explanation{}, fmt.Errorf("apply operator: %w", err)
	}
	outputs, err := snap.Infer(acts, method)
	if err != nil {
		return Explanation{}, fmt.Errorf("infer: %w", err)
	}

	exp := Explanation{
		ID:              b.newID(),
		System:          snap.Name(),
		AndMethod:       and,
		InferenceMethod: method,
		Inputs:          make([]Input, 0, len(fuzzy)),
		Outputs:         outputs,
	}

	for _, name := range snap.Inputs() {
		in := Input{Variable: name, Value: inputs[name]}
		for set, degree := range fuzzy[name] {
			in.Memberships = append(in.Memberships, Membership{Set: set, Degree: degree})
		}
		sort.Slice(in.Memberships, func(i, j int) bool {
			return in.Memberships[i].Set < in.Memberships[j].Set
		})
		exp.Inputs = append(exp.Inputs, in)
	}

	for _, name := range snap.Outputs() {
		rules := snap.Rules(name)
		for i, act := range acts[name] {
			exp.Firings = append(exp.Firings, Firing{
				Output: name,
				Rule:   rules[i].String(),
				Set:    act.Set,
				Degree: act.Degree,
			})
		}
	}

	return exp, nil
}

func (b *Builder) newID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return ulid.MustNew(ulid.Now(), b.entropy).String()
}

// Render writes a plain-text view of the explanation.
func (e Explanation) Render(w io.Writer) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s [%s] and=%s inference=%s\n", e.System, e.ID, e.AndMethod, e.InferenceMethod)
	sb.WriteString("inputs:\n")
	for _, in := range e.Inputs {
		parts := make([]string, len(in.Memberships))
		for i, m := range in.Memberships {
			parts[i] = fmt.Sprintf("%s=%.3f", m.Set, m.Degree)
		}
		fmt.Fprintf(&sb, "  %s = %g (%s)\n", in.Variable, in.Value, strings.Join(parts, ", "))
	}

	sb.WriteString("rules:\n")
	for _, f := range e.Firings {
		fmt.Fprintf(&sb, "  %.3f  %s\n", f.Degree, f.Rule)
	}

	sb.WriteString("outputs:\n")
	names := make([]string, 0, len(e.Outputs))
	for name := range e.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "  %s = %.4f\n", name, e.Outputs[name])
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
