// Package set implements the piecewise-linear membership curves used by fuzzy variables.
//
// A Set is a closed variant over three geometries:
//
//	Diagonal    single ramp between a zero and a one breakpoint
//	Triangular  rise to a single peak, then fall
//	Trapezoid   rise, plateau, fall
//
// Sets are immutable values; construct them with NewDiagonal, NewTriangular or NewTrapezoid.
package set

import (
	"fmt"
	"math"

	"github.com/cognicore/fuzzy/pkg/fuzzy/fuzzyerr"
)

// Kind identifies the geometry of a Set.
type Kind uint8

const (
	KindDiagonal Kind = iota
	KindTriangular
	KindTrapezoid
)

func (k Kind) String() string {
	switch k {
	case KindDiagonal:
		return "diagonal"
	case KindTriangular:
		return "triangular"
	case KindTrapezoid:
		return "trapezoid"
	default:
		return "unknown"
	}
}

// Set is a named membership curve.
//
// Breakpoint layout by kind:
//
//	Diagonal    [zero, one]
//	Triangular  [minZero, one, maxZero]
//	Trapezoid   [minZero, minOne, maxOne, maxZero]
type Set struct {
	name   string
	kind   Kind
	points [4]float64
	rise   float64 // slope of the rising edge (Diagonal: the only edge)
	fall   float64 // slope of the falling edge, negative
}

// NewDiagonal creates a ramp that is 0 at zero and 1 at one.
// It rises when zero < one and falls otherwise.
func NewDiagonal(name string, zero, one float64) (Set, error) {
	if err := finite(name, zero, one); err != nil {
		return Set{}, err
	}
	if zero == one {
		return Set{}, fmt.Errorf("%w: %q has zero == one (%g)", fuzzyerr.ErrDegenerateSet, name, zero)
	}
	return Set{
		name:   name,
		kind:   KindDiagonal,
		points: [4]float64{zero, one},
		rise:   1 / (one - zero),
	}, nil
}

// NewTriangular creates a triangle rising from minZero to one and falling to maxZero.
func NewTriangular(name string, minZero, one, maxZero float64) (Set, error) {
	if err := finite(name, minZero, one, maxZero); err != nil {
		return Set{}, err
	}
	if !(minZero < one && one < maxZero) {
		return Set{}, fmt.Errorf("%w: %q requires minZero < one < maxZero, got %g, %g, %g",
			fuzzyerr.ErrInvalidParameters, name, minZero, one, maxZero)
	}
	return Set{
		name:   name,
		kind:   KindTriangular,
		points: [4]float64{minZero, one, maxZero},
		rise:   1 / (one - minZero),
		fall:   1 / (one - maxZero),
	}, nil
}

// NewTrapezoid creates a trapezoid rising from minZero to minOne, flat until maxOne
// and falling to maxZero.
func NewTrapezoid(name string, minZero, minOne, maxOne, maxZero float64) (Set, error) {
	if err := finite(name, minZero, minOne, maxOne, maxZero); err != nil {
		return Set{}, err
	}
	if !(minZero < minOne && minOne < maxOne && maxOne < maxZero) {
		return Set{}, fmt.Errorf("%w: %q requires minZero < minOne < maxOne < maxZero, got %g, %g, %g, %g",
			fuzzyerr.ErrInvalidParameters, name, minZero, minOne, maxOne, maxZero)
	}
	return Set{
		name:   name,
		kind:   KindTrapezoid,
		points: [4]float64{minZero, minOne, maxOne, maxZero},
		rise:   1 / (minOne - minZero),
		fall:   1 / (maxOne - maxZero),
	}, nil
}

func finite(name string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %q has non-finite breakpoint %g", fuzzyerr.ErrInvalidParameters, name, v)
		}
	}
	return nil
}

// Name returns the set name.
func (s Set) Name() string { return s.name }

// Kind returns the set geometry.
func (s Set) Kind() Kind { return s.kind }

// Breakpoints returns the defining breakpoints in constructor order.
func (s Set) Breakpoints() []float64 {
	switch s.kind {
	case KindDiagonal:
		return []float64{s.points[0], s.points[1]}
	case KindTriangular:
		return []float64{s.points[0], s.points[1], s.points[2]}
	default:
		return []float64{s.points[0], s.points[1], s.points[2], s.points[3]}
	}
}

func (s Set) String() string {
	return fmt.Sprintf("%s%v", s.kind, s.Breakpoints())
}

// Membership returns the degree of membership of x, always within [0, 1].
func (s Set) Membership(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return clamp(s.membership(x))
}

func (s Set) membership(x float64) float64 {
	p := s.points
	switch s.kind {
	case KindDiagonal:
		zero, one := p[0], p[1]
		if zero < one {
			switch {
			case x <= zero:
				return 0
			case x >= one:
				return 1
			}
			return s.rise * (x - zero)
		}
		switch {
		case x >= zero:
			return 0
		case x <= one:
			return 1
		}
		return 1 + s.rise*(x-one)

	case KindTriangular:
		minZero, one, maxZero := p[0], p[1], p[2]
		if x <= minZero || x >= maxZero {
			return 0
		}
		if x < one {
			return s.rise * (x - minZero)
		}
		return 1 + s.fall*(x-one)

	case KindTrapezoid:
		minZero, minOne, maxOne, maxZero := p[0], p[1], p[2], p[3]
		switch {
		case x <= minZero || x >= maxZero:
			return 0
		case x >= minOne && x <= maxOne:
			return 1
		case x < minOne:
			return s.rise * (x - minZero)
		}
		return 1 + s.fall*(x-maxOne)
	}
	return 0
}

// Indicator reports whether x lies inside the open support of the curve.
func (s Set) Indicator(x float64) bool {
	p := s.points
	if s.kind == KindDiagonal {
		if p[0] < p[1] {
			return x > p[0]
		}
		return x < p[0]
	}
	lo, hi := p[0], p[2]
	if s.kind == KindTrapezoid {
		hi = p[3]
	}
	return x > lo && x < hi
}

// FirstIntersection returns the point where the rising edge reaches mu.
// mu is clamped to [0, 1]. For a Diagonal set this is its only edge.
func (s Set) FirstIntersection(mu float64) float64 {
	mu = clamp(mu)
	p := s.points
	if s.kind == KindDiagonal && p[0] > p[1] {
		return (mu-1)/s.rise + p[1]
	}
	return mu/s.rise + p[0]
}

// LastIntersection returns the point where the falling edge reaches mu.
// mu is clamped to [0, 1]. For a Diagonal set it equals FirstIntersection.
func (s Set) LastIntersection(mu float64) float64 {
	mu = clamp(mu)
	switch s.kind {
	case KindTriangular:
		return (mu-1)/s.fall + s.points[1]
	case KindTrapezoid:
		return (mu-1)/s.fall + s.points[2]
	}
	return s.FirstIntersection(mu)
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
