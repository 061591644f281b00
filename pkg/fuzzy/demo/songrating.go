// Package demo contains a small example rule set: rating a song from how good
// its vocals and its instrumentals are, each on a 0-10 scale.
package demo

import (
	"github.com/cognicore/fuzzy/pkg/fuzzy/rule"
	"github.com/cognicore/fuzzy/pkg/fuzzy/set"
	"github.com/cognicore/fuzzy/pkg/fuzzy/system"
	"github.com/cognicore/fuzzy/pkg/fuzzy/variable"
)

// Variable names used by SongRating.
const (
	VoiceRate        = "VoiceRate"
	InstrumentalRate = "InstrumentalRate"
	SongRate         = "SongRate"
)

// Rating builds a 0-10 variable with Bad, Medium and Good sets.
func Rating(name string) (*variable.Variable, error) {
	v := variable.New(name)

	bad, err := set.NewDiagonal("Bad", 4, 0)
	if err != nil {
		return nil, err
	}
	medium, err := set.NewTriangular("Medium", 3, 5, 7)
	if err != nil {
		return nil, err
	}
	good, err := set.NewDiagonal("Good", 6, 10)
	if err != nil {
		return nil, err
	}

	for _, s := range []set.Set{bad, medium, good} {
		if err := v.AddSet(s); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// SongRating builds the system
//
//	IF VoiceRate IS Good AND InstrumentalRate IS Good THEN SongRate IS Good
//	IF VoiceRate IS Bad THEN SongRate IS Bad
//	IF InstrumentalRate IS Bad THEN SongRate IS Bad
//	IF VoiceRate IS Medium THEN SongRate IS Medium
//	IF InstrumentalRate IS Medium THEN SongRate IS Medium
func SongRating(opts ...system.Option) (*system.System, error) {
	sys := system.New("SongRating", opts...)

	for _, name := range []string{VoiceRate, InstrumentalRate} {
		v, err := Rating(name)
		if err != nil {
			return nil, err
		}
		if err := sys.AddIndependent(v); err != nil {
			return nil, err
		}
	}

	song, err := Rating(SongRate)
	if err != nil {
		return nil, err
	}
	if err := sys.AddDependent(song); err != nil {
		return nil, err
	}

	then := func(s string) rule.Term { return rule.Term{Variable: SongRate, Set: s} }
	rules := []rule.Rule{
		rule.New(map[string]string{VoiceRate: "Good", InstrumentalRate: "Good"}, then("Good")),
		rule.New(map[string]string{VoiceRate: "Bad"}, then("Bad")),
		rule.New(map[string]string{InstrumentalRate: "Bad"}, then("Bad")),
		rule.New(map[string]string{VoiceRate: "Medium"}, then("Medium")),
		rule.New(map[string]string{InstrumentalRate: "Medium"}, then("Medium")),
	}
	for _, r := range rules {
		if err := sys.AddRule(r); err != nil {
			return nil, err
		}
	}
	return sys, nil
}
