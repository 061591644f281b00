package system

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/fuzzy/pkg/fuzzy/fuzzyerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/rule"
	"github.com/cognicore/fuzzy/pkg/fuzzy/set"
	"github.com/cognicore/fuzzy/pkg/fuzzy/variable"
)

// rating builds a variable with Bad/Medium/Good sets over a 0-10 scale.
func rating(t *testing.T, name string) *variable.Variable {
	t.Helper()
	v := variable.New(name)

	bad, err := set.NewDiagonal("Bad", 4, 0)
	require.NoError(t, err)
	medium, err := set.NewTriangular("Medium", 3, 5, 7)
	require.NoError(t, err)
	good, err := set.NewDiagonal("Good", 6, 10)
	require.NoError(t, err)

	for _, s := range []set.Set{bad, medium, good} {
		require.NoError(t, v.AddSet(s))
	}
	return v
}

func when(name, setName string) map[string]string {
	return map[string]string{name: setName}
}

func then(setName string) rule.Term {
	return rule.Term{Variable: "SongRate", Set: setName}
}

func songRating(t *testing.T, opts ...Option) *System {
	t.Helper()
	sys := New("SongRating", opts...)

	require.NoError(t, sys.AddIndependent(rating(t, "VoiceRate")))
	require.NoError(t, sys.AddIndependent(rating(t, "InstrumentalRate")))
	require.NoError(t, sys.AddDependent(rating(t, "SongRate")))

	rules := []rule.Rule{
		rule.New(map[string]string{"VoiceRate": "Good", "InstrumentalRate": "Good"}, then("Good")),
		rule.New(when("VoiceRate", "Bad"), then("Bad")),
		rule.New(when("InstrumentalRate", "Bad"), then("Bad")),
		rule.New(when("VoiceRate", "Medium"), then("Medium")),
		rule.New(when("InstrumentalRate", "Medium"), then("Medium")),
	}
	for _, r := range rules {
		require.NoError(t, sys.AddRule(r))
	}
	return sys
}

func TestAddVariableDuplicate(t *testing.T) {
	sys := New("dup")

	require.NoError(t, sys.AddIndependent(rating(t, "VoiceRate")))
	err := sys.AddIndependent(rating(t, "VoiceRate"))
	assert.ErrorIs(t, err, fuzzyerr.ErrDuplicateVariable)

	require.NoError(t, sys.AddDependent(rating(t, "SongRate")))
	err = sys.AddDependent(rating(t, "SongRate"))
	assert.ErrorIs(t, err, fuzzyerr.ErrDuplicateVariable)

	// The registries are separate.
	assert.NoError(t, sys.AddDependent(rating(t, "VoiceRate")))
}

func TestAddDependentStartsWithNoRules(t *testing.T) {
	sys := New("empty")
	require.NoError(t, sys.AddDependent(rating(t, "SongRate")))

	assert.Empty(t, sys.Rules("SongRate"))
	assert.NotNil(t, sys.Rules("SongRate"))
}

func TestAddRuleValidation(t *testing.T) {
	tests := []struct {
		name string
		rule rule.Rule
		want error
	}{
		{
			name: "unknown consequent variable",
			rule: rule.New(when("VoiceRate", "Good"), rule.Term{Variable: "AlbumRate", Set: "Good"}),
			want: fuzzyerr.ErrUnknownVariable,
		},
		{
			name: "unknown consequent set",
			rule: rule.New(when("VoiceRate", "Good"), then("Excellent")),
			want: fuzzyerr.ErrUnknownSet,
		},
		{
			name: "unknown antecedent variable",
			rule: rule.New(when("Tempo", "Fast"), then("Good")),
			want: fuzzyerr.ErrUnknownVariable,
		},
		{
			name: "output used as antecedent",
			rule: rule.New(when("SongRate", "Good"), then("Good")),
			want: fuzzyerr.ErrUnknownVariable,
		},
		{
			name: "unknown antecedent set",
			rule: rule.New(map[string]string{"VoiceRate": "Good", "InstrumentalRate": "Superb"}, then("Good")),
			want: fuzzyerr.ErrUnknownSet,
		},
		{
			name: "input used as consequent",
			rule: rule.New(when("VoiceRate", "Good"), rule.Term{Variable: "VoiceRate", Set: "Good"}),
			want: fuzzyerr.ErrUnknownVariable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := songRating(t)
			before := len(sys.Rules("SongRate"))

			err := sys.AddRule(tt.rule)
			assert.ErrorIs(t, err, tt.want)
			assert.Len(t, sys.Rules("SongRate"), before, "rejected rule must not be stored")
		})
	}
}

func TestAddRuleKeepsOrder(t *testing.T) {
	sys := songRating(t)

	var got []string
	for _, r := range sys.Rules("SongRate") {
		got = append(got, r.Consequent().Set)
	}
	assert.Equal(t, []string{"Good", "Bad", "Bad", "Medium", "Medium"}, got)
}

func TestAddRuleWithoutAntecedents(t *testing.T) {
	sys := songRating(t)
	assert.NoError(t, sys.AddRule(rule.New(nil, then("Medium"))))
}

func TestAddRuleSeesSetsAddedAfterRegistration(t *testing.T) {
	sys := New("late")
	voice := variable.New("VoiceRate")
	require.NoError(t, sys.AddIndependent(voice))
	require.NoError(t, sys.AddDependent(rating(t, "SongRate")))

	err := sys.AddRule(rule.New(when("VoiceRate", "Loud"), then("Good")))
	require.ErrorIs(t, err, fuzzyerr.ErrUnknownSet)

	loud, err := set.NewDiagonal("Loud", 0, 10)
	require.NoError(t, err)
	require.NoError(t, voice.AddSet(loud))

	assert.NoError(t, sys.AddRule(rule.New(when("VoiceRate", "Loud"), then("Good"))))
}

func TestFreezeIsIsolated(t *testing.T) {
	sys := songRating(t)
	snap := sys.Freeze()

	require.NoError(t, sys.AddRule(rule.New(nil, then("Medium"))))
	require.NoError(t, sys.AddIndependent(rating(t, "Tempo")))

	assert.Len(t, snap.Rules("SongRate"), 5)
	assert.Len(t, sys.Rules("SongRate"), 6)
	assert.Equal(t, []string{"VoiceRate", "InstrumentalRate"}, snap.Inputs())
	assert.Equal(t, []string{"SongRate"}, snap.Outputs())
	assert.Nil(t, snap.Rules("AlbumRate"))

	// The snapshot does not need the new input.
	_, err := snap.Run(map[string]float64{"VoiceRate": 1, "InstrumentalRate": 1}, AndMin, LastOfMaxima)
	assert.NoError(t, err)
}

func TestReconfigureAfterQuery(t *testing.T) {
	sys := songRating(t)
	in := map[string]float64{"VoiceRate": 5, "InstrumentalRate": 5}

	out, err := sys.Run(in, AndMin, LastOfMaxima)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, out["SongRate"], 1e-9)

	require.NoError(t, sys.AddRule(rule.New(when("VoiceRate", "Medium"), then("Good")).WithWeight(2)))

	out, err = sys.Run(in, AndMin, LastOfMaxima)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, out["SongRate"], 1e-9)
}

func TestLoggerReceivesConfigurationEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	sys := songRating(t, WithLogger(logger))
	_ = sys.AddRule(rule.New(when("Tempo", "Fast"), then("Good")))

	logs := buf.String()
	assert.Contains(t, logs, "independent variable added")
	assert.Contains(t, logs, "rule added")
	assert.Contains(t, logs, "rule rejected")
	assert.Contains(t, logs, "system=SongRating")
}

func TestWithLoggerNilKeepsDefault(t *testing.T) {
	sys := New("quiet", WithLogger(nil))
	assert.NotPanics(t, func() {
		_ = sys.AddDependent(rating(t, "SongRate"))
	})
}
