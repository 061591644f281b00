package variable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/fuzzy/pkg/fuzzy/fuzzyerr"
	"github.com/cognicore/fuzzy/pkg/fuzzy/set"
)

func rating(t *testing.T, name string) *Variable {
	t.Helper()
	v := New(name)

	bad, err := set.NewDiagonal("Bad", 4, 0)
	require.NoError(t, err)
	medium, err := set.NewTriangular("Medium", 3, 5, 7)
	require.NoError(t, err)
	good, err := set.NewDiagonal("Good", 6, 10)
	require.NoError(t, err)

	require.NoError(t, v.AddSet(bad))
	require.NoError(t, v.AddSet(medium))
	require.NoError(t, v.AddSet(good))
	return v
}

func TestAddSetDuplicate(t *testing.T) {
	v := rating(t, "VoiceRate")

	again, err := set.NewTriangular("Medium", 0, 1, 2)
	require.NoError(t, err)

	err = v.AddSet(again)
	assert.ErrorIs(t, err, fuzzyerr.ErrDuplicateName)
	assert.Len(t, v.Sets(), 3)
}

func TestFuzzify(t *testing.T) {
	v := rating(t, "VoiceRate")

	got := v.Fuzzify(8)
	assert.Equal(t, map[string]float64{"Bad": 0, "Medium": 0, "Good": 0.5}, got)
}

func TestFuzzifyIncludesZeroEntries(t *testing.T) {
	v := rating(t, "VoiceRate")

	got := v.Fuzzify(5)
	require.Len(t, got, 3)
	assert.Equal(t, 0.0, got["Bad"])
	assert.Equal(t, 1.0, got["Medium"])
	assert.Equal(t, 0.0, got["Good"])
}

func TestIntersections(t *testing.T) {
	v := rating(t, "SongRate")

	x, err := v.FirstIntersection("Medium", 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, x, 1e-9)

	x, err = v.LastIntersection("Medium", 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, x, 1e-9)

	x, err = v.LastIntersection("Good", 1)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, x, 1e-9)

	_, err = v.FirstIntersection("Great", 1)
	assert.ErrorIs(t, err, fuzzyerr.ErrUnknownSet)
	_, err = v.LastIntersection("Great", 1)
	assert.ErrorIs(t, err, fuzzyerr.ErrUnknownSet)
}

func TestSetsKeepOrder(t *testing.T) {
	v := rating(t, "VoiceRate")

	var names []string
	for _, s := range v.Sets() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"Bad", "Medium", "Good"}, names)
	assert.True(t, v.Has("Good"))
	assert.False(t, v.Has("good"))
}

func TestCloneIsIndependent(t *testing.T) {
	v := rating(t, "VoiceRate")
	c := v.Clone()

	extra, err := set.NewDiagonal("Great", 9, 12)
	require.NoError(t, err)
	require.NoError(t, v.AddSet(extra))

	assert.True(t, v.Has("Great"))
	assert.False(t, c.Has("Great"))
	assert.Len(t, c.Fuzzify(10), 3)
	assert.Equal(t, "VoiceRate", c.Name())
}
