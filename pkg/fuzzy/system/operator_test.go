package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/fuzzy/pkg/fuzzy/fuzzyerr"
)

func TestConjoin(t *testing.T) {
	got, err := Conjoin(AndMin, []float64{0.3, 0.7})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, got, 1e-6)

	got, err = Conjoin(AndProd, []float64{0.3, 0.7})
	require.NoError(t, err)
	assert.InDelta(t, 0.21, got, 1e-6)
}

func TestConjoinEmpty(t *testing.T) {
	for _, m := range []AndMethod{AndMin, AndProd} {
		got, err := Conjoin(m, nil)
		require.NoError(t, err)
		assert.Equal(t, 0.0, got, "method %s", m)
	}
}

func TestConjoinUnknownMethod(t *testing.T) {
	_, err := Conjoin(AndMethod(3), []float64{1})
	assert.ErrorIs(t, err, fuzzyerr.ErrUnknownOperator)
}

func TestParseAndMethod(t *testing.T) {
	m, err := ParseAndMethod("min")
	require.NoError(t, err)
	assert.Equal(t, AndMin, m)

	m, err = ParseAndMethod("prod")
	require.NoError(t, err)
	assert.Equal(t, AndProd, m)

	_, err = ParseAndMethod("max")
	assert.ErrorIs(t, err, fuzzyerr.ErrUnknownOperator)
}

func TestParseInferenceMethod(t *testing.T) {
	m, err := ParseInferenceMethod("last_of_maxima")
	require.NoError(t, err)
	assert.Equal(t, LastOfMaxima, m)

	m, err = ParseInferenceMethod("first_of_maxima")
	require.NoError(t, err)
	assert.Equal(t, FirstOfMaxima, m)

	_, err = ParseInferenceMethod("centroid")
	assert.ErrorIs(t, err, fuzzyerr.ErrUnknownOperator)
}

func TestMethodDefaults(t *testing.T) {
	var and AndMethod
	var inf InferenceMethod

	assert.Equal(t, "min", and.String())
	assert.Equal(t, "last_of_maxima", inf.String())
	assert.Equal(t, "AndMethod(7)", AndMethod(7).String())
	assert.Equal(t, "InferenceMethod(7)", InferenceMethod(7).String())
}
