package norta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nomsim/matrix"
	"github.com/katalvlaran/nomsim/norta"
)

func TestKroneckerIdentity(t *testing.T) {
	occ := mustDense(t, 2, 2, []float64{1, 0.5, 0.5, 1})
	s, err := norta.KroneckerIdentity(occ, 2)
	require.NoError(t, err)

	want := [][]float64{
		{1, 0, 0.5, 0},
		{0, 1, 0, 0.5},
		{0.5, 0, 1, 0},
		{0, 0.5, 0, 1},
	}
	for i := range want {
		for j := range want[i] {
			assert.Equal(t, want[i][j], mustAt(t, s, i, j), "(%d,%d)", i, j)
		}
	}

	_, err = norta.KroneckerIdentity(nil, 2)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = norta.KroneckerIdentity(mustDense(t, 1, 2, []float64{1, 0}), 2)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestExchangeableAndAR1(t *testing.T) {
	ex, err := norta.Exchangeable(3, 0.2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, mustAt(t, ex, 1, 1))
	assert.Equal(t, 0.2, mustAt(t, ex, 0, 2))

	ar, err := norta.AR1(3, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, mustAt(t, ar, 2, 2))
	assert.Equal(t, 0.5, mustAt(t, ar, 1, 2))
	assert.Equal(t, 0.25, mustAt(t, ar, 2, 0))

	_, err = norta.AR1(0, 0.5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
