package linpred_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nomsim/linpred"
	"github.com/katalvlaran/nomsim/matrix"
)

func mustDense(t *testing.T, r, c int, data []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, data)
	require.NoError(t, err)

	return m
}

func at(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// TestBuild_SharedVaryingDesign: R=2, T=2, J=3, p=1 with a subject-occasion design.
func TestBuild_SharedVaryingDesign(t *testing.T) {
	x := mustDense(t, 4, 1, []float64{
		1,  // subject 1, occasion 1
		2,  // subject 1, occasion 2
		-1, // subject 2, occasion 1
		0,  // subject 2, occasion 2
	})
	coef := linpred.Shared([]float64{
		0.5, 1.0, // category 1: α, β
		-1.0, 2.0, // category 2: α, β
	})

	eta, err := linpred.Build(x, coef, 2, 2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, eta.Rows())
	require.Equal(t, 6, eta.Cols())

	want := [][]float64{
		{1.5, 1.0, 0, 2.5, 3.0, 0},
		{-0.5, -3.0, 0, 0.5, -1.0, 0},
	}
	for i := range want {
		for c := range want[i] {
			assert.InDelta(t, want[i][c], at(t, eta, i, c), 1e-15, "η[%d,%d]", i, c)
		}
	}
}

func TestBuild_PerOccasionNoCovariates(t *testing.T) {
	coef := linpred.PerOccasion([][]float64{{0.1}, {0.2}, {0.3}})
	eta, err := linpred.Build(nil, coef, 2, 3, 2)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		assert.Equal(t, 0.1, at(t, eta, i, 0))
		assert.Equal(t, 0.0, at(t, eta, i, 1))
		assert.Equal(t, 0.2, at(t, eta, i, 2))
		assert.Equal(t, 0.3, at(t, eta, i, 4))
		assert.Equal(t, 0.0, at(t, eta, i, 5))
	}
}

func TestBuild_TimeInvariantDesignBroadcasts(t *testing.T) {
	x := mustDense(t, 2, 1, []float64{1, 3})
	eta, err := linpred.Build(x, linpred.Shared([]float64{0, 1}), 2, 2, 2)
	require.NoError(t, err)

	assert.Equal(t, 1.0, at(t, eta, 0, 0))
	assert.Equal(t, 1.0, at(t, eta, 0, 2))
	assert.Equal(t, 3.0, at(t, eta, 1, 0))
	assert.Equal(t, 3.0, at(t, eta, 1, 2))
}

func TestBuild_DimensionMismatch(t *testing.T) {
	x := mustDense(t, 4, 2, []float64{1, 2, 3, 4, 5, 6, 7, 8})

	cases := []struct {
		name   string
		design matrix.Matrix
		coef   linpred.Coefficients
	}{
		{"shared too short", x, linpred.Shared([]float64{1, 2})},
		{"shared too long", nil, linpred.Shared([]float64{1, 2, 3})},
		{"per-occasion wrong row count", nil, linpred.PerOccasion([][]float64{{1, 2}})},
		{"per-occasion ragged", nil, linpred.PerOccasion([][]float64{{1, 2}, {1}})},
		{"design rows", mustDense(t, 3, 1, []float64{1, 2, 3}), linpred.Shared([]float64{1, 2, 3, 4})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := linpred.Build(tc.design, tc.coef, 2, 2, 3)
			assert.ErrorIs(t, err, linpred.ErrDimensionMismatch)
		})
	}
}

func TestBuild_InvalidInputs(t *testing.T) {
	_, err := linpred.Build(nil, linpred.Coefficients{}, 2, 2, 3)
	assert.ErrorIs(t, err, linpred.ErrNoCoefficients)

	_, err = linpred.Build(nil, linpred.Shared([]float64{0}), 2, 2, 1)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestCoefficients_CopiesInput(t *testing.T) {
	row := []float64{1, 2}
	c := linpred.Shared(row)
	row[0] = 99
	eta, err := linpred.Build(nil, c, 1, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, at(t, eta, 0, 0))
	assert.Equal(t, linpred.FormShared, c.Form())
	assert.Equal(t, "shared", c.Form().String())
	assert.Equal(t, 4, linpred.Width(1, 3))
}
