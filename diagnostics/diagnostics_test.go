package diagnostics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nomsim/diagnostics"
	"github.com/katalvlaran/nomsim/matrix"
)

func TestSoftmax(t *testing.T) {
	assert.Equal(t, []float64{0.5, 0.5}, diagnostics.Softmax([]float64{0, 0}))

	p := diagnostics.Softmax([]float64{1000, 0, -1000})
	assert.InDelta(t, 1, p[0], 1e-12)
	assert.InDelta(t, 0, p[2], 1e-12)

	p = diagnostics.Softmax([]float64{0.5, -0.3, 0})
	var sum float64
	for _, v := range p {
		sum += v
	}
	assert.InDelta(t, 1, sum, 1e-15)
	assert.InDelta(t, math.Exp(0.5)/(math.Exp(0.5)+math.Exp(-0.3)+1), p[0], 1e-15)

	assert.Empty(t, diagnostics.Softmax(nil))
}

func TestExpectedCounts(t *testing.T) {
	eta, err := matrix.NewDenseFrom(2, 2, []float64{0, 0, math.Log(3), 0})
	require.NoError(t, err)

	exp, err := diagnostics.ExpectedCounts(eta, 0, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.25, exp[0], 1e-12)
	assert.InDelta(t, 0.75, exp[1], 1e-12)

	_, err = diagnostics.ExpectedCounts(eta, 1, 2)
	require.ErrorIs(t, err, diagnostics.ErrLengthMismatch)
	_, err = diagnostics.ExpectedCounts(nil, 0, 2)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestCountsAndFrequencies(t *testing.T) {
	y := [][]int{{1, 3}, {2, 3}, {1, 1}, {3, 2}}

	c, err := diagnostics.Counts(y, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1, 1}, c)

	f, err := diagnostics.Frequencies(y, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.25, 0.5}, f)

	_, err = diagnostics.Counts(nil, 0, 3)
	require.ErrorIs(t, err, diagnostics.ErrEmpty)
	_, err = diagnostics.Counts(y, 2, 3)
	require.ErrorIs(t, err, diagnostics.ErrLengthMismatch)
	_, err = diagnostics.Counts([][]int{{4}}, 0, 3)
	require.ErrorIs(t, err, diagnostics.ErrLengthMismatch)
}

func TestGoodnessOfFit(t *testing.T) {
	fit, err := diagnostics.GoodnessOfFit([]float64{10, 20}, []float64{15, 15})
	require.NoError(t, err)
	assert.InDelta(t, 10.0/3, fit.Statistic, 1e-12)
	assert.Equal(t, 1, fit.DF)
	assert.InDelta(t, math.Erfc(math.Sqrt(fit.Statistic/2)), fit.PValue, 1e-9)

	fit, err = diagnostics.GoodnessOfFit([]float64{5, 5, 0}, []float64{5, 5, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, fit.Statistic)
	assert.Equal(t, 1, fit.DF)
	assert.InDelta(t, 1, fit.PValue, 1e-12)

	_, err = diagnostics.GoodnessOfFit([]float64{1}, []float64{1, 2})
	require.ErrorIs(t, err, diagnostics.ErrLengthMismatch)
	_, err = diagnostics.GoodnessOfFit([]float64{1, 0}, []float64{1, 0})
	require.ErrorIs(t, err, diagnostics.ErrEmpty)
}

func TestCramersV(t *testing.T) {
	perfect := [][]int{{1, 1}, {2, 2}, {1, 1}, {2, 2}}
	v, err := diagnostics.CramersV(perfect, 0, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1, v, 1e-12)

	none := [][]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}}
	v, err = diagnostics.CramersV(none, 0, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0, v, 1e-12)

	constant := [][]int{{1, 1}, {1, 2}}
	v, err = diagnostics.CramersV(constant, 0, 1, 3)
	require.NoError(t, err)
	assert.Zero(t, v)

	table, err := diagnostics.Contingency(perfect, 0, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 0}, {0, 2}}, table)

	for _, categories := range []int{0, -1} {
		_, err = diagnostics.Contingency(perfect, 0, 1, categories)
		require.ErrorIs(t, err, diagnostics.ErrLengthMismatch, "categories=%d", categories)
	}

	_, err = diagnostics.CramersV(perfect, 0, 2, 2)
	require.ErrorIs(t, err, diagnostics.ErrLengthMismatch)
}

func TestLatentCorrelationAndGap(t *testing.T) {
	latent, err := matrix.NewDenseFrom(4, 2, []float64{
		1, 2,
		2, 4,
		3, 6,
		5, 10,
	})
	require.NoError(t, err)

	corr, err := diagnostics.LatentCorrelation(latent)
	require.NoError(t, err)
	v, err := corr.At(0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1, v, 1e-12)

	id, err := matrix.Identity(2)
	require.NoError(t, err)
	gap, err := diagnostics.CorrelationGap(latent, id)
	require.NoError(t, err)
	assert.InDelta(t, 1, gap, 1e-12)

	_, err = diagnostics.CorrelationGap(latent, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
