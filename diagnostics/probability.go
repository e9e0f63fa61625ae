package diagnostics

import (
	"fmt"
	"math"

	"github.com/katalvlaran/nomsim/matrix"
)

// Softmax returns exp(u_j)/Σ exp(u_k), shifted by max(u) so large
// utilities do not overflow.
func Softmax(u []float64) []float64 {
	out := make([]float64, len(u))
	if len(u) == 0 {
		return out
	}
	hi := u[0]
	for _, v := range u[1:] {
		hi = math.Max(hi, v)
	}
	var sum float64
	for j, v := range u {
		out[j] = math.Exp(v - hi)
		sum += out[j]
	}
	for j := range out {
		out[j] /= sum
	}

	return out
}

// ExpectedCounts sums the logit probabilities of every subject at one
// occasion (0-based): E[n_j] = Σ_i softmax(η[i, t*J : t*J+J])_j.
//
// Errors:
//   - ErrLengthMismatch for an occasion outside η or J < 2.
//   - Wrapped matrix errors.
func ExpectedCounts(eta matrix.Matrix, occasion, categories int) ([]float64, error) {
	if err := matrix.ValidateNotNil(eta); err != nil {
		return nil, fmt.Errorf("diagnostics: %w", err)
	}
	if categories < 2 || occasion < 0 || (occasion+1)*categories > eta.Cols() {
		return nil, fmt.Errorf("%w: occasion %d, J=%d, %d columns", ErrLengthMismatch, occasion, categories, eta.Cols())
	}

	exp := make([]float64, categories)
	u := make([]float64, categories)
	var (
		i, j int
		err  error
	)
	for i = 0; i < eta.Rows(); i++ {
		for j = 0; j < categories; j++ {
			if u[j], err = eta.At(i, occasion*categories+j); err != nil {
				return nil, fmt.Errorf("diagnostics: %w", err)
			}
		}
		for j, p := range Softmax(u) {
			exp[j] += p
		}
	}

	return exp, nil
}

// Counts tallies labels 1..J at one occasion (0-based).
//
// Errors:
//   - ErrEmpty for no subjects; ErrLengthMismatch for a ragged row, an
//     occasion out of range or a label outside 1..J.
func Counts(responses [][]int, occasion, categories int) ([]float64, error) {
	if len(responses) == 0 {
		return nil, ErrEmpty
	}
	out := make([]float64, categories)
	for i, row := range responses {
		if occasion < 0 || occasion >= len(row) {
			return nil, fmt.Errorf("%w: subject %d has %d occasions", ErrLengthMismatch, i+1, len(row))
		}
		y := row[occasion]
		if y < 1 || y > categories {
			return nil, fmt.Errorf("%w: subject %d label %d outside 1..%d", ErrLengthMismatch, i+1, y, categories)
		}
		out[y-1]++
	}

	return out, nil
}

// Frequencies is Counts divided by the number of subjects.
func Frequencies(responses [][]int, occasion, categories int) ([]float64, error) {
	c, err := Counts(responses, occasion, categories)
	if err != nil {
		return nil, err
	}
	n := float64(len(responses))
	for j := range c {
		c[j] /= n
	}

	return c, nil
}
