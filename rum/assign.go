package rum

import (
	"fmt"
	"math"

	"github.com/katalvlaran/nomsim/matrix"
)

// Assign returns the R×T response labels (1..J) maximizing η + latent.
//
// Inputs:
//   - eta, latent: R × (T·J) matrices, column t*J + j.
//   - clsize (T) ≥ 1, categories (J) ≥ 2.
//
// Errors:
//   - matrix.ErrInvalidDimensions for T < 1 or J < 2.
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch for shape problems.
//   - matrix.ErrNaNInf when a utility is NaN.
//
// Complexity:
//   - Time O(R·T·J), Space O(R·T).
func Assign(eta, latent matrix.Matrix, clsize, categories int) ([][]int, error) {
	if clsize < 1 || categories < 2 {
		return nil, fmt.Errorf("rum: T=%d J=%d: %w", clsize, categories, matrix.ErrInvalidDimensions)
	}
	if err := matrix.ValidateBinarySameShape(eta, latent); err != nil {
		return nil, fmt.Errorf("rum: %w", err)
	}
	if eta.Cols() != clsize*categories {
		return nil, fmt.Errorf("rum: %d columns for T=%d J=%d: %w",
			eta.Cols(), clsize, categories, matrix.ErrDimensionMismatch)
	}

	subjects := eta.Rows()
	out := make([][]int, subjects)
	utility := make([]float64, categories)
	var (
		i, t, j int
		e, l    float64
		err     error
	)
	for i = 0; i < subjects; i++ {
		out[i] = make([]int, clsize)
		for t = 0; t < clsize; t++ {
			for j = 0; j < categories; j++ {
				if e, err = eta.At(i, t*categories+j); err != nil {
					return nil, fmt.Errorf("rum: %w", err)
				}
				if l, err = latent.At(i, t*categories+j); err != nil {
					return nil, fmt.Errorf("rum: %w", err)
				}
				utility[j] = e + l
			}
			if out[i][t], err = argmax(utility); err != nil {
				return nil, fmt.Errorf("rum: subject %d occasion %d: %w", i+1, t+1, err)
			}
		}
	}

	return out, nil
}

// Choose is Assign for a single occasion: it returns the 1-based label of
// the largest utility, ties to the smallest index.
func Choose(utility []float64) (int, error) {
	if len(utility) == 0 {
		return 0, fmt.Errorf("rum: %w", matrix.ErrInvalidDimensions)
	}

	return argmax(utility)
}

// argmax keeps the first maximum: only a strictly greater value replaces it.
func argmax(u []float64) (int, error) {
	best := 0
	var j int
	for j = 0; j < len(u); j++ {
		if math.IsNaN(u[j]) {
			return 0, fmt.Errorf("category %d: %w", j+1, matrix.ErrNaNInf)
		}
		if u[j] > u[best] {
			best = j
		}
	}

	return best + 1, nil
}
