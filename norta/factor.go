package norta

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/nomsim/matrix"
)

// FactorMethod records how Σ was factored.
type FactorMethod int

const (
	// FactorCholesky is the lower Cholesky factor; used when Σ is positive definite.
	FactorCholesky FactorMethod = iota

	// FactorSpectral is Q·diag(√λ⁺) from the symmetric eigendecomposition;
	// used for singular (semi-definite) Σ, e.g. perfectly correlated occasions.
	FactorSpectral
)

// String returns "cholesky" or "spectral".
func (f FactorMethod) String() string {
	if f == FactorSpectral {
		return "spectral"
	}

	return "cholesky"
}

// Factor returns L with L·Lᵀ = Σ. Σ is symmetrized first; it should already
// have passed ValidateCorrelation.
//
// Errors:
//   - wrapped matrix errors (nil, non-square, eigen failure).
func Factor(sigma matrix.Matrix) (*matrix.Dense, FactorMethod, error) {
	sym, err := matrix.Symmetrize(sigma)
	if err != nil {
		return nil, 0, fmt.Errorf("norta: factor: %w", err)
	}
	n := sym.Rows()

	data := make([]float64, n*n)
	var i, j, k int
	var row []float64
	for i = 0; i < n; i++ {
		if row, err = sym.Row(i); err != nil {
			return nil, 0, fmt.Errorf("norta: factor: %w", err)
		}
		copy(data[i*n:(i+1)*n], row)
	}

	var chol mat.Cholesky
	if chol.Factorize(mat.NewSymDense(n, data)) {
		var tri mat.TriDense
		chol.LTo(&tri)
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				data[i*n+j] = tri.At(i, j)
			}
		}
		L, err := matrix.NewDenseFrom(n, n, data)
		if err != nil {
			return nil, 0, fmt.Errorf("norta: factor: %w", err)
		}
		return L, FactorCholesky, nil
	}

	// Not positive definite: L[i,k] = Q[i,k]·√max(λ_k, 0).
	eigs, q, err := matrix.Eigen(sym, matrix.DefaultEigenTol, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("norta: factor: %w", err)
	}
	scale := make([]float64, n)
	for k = 0; k < n; k++ {
		scale[k] = math.Sqrt(math.Max(eigs[k], 0))
	}
	if err = q.Apply(func(_, col int, v float64) float64 { return v * scale[col] }); err != nil {
		return nil, 0, fmt.Errorf("norta: factor: %w", err)
	}

	return q, FactorSpectral, nil
}
