package norta

import (
	"fmt"
	"math"

	"github.com/katalvlaran/nomsim/matrix"
)

// DefaultPSDTolerance is the slack on the smallest eigenvalue of Σ:
// λ_min ≥ -DefaultPSDTolerance is accepted as positive semi-definite.
const DefaultPSDTolerance = 1e-8

// invalid wraps a matrix sentinel under ErrInvalidCorrelationMatrix so both
// match with errors.Is.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidCorrelationMatrix, err)
}

// ValidateCorrelation checks that sigma is a usable (T·J)×(T·J) latent
// correlation matrix.
//
// Checks run in a fixed order and stop at the first failure:
//   - present and sized T·J × T·J         → ErrInvalidCorrelationMatrix
//   - finite entries                      → ErrInvalidCorrelationMatrix
//   - symmetric within eps                → ErrInvalidCorrelationMatrix
//   - unit diagonal within eps            → ErrInvalidCorrelationMatrix
//   - each occasion's J×J block == I      → ErrChoiceIndependence
//   - smallest eigenvalue ≥ -psdTol       → ErrInvalidCorrelationMatrix
//
// The block check precedes the spectral one so that a structurally
// well-formed Σ that breaks choice independence is always reported as such.
func ValidateCorrelation(sigma matrix.Matrix, clsize, categories int, eps, psdTol float64) error {
	if sigma == nil {
		return invalid(matrix.ErrNilMatrix)
	}
	n := clsize * categories
	if err := matrix.ValidateShape(sigma, n, n); err != nil {
		return invalid(err)
	}
	if err := matrix.ValidateFinite(sigma); err != nil {
		return invalid(err)
	}
	if err := matrix.ValidateSymmetric(sigma, eps); err != nil {
		return invalid(err)
	}
	if err := matrix.ValidateUnitDiagonal(sigma, eps); err != nil {
		return invalid(err)
	}
	var t int
	for t = 0; t < clsize; t++ {
		if err := matrix.ValidateIdentityBlock(sigma, t*categories, categories, eps); err != nil {
			return fmt.Errorf("%w: occasion %d: %w", ErrChoiceIndependence, t+1, err)
		}
	}

	minEig, err := MinEigenvalue(sigma)
	if err != nil {
		return invalid(err)
	}
	if minEig < -math.Abs(psdTol) {
		return fmt.Errorf("%w: not positive semi-definite (min eigenvalue %.3g)", ErrInvalidCorrelationMatrix, minEig)
	}

	return nil
}

// MinEigenvalue returns the smallest eigenvalue of the symmetrized matrix.
func MinEigenvalue(sigma matrix.Matrix) (float64, error) {
	sym, err := matrix.Symmetrize(sigma)
	if err != nil {
		return 0, err
	}
	eigs, _, err := matrix.Eigen(sym, matrix.DefaultEigenTol, 0)
	if err != nil {
		return 0, err
	}
	minEig := math.Inf(1)
	for _, v := range eigs {
		minEig = math.Min(minEig, v)
	}

	return minEig, nil
}
