package norta

import (
	"fmt"
	"math"

	"github.com/katalvlaran/nomsim/matrix"
)

// KroneckerIdentity expands a T×T occasion-level correlation matrix into the
// (T·J)×(T·J) latent correlation R ⊗ I_J: category j at occasion s is
// correlated with category j at occasion t by R[s,t], and with nothing else.
// Every within-occasion block is I_J, so choice independence holds by
// construction.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare, matrix.ErrInvalidDimensions (J<1).
func KroneckerIdentity(occasion matrix.Matrix, categories int) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(occasion); err != nil {
		return nil, fmt.Errorf("norta: kronecker: %w", err)
	}
	if err := matrix.ValidateSquare(occasion); err != nil {
		return nil, fmt.Errorf("norta: kronecker: %w", err)
	}
	if categories < 1 {
		return nil, fmt.Errorf("norta: kronecker: J=%d: %w", categories, matrix.ErrInvalidDimensions)
	}
	T := occasion.Rows()
	n := T * categories
	out, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("norta: kronecker: %w", err)
	}

	var s, t, j int
	var r float64
	for s = 0; s < T; s++ {
		for t = 0; t < T; t++ {
			if r, err = occasion.At(s, t); err != nil {
				return nil, fmt.Errorf("norta: kronecker: %w", err)
			}
			for j = 0; j < categories; j++ {
				if err = out.Set(s*categories+j, t*categories+j, r); err != nil {
					return nil, fmt.Errorf("norta: kronecker: %w", err)
				}
			}
		}
	}

	return out, nil
}

// Exchangeable returns the T×T matrix with unit diagonal and rho elsewhere.
// It is positive semi-definite for -1/(T-1) ≤ rho ≤ 1.
func Exchangeable(clsize int, rho float64) (*matrix.Dense, error) {
	return occasionMatrix(clsize, func(s, t int) float64 {
		if s == t {
			return 1
		}
		return rho
	})
}

// AR1 returns the T×T first-order autoregressive matrix rho^|s-t|.
// It is positive definite for |rho| < 1.
func AR1(clsize int, rho float64) (*matrix.Dense, error) {
	return occasionMatrix(clsize, func(s, t int) float64 {
		return math.Pow(rho, math.Abs(float64(s-t)))
	})
}

func occasionMatrix(clsize int, entry func(s, t int) float64) (*matrix.Dense, error) {
	out, err := matrix.NewDense(clsize, clsize)
	if err != nil {
		return nil, fmt.Errorf("norta: occasion matrix T=%d: %w", clsize, err)
	}
	var s, t int
	for s = 0; s < clsize; s++ {
		for t = 0; t < clsize; t++ {
			if err = out.Set(s, t, entry(s, t)); err != nil {
				return nil, fmt.Errorf("norta: occasion matrix: %w", err)
			}
		}
	}

	return out, nil
}
