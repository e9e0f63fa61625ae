package linpred

import (
	"fmt"

	"github.com/katalvlaran/nomsim/matrix"
)

// Layout describes how design rows map to (subject, occasion) pairs.
type Layout struct {
	// Covariates is p, the number of design columns (0 for a nil design).
	Covariates int

	// Varying is true when the design has one row per subject-occasion
	// (row i*T + t), false when it has one row per subject, broadcast to
	// every occasion.
	Varying bool

	clsize int
}

// ResolveLayout inspects the design against R subjects and T occasions.
// A nil design means no covariates.
//
// Errors:
//   - ErrDimensionMismatch when design.Rows() is neither R·T nor R.
func ResolveLayout(design matrix.Matrix, subjects, clsize int) (Layout, error) {
	if design == nil {
		return Layout{clsize: clsize}, nil
	}
	switch design.Rows() {
	case subjects * clsize:
		return Layout{Covariates: design.Cols(), Varying: true, clsize: clsize}, nil
	case subjects:
		return Layout{Covariates: design.Cols(), Varying: false, clsize: clsize}, nil
	default:
		return Layout{}, fmt.Errorf("%w: design has %d rows, want R·T = %d or R = %d",
			ErrDimensionMismatch, design.Rows(), subjects*clsize, subjects)
	}
}

// Row returns the design row holding covariates of subject i at occasion t.
func (l Layout) Row(i, t int) int {
	if l.Varying {
		return i*l.clsize + t
	}

	return i
}

// Build computes the R × (T·J) linear-predictor matrix.
//
// η[i, t*J+j] = α_{t,j} + Σ_k x_{i,t,k}·β_{t,j,k}   for j < J-1
// η[i, t*J+J-1] = 0                                  (baseline category)
//
// Errors:
//   - matrix.ErrInvalidDimensions for non-positive R, T or J < 2.
//   - ErrNoCoefficients for a zero Coefficients value.
//   - ErrDimensionMismatch for coefficient or design shape violations.
//   - Wrapped matrix errors from design access (e.g. a NaN covariate).
//
// Complexity:
//   - Time O(R·T·J·p), Space O(R·T·J).
func Build(design matrix.Matrix, coef Coefficients, subjects, clsize, categories int) (*matrix.Dense, error) {
	if subjects <= 0 || clsize <= 0 || categories < 2 {
		return nil, fmt.Errorf("linpred: R=%d T=%d J=%d: %w", subjects, clsize, categories, matrix.ErrInvalidDimensions)
	}
	layout, err := ResolveLayout(design, subjects, clsize)
	if err != nil {
		return nil, err
	}
	if err = coef.check(layout.Covariates, clsize, categories); err != nil {
		return nil, err
	}

	p := layout.Covariates
	width := p + 1
	eta, err := matrix.NewDense(subjects, clsize*categories)
	if err != nil {
		return nil, fmt.Errorf("linpred: %w", err)
	}

	x := make([]float64, p)
	var (
		i, t, j, k int
		row        []float64
		v, xv      float64
	)
	for i = 0; i < subjects; i++ {
		for t = 0; t < clsize; t++ {
			for k = 0; k < p; k++ {
				if xv, err = design.At(layout.Row(i, t), k); err != nil {
					return nil, fmt.Errorf("linpred: design: %w", err)
				}
				x[k] = xv
			}
			row = coef.row(t)
			// The baseline column t*J+J-1 keeps its zero from NewDense.
			for j = 0; j < categories-1; j++ {
				v = row[j*width]
				for k = 0; k < p; k++ {
					v += x[k] * row[j*width+1+k]
				}
				if err = eta.Set(i, t*categories+j, v); err != nil {
					return nil, fmt.Errorf("linpred: subject %d occasion %d category %d: %w", i+1, t+1, j+1, err)
				}
			}
		}
	}

	return eta, nil
}
