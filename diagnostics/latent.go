package diagnostics

import (
	"fmt"
	"math"

	"github.com/katalvlaran/nomsim/matrix"
)

// LatentCorrelation returns the sample Pearson correlation of the latent
// columns. Under NORTA it approximates, but does not equal, Σ.
func LatentCorrelation(latent matrix.Matrix) (*matrix.Dense, error) {
	corr, _, _, err := matrix.Correlation(latent)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: latent correlation: %w", err)
	}

	return corr, nil
}

// CorrelationGap returns max |corr(latent)[a,b] − Σ[a,b]| over all cells.
func CorrelationGap(latent, sigma matrix.Matrix) (float64, error) {
	corr, err := LatentCorrelation(latent)
	if err != nil {
		return 0, err
	}
	if err = matrix.ValidateShape(sigma, corr.Rows(), corr.Cols()); err != nil {
		return 0, fmt.Errorf("diagnostics: correlation gap: %w", err)
	}

	var gap, s float64
	var a int
	var row []float64
	for a = 0; a < corr.Rows(); a++ {
		if row, err = corr.Row(a); err != nil {
			return 0, fmt.Errorf("diagnostics: correlation gap: %w", err)
		}
		for b, c := range row {
			if s, err = sigma.At(a, b); err != nil {
				return 0, fmt.Errorf("diagnostics: correlation gap: %w", err)
			}
			gap = math.Max(gap, math.Abs(c-s))
		}
	}

	return gap, nil
}
