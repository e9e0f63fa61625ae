package norta

import (
	"fmt"

	"github.com/katalvlaran/nomsim/matrix"
)

// CheckLatent validates a caller-supplied latent matrix: it must be
// R × (T·J) and finite. No correlation or margin checks apply.
//
// Errors:
//   - ErrLatentDimensionMismatch wrapping the shape error.
//   - matrix.ErrNaNInf for a non-finite entry.
func CheckLatent(latent matrix.Matrix, subjects, clsize, categories int) error {
	if err := matrix.ValidateShape(latent, subjects, clsize*categories); err != nil {
		return fmt.Errorf("%w: %w", ErrLatentDimensionMismatch, err)
	}
	if err := matrix.ValidateFinite(latent); err != nil {
		return fmt.Errorf("norta: latent: %w", err)
	}

	return nil
}
