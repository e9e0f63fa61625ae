package norta

import "errors"

var (
	// ErrInvalidCorrelationMatrix is returned when Σ is missing, has the wrong
	// size, contains NaN/Inf, is not symmetric, has a non-unit diagonal, or is
	// not positive semi-definite. The underlying matrix sentinel is wrapped too.
	ErrInvalidCorrelationMatrix = errors.New("norta: invalid correlation matrix")

	// ErrChoiceIndependence is returned when a within-occasion J×J diagonal
	// block of Σ is not the identity.
	ErrChoiceIndependence = errors.New("norta: within-occasion block violates choice independence")

	// ErrLatentDimensionMismatch is returned when a supplied latent matrix is
	// not R × (T·J).
	ErrLatentDimensionMismatch = errors.New("norta: latent matrix dimension mismatch")

	// ErrUnknownMargin is returned by ParseMargin for unrecognized names.
	ErrUnknownMargin = errors.New("norta: unknown margin")
)
