package bcl

import (
	"errors"

	"github.com/katalvlaran/nomsim/linpred"
	"github.com/katalvlaran/nomsim/norta"
)

var (
	// ErrInvalidSampleSize is returned when Subjects < 1.
	ErrInvalidSampleSize = errors.New("bcl: sample size must be positive")

	// ErrInvalidClusterSize is returned when ClusterSize < 1.
	ErrInvalidClusterSize = errors.New("bcl: cluster size must be positive")

	// ErrInvalidCategoryCount is returned when Categories < 2.
	ErrInvalidCategoryCount = errors.New("bcl: at least two categories are required")

	// ErrDimensionMismatch is returned for coefficient or design shapes that
	// do not match the covariate, occasion and category counts.
	ErrDimensionMismatch = linpred.ErrDimensionMismatch

	// ErrInvalidCorrelationMatrix is returned for a missing, malformed or
	// indefinite correlation matrix.
	ErrInvalidCorrelationMatrix = norta.ErrInvalidCorrelationMatrix

	// ErrChoiceIndependence is returned when a within-occasion block of the
	// correlation matrix is not the identity.
	ErrChoiceIndependence = norta.ErrChoiceIndependence

	// ErrLatentDimensionMismatch is returned when a supplied latent matrix is
	// not R × (T·J).
	ErrLatentDimensionMismatch = norta.ErrLatentDimensionMismatch
)
