// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All kernels and validators return these sentinels (optionally wrapped with
// an operation tag via %w); tests match them with errors.Is. No exported
// function panics on caller-triggered conditions.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for grep-ability. Do not
// re-create these errors; wrap with fmt.Errorf("ctx: %w", ErrX) when the
// call site needs context.
//
// ERROR PRIORITY (enforced by validators):
// nil -> shape -> NaN/Inf -> structural (symmetry, diagonal) -> spectral.

var (
	// ErrInvalidDimensions indicates that requested dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Mul where a.Cols != b.Rows, or a buffer whose length is not r*c.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrAsymmetry signals |A[i,j]-A[j,i]| > eps for some i<j.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNonUnitDiagonal signals |A[i,i]-1| > eps for some i.
	ErrNonUnitDiagonal = errors.New("matrix: diagonal not one within eps")

	// ErrNonIdentityBlock signals that a diagonal block expected to be the
	// identity has an entry farther than eps from it.
	ErrNonIdentityBlock = errors.New("matrix: diagonal block is not identity within eps")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrMatrixEigenFailed indicates that the Jacobi routine did not converge
	// under the given tolerance and iteration cap.
	ErrMatrixEigenFailed = errors.New("matrix: eigen decomposition failed")
)
