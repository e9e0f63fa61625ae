// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels/facades minimal by delegating shape/nil/symmetry checks here.
//  - Return sentinel errors tagged with the validator name so call sites can
//    wrap uniformly and still match with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry check runs O(n²) on the upper triangle only.
//
// Note:
//  - Each composite validator follows a fixed sequence (e.g. NotNil → Shape).

package matrix

import (
	"fmt"
	"math"
)

// zeroTol is the lower bound for user tolerances; negative values are flipped.
const zeroTol = 0.0

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// normTol rejects non-finite tolerances and flips negative ones.
func normTol(tag string, tol float64) (float64, error) {
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return 0, validatorErrorf(tag, ErrNaNInf)
	}
	if tol < zeroTol {
		tol = -tol
	}

	return tol, nil
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if m == nil.
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures matrices a and b have equal dimensions.
// Assumes a and b are not nil.
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape", ErrDimensionMismatch)
	}

	return nil
}

// ValidateShape ensures m is non-nil and exactly rows×cols.
func ValidateShape(m Matrix, rows, cols int) error {
	if m == nil {
		return validatorErrorf("ValidateShape", ErrNilMatrix)
	}
	if m.Rows() != rows || m.Cols() != cols {
		return validatorErrorf("ValidateShape",
			fmt.Errorf("got %dx%d want %dx%d: %w", m.Rows(), m.Cols(), rows, cols, ErrDimensionMismatch))
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols). Assumes m != nil.
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateBinarySameShape – Composite: NotNil(a) → NotNil(b) → SameShape.
func ValidateBinarySameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}

	return nil
}

// ValidateMulCompatible ensures a.Cols == b.Rows, inputs non-nil.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func ValidateMulCompatible(a, b Matrix) error {
	if a == nil || b == nil {
		return validatorErrorf("ValidateMulCompatible", ErrNilMatrix)
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite rejects any NaN or ±Inf entry.
// Matrices built by this package already enforce the policy on Set; this
// check exists for caller-provided Matrix implementations.
func ValidateFinite(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateFinite", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok {
		var k int
		for k = range d.data {
			if math.IsNaN(d.data[k]) || math.IsInf(d.data[k], 0) {
				return validatorErrorf("ValidateFinite", denseErrorf(ctxAt, k/d.c, k%d.c, ErrNaNInf))
			}
		}
		return nil
	}

	var i, j int
	var v float64
	var err error
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateFinite", err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf("ValidateFinite", fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
			}
		}
	}

	return nil
}

// ValidateSymmetric checks A is symmetric within tolerance tol:
// |A[i,j] - A[j,i]| ≤ tol for all i<j.
//
// Returns ErrNilMatrix/ErrNonSquare on structural issues, ErrNaNInf on bad tol,
// ErrAsymmetry on violation.
// Complexity: O(n^2).
func ValidateSymmetric(m Matrix, tol float64) error {
	if m == nil {
		return validatorErrorf("ValidateSymmetric", ErrNilMatrix)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSymmetric", ErrNonSquare)
	}
	tol, err := normTol("ValidateSymmetric", tol)
	if err != nil {
		return err
	}

	n := m.Rows()
	var (
		i, j     int
		aij, aji float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			aij, _ = m.At(i, j) // in range after the square check
			aji, _ = m.At(j, i)
			if math.Abs(aij-aji) > tol {
				return validatorErrorf("ValidateSymmetric",
					fmt.Errorf("(%d,%d)=%g vs (%d,%d)=%g: %w", i, j, aij, j, i, aji, ErrAsymmetry))
			}
		}
	}

	return nil
}

// ValidateUnitDiagonal checks |A[i,i] - 1| ≤ tol for every i.
// Assumes a square matrix (call after ValidateSymmetric).
func ValidateUnitDiagonal(m Matrix, tol float64) error {
	if m == nil {
		return validatorErrorf("ValidateUnitDiagonal", ErrNilMatrix)
	}
	tol, err := normTol("ValidateUnitDiagonal", tol)
	if err != nil {
		return err
	}
	var i int
	var v float64
	for i = 0; i < m.Rows() && i < m.Cols(); i++ {
		v, _ = m.At(i, i)
		if math.Abs(v-1.0) > tol {
			return validatorErrorf("ValidateUnitDiagonal", fmt.Errorf("(%d,%d)=%g: %w", i, i, v, ErrNonUnitDiagonal))
		}
	}

	return nil
}

// ValidateIdentityBlock checks that the size×size diagonal block starting at
// (off, off) equals the identity within tol.
//
// Errors:
//   - ErrNilMatrix, ErrOutOfRange (block exceeds bounds), ErrNonIdentityBlock.
//
// Complexity: O(size²).
func ValidateIdentityBlock(m Matrix, off, size int, tol float64) error {
	if m == nil {
		return validatorErrorf("ValidateIdentityBlock", ErrNilMatrix)
	}
	if off < 0 || size < 0 || off+size > m.Rows() || off+size > m.Cols() {
		return validatorErrorf("ValidateIdentityBlock", ErrOutOfRange)
	}
	tol, err := normTol("ValidateIdentityBlock", tol)
	if err != nil {
		return err
	}

	var (
		i, j int
		v, w float64
	)
	for i = off; i < off+size; i++ {
		for j = off; j < off+size; j++ {
			v, _ = m.At(i, j)
			w = 0.0
			if i == j {
				w = 1.0
			}
			if math.Abs(v-w) > tol {
				return validatorErrorf("ValidateIdentityBlock",
					fmt.Errorf("(%d,%d)=%g: %w", i, j, v, ErrNonIdentityBlock))
			}
		}
	}

	return nil
}

// IsZeroOffDiagonal reports whether max_{i≠j} |A[i,j]| ≤ tol.
// Lets Eigen skip the Jacobi sweeps for an already diagonal input.
// Returns ErrNilMatrix/ErrNonSquare/ErrNaNInf like ValidateSymmetric.
func IsZeroOffDiagonal(m Matrix, tol float64) (bool, error) {
	if m == nil {
		return false, ErrNilMatrix
	}
	if err := ValidateSquare(m); err != nil {
		return false, err
	}
	tol, err := normTol("IsZeroOffDiagonal", tol)
	if err != nil {
		return false, err
	}

	n := m.Rows()
	var i, j int
	var v float64
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			v, _ = m.At(i, j)
			if math.Abs(v) > tol {
				return false, nil
			}
		}
	}

	return true, nil
}
