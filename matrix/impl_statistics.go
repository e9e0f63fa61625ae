// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column statistics used to inspect simulated data: centering and
//     Pearson correlation.
//
// Exposed API:
//   - CenterColumns(X) -> (Xc, means)
//   - Correlation(X)   -> (Corr, means, stds) // degenerate std=0 → zeroed row/column
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops on flat buffers.

package matrix

import "math"

// Operation name constants for unified error wrapping.
const (
	opCenterColumns = "CenterColumns"
	opCorrelation   = "Correlation"
)

// CenterColumns subtracts the per-column mean from every element.
//
// Returns:
//   - *Dense: centered copy (r×c).
//   - []float64: column means (len=c).
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func CenterColumns(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	src, err := toDense(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	r, c := src.r, src.c
	means := make([]float64, c)
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			means[j] += src.data[i*c+j]
		}
	}
	for j = 0; j < c; j++ {
		means[j] /= float64(r)
	}

	out := src.Clone().(*Dense)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			out.data[i*c+j] -= means[j]
		}
	}

	return out, means, nil
}

// Correlation computes the Pearson correlation of columns:
// Corr = (Zᵀ Z)/(r-1) with Z = (X − mean)·diag(1/std).
// Degenerate columns (std==0) become zero rows/columns, diagonal included.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (r<2).
//
// Complexity:
//   - Time O(r*c²), Space O(c²).
func Correlation(X Matrix) (*Dense, []float64, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	r, c := X.Rows(), X.Cols()
	if r < 2 {
		return nil, nil, nil, matrixErrorf(opCorrelation, ErrDimensionMismatch)
	}

	Xc, means, err := CenterColumns(X)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}

	// std[j] = sqrt( Σ_i Xc[i,j]^2 / (r-1) )
	stds := make([]float64, c)
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v = Xc.data[i*c+j]
			stds[j] += v * v
		}
	}
	inv := 1.0 / float64(r-1)
	for j = 0; j < c; j++ {
		stds[j] = math.Sqrt(stds[j] * inv)
	}

	// Z-score in place on the centered copy.
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if stds[j] > 0 {
				Xc.data[i*c+j] /= stds[j]
			} else {
				Xc.data[i*c+j] = 0
			}
		}
	}

	Zt, err := Transpose(Xc)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	corr, err := Mul(Zt, Xc)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	for i = range corr.data {
		corr.data[i] *= inv
	}

	return corr, means, stds, nil
}
