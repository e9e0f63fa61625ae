// SPDX-License-Identifier: MIT
// Package matrix: linear-algebra kernels over any Matrix implementation
// (matrix product, transpose, symmetrization and a symmetric eigensolver).
//
// Notes:
//   - All kernels validate through validators.go and wrap failures via
//     matrixErrorf with an op* tag.
//   - Non-*Dense operands are copied into a *Dense once (toDense) so the
//     arithmetic itself always runs on flat row-major buffers.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial value for dot-product style accumulations.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opMul        = "Mul"
	opTranspose  = "Transpose"
	opSymmetrize = "Symmetrize"
	opEigen      = "Eigen"
	opToDense    = "toDense"
	opDenseOf    = "DenseOf"
)

// DefaultEigenTol is the off-diagonal convergence threshold for Eigen.
const DefaultEigenTol = 1e-12

// eigenRotationsPerEntry scales the Jacobi rotation cap with n².
const eigenRotationsPerEntry = 64

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// toDense returns m itself when it is a *Dense, otherwise a *Dense copy.
func toDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, matrixErrorf(opToDense, err)
	}
	var i, j int
	var v float64
	for i = 0; i < out.r; i++ {
		for j = 0; j < out.c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opToDense, err)
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}

// DenseOf returns a *Dense copy of m that shares no storage with it.
//
// Errors:
//   - ErrNilMatrix, or an At error from a foreign implementation.
func DenseOf(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opDenseOf, err)
	}
	if d, ok := m.(*Dense); ok {
		return d.Clone().(*Dense), nil
	}
	out, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opDenseOf, err)
	}

	return out, nil
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: i→k→j over row-major strides, skipping zero A[i,k].
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Determinism:
//   - Fixed loop order, so repeated calls give identical bits.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := da.r, da.c, db.c
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k                            int
		av                                 float64
		rowOffsetA, rowOffsetB, rowOffsetR int
	)
	for i = 0; i < aRows; i++ {
		rowOffsetA = i * aCols
		rowOffsetR = i * bCols
		for k = 0; k < aCols; k++ {
			av = da.data[rowOffsetA+k]
			if av == 0 {
				continue
			}
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	src, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(src.c, src.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < src.r; i++ {
		for j = 0; j < src.c; j++ {
			res.data[j*src.r+i] = src.data[i*src.c+j]
		}
	}

	return res, nil
}

// Symmetrize returns (A + Aᵀ)/2 for a square A.
// Correlation matrices typed by hand or read from CSV are symmetric only up
// to rounding; the eigensolver needs exact symmetry.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
func Symmetrize(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	src, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	n := src.r
	res, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	var i, j int
	var v float64
	for i = 0; i < n; i++ {
		res.data[i*n+i] = src.data[i*n+i]
		for j = i + 1; j < n; j++ {
			v = 0.5 * (src.data[i*n+j] + src.data[j*n+i])
			res.data[i*n+j], res.data[j*n+i] = v, v
		}
	}

	return res, nil
}

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via
// classical Jacobi rotations.
// Implementation:
//   - Stage 1: Validate symmetric square input within tol.
//   - Stage 2: If the matrix is already diagonal within tol, return its
//     diagonal and the identity.
//   - Stage 3: Repeatedly pick (p,q) with the largest |A[p,q]| in i→j order
//     and zero it with a Jacobi rotation, accumulating rotations into Q.
//
// Inputs:
//   - m: symmetric Matrix (within tol).
//   - tol: convergence threshold on max |A[p,q]| (typ. 1e-10..1e-12).
//   - maxIter: cap on rotations; maxIter<=0 selects 64·n².
//
// Returns:
//   - []float64: eigenvalues (diagonal of the rotated matrix, unsorted).
//   - *Dense: Q whose columns are the matching eigenvectors, A = Q·diag(λ)·Qᵀ.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrAsymmetry, ErrNaNInf (bad tol),
//     ErrMatrixEigenFailed (max off-diagonal ≥ tol after maxIter).
//
// Determinism:
//   - Fixed pivot scan and update order produce stable results.
//
// Complexity:
//   - Time O(maxIter · n), Space O(n²).
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := m.Rows()
	if maxIter <= 0 {
		maxIter = eigenRotationsPerEntry * n * n
	}

	src, err := toDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	a := src.Clone().(*Dense) // working copy; the caller's matrix is never mutated
	q, err := Identity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	diagonal, err := IsZeroOffDiagonal(a, tol)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	var (
		iter, i, j, p, q0 int
		maxOff, off       float64
		app, aqq, apq     float64
		aip, aiq          float64
		qip, qiq          float64
		theta, t, c, s    float64
	)
	for iter = 0; !diagonal && iter < maxIter; iter++ {
		// Pivot: largest |A[i,j]| over the strict upper triangle.
		maxOff = ZeroSum
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				off = math.Abs(a.data[i*n+j])
				if off > maxOff {
					maxOff, p, q0 = off, i, j
				}
			}
		}
		if maxOff < tol {
			diagonal = true
			break
		}

		app = a.data[p*n+p]
		aqq = a.data[q0*n+q0]
		apq = a.data[p*n+q0]

		// t = sign(θ)/(|θ|+√(θ²+1)) with θ = (aqq−app)/(2·apq).
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		for i = 0; i < n; i++ {
			if i == p || i == q0 {
				continue
			}
			aip = a.data[i*n+p]
			aiq = a.data[i*n+q0]
			a.data[i*n+p] = c*aip - s*aiq
			a.data[p*n+i] = a.data[i*n+p]
			a.data[i*n+q0] = s*aip + c*aiq
			a.data[q0*n+i] = a.data[i*n+q0]
		}
		a.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
		a.data[q0*n+q0] = s*s*app + 2*c*s*apq + c*c*aqq
		a.data[p*n+q0], a.data[q0*n+p] = 0, 0

		for i = 0; i < n; i++ {
			qip = q.data[i*n+p]
			qiq = q.data[i*n+q0]
			q.data[i*n+p] = c*qip - s*qiq
			q.data[i*n+q0] = s*qip + c*qiq
		}
	}
	if !diagonal {
		if ok, _ := IsZeroOffDiagonal(a, tol); !ok {
			return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
		}
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a.data[i*n+i]
	}

	return eigs, q, nil
}
