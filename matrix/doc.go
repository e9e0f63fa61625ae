// SPDX-License-Identifier: MIT

// Package matrix offers the dense linear-algebra layer used by the simulator.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix whose accessors return errors instead
//     of panicking, with an optional finite-value policy.
//   - Canonical validators (shape, symmetry, unit diagonal, finiteness) that
//     return plain sentinels so callers can wrap them uniformly.
//   - Kernels: Mul, Transpose, Symmetrize and a Jacobi eigensolver for
//     symmetric matrices (spectral checks and factorizations).
//   - Column statistics: Correlation, used to inspect realized latent
//     dependence against a requested correlation matrix.
//
// Every loop runs in a fixed i→j order, so results are bit-for-bit
// reproducible for identical inputs.
package matrix
