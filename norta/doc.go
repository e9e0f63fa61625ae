// Package norta generates correlated latent noise for random-utility models
// with the NORTA (NORmal-To-Anything) technique.
//
// A Generator is built once from a (T·J)×(T·J) correlation matrix Σ and
// then draws R × (T·J) latent matrices:
//
//  1. Σ is validated: finite, symmetric, unit diagonal, every within-occasion
//     J×J diagonal block equal to the identity (choice independence), and
//     positive semi-definite.
//  2. Σ is factored as L·Lᵀ (Cholesky when positive definite, spectral
//     otherwise).
//  3. Z (R × T·J) is filled with standard normal draws in subject → occasion
//     → category order, so a seed fixes the whole draw sequence.
//  4. Zc = Z·Lᵀ carries the requested correlation.
//  5. Every cell is mapped through Φ and then the quantile function of the
//     target Margin.
//
// The margins of the output are exact. The pairwise correlations of the
// transformed values only approximate the entries of Σ: the margin transform
// is nonlinear, and the gap depends on the margin and on |ρ|. Callers that
// need the realized correlation should measure it (see package diagnostics).
//
// A latent matrix produced elsewhere (another copula, a fixed test fixture)
// skips all of the above; CheckLatent validates only its shape.
package norta
