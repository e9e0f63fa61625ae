// Package linpred builds baseline-category logit linear predictors.
//
// Given a design matrix X and regression coefficients, Build produces the
// R × (T·J) matrix η of utility baselines, one column per (occasion,
// category) pair laid out as column t*J + j. The last category of every
// occasion is the baseline: its η is identically zero.
//
// Coefficients come in two shapes, chosen explicitly by the caller:
//
//   - Shared(row): one row applied to every occasion.
//   - PerOccasion(rows): exactly one row per occasion.
//
// A row holds J-1 blocks of width p+1 (intercept first, then one slope per
// covariate), category 1 first:
//
//	[ α₁ β₁₁ … β₁ₚ | α₂ β₂₁ … β₂ₚ | … | α_{J-1} … ]
//
// Build is deterministic and consumes no randomness.
package linpred
