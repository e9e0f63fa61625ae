// Package bcl simulates clustered nominal responses whose marginal
// distributions follow a baseline-category logit model.
//
// For R subjects observed on T occasions with J categories, Simulate
//
//  1. builds the linear predictors η (package linpred);
//  2. draws Gumbel latent noise with a (T·J)×(T·J) correlation Σ through
//     NORTA (package norta), or takes a caller-supplied latent matrix;
//  3. assigns each (subject, occasion) the category with the largest
//     utility η + ε (package rum);
//  4. composes the response matrix, a long-format table and the latent
//     matrix into a Result.
//
// Because within-occasion latent values are independent standard Gumbel
// variables, the response at every occasion has logit probabilities
// softmax(η) exactly, whatever the cross-occasion correlation.
//
// Every input is validated before the first random draw. Errors are the
// sentinels below, matched with errors.Is.
//
// Example:
//
//	res, err := bcl.Simulate(bcl.Params{
//		Subjects:     500,
//		ClusterSize:  3,
//		Categories:   4,
//		Coefficients: linpred.Shared([]float64{0.2, 0.4, -0.1, 0.6, 0.1, -0.5}),
//		Design:       x, // 1500 × 1
//		Correlation:  sigma,
//	}, bcl.WithSeed(2024))
package bcl
