// Package nomsim simulates clustered nominal responses for validating
// multinomial regression estimators.
//
// Each subject is observed on T occasions and picks one of J categories.
// The marginal distribution at every occasion follows a baseline-category
// logit model, while the latent utilities behind the choices are correlated
// across occasions with a user-supplied structure.
//
// Layout:
//
//	bcl/          Simulate: the public entry point, Params, Result, errors
//	linpred/      linear predictors η from coefficients and a design matrix
//	norta/        correlated Gumbel latent noise (NORTA), Σ validation and
//	              factoring, occasion-level correlation helpers
//	rum/          random-utility maximization (argmax, ties to lowest index)
//	diagnostics/  chi-square fit, Cramér's V, realized latent correlation
//	csvio/        CSV matrices in, long-format table and latent matrix out
//	matrix/       dense row-major matrices, validators, Jacobi eigensolver
//	cmd/nomsim/   command-line front end driven by a YAML config
//
// Quick example:
//
//	occ, _ := norta.AR1(3, 0.6)                 // T×T across occasions
//	sigma, _ := norta.KroneckerIdentity(occ, 4) // (T·J)×(T·J), identity within occasion
//	res, err := bcl.Simulate(bcl.Params{
//		Subjects:     1000,
//		ClusterSize:  3,
//		Categories:   4,
//		Coefficients: linpred.Shared([]float64{0.3, -0.2, 0.1}),
//		Correlation:  sigma,
//	}, bcl.WithSeed(7))
//
// The correlation of the latent values after the Gumbel transform only
// approximates Σ; the per-occasion margins are exact.
package nomsim
