// Package diagnostics checks simulated nominal responses against the model
// that produced them.
//
// The checks mirror what an estimator-validation study looks at first:
// per-occasion category frequencies against the logit probabilities implied
// by η (chi-square goodness of fit), association between occasions
// (Cramér's V), and the realized correlation of the latent noise.
//
// All functions are pure and deterministic.
package diagnostics
