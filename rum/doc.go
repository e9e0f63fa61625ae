// Package rum turns linear predictors and latent noise into nominal
// responses by random-utility maximization.
//
// For subject i at occasion t the utility of category j is
//
//	u[i,t,j] = η[i, t*J+j] + ε[i, t*J+j]
//
// and the response is the 1-based label of the largest utility. Ties go to
// the smallest category index, so the result is fully determined by its
// inputs.
package rum
