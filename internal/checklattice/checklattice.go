// Package checklattice cross-checks a closed-form Gaussian-Gaussian
// conjugate posterior against a numeric linear-algebra computation of the
// same quantity, as an independent sanity check on the symbolic conjugate
// rule's arithmetic.
package checklattice

import "gonum.org/v1/gonum/mat"

// GaussianPosterior computes the posterior mean and variance of a 1-D
// Gaussian prior N(mu0, var0) observed through a linear-Gaussian likelihood
// y = a*x + b + N(0, var1), by assembling and inverting the 1x1 precision
// system directly rather than using the closed-form update formula — a
// numeric cross-check for symbolic.GaussianConjugate.
func GaussianPosterior(mu0, var0, a, b, var1, y float64) (mean, variance float64) {
	// Precision-weighted normal equations for x given the single
	// observation y - b = a*x + noise:
	//   [1/var0 + a^2/var1] * x = mu0/var0 + a*(y-b)/var1
	precision := mat.NewDense(1, 1, []float64{1/var0 + a*a/var1})
	rhs := mat.NewVecDense(1, []float64{mu0/var0 + a*(y-b)/var1})

	var inv mat.Dense
	if err := inv.Inverse(precision); err != nil {
		panic(err)
	}

	var result mat.VecDense
	result.MulVec(&inv, rhs)

	return result.AtVec(0), inv.At(0, 0)
}
