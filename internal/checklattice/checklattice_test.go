package checklattice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGaussianPosteriorMatchesClosedForm(t *testing.T) {
	mean, variance := GaussianPosterior(0.0, 1.0, 1.0, 0.0, 1.0, 2.0)

	// Closed form: postVar = var0*var1/(var1+a^2*var0) = 0.5
	// postMean = postVar*(mu0/var0 + a*(y-b)/var1) = 0.5*2 = 1.0
	require.InDelta(t, 0.5, variance, 1e-9)
	require.InDelta(t, 1.0, mean, 1e-9)
}
