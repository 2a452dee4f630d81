package delayed

import (
	"testing"

	"github.com/siren-lang/siren/ident"
	"github.com/siren-lang/siren/symbolic"
	"github.com/stretchr/testify/require"
)

func TestGaussianChainRealize(t *testing.T) {
	s := New(symbolic.WithSeed(7))

	mu := s.Assume(nil, ident.AnnotationNone, symbolic.Normal{Mu: symbolic.Const{V: 0.0}, Var: symbolic.Const{V: 1.0}})
	obs := s.Assume(nil, ident.AnnotationNone, symbolic.Normal{Mu: mu, Var: symbolic.Const{V: 1.0}})

	require.NoError(t, s.Observe(obs, symbolic.Const{V: 1.5}))

	v, err := s.Realize(mu)
	require.NoError(t, err)
	require.IsType(t, 0.0, v.V)
}
