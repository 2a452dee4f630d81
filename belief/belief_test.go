package belief

import (
	"testing"

	"github.com/siren-lang/siren/ident"
	"github.com/siren-lang/siren/symbolic"
	"github.com/stretchr/testify/require"
)

func TestDirectConjugateObserve(t *testing.T) {
	s := New(symbolic.WithSeed(11))

	p := s.Assume(nil, ident.AnnotationNone, symbolic.Beta{A: symbolic.Const{V: 2.0}, B: symbolic.Const{V: 2.0}})
	coin := s.Assume(nil, ident.AnnotationNone, symbolic.Bernoulli{P: p})
	require.Equal(t, Conditional, s.Category(coin))

	require.NoError(t, s.Observe(coin, symbolic.Const{V: true}))

	v, err := s.Value(p)
	require.NoError(t, err)
	require.IsType(t, 0.0, v.V)
}

func TestGaussianChainHasNoErrorSinceDirectParentIsConjugate(t *testing.T) {
	s := New(symbolic.WithSeed(12))

	a := s.Assume(nil, ident.AnnotationNone, symbolic.Normal{Mu: symbolic.Const{V: 0.0}, Var: symbolic.Const{V: 1.0}})
	b := s.Assume(nil, ident.AnnotationNone, symbolic.Normal{Mu: a, Var: symbolic.Const{V: 1.0}})
	c := s.Assume(nil, ident.AnnotationNone, symbolic.Normal{Mu: b, Var: symbolic.Const{V: 1.0}})

	// c's direct parent is b, and Gaussian-Gaussian is conjugate one hop away,
	// so BP never needs to look past b at a.
	_, err := s.Value(c)
	require.NoError(t, err)
}

func TestNonConjugateDirectParentIsForcedInstead(t *testing.T) {
	s := New(symbolic.WithSeed(13))

	a := s.Assume(nil, ident.AnnotationNone, symbolic.Normal{Mu: symbolic.Const{V: 0.0}, Var: symbolic.Const{V: 1.0}})
	c := s.Assume(nil, ident.AnnotationNone, symbolic.Poisson{Lambda: a})

	// Normal-Poisson has no conjugate rule, so BP's one-hop model cannot fold
	// a into c's marginal; it forces a directly instead of failing.
	_, err := s.Value(c)
	require.NoError(t, err)

	av, err := s.Value(a)
	require.NoError(t, err)
	require.IsType(t, 0.0, av.V)
}
