package ssi

import (
	"errors"
	"testing"

	"github.com/siren-lang/siren/ident"
	"github.com/siren-lang/siren/symbolic"
	"github.com/stretchr/testify/require"
)

func TestGaussianConjugateValue(t *testing.T) {
	s := New(symbolic.WithSeed(1))

	mu := s.Assume(nil, ident.AnnotationNone, symbolic.Normal{Mu: symbolic.Const{V: 0.0}, Var: symbolic.Const{V: 1.0}})
	obs := s.Assume(nil, ident.AnnotationNone, symbolic.Normal{Mu: mu, Var: symbolic.Const{V: 1.0}})

	require.NoError(t, s.Observe(obs, symbolic.Const{V: 2.0}))

	v, err := s.Value(mu)
	require.NoError(t, err)
	require.IsType(t, 0.0, v.V)
}

func TestBetaBernoulliConjugateValue(t *testing.T) {
	s := New(symbolic.WithSeed(2))

	p := s.Assume(nil, ident.AnnotationNone, symbolic.Beta{A: symbolic.Const{V: 1.0}, B: symbolic.Const{V: 1.0}})
	coin := s.Assume(nil, ident.AnnotationNone, symbolic.Bernoulli{P: p})

	require.NoError(t, s.Observe(coin, symbolic.Const{V: true}))

	v, err := s.Value(p)
	require.NoError(t, err)
	pv := v.V.(float64)
	require.Greater(t, pv, 0.0)
	require.Less(t, pv, 1.0)
}

func TestAnnotatedSymbolicRejectsForce(t *testing.T) {
	s := New(symbolic.WithSeed(3))

	name := ident.NewIdentifier("x")
	rv := s.Assume(&name, ident.AnnotationSymbolic, symbolic.Normal{Mu: symbolic.Const{V: 0.0}, Var: symbolic.Const{V: 1.0}})

	_, err := s.Value(rv)
	require.True(t, errors.Is(err, symbolic.ErrViolatedAnnotation))
}
