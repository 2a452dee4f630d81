package symbolic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvalIsIdempotent(t *testing.T) {
	s := New(WithSeed(1))

	base := s.NewVar()
	s.Install(base, nil, Normal{Mu: Const{V: 0.0}, Var: Const{V: 1.0}})
	require.NoError(t, s.SetDistr(base, Delta{V: Const{V: 3.0}, Sampled: true}))

	expr := ExAdd(ExMul(Const{V: 2.0}, base), Const{V: 1.0})

	once := s.Eval(expr)
	twice := s.Eval(once)

	require.True(t, ExprEqual(once, twice))
	require.Equal(t, 7.0, AsFloat(once.(Const).V))
}

func TestEvalSubstitutesSampledDeltaTransitively(t *testing.T) {
	s := New(WithSeed(2))

	root := s.NewVar()
	s.Install(root, nil, Normal{Mu: Const{V: 0.0}, Var: Const{V: 1.0}})
	require.NoError(t, s.SetDistr(root, Delta{V: Const{V: 5.0}, Sampled: true}))

	leaf := s.NewVar()
	s.Install(leaf, nil, Normal{Mu: root, Var: Const{V: 1.0}})
	require.NoError(t, s.SetDistr(leaf, Delta{V: root, Sampled: true}))

	got := s.Eval(leaf)
	require.Equal(t, 5.0, AsFloat(got.(Const).V))
}

func TestIsAffineRecognizesLinearForm(t *testing.T) {
	s := New()
	rv := s.NewVar()
	s.Install(rv, nil, Normal{Mu: Const{V: 0.0}, Var: Const{V: 1.0}})

	a, b, ok := IsAffine(s, ExAdd(ExMul(Const{V: 3.0}, rv), Const{V: 2.0}), rv)
	require.True(t, ok)
	require.Equal(t, 3.0, AsFloat(a.(Const).V))
	require.Equal(t, 2.0, AsFloat(b.(Const).V))
}

func TestIsAffineRejectsNonlinearForm(t *testing.T) {
	s := New()
	rv := s.NewVar()
	s.Install(rv, nil, Normal{Mu: Const{V: 0.0}, Var: Const{V: 1.0}})

	_, _, ok := IsAffine(s, ExMul(rv, rv), rv)
	require.False(t, ok)
}

func TestIsAffineRejectsBranchingOnTheVariable(t *testing.T) {
	s := New()
	rv := s.NewVar()
	s.Install(rv, nil, Bernoulli{P: Const{V: 0.5}})

	ite := ExIte(Eq{L: rv, R: Const{V: true}}, Const{V: 0.0}, Const{V: 5.0})
	_, _, ok := IsAffine(s, ite, rv)
	require.False(t, ok)
}

func TestIsScaledRecognizesConstantMultiple(t *testing.T) {
	s := New()
	rv := s.NewVar()
	s.Install(rv, nil, Gamma{A: Const{V: 1.0}, B: Const{V: 1.0}})

	factor, ok := IsScaled(s, ExMul(Const{V: 4.0}, rv), rv)
	require.True(t, ok)
	require.Equal(t, 4.0, AsFloat(s.Eval(factor).(Const).V))

	_, ok = IsScaled(s, ExAdd(rv, Const{V: 1.0}), rv)
	require.False(t, ok)
}

func TestDependsOnTransitiveFollowsParentChain(t *testing.T) {
	s := New()
	grandparent := s.NewVar()
	s.Install(grandparent, nil, Normal{Mu: Const{V: 0.0}, Var: Const{V: 1.0}})

	parent := s.NewVar()
	s.Install(parent, nil, Normal{Mu: grandparent, Var: Const{V: 1.0}})

	child := s.NewVar()
	s.Install(child, nil, Normal{Mu: parent, Var: Const{V: 1.0}})

	require.True(t, DependsOn(s, child, grandparent, true))
	require.False(t, DependsOn(s, child, grandparent, false))
}

func TestGaussianConjugate(t *testing.T) {
	s := New()
	parent := s.NewVar()
	s.Install(parent, nil, Normal{Mu: Const{V: 0.0}, Var: Const{V: 1.0}})
	child := s.NewVar()
	s.Install(child, nil, Normal{Mu: parent, Var: Const{V: 1.0}})

	marginal, posterior, ok := GaussianConjugate(s, parent, child)
	require.True(t, ok)
	require.IsType(t, Normal{}, marginal)
	require.IsType(t, Normal{}, posterior)
}

func TestBernoulliConjugate(t *testing.T) {
	s := New()
	parent := s.NewVar()
	s.Install(parent, nil, Bernoulli{P: Const{V: 0.5}})
	child := s.NewVar()
	s.Install(child, nil, Bernoulli{P: ExAdd(ExMul(Const{V: 0.4}, parent), Const{V: 0.1})})

	marginal, posterior, ok := BernoulliConjugate(s, parent, child)
	require.True(t, ok)
	require.IsType(t, Bernoulli{}, marginal)
	require.IsType(t, Bernoulli{}, posterior)
}

func TestBetaBernoulliConjugate(t *testing.T) {
	s := New()
	parent := s.NewVar()
	s.Install(parent, nil, Beta{A: Const{V: 1.0}, B: Const{V: 1.0}})
	child := s.NewVar()
	s.Install(child, nil, Bernoulli{P: parent})

	marginal, posterior, ok := BetaBernoulliConjugate(s, parent, child)
	require.True(t, ok)
	require.Equal(t, Bernoulli{P: ExDiv(Const{V: 1.0}, ExAdd(Const{V: 1.0}, Const{V: 1.0}))}, marginal)
	post, isBeta := posterior.(Beta)
	require.True(t, isBeta)

	require.NoError(t, s.SetDistr(child, Delta{V: Const{V: true}, Sampled: false}))
	a := AsFloat(s.Eval(post.A).(Const).V)
	b := AsFloat(s.Eval(post.B).(Const).V)
	require.Equal(t, 2.0, a)
	require.Equal(t, 1.0, b)
}

func TestBetaBinomialConjugate(t *testing.T) {
	s := New()
	parent := s.NewVar()
	s.Install(parent, nil, Beta{A: Const{V: 2.0}, B: Const{V: 2.0}})
	child := s.NewVar()
	s.Install(child, nil, Binomial{N: Const{V: 10.0}, P: parent})

	marginal, posterior, ok := BetaBinomialConjugate(s, parent, child)
	require.True(t, ok)
	require.IsType(t, BetaBinomial{}, marginal)
	require.IsType(t, Beta{}, posterior)
}

func TestGammaPoissonConjugate(t *testing.T) {
	s := New()
	parent := s.NewVar()
	s.Install(parent, nil, Gamma{A: Const{V: 2.0}, B: Const{V: 2.0}})
	child := s.NewVar()
	s.Install(child, nil, Poisson{Lambda: parent})

	marginal, posterior, ok := GammaPoissonConjugate(s, parent, child)
	require.True(t, ok)
	require.IsType(t, NegativeBinomial{}, marginal)
	require.IsType(t, Gamma{}, posterior)
}

func TestGammaNormalConjugate(t *testing.T) {
	s := New()
	parent := s.NewVar()
	s.Install(parent, nil, Gamma{A: Const{V: 1.0}, B: Const{V: 1.0}})
	child := s.NewVar()
	s.Install(child, nil, Normal{Mu: Const{V: 0.0}, Var: ExDiv(Const{V: 1.0}, parent)})

	marginal, posterior, ok := GammaNormalConjugate(s, parent, child)
	require.True(t, ok)
	require.IsType(t, StudentT{}, marginal)
	require.IsType(t, Gamma{}, posterior)
}

func TestNormalInverseGammaNormalConjugate(t *testing.T) {
	s := New()
	precision := s.NewVar()
	s.Install(precision, nil, Gamma{A: Const{V: 1.0}, B: Const{V: 1.0}})

	parent := s.NewVar()
	s.Install(parent, nil, Normal{Mu: Const{V: 0.0}, Var: ExDiv(Const{V: 1.0}, precision)})

	child := s.NewVar()
	s.Install(child, nil, Normal{Mu: parent, Var: ExDiv(Const{V: 1.0}, precision)})

	marginal, posterior, ok := NormalInverseGammaNormalConjugate(s, parent, child)
	require.True(t, ok)
	require.IsType(t, StudentT{}, marginal)
	require.IsType(t, Normal{}, posterior)

	// the rule installs the precision's updated Gamma parameters as a side
	// effect, since (marginal, posterior) has nowhere else to carry it.
	updated, isGamma := s.Distr(precision).(Gamma)
	require.True(t, isGamma)
	require.Equal(t, 1.5, AsFloat(s.Eval(updated.A).(Const).V))
}

func TestConjugateTriesEveryRuleInOrder(t *testing.T) {
	s := New()
	parent := s.NewVar()
	s.Install(parent, nil, Beta{A: Const{V: 1.0}, B: Const{V: 1.0}})
	child := s.NewVar()
	s.Install(child, nil, Bernoulli{P: parent})

	_, _, ok := Conjugate(s, parent, child)
	require.True(t, ok)
}

func TestConjugateReportsNoRuleForMismatchedFamilies(t *testing.T) {
	s := New()
	parent := s.NewVar()
	s.Install(parent, nil, Bernoulli{P: Const{V: 0.5}})
	child := s.NewVar()
	s.Install(child, nil, Poisson{Lambda: parent})

	_, _, ok := Conjugate(s, parent, child)
	require.False(t, ok)
}
