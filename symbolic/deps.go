package symbolic

// DependsOn reports whether expr references rv. When transitive is false
// the search stops at RandomVar leaves (only direct references count); when
// true, encountering a different live RandomVar recurses into that
// variable's current distribution via state, so a variable that depends on
// rv only through an intermediate parent is still found.
func DependsOn(state *State, expr SymExpr, rv RandomVar, transitive bool) bool {
	return dependsOn(state, expr, rv, transitive, make(map[RandomVar]bool))
}

func dependsOn(state *State, expr SymExpr, rv RandomVar, transitive bool, seen map[RandomVar]bool) bool {
	switch e := expr.(type) {
	case Const:
		return false
	case RandomVar:
		if e == rv {
			return true
		}
		if !transitive || seen[e] {
			return false
		}
		seen[e] = true

		return distrDependsOn(state, state.Distr(e), rv, transitive, seen)
	case Add:
		return dependsOn(state, e.L, rv, transitive, seen) || dependsOn(state, e.R, rv, transitive, seen)
	case Mul:
		return dependsOn(state, e.L, rv, transitive, seen) || dependsOn(state, e.R, rv, transitive, seen)
	case Div:
		return dependsOn(state, e.L, rv, transitive, seen) || dependsOn(state, e.R, rv, transitive, seen)
	case Ite:
		return dependsOn(state, e.Cond, rv, transitive, seen) ||
			dependsOn(state, e.Then, rv, transitive, seen) ||
			dependsOn(state, e.Else, rv, transitive, seen)
	case Eq:
		return dependsOn(state, e.L, rv, transitive, seen) || dependsOn(state, e.R, rv, transitive, seen)
	case Lt:
		return dependsOn(state, e.L, rv, transitive, seen) || dependsOn(state, e.R, rv, transitive, seen)
	case Lst:
		for _, sub := range e.Es {
			if dependsOn(state, sub, rv, transitive, seen) {
				return true
			}
		}
		return false
	case PairExpr:
		return dependsOn(state, e.A, rv, transitive, seen) || dependsOn(state, e.B, rv, transitive, seen)
	default:
		return false
	}
}

// distrDependsOn is the fixed dispatch table: for each SymDistr variant it
// enumerates exactly which parameters to traverse.
func distrDependsOn(state *State, d SymDistr, rv RandomVar, transitive bool, seen map[RandomVar]bool) bool {
	switch dd := d.(type) {
	case Normal:
		return dependsOn(state, dd.Mu, rv, transitive, seen) || dependsOn(state, dd.Var, rv, transitive, seen)
	case Bernoulli:
		return dependsOn(state, dd.P, rv, transitive, seen)
	case Beta:
		return dependsOn(state, dd.A, rv, transitive, seen) || dependsOn(state, dd.B, rv, transitive, seen)
	case Binomial:
		return dependsOn(state, dd.N, rv, transitive, seen) || dependsOn(state, dd.P, rv, transitive, seen)
	case BetaBinomial:
		return dependsOn(state, dd.N, rv, transitive, seen) ||
			dependsOn(state, dd.A, rv, transitive, seen) ||
			dependsOn(state, dd.B, rv, transitive, seen)
	case NegativeBinomial:
		return dependsOn(state, dd.N, rv, transitive, seen) || dependsOn(state, dd.P, rv, transitive, seen)
	case Gamma:
		return dependsOn(state, dd.A, rv, transitive, seen) || dependsOn(state, dd.B, rv, transitive, seen)
	case Poisson:
		return dependsOn(state, dd.Lambda, rv, transitive, seen)
	case StudentT:
		return dependsOn(state, dd.Mu, rv, transitive, seen) ||
			dependsOn(state, dd.Tau2, rv, transitive, seen) ||
			dependsOn(state, dd.Nu, rv, transitive, seen)
	case Categorical:
		return dependsOn(state, dd.Lo, rv, transitive, seen) ||
			dependsOn(state, dd.Hi, rv, transitive, seen) ||
			dependsOn(state, dd.Probs, rv, transitive, seen)
	case Delta:
		return dependsOn(state, dd.V, rv, transitive, seen)
	default:
		return false
	}
}

// RVDependsOnTransitive reports whether from's distribution transitively
// references rv — the form depends_on takes when checking ancestry between
// two already-live random variables, rather than an arbitrary expression.
func RVDependsOnTransitive(state *State, from RandomVar, rv RandomVar) bool {
	if from == rv {
		return true
	}

	return DependsOn(state, from, rv, true)
}

// IsAffine determines whether expr can be written as a*rv + b for some
// SymExpr a, b not themselves depending on rv, returning (a, b, true) in
// that case: addition combines affine forms componentwise, multiplication
// by a Const factor on either side and division by a Const divisor
// distribute, and anything else is affine only if it doesn't depend on rv
// directly (a=0, b=expr).
func IsAffine(state *State, expr SymExpr, rv RandomVar) (a, b SymExpr, ok bool) {
	switch e := expr.(type) {
	case RandomVar:
		if e == rv {
			return Const{1.0}, Const{0.0}, true
		}
		if DependsOn(state, e, rv, true) {
			return nil, nil, false
		}
		return Const{0.0}, e, true
	case Add:
		a1, b1, ok1 := IsAffine(state, e.L, rv)
		if !ok1 {
			return nil, nil, false
		}
		a2, b2, ok2 := IsAffine(state, e.R, rv)
		if !ok2 {
			return nil, nil, false
		}
		return ExAdd(a1, a2), ExAdd(b1, b2), true
	case Mul:
		if c, isConst := e.L.(Const); isConst {
			a1, b1, ok1 := IsAffine(state, e.R, rv)
			if !ok1 {
				return nil, nil, false
			}
			return ExMul(c, a1), ExMul(c, b1), true
		}
		if c, isConst := e.R.(Const); isConst {
			a1, b1, ok1 := IsAffine(state, e.L, rv)
			if !ok1 {
				return nil, nil, false
			}
			return ExMul(c, a1), ExMul(c, b1), true
		}
		if !DependsOn(state, e, rv, false) {
			return Const{0.0}, e, true
		}
		return nil, nil, false
	case Div:
		if c, isConst := e.R.(Const); isConst {
			a1, b1, ok1 := IsAffine(state, e.L, rv)
			if !ok1 {
				return nil, nil, false
			}
			return ExDiv(a1, c), ExDiv(b1, c), true
		}
		if !DependsOn(state, e, rv, false) {
			return Const{0.0}, e, true
		}
		return nil, nil, false
	default:
		if !DependsOn(state, expr, rv, false) {
			return Const{0.0}, expr, true
		}
		return nil, nil, false
	}
}

// IsScaled reports whether expr is structurally e itself, or e multiplied by
// some constant factor, returning that factor (1 in the identity case). It
// is the narrower relation the Normal-Inverse-Gamma-Normal conjugate rule
// needs when checking that a variance expression is a bare scalar multiple
// of another random variable, as opposed to IsAffine's full a*rv+b form.
func IsScaled(state *State, expr, e SymExpr) (SymExpr, bool) {
	if ExprEqual(expr, e) {
		return Const{1.0}, true
	}

	if mul, ok := expr.(Mul); ok {
		if c, isConst := mul.L.(Const); isConst {
			if rest, ok2 := IsScaled(state, mul.R, e); ok2 {
				return ExMul(c, rest), true
			}
		}
		if c, isConst := mul.R.(Const); isConst {
			if rest, ok2 := IsScaled(state, mul.L, e); ok2 {
				return ExMul(c, rest), true
			}
		}
	}

	return nil, false
}
