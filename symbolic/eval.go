package symbolic

import (
	"fmt"

	"github.com/siren-lang/siren/plan"
)

// Eval simplifies expr to normal form. For a RandomVar whose current
// distribution is a Delta, it substitutes the Delta's value (recursively,
// since that value may itself reference other variables transiently);
// otherwise it evaluates the distribution's parameters in place, writing
// the simplified distribution back (memoising progress) before returning
// the RandomVar reference unchanged. Eval is idempotent: re-running it on
// its own output is a no-op beyond the memoisation writes, which are
// themselves idempotent once every parameter is already in normal form.
func (s *State) Eval(expr SymExpr) SymExpr {
	switch e := expr.(type) {
	case Const:
		return e
	case RandomVar:
		switch d := s.Distr(e).(type) {
		case Delta:
			return s.Eval(d.V)
		default:
			normalized := s.EvalDistr(d)
			if err := s.SetDistr(e, normalized); err != nil {
				// SetDistr only rejects a sampled Delta; EvalDistr never
				// produces one, so this path is unreachable in practice.
				panic(err)
			}
			return e
		}
	case Add:
		return ExAdd(s.Eval(e.L), s.Eval(e.R))
	case Mul:
		return ExMul(s.Eval(e.L), s.Eval(e.R))
	case Div:
		return ExDiv(s.Eval(e.L), s.Eval(e.R))
	case Ite:
		return ExIte(s.Eval(e.Cond), s.Eval(e.Then), s.Eval(e.Else))
	case Eq:
		return ExEq(s.Eval(e.L), s.Eval(e.R))
	case Lt:
		return ExLt(s.Eval(e.L), s.Eval(e.R))
	case Lst:
		es := make([]SymExpr, len(e.Es))
		allConst := true
		for i, sub := range e.Es {
			es[i] = s.Eval(sub)
			if _, ok := es[i].(Const); !ok {
				allConst = false
			}
		}
		if allConst {
			vals := make([]Value, len(es))
			for i, e := range es {
				vals[i] = e.(Const).V
			}
			return Const{vals}
		}
		return Lst{es}
	case PairExpr:
		a, b := s.Eval(e.A), s.Eval(e.B)
		ca, aok := a.(Const)
		cb, bok := b.(Const)
		if aok && bok {
			return Const{Pair2{ca.V, cb.V}}
		}
		return PairExpr{a, b}
	default:
		panic(fmt.Sprintf("symbolic: unrecognized SymExpr %T", expr))
	}
}

// EvalDistr evaluates every parameter of distr, returning a distribution of
// the same kind in normal form.
func (s *State) EvalDistr(distr SymDistr) SymDistr {
	switch d := distr.(type) {
	case Normal:
		return Normal{s.Eval(d.Mu), s.Eval(d.Var)}
	case Bernoulli:
		return Bernoulli{s.Eval(d.P)}
	case Beta:
		return Beta{s.Eval(d.A), s.Eval(d.B)}
	case Binomial:
		return Binomial{s.Eval(d.N), s.Eval(d.P)}
	case BetaBinomial:
		return BetaBinomial{s.Eval(d.N), s.Eval(d.A), s.Eval(d.B)}
	case NegativeBinomial:
		return NegativeBinomial{s.Eval(d.N), s.Eval(d.P)}
	case Gamma:
		return Gamma{s.Eval(d.A), s.Eval(d.B)}
	case Poisson:
		return Poisson{s.Eval(d.Lambda)}
	case StudentT:
		return StudentT{s.Eval(d.Mu), s.Eval(d.Tau2), s.Eval(d.Nu)}
	case Categorical:
		return Categorical{s.Eval(d.Lo), s.Eval(d.Hi), s.Eval(d.Probs)}
	case Delta:
		return Delta{s.Eval(d.V), d.Sampled}
	default:
		panic(fmt.Sprintf("symbolic: unrecognized SymDistr %T", distr))
	}
}

// DistrMean returns distr's closed-form mean, assuming every parameter is
// already a ground Const (the caller marginalizes first). It reports false
// for a family with no simple closed form here (Categorical, or a Delta
// whose value hasn't collapsed to Const).
func DistrMean(distr SymDistr) (float64, bool) {
	switch d := distr.(type) {
	case Normal:
		return constFloat(d.Mu), true
	case Bernoulli:
		return constFloat(d.P), true
	case Beta:
		a, b := constFloat(d.A), constFloat(d.B)
		return a / (a + b), true
	case Binomial:
		return constFloat(d.N) * constFloat(d.P), true
	case BetaBinomial:
		n, a, b := constFloat(d.N), constFloat(d.A), constFloat(d.B)
		return n * a / (a + b), true
	case NegativeBinomial:
		n, p := constFloat(d.N), constFloat(d.P)
		return n * (1 - p) / p, true
	case Gamma:
		return constFloat(d.A) / constFloat(d.B), true
	case Poisson:
		return constFloat(d.Lambda), true
	case StudentT:
		return constFloat(d.Mu), true
	case Delta:
		if c, ok := d.V.(Const); ok {
			return AsFloat(c.V), true
		}
		return 0, false
	default:
		return 0, false
	}
}

func constFloat(e SymExpr) float64 { return AsFloat(e.(Const).V) }

// MeanExpr computes expr's mean without forcing any RandomVar it references
// to a concrete sample. A RandomVar leaf is first reduced to a distribution
// with no live parents via the supplied marginalize callback (a strategy's
// own hoist/graft/marginalize operation, whichever it calls the step that
// eliminates parents without sampling), then DistrMean reads its mean off
// directly. marginalize is exactly the shape of a strategy's own Marginalize
// method, so callers pass that method value straight through.
func (s *State) MeanExpr(expr SymExpr, marginalize func(RandomVar) error) (float64, error) {
	expr = s.Eval(expr)

	switch e := expr.(type) {
	case Const:
		return AsFloat(e.V), nil
	case RandomVar:
		if err := marginalize(e); err != nil {
			return 0, err
		}
		mean, ok := DistrMean(s.Distr(e))
		if !ok {
			return 0, fmt.Errorf("symbolic: %s has no closed-form mean", e.ID)
		}
		s.RecordPlan(e, plan.Symbolic)
		return mean, nil
	case Add:
		l, err := s.MeanExpr(e.L, marginalize)
		if err != nil {
			return 0, err
		}
		r, err := s.MeanExpr(e.R, marginalize)
		if err != nil {
			return 0, err
		}
		return l + r, nil
	case Mul:
		l, err := s.MeanExpr(e.L, marginalize)
		if err != nil {
			return 0, err
		}
		r, err := s.MeanExpr(e.R, marginalize)
		if err != nil {
			return 0, err
		}
		return l * r, nil
	case Div:
		l, err := s.MeanExpr(e.L, marginalize)
		if err != nil {
			return 0, err
		}
		r, err := s.MeanExpr(e.R, marginalize)
		if err != nil {
			return 0, err
		}
		return l / r, nil
	case Ite:
		cond, err := s.MeanExpr(e.Cond, marginalize)
		if err != nil {
			return 0, err
		}
		if cond != 0 {
			return s.MeanExpr(e.Then, marginalize)
		}
		return s.MeanExpr(e.Else, marginalize)
	default:
		return 0, fmt.Errorf("symbolic: %T has no mean", expr)
	}
}

// ValueExpr fully forces expr to a ground Const, recursively forcing any
// RandomVar it references via the supplied force callback (typically a
// strategy's Value method). Unlike Eval, ValueExpr never leaves a RandomVar
// in its output.
func (s *State) ValueExpr(expr SymExpr, force func(RandomVar) Const) Const {
	switch e := expr.(type) {
	case Const:
		return e
	case RandomVar:
		return force(e)
	case Add:
		l, r := s.ValueExpr(e.L, force), s.ValueExpr(e.R, force)
		return Const{AsFloat(l.V) + AsFloat(r.V)}
	case Mul:
		l, r := s.ValueExpr(e.L, force), s.ValueExpr(e.R, force)
		return Const{AsFloat(l.V) * AsFloat(r.V)}
	case Div:
		l, r := s.ValueExpr(e.L, force), s.ValueExpr(e.R, force)
		return Const{AsFloat(l.V) / AsFloat(r.V)}
	case Ite:
		cond := s.ValueExpr(e.Cond, force)
		if AsBool(cond.V) {
			return s.ValueExpr(e.Then, force)
		}
		return s.ValueExpr(e.Else, force)
	case Eq:
		l, r := s.ValueExpr(e.L, force), s.ValueExpr(e.R, force)
		return Const{valueEqual(l.V, r.V)}
	case Lt:
		l, r := s.ValueExpr(e.L, force), s.ValueExpr(e.R, force)
		return Const{AsFloat(l.V) < AsFloat(r.V)}
	case Lst:
		vals := make([]Value, len(e.Es))
		for i, sub := range e.Es {
			vals[i] = s.ValueExpr(sub, force).V
		}
		return Const{vals}
	case PairExpr:
		a, b := s.ValueExpr(e.A, force), s.ValueExpr(e.B, force)
		return Const{Pair2{a.V, b.V}}
	default:
		panic(fmt.Sprintf("symbolic: unrecognized SymExpr %T", expr))
	}
}
