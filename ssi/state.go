package ssi

import (
	"fmt"

	"github.com/siren-lang/siren/ident"
	"github.com/siren-lang/siren/symbolic"
)

// State extends symbolic.State with nothing beyond the hoist algorithm
// below, which operates directly on the DAG each time it runs rather than
// maintaining a standing global order.
type State struct {
	*symbolic.State
}

// New builds an empty SSI state.
func New(opts ...symbolic.Option) *State {
	return &State{State: symbolic.New(opts...)}
}

// Clone returns an independent State.
func (s *State) Clone() *State {
	return &State{State: s.State.Clone()}
}

// Assume installs a fresh random variable, binds it in Ctx under name if
// name is non-nil, and records annotation.
func (s *State) Assume(name *ident.Identifier, annotation ident.Annotation, distr symbolic.SymDistr) symbolic.RandomVar {
	rv := s.NewVar()
	s.Install(rv, name, distr)
	if name != nil {
		s.Ctx().Set(*name, rv)
		if annotation != ident.AnnotationNone {
			s.Annotate(*name, annotation)
		}
	}

	return rv
}

// topoSort orders rvs so that, among themselves, no variable precedes one
// of its own ancestors: a post-order DFS over each rv's full parent chain,
// filtered back down to the requested set.
func topoSort(state *symbolic.State, rvs []symbolic.RandomVar) []symbolic.RandomVar {
	visited := make(map[symbolic.RandomVar]bool)
	var sorted []symbolic.RandomVar

	var visit func(rv symbolic.RandomVar)
	visit = func(rv symbolic.RandomVar) {
		for _, parent := range state.Distr(rv).Rvs() {
			visit(parent)
		}
		if !visited[rv] {
			visited[rv] = true
			sorted = append(sorted, rv)
		}
	}
	for _, rv := range rvs {
		visit(rv)
	}

	want := make(map[symbolic.RandomVar]bool, len(rvs))
	for _, rv := range rvs {
		want[rv] = true
	}
	nodes := make([]symbolic.RandomVar, 0, len(rvs))
	for _, node := range sorted {
		if want[node] {
			nodes = append(nodes, node)
		}
	}

	return nodes
}

// hasOtherDepsOnPar reports whether expr reaches par through some random
// variable other than par itself that transitively depends on par — a
// second, indirect path that would survive a swap of par into a child and
// make that swap unsound.
func hasOtherDepsOnPar(state *symbolic.State, expr symbolic.SymExpr, par symbolic.RandomVar) bool {
	switch e := expr.(type) {
	case symbolic.Const:
		return false
	case symbolic.RandomVar:
		if e == par {
			return false
		}
		return symbolic.RVDependsOnTransitive(state, e, par)
	case symbolic.Add:
		return hasOtherDepsOnPar(state, e.L, par) || hasOtherDepsOnPar(state, e.R, par)
	case symbolic.Mul:
		return hasOtherDepsOnPar(state, e.L, par) || hasOtherDepsOnPar(state, e.R, par)
	case symbolic.Div:
		return hasOtherDepsOnPar(state, e.L, par) || hasOtherDepsOnPar(state, e.R, par)
	case symbolic.Ite:
		return hasOtherDepsOnPar(state, e.Cond, par) ||
			hasOtherDepsOnPar(state, e.Then, par) ||
			hasOtherDepsOnPar(state, e.Else, par)
	case symbolic.Eq:
		return hasOtherDepsOnPar(state, e.L, par) || hasOtherDepsOnPar(state, e.R, par)
	case symbolic.Lt:
		return hasOtherDepsOnPar(state, e.L, par) || hasOtherDepsOnPar(state, e.R, par)
	case symbolic.Lst:
		for _, sub := range e.Es {
			if hasOtherDepsOnPar(state, sub, par) {
				return true
			}
		}
		return false
	case symbolic.PairExpr:
		return hasOtherDepsOnPar(state, e.A, par) || hasOtherDepsOnPar(state, e.B, par)
	default:
		return false
	}
}

// canSwap reports whether par can be eliminated from child's distribution:
// child must depend on par directly (non-transitively) in at least one
// parameter, and no parameter may also reach par through some other live
// variable, since that second path would carry par's influence past the
// swap unaccounted for.
func canSwap(state *symbolic.State, par, child symbolic.RandomVar) bool {
	params := state.Distr(child).Params()

	direct := false
	for _, p := range params {
		if symbolic.DependsOn(state, p, par, false) {
			direct = true
			break
		}
	}
	if !direct {
		return false
	}

	for _, p := range params {
		if hasOtherDepsOnPar(state, p, par) {
			return false
		}
	}

	return true
}

// swap eliminates par from child's distribution via the first rule in
// symbolic.Rules that fits the pair, installing the posterior on par and
// the marginal on child. It reports whether a rule applied.
func swap(state *symbolic.State, par, child symbolic.RandomVar) bool {
	marginal, posterior, ok := symbolic.Conjugate(state, par, child)
	if !ok {
		return false
	}
	if err := state.SetDistr(child, marginal); err != nil {
		panic(err)
	}
	if err := state.SetDistr(par, posterior); err != nil {
		panic(err)
	}

	return true
}

// hoistInner eliminates every ancestor of rvCur that canSwap admits,
// recursing into each direct parent first so deeper ancestors are
// flattened before rvCur's own swaps run. ghostRoots names ancestors some
// earlier, still-active call in this same hoist has already flattened;
// they are skipped here rather than re-swapped, since a shared ancestor of
// two parents must only be eliminated once.
func hoistInner(state *symbolic.State, rvCur symbolic.RandomVar, ghostRoots map[symbolic.RandomVar]bool) error {
	// Dissolve any already-forced (Delta) ancestor out of rvCur's own
	// parameters before computing its parent set: eval substitutes a
	// Delta's value wherever the variable is referenced, so a forced
	// ancestor stops appearing in Rvs() entirely rather than being handed
	// to canSwap/swap, which have no rule for a Delta prior.
	if err := state.SetDistr(rvCur, state.EvalDistr(state.Distr(rvCur))); err != nil {
		return err
	}

	parents := topoSort(state, state.Distr(rvCur).Rvs())

	ghosted := make(map[symbolic.RandomVar]bool, len(ghostRoots)+len(parents))
	for rv := range ghostRoots {
		ghosted[rv] = true
	}
	for _, par := range parents {
		if !ghosted[par] {
			if err := hoistInner(state, par, ghosted); err != nil {
				return err
			}
		}
		ghosted[par] = true
	}

	for i := len(parents) - 1; i >= 0; i-- {
		par := parents[i]
		if ghostRoots[par] {
			continue
		}
		if !canSwap(state, par, rvCur) {
			return fmt.Errorf("%w: %s into %s", errCannotSwap, par.ID, rvCur.ID)
		}
		if !swap(state, par, rvCur) {
			return &nonConjugateError{blocking: par}
		}
	}

	return nil
}

// hoist eliminates every ancestor of rv that a conjugate swap can remove,
// leaving rv's distribution referencing only variables a swap could not
// touch. It returns a *nonConjugateError the first time no rule in
// symbolic.Rules applies; the caller recovers by forcing the named parent.
func (s *State) hoist(rv symbolic.RandomVar) error {
	return hoistInner(s.State, rv, nil)
}
