package belief

import (
	"github.com/siren-lang/siren/ident"
	"github.com/siren-lang/siren/internal/sampler"
	"github.com/siren-lang/siren/plan"
	"github.com/siren-lang/siren/symbolic"
)

// Category records whether a variable's distribution currently references a
// live parent.
type Category int

const (
	Marginal Category = iota
	Conditional
)

// State extends symbolic.State with the marginal/conditional categorization
// BP assigns each variable at assume time.
type State struct {
	*symbolic.State
	category map[symbolic.RandomVar]Category
}

// New builds an empty belief-propagation state.
func New(opts ...symbolic.Option) *State {
	return &State{
		State:    symbolic.New(opts...),
		category: make(map[symbolic.RandomVar]Category),
	}
}

// Clone returns an independent State with its own category map.
func (s *State) Clone() *State {
	category := make(map[symbolic.RandomVar]Category, len(s.category))
	for k, v := range s.category {
		category[k] = v
	}

	return &State{State: s.State.Clone(), category: category}
}

func (s *State) directParent(rv symbolic.RandomVar) (symbolic.RandomVar, bool) {
	parents := s.Distr(rv).Rvs()
	if len(parents) == 1 {
		return parents[0], true
	}

	return symbolic.RandomVar{}, false
}

// Assume installs rv, categorizing it Conditional if it has exactly one live
// parent and Marginal otherwise.
func (s *State) Assume(name *ident.Identifier, annotation ident.Annotation, distr symbolic.SymDistr) symbolic.RandomVar {
	rv := s.NewVar()
	s.Install(rv, name, distr)
	if name != nil {
		s.Ctx().Set(*name, rv)
		if annotation != ident.AnnotationNone {
			s.Annotate(*name, annotation)
		}
	}

	if _, ok := s.directParent(rv); ok {
		s.category[rv] = Conditional
	} else {
		s.category[rv] = Marginal
	}

	return rv
}

// Category reports rv's current categorization.
func (s *State) Category(rv symbolic.RandomVar) Category {
	return s.category[rv]
}

// marginalOf returns rv's own marginal distribution: rv's distribution
// unchanged if Marginal, or the one-hop conjugate marginal against its
// direct parent if Conditional. When no rule in symbolic.Rules covers that
// one hop, BP has no fallback the way ssi's graft does across a whole
// chain — it simply forces the blocking parent directly, collapsing it to
// a Delta, and reads rv's marginal off the now-substituted distribution.
func (s *State) marginalOf(rv symbolic.RandomVar) (symbolic.SymDistr, error) {
	if s.category[rv] == Marginal {
		return s.Distr(rv), nil
	}

	parent, ok := s.directParent(rv)
	if !ok {
		return s.Distr(rv), nil
	}
	if s.IsSampled(parent) {
		return s.EvalDistr(s.Distr(rv)), nil
	}

	marginal, _, ok := symbolic.Conjugate(s.State, parent, rv)
	if !ok {
		if _, err := s.Value(parent); err != nil {
			return nil, err
		}
		return s.EvalDistr(s.Distr(rv)), nil
	}

	return marginal, nil
}

// Value forces rv to a concrete sample drawn from its marginal, leaving its
// parent's distribution untouched (BP propagates messages, it does not
// fold evidence back into the parent the way ssi/delayed do).
func (s *State) Value(rv symbolic.RandomVar) (symbolic.Const, error) {
	if d, ok := s.Distr(rv).(symbolic.Delta); ok && d.Sampled {
		return d.V.(symbolic.Const), nil
	}

	marginal, err := s.marginalOf(rv)
	if err != nil {
		return symbolic.Const{}, err
	}

	v := sampler.Sample(s.Rand(), s.EvalDistr(marginal))
	c := symbolic.Const{V: v}
	if err := s.SetDistr(rv, symbolic.Delta{V: c, Sampled: true}); err != nil {
		return symbolic.Const{}, err
	}
	s.RecordPlan(rv, plan.Sample)

	return c, nil
}

// Observe conditions rv on value. If rv is Conditional, its direct parent
// receives the corresponding posterior when one hop admits a conjugate
// rule; otherwise the parent is forced directly, the same fallback
// marginalOf uses.
func (s *State) Observe(rv symbolic.RandomVar, value symbolic.Const) error {
	if s.category[rv] == Conditional {
		if parent, ok := s.directParent(rv); ok && !s.IsSampled(parent) {
			_, posterior, ok := symbolic.Conjugate(s.State, parent, rv)
			if !ok {
				if _, err := s.Value(parent); err != nil {
					return err
				}
			} else if err := s.SetDistr(parent, posterior); err != nil {
				return err
			}
		}
	}

	if err := s.SetDistr(rv, symbolic.Delta{V: value, Sampled: false}); err != nil {
		return err
	}
	s.RecordPlan(rv, plan.Symbolic)

	return nil
}

// Mean returns expr's mean, resolving any RandomVar it references to its
// one-hop marginal (forcing the blocking direct parent when no conjugate
// rule applies) but never forcing the variable itself.
func (s *State) Mean(expr symbolic.SymExpr) (float64, error) {
	return s.MeanExpr(expr, func(rv symbolic.RandomVar) error {
		marginal, err := s.marginalOf(rv)
		if err != nil {
			return err
		}
		return s.SetDistr(rv, marginal)
	})
}
