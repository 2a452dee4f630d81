package delayed

import (
	"github.com/siren-lang/siren/internal/sampler"
	"github.com/siren-lang/siren/plan"
	"github.com/siren-lang/siren/symbolic"
)

// Realize forces rv to a concrete sample, marginalizing its parent chain
// first. Once sampled, the posterior computed when rv was marginalized (if
// any) is installed on rv's former parent.
func (s *State) Realize(rv symbolic.RandomVar) (symbolic.Const, error) {
	if s.status[rv] == realized {
		return s.Distr(rv).(symbolic.Delta).V.(symbolic.Const), nil
	}

	for {
		err := s.marginalize(rv)
		if err == nil {
			break
		}
		distr := s.Distr(rv)
		parent, ok := singleParent(distr)
		if !ok {
			break
		}
		if _, err := s.Realize(parent); err != nil {
			return symbolic.Const{}, err
		}
	}

	normalized := s.EvalDistr(s.Distr(rv))
	v := sampler.Sample(s.Rand(), normalized)
	c := symbolic.Const{V: v}

	if err := s.SetDistr(rv, symbolic.Delta{V: c, Sampled: true}); err != nil {
		return symbolic.Const{}, err
	}
	s.status[rv] = realized
	s.RecordPlan(rv, plan.Sample)

	if entry, ok := s.pendingTable[rv]; ok {
		if err := s.SetDistr(entry.parent, entry.posterior); err != nil {
			return symbolic.Const{}, err
		}
		s.status[entry.parent] = marginalized
		delete(s.pendingTable, rv)
	}

	return c, nil
}

// Mean returns expr's mean, marginalizing any RandomVar it references but
// never realizing it to a concrete sample.
func (s *State) Mean(expr symbolic.SymExpr) (float64, error) {
	return s.MeanExpr(expr, s.Marginalize)
}

// Observe conditions rv on value the same way Realize does, except value is
// installed directly instead of drawn.
func (s *State) Observe(rv symbolic.RandomVar, value symbolic.Const) error {
	if s.status[rv] == realized {
		return nil
	}

	for {
		err := s.marginalize(rv)
		if err == nil {
			break
		}
		distr := s.Distr(rv)
		parent, ok := singleParent(distr)
		if !ok {
			break
		}
		if _, err := s.Realize(parent); err != nil {
			return err
		}
	}

	if err := s.SetDistr(rv, symbolic.Delta{V: value, Sampled: false}); err != nil {
		return err
	}
	s.status[rv] = realized
	s.RecordPlan(rv, plan.Symbolic)

	if entry, ok := s.pendingTable[rv]; ok {
		if err := s.SetDistr(entry.parent, entry.posterior); err != nil {
			return err
		}
		s.status[entry.parent] = marginalized
		delete(s.pendingTable, rv)
	}

	return nil
}
