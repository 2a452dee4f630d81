package ssi

import (
	"errors"

	"github.com/siren-lang/siren/internal/sampler"
	"github.com/siren-lang/siren/plan"
	"github.com/siren-lang/siren/symbolic"
)

// graft hoists rv, recovering from a non-conjugate blockage by forcing the
// blocking ancestor directly (which collapses it to a parentless Delta)
// and retrying the whole hoist from scratch. Any other error — including a
// structural errCannotSwap, or an annotation violation surfaced by forcing
// the blocking ancestor — propagates to the caller unchanged.
func (s *State) graft(rv symbolic.RandomVar) error {
	for {
		err := s.hoist(rv)
		if err == nil {
			return nil
		}

		var nc *nonConjugateError
		if !errors.As(err, &nc) {
			return err
		}
		if _, err := s.Value(nc.blocking); err != nil {
			return err
		}
	}
}

// Value forces rv to a concrete sample, grafting it first so that, by
// construction, its distribution no longer references any other live
// variable a swap could remove.
func (s *State) Value(rv symbolic.RandomVar) (symbolic.Const, error) {
	if d, ok := s.Distr(rv).(symbolic.Delta); ok && d.Sampled {
		return d.V.(symbolic.Const), nil
	}

	if err := s.graft(rv); err != nil {
		return symbolic.Const{}, err
	}

	normalized := s.EvalDistr(s.Distr(rv))
	v := sampler.Sample(s.Rand(), normalized)
	c := symbolic.Const{V: v}

	if err := s.SetDistr(rv, symbolic.Delta{V: c, Sampled: true}); err != nil {
		return symbolic.Const{}, err
	}
	s.RecordPlan(rv, plan.Sample)

	return c, nil
}

// Mean returns expr's mean, grafting any RandomVar it references to
// eliminate its live parents but never forcing it to a concrete sample —
// unlike Value, a variable that stays conjugate-reducible all the way up
// its parent chain contributes its analytic mean without ever sampling.
func (s *State) Mean(expr symbolic.SymExpr) (float64, error) {
	return s.MeanExpr(expr, s.graft)
}

// Observe conditions rv on value: it is grafted exactly as Value does, but
// instead of drawing a fresh sample, value is installed directly as an
// (unsampled) Delta.
func (s *State) Observe(rv symbolic.RandomVar, value symbolic.Const) error {
	if _, ok := s.Distr(rv).(symbolic.Delta); ok {
		return nil
	}

	if err := s.graft(rv); err != nil {
		return err
	}

	if err := s.SetDistr(rv, symbolic.Delta{V: value, Sampled: false}); err != nil {
		return err
	}
	s.RecordPlan(rv, plan.Symbolic)

	return nil
}
