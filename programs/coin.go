package programs

import (
	"github.com/siren-lang/siren/abstract"
	"github.com/siren-lang/siren/engine"
	"github.com/siren-lang/siren/ident"
	"github.com/siren-lang/siren/symbolic"
)

// Coin models a biased coin with a Beta(1, 1) prior, observes one flip, and
// returns the posterior mean bias — the canonical Beta-Bernoulli conjugate
// pair. It reads the mean rather than forcing a sample, so p never leaves
// the symbolic tier under any strategy; in the static plan only belief
// propagation's one-hop model downgrades anything (flip, whose parameter
// references p).
var Coin = Program{
	Name: "coin",
	Run: func(s engine.Interpreter) (symbolic.Const, error) {
		pName := ident.NewIdentifier("p")
		flipName := ident.NewIdentifier("flip")

		p := s.Assume(&pName, ident.AnnotationNone, symbolic.Beta{A: symbolic.Const{V: 1.0}, B: symbolic.Const{V: 1.0}})
		flip := s.Assume(&flipName, ident.AnnotationNone, symbolic.Bernoulli{P: p})
		if err := s.Observe(flip, symbolic.Const{V: true}); err != nil {
			return symbolic.Const{}, err
		}

		mean, err := s.Mean(p)
		if err != nil {
			return symbolic.Const{}, err
		}

		return symbolic.Const{V: mean}, nil
	},
	AbsRun: func(s *abstract.AbsState) ident.Identifier {
		p := ident.NewIdentifier("p")
		flip := ident.NewIdentifier("flip")
		s.Assume(p, abstract.AbsBeta{A: abstract.AbsConst{V: 1.0}, B: abstract.AbsConst{V: 1.0}})
		s.Assume(flip, abstract.AbsBernoulli{P: abstract.AbsVar{Name: p}})
		s.Observe(flip)
		s.Mean(p)

		return p
	},
}
