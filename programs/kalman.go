package programs

import (
	"github.com/siren-lang/siren/abstract"
	"github.com/siren-lang/siren/engine"
	"github.com/siren-lang/siren/ident"
	"github.com/siren-lang/siren/symbolic"
)

// Kalman runs a two-step linear-Gaussian state-space model: x0 -> y0 (noisy
// observation), x0 -> x1 (transition), x1 -> y1, observing both readings
// and returning the filtered estimate of x1. Both observe steps are
// Gaussian-Gaussian conjugate.
var Kalman = Program{
	Name: "kalman",
	Run: func(s engine.Interpreter) (symbolic.Const, error) {
		x0Name, y0Name := ident.NewIdentifier("x0"), ident.NewIdentifier("y0")
		x1Name, y1Name := ident.NewIdentifier("x1"), ident.NewIdentifier("y1")

		x0 := s.Assume(&x0Name, ident.AnnotationNone, symbolic.Normal{Mu: symbolic.Const{V: 0.0}, Var: symbolic.Const{V: 1.0}})
		y0 := s.Assume(&y0Name, ident.AnnotationNone, symbolic.Normal{Mu: x0, Var: symbolic.Const{V: 0.5}})
		if err := s.Observe(y0, symbolic.Const{V: 1.0}); err != nil {
			return symbolic.Const{}, err
		}

		x1 := s.Assume(&x1Name, ident.AnnotationNone, symbolic.Normal{Mu: x0, Var: symbolic.Const{V: 1.0}})
		y1 := s.Assume(&y1Name, ident.AnnotationNone, symbolic.Normal{Mu: x1, Var: symbolic.Const{V: 0.5}})
		if err := s.Observe(y1, symbolic.Const{V: 2.0}); err != nil {
			return symbolic.Const{}, err
		}

		return s.Value(x1)
	},
	AbsRun: func(s *abstract.AbsState) ident.Identifier {
		x0, y0 := ident.NewIdentifier("x0"), ident.NewIdentifier("y0")
		x1, y1 := ident.NewIdentifier("x1"), ident.NewIdentifier("y1")

		s.Assume(x0, abstract.AbsNormal{Mu: abstract.AbsConst{V: 0.0}, Var: abstract.AbsConst{V: 1.0}})
		s.Assume(y0, abstract.AbsNormal{Mu: abstract.AbsVar{Name: x0}, Var: abstract.AbsConst{V: 0.5}})
		s.Observe(y0)

		s.Assume(x1, abstract.AbsNormal{Mu: abstract.AbsVar{Name: x0}, Var: abstract.AbsConst{V: 1.0}})
		s.Assume(y1, abstract.AbsNormal{Mu: abstract.AbsVar{Name: x1}, Var: abstract.AbsConst{V: 0.5}})
		s.Observe(y1)
		s.Value(x1)

		return x1
	},
}
