package programs

import (
	"github.com/siren-lang/siren/abstract"
	"github.com/siren-lang/siren/engine"
	"github.com/siren-lang/siren/ident"
	"github.com/siren-lang/siren/symbolic"
)

// EnvNoise models a sensor reading a noisy environment: base level plus a
// single sensor observation, returning the posterior belief about base.
var EnvNoise = Program{
	Name: "envnoise",
	Run: func(s engine.Interpreter) (symbolic.Const, error) {
		baseName := ident.NewIdentifier("base")
		readingName := ident.NewIdentifier("reading")

		base := s.Assume(&baseName, ident.AnnotationNone, symbolic.Normal{Mu: symbolic.Const{V: 10.0}, Var: symbolic.Const{V: 4.0}})
		reading := s.Assume(&readingName, ident.AnnotationNone, symbolic.Normal{Mu: base, Var: symbolic.Const{V: 0.25}})
		if err := s.Observe(reading, symbolic.Const{V: 9.7}); err != nil {
			return symbolic.Const{}, err
		}

		return s.Value(base)
	},
	AbsRun: func(s *abstract.AbsState) ident.Identifier {
		base := ident.NewIdentifier("base")
		reading := ident.NewIdentifier("reading")

		s.Assume(base, abstract.AbsNormal{Mu: abstract.AbsConst{V: 10.0}, Var: abstract.AbsConst{V: 4.0}})
		s.Assume(reading, abstract.AbsNormal{Mu: abstract.AbsVar{Name: base}, Var: abstract.AbsConst{V: 0.25}})
		s.Observe(reading)
		s.Value(base)

		return base
	},
}
