package programs

import (
	"github.com/siren-lang/siren/abstract"
	"github.com/siren-lang/siren/engine"
	"github.com/siren-lang/siren/ident"
	"github.com/siren-lang/siren/symbolic"
)

// Tree branches a Gaussian's mean on a coin flip — coin does not appear
// affinely in leaf's mean, so no conjugate rule applies directly and
// observing leaf forces the recovery path: coin is realized first, which
// grounds the Ite and turns leaf back into an ordinary conjugate Normal.
var Tree = Program{
	Name: "tree",
	Run: func(s engine.Interpreter) (symbolic.Const, error) {
		coinName := ident.NewIdentifier("coin")
		leafName := ident.NewIdentifier("leaf")

		coin := s.Assume(&coinName, ident.AnnotationNone, symbolic.Bernoulli{P: symbolic.Const{V: 0.5}})
		mu := symbolic.ExIte(symbolic.Eq{L: coin, R: symbolic.Const{V: true}}, symbolic.Const{V: 0.0}, symbolic.Const{V: 5.0})
		leaf := s.Assume(&leafName, ident.AnnotationNone, symbolic.Normal{Mu: mu, Var: symbolic.Const{V: 1.0}})
		if err := s.Observe(leaf, symbolic.Const{V: 4.2}); err != nil {
			return symbolic.Const{}, err
		}

		return s.Value(coin)
	},
	AbsRun: func(s *abstract.AbsState) ident.Identifier {
		coin, leaf := ident.NewIdentifier("coin"), ident.NewIdentifier("leaf")

		s.Assume(coin, abstract.AbsBernoulli{P: abstract.AbsConst{V: 0.5}})
		mu := abstract.AbsIte{
			Cond: abstract.AbsEq{L: abstract.AbsVar{Name: coin}, R: abstract.AbsConst{V: true}},
			Then: abstract.AbsConst{V: 0.0},
			Else: abstract.AbsConst{V: 5.0},
		}
		s.Assume(leaf, abstract.AbsNormal{Mu: mu, Var: abstract.AbsConst{V: 1.0}})
		s.Observe(leaf)
		s.Value(coin)

		return coin
	},
}
