// Package staticplan runs one abstract-interpretation pass over a
// programs.Program and returns the resulting plan.Plan, so that the
// "static-dynamic agreement" property can be checked against a runtime
// plan in a single call instead of constructing an abstract.AbsState by
// hand in every test.
package staticplan

import (
	"github.com/siren-lang/siren/abstract"
	"github.com/siren-lang/siren/engine"
	"github.com/siren-lang/siren/ident"
	"github.com/siren-lang/siren/plan"
)

// Analyze runs absRun over a fresh AbsState scoped to strategy's reach and
// returns its accumulated plan together with the name absRun reports as its
// final result.
func Analyze(absRun func(*abstract.AbsState) ident.Identifier, strategy engine.Strategy) (plan.Plan, ident.Identifier) {
	s := abstract.NewAbsState(strategy)
	result := absRun(s)

	return s.Plan, result
}
