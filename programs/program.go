package programs

import (
	"github.com/siren-lang/siren/abstract"
	"github.com/siren-lang/siren/engine"
	"github.com/siren-lang/siren/ident"
	"github.com/siren-lang/siren/symbolic"
)

// Program is one example probabilistic program, expressed twice: once as a
// concrete Run against any strategy's engine.Interpreter, once as an AbsRun
// against the static abstract interpreter. AbsRun returns the name of the
// variable the program's result is read from; plan.Agrees compares the
// whole abstract plan against Run's runtime plan.
type Program struct {
	Name   string
	Run    func(engine.Interpreter) (symbolic.Const, error)
	AbsRun func(*abstract.AbsState) ident.Identifier
}
