package engine

import (
	"fmt"

	"github.com/siren-lang/siren/belief"
	"github.com/siren-lang/siren/delayed"
	"github.com/siren-lang/siren/ident"
	"github.com/siren-lang/siren/plan"
	"github.com/siren-lang/siren/ssi"
	"github.com/siren-lang/siren/symbolic"
)

// Strategy names one of the three inference algorithms.
type Strategy int

const (
	SSI Strategy = iota
	DelayedSampling
	BeliefPropagation
)

func (s Strategy) String() string {
	switch s {
	case SSI:
		return "ssi"
	case DelayedSampling:
		return "delayed-sampling"
	case BeliefPropagation:
		return "belief-propagation"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Interpreter is the common surface every strategy's State implements: a
// program drives inference through this interface alone, oblivious to which
// strategy is underneath.
type Interpreter interface {
	Assume(name *ident.Identifier, annotation ident.Annotation, distr symbolic.SymDistr) symbolic.RandomVar
	Observe(rv symbolic.RandomVar, value symbolic.Const) error
	Value(rv symbolic.RandomVar) (symbolic.Const, error)
	// Mean returns expr's mean without forcing any RandomVar it references
	// to a concrete sample, unlike Value.
	Mean(expr symbolic.SymExpr) (float64, error)
	// RuntimePlan returns the plan.Plan accumulated so far from this
	// interpreter's own Value/Observe calls, for comparing against the
	// abstract interpreter's static prediction via plan.Agrees.
	RuntimePlan() plan.Plan
	Ctx() *symbolic.Context
	Clean()
	Vars() []symbolic.RandomVar
}

// Cloner is implemented by the value New returns; particle.Particle.Clone
// type asserts on it when forking particles for resampling.
type Cloner interface {
	Clone() Interpreter
}

// The three handle types adapt each strategy's own Clone (which returns its
// own concrete *State type, not Interpreter) to the Cloner interface,
// without strategy packages needing to import engine themselves. delayed's
// handle additionally bridges naming: delayed.State calls its forcing
// operation Realize, the name delayed sampling literature uses, rather than
// Value.
type ssiHandle struct{ *ssi.State }
type delayedHandle struct{ *delayed.State }
type beliefHandle struct{ *belief.State }

func (h ssiHandle) Clone() Interpreter     { return ssiHandle{h.State.Clone()} }
func (h delayedHandle) Clone() Interpreter { return delayedHandle{h.State.Clone()} }
func (h beliefHandle) Clone() Interpreter  { return beliefHandle{h.State.Clone()} }

func (h delayedHandle) Value(rv symbolic.RandomVar) (symbolic.Const, error) {
	return h.State.Realize(rv)
}

// New constructs a fresh Interpreter for the named strategy.
func New(strategy Strategy, opts ...symbolic.Option) Interpreter {
	switch strategy {
	case SSI:
		return ssiHandle{ssi.New(opts...)}
	case DelayedSampling:
		return delayedHandle{delayed.New(opts...)}
	case BeliefPropagation:
		return beliefHandle{belief.New(opts...)}
	default:
		panic(fmt.Sprintf("engine: unrecognized strategy %d", int(strategy)))
	}
}
