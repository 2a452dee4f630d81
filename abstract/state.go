package abstract

import (
	"github.com/siren-lang/siren/engine"
	"github.com/siren-lang/siren/ident"
	"github.com/siren-lang/siren/plan"
)

// AbsState runs one abstract-interpretation pass over a program, tracking
// each variable's current abstract distribution and the inference plan
// entries that pass produces. Strategy governs how far Observe/Value/Mean
// may look past a variable's own parameters before giving up: SSI and
// delayed sampling may chase a whole ancestor chain the way their runtime
// hoist/marginalize do, while belief propagation's one-hop model gives up
// on any variable whose own parameters reference another live variable.
type AbsState struct {
	Plan     plan.Plan
	Strategy engine.Strategy
	env      map[ident.Identifier]AbsDistr
}

// NewAbsState returns an empty AbsState tracking strategy's reach.
func NewAbsState(strategy engine.Strategy) *AbsState {
	return &AbsState{Plan: plan.New(), Strategy: strategy, env: make(map[ident.Identifier]AbsDistr)}
}

// Classify assigns distr the weakest plan.Encoding it is known to admit: an
// UnkD distribution is Dynamic; a known family with any UnkC/UnkE embedded
// in its parameters is Sample (the shape is known but a value inside it is
// not, so it can still be drawn, just not reasoned about exactly); anything
// else is Symbolic.
func Classify(distr AbsDistr) plan.Encoding {
	if _, ok := distr.(UnkD); ok {
		return plan.Dynamic
	}
	for _, param := range distr.Params() {
		if ContainsUnknown(param) {
			return plan.Sample
		}
	}

	return plan.Symbolic
}

// Assume records name's abstract distribution and its classification.
// Assume records name's abstract distribution and its classification. When
// distr is UnkD, or one of its parameters embeds an UnkE, every variable
// named in that unknown's Parents set is forced to plan.Dynamic alongside
// name itself, since the branch that produced the unknown erased whatever
// was statically known about them too.
func (s *AbsState) Assume(name ident.Identifier, distr AbsDistr) {
	s.env[name] = distr
	s.Plan.Record(name, Classify(distr))

	if u, ok := distr.(UnkD); ok {
		for _, parent := range u.Parents {
			s.Plan.Record(parent, plan.Dynamic)
		}
	}
	for _, param := range distr.Params() {
		for _, parent := range UnknownParents(param) {
			s.Plan.Record(parent, plan.Dynamic)
		}
	}
}

// reaches reports whether name's distribution, and everything it depends on
// up to the depth Strategy allows, classifies as Symbolic. Belief
// propagation never looks past a variable's direct parents: any live
// reference in one of its own parameters is enough to give up. SSI and
// delayed sampling recurse into each referenced variable in turn, the same
// way their runtime hoist/marginalize chases a parent chain until it either
// bottoms out or hits something it cannot resolve.
func (s *AbsState) reaches(name ident.Identifier) bool {
	distr, ok := s.env[name]
	if !ok {
		return false
	}
	if Classify(distr) != plan.Symbolic {
		return false
	}

	for _, param := range distr.Params() {
		vars := VarsOf(param)
		if s.Strategy == engine.BeliefPropagation {
			if len(vars) > 0 {
				return false
			}
			continue
		}
		for _, v := range vars {
			if !s.reaches(v) {
				return false
			}
		}
	}

	return true
}

// Observe records that name was conditioned on evidence. A Symbolic
// variable stays Symbolic only if Strategy's reach can resolve every live
// variable its distribution depends on — conditioning via a conjugate rule
// against an ancestor the strategy cannot reach cannot be verified
// statically, so it is downgraded to Sample.
func (s *AbsState) Observe(name ident.Identifier) {
	distr, ok := s.env[name]
	if !ok {
		s.Plan.Record(name, plan.Dynamic)
		return
	}

	enc := Classify(distr)
	if enc == plan.Symbolic && !s.reaches(name) {
		enc = plan.Sample
	}
	s.Plan.Record(name, enc)
}

// Value records that name was forced to a concrete sample. Forcing always
// requires drawing a number, so a Symbolic classification is downgraded to
// Sample (the lattice join of "exact" and "must sample" is "must sample")
// regardless of how far Strategy can otherwise reach.
func (s *AbsState) Value(name ident.Identifier) {
	distr, ok := s.env[name]
	if !ok {
		s.Plan.Record(name, plan.Dynamic)
		return
	}

	enc := Classify(distr)
	if enc == plan.Symbolic {
		enc = plan.Sample
	}
	s.Plan.Record(name, enc)
}

// Mean records name's classification the way Observe does, without ever
// forcing it: a variable whose whole ancestor chain Strategy can reach
// contributes its analytic mean symbolically, mirroring symbolic.State.Mean
// never forcing the variable it's asked for.
func (s *AbsState) Mean(name ident.Identifier) {
	distr, ok := s.env[name]
	if !ok {
		s.Plan.Record(name, plan.Dynamic)
		return
	}

	enc := Classify(distr)
	if enc == plan.Symbolic && !s.reaches(name) {
		enc = plan.Sample
	}
	s.Plan.Record(name, enc)
}
