package symbolic

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/siren-lang/siren/ident"
	"github.com/siren-lang/siren/plan"
)

// entry is the value half of State.state: the program-visible name a
// RandomVar was assumed under (absent for anonymous variables) and its
// current distribution.
type entry struct {
	pv    *ident.Identifier
	distr SymDistr
}

// State holds every random variable a program has assumed, as a DAG of
// distribution-valued nodes (a RandomVar referenced inside another node's
// distribution is that node's parent). State is the strategy-independent
// half of the symbolic state machine: it owns the map, the fresh-id
// counter, the annotation table, and the shared PRNG, and implements
// expression evaluation, garbage collection, and the conjugate rules. The
// strategy packages (ssi, delayed, belief) embed a *State and add
// Assume/Observe/Value plus their own hoist/graft/propagate algorithm.
//
// mu guards state/counter/annotations: a State is normally owned
// exclusively by one particle, but the lock keeps ad hoc diagnostic access
// (String, Vars) safe if a caller inspects a particle mid-flight from
// another goroutine.
type State struct {
	mu          sync.RWMutex
	state       map[RandomVar]entry
	ctx         *Context
	counter     uint64
	annotations map[ident.Identifier]ident.Annotation
	rng         *rand.Rand
	runtime     plan.Plan
}

// Option configures a new State.
type Option func(*State)

// WithSeed seeds the State's PRNG deterministically. Without this option the
// PRNG is seeded from the global, non-deterministic source.
func WithSeed(seed int64) Option {
	return func(s *State) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand installs an already-constructed PRNG, letting several particles
// or strategies share one stream deliberately.
func WithRand(r *rand.Rand) Option {
	return func(s *State) { s.rng = r }
}

// New builds an empty State.
func New(opts ...Option) *State {
	s := &State{
		state:       make(map[RandomVar]entry),
		ctx:         NewContext(),
		annotations: make(map[ident.Identifier]ident.Annotation),
		runtime:     plan.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(rand.Int63()))
	}

	return s
}

// Rand returns the State's shared PRNG. Strategies use it for the concrete
// sampling that eval/force perform; it is never reseeded after New.
func (s *State) Rand() *rand.Rand { return s.rng }

// Ctx returns the interpreter environment Clean uses as its liveness root.
func (s *State) Ctx() *Context { return s.ctx }

// NewVar allocates and returns a fresh RandomVar; it does not install an
// entry for it (callers must follow with a direct state write, see
// ssi.State.Assume).
func (s *State) NewVar() RandomVar {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++

	return RandomVar{ID: fmt.Sprintf("rv%d", s.counter)}
}

// Install records a brand-new RandomVar's program-visible name and initial
// distribution. It is the Assume-time counterpart to SetDistr.
func (s *State) Install(rv RandomVar, pv *ident.Identifier, distribution SymDistr) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state[rv] = entry{pv: pv, distr: distribution}
}

// Annotate records annotation for name. It does not validate name and
// returns nothing; callers resolve anonymity before calling this, exactly
// as Assume does.
func (s *State) Annotate(name ident.Identifier, annotation ident.Annotation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.annotations[name] = annotation
}

// Annotation returns the annotation declared for name, or AnnotationNone.
func (s *State) Annotation(name ident.Identifier) ident.Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.annotations[name]
}

// Vars returns every live RandomVar, in no particular order.
func (s *State) Vars() []RandomVar {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RandomVar, 0, len(s.state))
	for rv := range s.state {
		out = append(out, rv)
	}

	return out
}

// Len reports the number of live random variables.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.state)
}

// Distr returns rv's current distribution, panicking with ErrVarNotFound
// wrapped into the message if rv is not live — looking up a dead or
// never-assumed RandomVar is an invariant violation, not a recoverable
// condition.
func (s *State) Distr(rv RandomVar) SymDistr {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.state[rv]
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrVarNotFound, rv.ID))
	}

	return e.distr
}

// RuntimePlan returns the plan.Plan this State has accumulated so far: one
// entry per program-visible name that was ever passed to RecordPlan,
// joined the same way the abstract interpreter's own plan.Plan.Record does.
// Anonymous RandomVars (assumed with a nil name) never reach it, since
// plan.Plan is keyed by ident.Identifier and there is nothing to key them by.
func (s *State) RuntimePlan() plan.Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.runtime.Clone()
}

// RecordPlan joins enc into rv's program-visible name in the runtime plan, a
// no-op for an anonymously-assumed rv. Strategy packages call this from
// their own Value/Observe/Mean: Sample when a variable is forced to a
// concrete draw, Symbolic when it is resolved (hoisted, marginalized, or
// one-hop-folded) without ever being forced.
func (s *State) RecordPlan(rv RandomVar, enc plan.Encoding) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.state[rv]
	if !ok || e.pv == nil {
		return
	}
	s.runtime.Record(*e.pv, enc)
}

// PV returns rv's program-visible name, or nil if it was assumed anonymously.
func (s *State) PV(rv RandomVar) *ident.Identifier {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.state[rv]
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrVarNotFound, rv.ID))
	}

	return e.pv
}

// SetDistr replaces rv's distribution. If distribution is a sampled Delta
// and rv's program-visible name was annotated ident.AnnotationSymbolic,
// SetDistr returns ErrViolatedAnnotation instead of mutating the state
// (invariant I.4).
func (s *State) SetDistr(rv RandomVar, distribution SymDistr) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.state[rv]
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrVarNotFound, rv.ID))
	}

	if delta, isDelta := distribution.(Delta); isDelta && delta.Sampled && e.pv != nil {
		if s.annotations[*e.pv] == ident.AnnotationSymbolic {
			return fmt.Errorf("%w: %s", ErrViolatedAnnotation, e.pv)
		}
	}

	s.state[rv] = entry{pv: e.pv, distr: distribution}

	return nil
}

// Clone returns a State with its own copy of the variable map, context, and
// annotation table, sharing the same PRNG stream as the original. Cloning
// only happens at the point a particle set is forked (see particle.Particle.
// Clone), after which each clone proceeds independently and single-threaded,
// so the shared *rand.Rand never sees concurrent use.
func (s *State) Clone() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := &State{
		state:       make(map[RandomVar]entry, len(s.state)),
		ctx:         s.ctx.Clone(),
		counter:     s.counter,
		annotations: make(map[ident.Identifier]ident.Annotation, len(s.annotations)),
		rng:         s.rng,
		runtime:     s.runtime.Clone(),
	}
	for k, v := range s.state {
		out.state[k] = v
	}
	for k, v := range s.annotations {
		out.annotations[k] = v
	}

	return out
}

// IsSampled reports whether rv currently holds a sampled Delta.
func (s *State) IsSampled(rv RandomVar) bool {
	d, ok := s.Distr(rv).(Delta)

	return ok && d.Sampled
}

// Clean removes every RandomVar unreachable from Ctx, following the mark
// phase to a fixpoint: a variable is kept if it is referenced by ctx or by
// the (kept) distribution of another kept variable. The "keep" set only
// grows, so the loop always terminates within len(state) iterations.
func (s *State) Clean() {
	s.mu.Lock()
	defer s.mu.Unlock()

	used := make(map[RandomVar]bool)
	for _, expr := range s.ctx.Values() {
		for _, rv := range ExprRvs(expr) {
			used[rv] = true
		}
	}

	for {
		before := len(used)
		for rv := range used {
			e, ok := s.state[rv]
			if !ok {
				continue
			}
			for _, parent := range e.distr.Rvs() {
				used[parent] = true
			}
		}
		if len(used) == before {
			break
		}
	}

	for rv := range s.state {
		if !used[rv] {
			delete(s.state, rv)
		}
	}
}

// String renders every live variable's id and its distribution as stored
// (not re-evaluated), for diagnostics.
func (s *State) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder
	b.WriteString("SymState(")
	first := true
	for rv, e := range s.state {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%s: %s", rv.ID, e.distr)
	}
	b.WriteString(")")

	return b.String()
}
