package delayed

import (
	"github.com/siren-lang/siren/ident"
	"github.com/siren-lang/siren/symbolic"
)

// status tracks a node's place in the delayed-sampling lifecycle.
type status int

const (
	initialized status = iota
	marginalized
	realized
)

// State extends symbolic.State with per-node delayed-sampling status and
// the pending posterior a realize() installs on a node's parent.
type State struct {
	*symbolic.State
	status       map[symbolic.RandomVar]status
	pendingTable map[symbolic.RandomVar]pendingEntry
}

// New builds an empty delayed-sampling state.
func New(opts ...symbolic.Option) *State {
	return &State{
		State:  symbolic.New(opts...),
		status: make(map[symbolic.RandomVar]status),
	}
}

// Assume installs a fresh random variable in the initialized state.
func (s *State) Assume(name *ident.Identifier, annotation ident.Annotation, distr symbolic.SymDistr) symbolic.RandomVar {
	rv := s.NewVar()
	s.Install(rv, name, distr)
	s.status[rv] = initialized
	if name != nil {
		s.Ctx().Set(*name, rv)
		if annotation != ident.AnnotationNone {
			s.Annotate(*name, annotation)
		}
	}

	return rv
}

// Clone returns an independent State with its own status and pending maps.
func (s *State) Clone() *State {
	status := make(map[symbolic.RandomVar]status, len(s.status))
	for k, v := range s.status {
		status[k] = v
	}
	pending := make(map[symbolic.RandomVar]pendingEntry, len(s.pendingTable))
	for k, v := range s.pendingTable {
		pending[k] = v
	}

	return &State{State: s.State.Clone(), status: status, pendingTable: pending}
}

// singleParent returns the one live stochastic parent distr depends on, if
// there is exactly one; ok is false when there are zero or several.
func singleParent(distr symbolic.SymDistr) (symbolic.RandomVar, bool) {
	parents := distr.Rvs()
	if len(parents) == 1 {
		return parents[0], true
	}

	return symbolic.RandomVar{}, false
}

// marginalize integrates v's stochastic parent out of v's distribution,
// recursing up the parent chain first. If v has more than one live parent
// it realizes every parent but the first directly, reducing to the
// single-parent case before proceeding.
func (s *State) marginalize(v symbolic.RandomVar) error {
	if s.status[v] != initialized {
		return nil
	}

	distr := s.Distr(v)
	parents := distr.Rvs()
	for len(parents) > 1 {
		if _, err := s.Realize(parents[len(parents)-1]); err != nil {
			return err
		}
		distr = s.Distr(v)
		parents = distr.Rvs()
	}

	parent, ok := singleParent(distr)
	if !ok {
		s.status[v] = marginalized
		return nil
	}
	if s.status[parent] == realized {
		s.status[v] = marginalized
		return nil
	}

	if err := s.marginalize(parent); err != nil {
		return err
	}

	marginal, posterior, ok := symbolic.Conjugate(s.State, parent, v)
	if !ok {
		return errNonConjugate
	}

	if err := s.SetDistr(v, marginal); err != nil {
		return err
	}
	s.pending(v, parent, posterior)
	s.status[v] = marginalized

	return nil
}

// Marginalize reduces v to a distribution with no live parent, realizing
// blocking non-conjugate parents directly (exactly as Realize's own retry
// loop does) but leaving v itself unsampled. It returns the error from the
// last marginalize attempt if v still cannot be reduced to a single parent.
func (s *State) Marginalize(v symbolic.RandomVar) error {
	for {
		err := s.marginalize(v)
		if err == nil {
			return nil
		}
		distr := s.Distr(v)
		parent, ok := singleParent(distr)
		if !ok {
			return err
		}
		if _, err := s.Realize(parent); err != nil {
			return err
		}
	}
}

// pendingEntry is the (parent, posterior) pair Realize applies to a node's
// parent once the node itself is realized.
type pendingEntry struct {
	parent    symbolic.RandomVar
	posterior symbolic.SymDistr
}

func (s *State) pending(v, parent symbolic.RandomVar, posterior symbolic.SymDistr) {
	if s.pendingTable == nil {
		s.pendingTable = make(map[symbolic.RandomVar]pendingEntry)
	}
	s.pendingTable[v] = pendingEntry{parent, posterior}
}
