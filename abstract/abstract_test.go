package abstract

import (
	"testing"

	"github.com/siren-lang/siren/engine"
	"github.com/siren-lang/siren/ident"
	"github.com/siren-lang/siren/plan"
	"github.com/stretchr/testify/require"
)

func TestClassifyKnownIsSymbolic(t *testing.T) {
	d := AbsNormal{Mu: AbsConst{V: 0.0}, Var: AbsConst{V: 1.0}}
	require.Equal(t, plan.Symbolic, Classify(d))
}

func TestClassifyUnknownParamIsSample(t *testing.T) {
	d := AbsNormal{Mu: UnkC{}, Var: AbsConst{V: 1.0}}
	require.Equal(t, plan.Sample, Classify(d))
}

func TestClassifyUnkDIsDynamic(t *testing.T) {
	require.Equal(t, plan.Dynamic, Classify(UnkD{}))
}

func TestForcingDowngradesSymbolicToSample(t *testing.T) {
	s := NewAbsState(engine.SSI)
	x := ident.NewIdentifier("x")
	s.Assume(x, AbsNormal{Mu: AbsConst{V: 0.0}, Var: AbsConst{V: 1.0}})
	require.Equal(t, plan.Symbolic, s.Plan[x])

	s.Value(x)
	require.Equal(t, plan.Sample, s.Plan[x])
}

func TestMeanNeverDowngradesWhenStrategyCanReachWholeChain(t *testing.T) {
	s := NewAbsState(engine.SSI)
	p := ident.NewIdentifier("p")
	child := ident.NewIdentifier("child")
	s.Assume(p, AbsBeta{A: AbsConst{V: 1.0}, B: AbsConst{V: 1.0}})
	s.Assume(child, AbsBernoulli{P: AbsVar{Name: p}})

	s.Observe(child)
	require.Equal(t, plan.Symbolic, s.Plan[child])

	s.Mean(p)
	require.Equal(t, plan.Symbolic, s.Plan[p])
}

func TestUnkDParentsAreForcedDynamic(t *testing.T) {
	s := NewAbsState(engine.SSI)
	a := ident.NewIdentifier("a")
	b := ident.NewIdentifier("b")
	branchy := ident.NewIdentifier("branchy")

	s.Assume(a, AbsNormal{Mu: AbsConst{V: 0.0}, Var: AbsConst{V: 1.0}})
	s.Assume(b, AbsBeta{A: AbsConst{V: 1.0}, B: AbsConst{V: 1.0}})
	s.Assume(branchy, UnkD{Parents: []ident.Identifier{a, b}})

	require.Equal(t, plan.Dynamic, s.Plan[branchy])
	require.Equal(t, plan.Dynamic, s.Plan[a])
	require.Equal(t, plan.Dynamic, s.Plan[b])
}

func TestUnkEParentsAreForcedDynamicThroughAParameter(t *testing.T) {
	s := NewAbsState(engine.SSI)
	a := ident.NewIdentifier("a")
	x := ident.NewIdentifier("x")

	s.Assume(a, AbsNormal{Mu: AbsConst{V: 0.0}, Var: AbsConst{V: 1.0}})
	s.Assume(x, AbsNormal{Mu: UnkE{Parents: []ident.Identifier{a}}, Var: AbsConst{V: 1.0}})

	require.Equal(t, plan.Sample, s.Plan[x])
	require.Equal(t, plan.Dynamic, s.Plan[a])
}

func TestBeliefPropagationOneHopDowngradesPastDirectParent(t *testing.T) {
	ssi := NewAbsState(engine.SSI)
	bp := NewAbsState(engine.BeliefPropagation)
	p := ident.NewIdentifier("p")
	mid := ident.NewIdentifier("mid")
	for _, s := range []*AbsState{ssi, bp} {
		s.Assume(p, AbsBeta{A: AbsConst{V: 1.0}, B: AbsConst{V: 1.0}})
		s.Assume(mid, AbsBernoulli{P: AbsVar{Name: p}})
	}

	// mid's only parameter references p, whose own parameters are
	// constants: SSI's unbounded reach follows that reference and resolves
	// it, while belief propagation's one-hop model gives up as soon as it
	// sees any live variable in mid's parameters at all.
	ssi.Mean(mid)
	require.Equal(t, plan.Symbolic, ssi.Plan[mid])

	bp.Mean(mid)
	require.Equal(t, plan.Sample, bp.Plan[mid])
}
