package particle

import (
	"math"
	"math/rand"
	"testing"

	"github.com/siren-lang/siren/engine"
	"github.com/siren-lang/siren/ident"
	"github.com/siren-lang/siren/symbolic"
	"github.com/stretchr/testify/require"
)

func TestProbStateResampleUniformOnZeroWeight(t *testing.T) {
	ps := NewProbState(8, func() *Particle { return New(engine.SSI, symbolic.WithSeed(1)) })
	for _, p := range ps.Particles {
		p.LogWeight = math.Inf(-1)
	}

	probs := ps.NormalizedProbabilities()
	require.Len(t, probs, 8)

	ps.Resample(rand.New(rand.NewSource(1)))
	require.Len(t, ps.Particles, 8)
}

func TestMixtureMean(t *testing.T) {
	ps := NewProbState(4, func() *Particle { return New(engine.SSI, symbolic.WithSeed(2)) })

	name := ident.NewIdentifier("x")
	for _, p := range ps.Particles {
		p.State.Assume(&name, ident.AnnotationNone, symbolic.Normal{Mu: symbolic.Const{V: 3.0}, Var: symbolic.Const{V: 0.0001}})
	}

	mixture, err := ps.Result(func(p *Particle) (symbolic.Const, error) {
		rv, _ := p.State.Ctx().Get(name)
		return p.State.Value(rv.(symbolic.RandomVar))
	})
	require.NoError(t, err)

	mean, ok := mixture.Mean()
	require.True(t, ok)
	require.InDelta(t, 3.0, mean, 0.1)
}
