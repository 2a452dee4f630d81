package particle

import (
	"math"
	"math/rand"

	"github.com/siren-lang/siren/symbolic"
	"github.com/sirupsen/logrus"
)

// ProbState holds a particle population and the bookkeeping needed to
// normalize, resample, and summarize it — a minimal particle-filter
// container, not a full SMC driver.
type ProbState struct {
	Particles []*Particle
}

// NewProbState builds n particles, each freshly constructed by newParticle.
func NewProbState(n int, newParticle func() *Particle) *ProbState {
	ps := &ProbState{Particles: make([]*Particle, n)}
	for i := range ps.Particles {
		ps.Particles[i] = newParticle()
	}

	return ps
}

// NormalizedWeights converts a slice of particles' log-weights into
// probabilities summing to one via the log-sum-exp trick. If every particle
// has log-weight -Inf (every run was rejected), it warns and falls back to a
// uniform distribution rather than dividing by zero.
func NormalizedWeights(particles []*Particle) []float64 {
	maxLW := math.Inf(-1)
	for _, p := range particles {
		if p.LogWeight > maxLW {
			maxLW = p.LogWeight
		}
	}

	if math.IsInf(maxLW, -1) {
		logrus.Warn("particle: every particle has zero weight, falling back to uniform resampling")
		out := make([]float64, len(particles))
		for i := range out {
			out[i] = 1.0 / float64(len(particles))
		}

		return out
	}

	sum := 0.0
	weights := make([]float64, len(particles))
	for i, p := range particles {
		weights[i] = math.Exp(p.LogWeight - maxLW)
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}

	return weights
}

// NormalizedProbabilities returns the current normalized weights of ps's particles.
func (ps *ProbState) NormalizedProbabilities() []float64 {
	return NormalizedWeights(ps.Particles)
}

// Resample draws len(ps.Particles) new particles with replacement,
// proportional to their normalized weights, replacing ps.Particles with
// clones reset to zero log-weight.
func (ps *ProbState) Resample(rng *rand.Rand) {
	probs := ps.NormalizedProbabilities()
	cdf := make([]float64, len(probs))
	acc := 0.0
	for i, p := range probs {
		acc += p
		cdf[i] = acc
	}

	next := make([]*Particle, len(ps.Particles))
	for i := range next {
		u := rng.Float64()
		j := 0
		for j < len(cdf)-1 && cdf[j] < u {
			j++
		}
		clone := ps.Particles[j].Clone()
		clone.LogWeight = 0
		next[i] = clone
	}

	ps.Particles = next
}

// Result summarizes the population's forced return values into a Mixture.
func (ps *ProbState) Result(force func(*Particle) (symbolic.Const, error)) (*Mixture, error) {
	return NewMixture(ps.Particles, force)
}
