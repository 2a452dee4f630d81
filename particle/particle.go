package particle

import (
	"github.com/siren-lang/siren/engine"
	"github.com/siren-lang/siren/symbolic"
)

// Particle is one independent run of a program: its own strategy state plus
// an accumulated log-weight from any likelihood scoring the program performed.
type Particle struct {
	State     engine.Interpreter
	LogWeight float64
}

// New builds a fresh, zero-weight particle under strategy.
func New(strategy engine.Strategy, opts ...symbolic.Option) *Particle {
	return &Particle{State: engine.New(strategy, opts...)}
}

// Score adds logProb to the particle's accumulated log-weight — the
// likelihood contribution of an observe that could not be folded exactly
// into a conjugate update (e.g. the observed value fell under a
// non-conjugate branch and was scored by density instead).
func (p *Particle) Score(logProb float64) {
	p.LogWeight += logProb
}

// Clone returns an independent particle sharing the same log-weight,
// backed by a deep copy of the strategy state.
func (p *Particle) Clone() *Particle {
	cloner, ok := p.State.(engine.Cloner)
	if !ok {
		panic("particle: state does not implement engine.Cloner")
	}

	return &Particle{State: cloner.Clone(), LogWeight: p.LogWeight}
}
