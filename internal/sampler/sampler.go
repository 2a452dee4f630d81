// Package sampler draws concrete values from grounded symbolic
// distributions, shared by every strategy's force/realize step so the
// gonum wiring exists in exactly one place.
package sampler

import (
	"math"
	"math/rand"

	"github.com/siren-lang/siren/symbolic"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sample draws a value from distr, whose parameters must already be ground
// (Const-only) — the caller is responsible for hoisting/marginalizing the
// owning variable before calling this.
func Sample(rng *rand.Rand, distr symbolic.SymDistr) symbolic.Value {
	switch d := distr.(type) {
	case symbolic.Normal:
		mu, v := f(d.Mu), f(d.Var)
		return (&distuv.Normal{Mu: mu, Sigma: math.Sqrt(v), Src: rng}).Rand()
	case symbolic.Bernoulli:
		return rng.Float64() < f(d.P)
	case symbolic.Beta:
		return distuv.Beta{Alpha: f(d.A), Beta: f(d.B), Src: rng}.Rand()
	case symbolic.Binomial:
		return float64(binomial(rng, int(f(d.N)), f(d.P)))
	case symbolic.BetaBinomial:
		n, a, b := int(f(d.N)), f(d.A), f(d.B)
		p := distuv.Beta{Alpha: a, Beta: b, Src: rng}.Rand()
		return float64(binomial(rng, n, p))
	case symbolic.NegativeBinomial:
		n, p := f(d.N), f(d.P)
		lambda := distuv.Gamma{Alpha: n, Beta: p / (1 - p), Src: rng}.Rand()
		return math.Floor(distuv.Poisson{Lambda: lambda, Src: rng}.Rand())
	case symbolic.Gamma:
		return distuv.Gamma{Alpha: f(d.A), Beta: f(d.B), Src: rng}.Rand()
	case symbolic.Poisson:
		return math.Floor(distuv.Poisson{Lambda: f(d.Lambda), Src: rng}.Rand())
	case symbolic.StudentT:
		return (&distuv.StudentsT{Mu: f(d.Mu), Sigma: math.Sqrt(f(d.Tau2)), Nu: f(d.Nu), Src: rng}).Rand()
	case symbolic.Categorical:
		lo := int(f(d.Lo))
		probs := d.Probs.(symbolic.Const).V.([]symbolic.Value)
		weights := make([]float64, len(probs))
		for i, p := range probs {
			weights[i] = symbolic.AsFloat(p)
		}
		idx := distuv.NewCategorical(weights, rng).Rand()
		return float64(lo + int(idx))
	case symbolic.Delta:
		return d.V.(symbolic.Const).V
	default:
		panic("sampler: cannot sample unrecognized distribution")
	}
}

func f(e symbolic.SymExpr) float64 {
	return symbolic.AsFloat(e.(symbolic.Const).V)
}

// binomial draws Binomial(n, p) as a sum of n independent coin flips; gonum
// has no dedicated binomial sampler.
func binomial(rng *rand.Rand, n int, p float64) int {
	count := 0
	for i := 0; i < n; i++ {
		if rng.Float64() < p {
			count++
		}
	}

	return count
}
