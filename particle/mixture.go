package particle

import "github.com/siren-lang/siren/symbolic"

// WeightedValue pairs a forced value with its particle's normalized weight.
type WeightedValue struct {
	Value  symbolic.Value
	Weight float64
}

// Mixture is the weighted empirical distribution over a program's return
// value across a particle population. When every value is a Pair2 or a
// []Value of uniform length, IsPairMixture/IsLstMixture let a caller
// recursively decompose the mixture component-wise instead of only
// supporting scalar return values.
type Mixture struct {
	Values []WeightedValue
}

// NewMixture builds a Mixture from particles' current weights and forced
// values, calling force once per particle to obtain its contribution.
func NewMixture(particles []*Particle, force func(*Particle) (symbolic.Const, error)) (*Mixture, error) {
	weights := NormalizedWeights(particles)
	m := &Mixture{Values: make([]WeightedValue, len(particles))}
	for i, p := range particles {
		c, err := force(p)
		if err != nil {
			return nil, err
		}
		m.Values[i] = WeightedValue{Value: c.V, Weight: weights[i]}
	}

	return m, nil
}

// IsPairMixture reports whether every value in the mixture is a symbolic.Pair2.
func (m *Mixture) IsPairMixture() bool {
	if len(m.Values) == 0 {
		return false
	}
	for _, wv := range m.Values {
		if _, ok := wv.Value.(symbolic.Pair2); !ok {
			return false
		}
	}

	return true
}

// GetPairMixture splits a pair mixture into its first- and second-component
// mixtures, each keeping the original weights.
func (m *Mixture) GetPairMixture() (fst, snd *Mixture, ok bool) {
	if !m.IsPairMixture() {
		return nil, nil, false
	}
	fst, snd = &Mixture{}, &Mixture{}
	for _, wv := range m.Values {
		pair := wv.Value.(symbolic.Pair2)
		fst.Values = append(fst.Values, WeightedValue{pair.Fst, wv.Weight})
		snd.Values = append(snd.Values, WeightedValue{pair.Snd, wv.Weight})
	}

	return fst, snd, true
}

// IsLstMixture reports whether every value in the mixture is a []symbolic.Value
// of the same length.
func (m *Mixture) IsLstMixture() bool {
	if len(m.Values) == 0 {
		return false
	}
	want := -1
	for _, wv := range m.Values {
		lst, ok := wv.Value.([]symbolic.Value)
		if !ok {
			return false
		}
		if want == -1 {
			want = len(lst)
		} else if len(lst) != want {
			return false
		}
	}

	return true
}

// GetLstMixture splits a list mixture into one per-element mixture,
// preserving weights.
func (m *Mixture) GetLstMixture() ([]*Mixture, bool) {
	if !m.IsLstMixture() {
		return nil, false
	}
	n := len(m.Values[0].Value.([]symbolic.Value))
	out := make([]*Mixture, n)
	for i := range out {
		out[i] = &Mixture{}
	}
	for _, wv := range m.Values {
		lst := wv.Value.([]symbolic.Value)
		for i, v := range lst {
			out[i].Values = append(out[i].Values, WeightedValue{v, wv.Weight})
		}
	}

	return out, true
}

// Mean returns the weighted average of the mixture's values, provided every
// value is a float64 (or int).
func (m *Mixture) Mean() (float64, bool) {
	if len(m.Values) == 0 {
		return 0, false
	}
	var mean float64
	for _, wv := range m.Values {
		switch v := wv.Value.(type) {
		case float64:
			mean += wv.Weight * v
		case int:
			mean += wv.Weight * float64(v)
		default:
			return 0, false
		}
	}

	return mean, true
}
