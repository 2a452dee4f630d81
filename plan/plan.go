// Package plan defines the inference-plan encoding: the observable output
// shared by the runtime symbolic state (*ssi.State, *delayed.State,
// *belief.State) and the static abstract interpreter (abstract/...). A plan
// maps each program-visible name to one of three encodings and is the
// central artifact the static-dynamic agreement property compares.
package plan

import "github.com/siren-lang/siren/ident"

// Encoding is a point in the three-element lattice symbolic < sample < dynamic.
// Sample dominates symbolic, and dynamic is the lattice top: once a name is
// marked dynamic no further information refines it.
type Encoding int

const (
	// Symbolic means the variable was never forced to a sampled Delta.
	Symbolic Encoding = iota
	// Sample means the variable was (or will be) forced to a sampled Delta.
	Sample
	// Dynamic means the abstract interpreter lost track of the variable
	// entirely (it flowed through an UnkD/UnkE) and cannot predict it.
	Dynamic
)

// String implements fmt.Stringer.
func (e Encoding) String() string {
	switch e {
	case Symbolic:
		return "symbolic"
	case Sample:
		return "sample"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// Join computes the least upper bound of two encodings in the
// symbolic < sample < dynamic lattice.
func Join(a, b Encoding) Encoding {
	if a == Dynamic || b == Dynamic {
		return Dynamic
	}
	if a == Sample || b == Sample {
		return Sample
	}

	return Symbolic
}

// Less reports whether a is strictly below b in the lattice order. A true
// Less(abstract, runtime) means the abstract entry under-approximates the
// runtime one, which breaks the static-dynamic agreement property.
func Less(a, b Encoding) bool { return a < b }

// Plan maps program-visible names to their encoding. The zero value is an
// empty, usable plan.
type Plan map[ident.Identifier]Encoding

// New returns an empty Plan.
func New() Plan { return make(Plan) }

// Record joins value into the existing entry for name (or installs it, if
// name has no entry yet). Runtime particles and the abstract interpreter
// both call this whenever a variable's fate becomes known.
func (p Plan) Record(name ident.Identifier, value Encoding) {
	if cur, ok := p[name]; ok {
		p[name] = Join(cur, value)
	} else {
		p[name] = value
	}
}

// Merge joins other into p in place and returns p.
func (p Plan) Merge(other Plan) Plan {
	for name, enc := range other {
		p.Record(name, enc)
	}

	return p
}

// Clone returns a shallow copy of p.
func (p Plan) Clone() Plan {
	out := make(Plan, len(p))
	for k, v := range p {
		out[k] = v
	}

	return out
}

// Agrees reports whether abstractPlan is a sound over-approximation of
// runtimePlan: every name runtime tracked must have an abstract entry at or
// above it in the lattice. A name absent from abstractPlan but present in
// runtimePlan is a disagreement (the analyzer owes a prediction for every
// name it saw assumed).
func Agrees(abstractPlan, runtimePlan Plan) bool {
	for name, runtimeEnc := range runtimePlan {
		absEnc, ok := abstractPlan[name]
		if !ok {
			return false
		}
		if Less(absEnc, runtimeEnc) {
			return false
		}
	}

	return true
}
