package abstract

import (
	"fmt"

	"github.com/siren-lang/siren/ident"
)

// AbsDistr mirrors symbolic.SymDistr; UnkD is its lattice top, standing for
// a distribution whose family itself is unknown (e.g. two branches of a
// conditional assume different families).
type AbsDistr interface {
	fmt.Stringer
	isAbsDistr()
	// Params returns the distribution's parameter expressions, for Classify
	// to scan for embedded unknowns.
	Params() []AbsExpr
}

type AbsNormal struct{ Mu, Var AbsExpr }
type AbsBernoulli struct{ P AbsExpr }
type AbsBeta struct{ A, B AbsExpr }
type AbsBinomial struct{ N, P AbsExpr }
type AbsBetaBinomial struct{ N, A, B AbsExpr }
type AbsNegativeBinomial struct{ N, P AbsExpr }
type AbsGamma struct{ A, B AbsExpr }
type AbsPoisson struct{ Lambda AbsExpr }
type AbsStudentT struct{ Mu, Tau2, Nu AbsExpr }
type AbsCategorical struct{ Lo, Hi, Probs AbsExpr }
type AbsDelta struct{ V AbsExpr }

// UnkD is the unknown-distribution top element, standing for a distribution
// whose family itself could not be pinned down. Parents names the variables
// that went into the branch that produced it; Assume forces plan.Dynamic
// onto every one of them, not just the variable assigned UnkD itself, since
// none of their values can be reasoned about through it any longer.
type UnkD struct{ Parents []ident.Identifier }

func (AbsNormal) isAbsDistr()           {}
func (AbsBernoulli) isAbsDistr()        {}
func (AbsBeta) isAbsDistr()             {}
func (AbsBinomial) isAbsDistr()         {}
func (AbsBetaBinomial) isAbsDistr()     {}
func (AbsNegativeBinomial) isAbsDistr() {}
func (AbsGamma) isAbsDistr()            {}
func (AbsPoisson) isAbsDistr()          {}
func (AbsStudentT) isAbsDistr()         {}
func (AbsCategorical) isAbsDistr()      {}
func (AbsDelta) isAbsDistr()            {}
func (UnkD) isAbsDistr()                {}

func (d AbsNormal) String() string       { return fmt.Sprintf("Normal(%s, %s)", d.Mu, d.Var) }
func (d AbsBernoulli) String() string    { return fmt.Sprintf("Bernoulli(%s)", d.P) }
func (d AbsBeta) String() string         { return fmt.Sprintf("Beta(%s, %s)", d.A, d.B) }
func (d AbsBinomial) String() string     { return fmt.Sprintf("Binomial(%s, %s)", d.N, d.P) }
func (d AbsBetaBinomial) String() string { return fmt.Sprintf("BetaBinomial(%s, %s, %s)", d.N, d.A, d.B) }
func (d AbsNegativeBinomial) String() string {
	return fmt.Sprintf("NegativeBinomial(%s, %s)", d.N, d.P)
}
func (d AbsGamma) String() string   { return fmt.Sprintf("Gamma(%s, %s)", d.A, d.B) }
func (d AbsPoisson) String() string { return fmt.Sprintf("Poisson(%s)", d.Lambda) }
func (d AbsStudentT) String() string {
	return fmt.Sprintf("StudentT(%s, %s, %s)", d.Mu, d.Tau2, d.Nu)
}
func (d AbsCategorical) String() string {
	return fmt.Sprintf("Categorical(%s, %s, %s)", d.Lo, d.Hi, d.Probs)
}
func (d AbsDelta) String() string { return fmt.Sprintf("Delta(%s)", d.V) }
func (UnkD) String() string       { return "UnkD" }

func (d AbsNormal) Params() []AbsExpr       { return []AbsExpr{d.Mu, d.Var} }
func (d AbsBernoulli) Params() []AbsExpr    { return []AbsExpr{d.P} }
func (d AbsBeta) Params() []AbsExpr         { return []AbsExpr{d.A, d.B} }
func (d AbsBinomial) Params() []AbsExpr     { return []AbsExpr{d.N, d.P} }
func (d AbsBetaBinomial) Params() []AbsExpr { return []AbsExpr{d.N, d.A, d.B} }
func (d AbsNegativeBinomial) Params() []AbsExpr {
	return []AbsExpr{d.N, d.P}
}
func (d AbsGamma) Params() []AbsExpr   { return []AbsExpr{d.A, d.B} }
func (d AbsPoisson) Params() []AbsExpr { return []AbsExpr{d.Lambda} }
func (d AbsStudentT) Params() []AbsExpr {
	return []AbsExpr{d.Mu, d.Tau2, d.Nu}
}
func (d AbsCategorical) Params() []AbsExpr {
	return []AbsExpr{d.Lo, d.Hi, d.Probs}
}
func (d AbsDelta) Params() []AbsExpr { return []AbsExpr{d.V} }
func (UnkD) Params() []AbsExpr       { return nil }
