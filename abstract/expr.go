package abstract

import (
	"fmt"

	"github.com/siren-lang/siren/ident"
)

// AbsExpr mirrors symbolic.SymExpr, with program-visible names as leaves
// (there is no runtime RandomVar yet during static analysis) and UnkC/UnkE
// standing in for a constant or a whole subexpression abstract
// interpretation could not pin down.
type AbsExpr interface {
	fmt.Stringer
	isAbsExpr()
}

type AbsConst struct{ V interface{} }
type AbsVar struct{ Name ident.Identifier }
type AbsAdd struct{ L, R AbsExpr }
type AbsMul struct{ L, R AbsExpr }
type AbsDiv struct{ L, R AbsExpr }
type AbsIte struct{ Cond, Then, Else AbsExpr }
type AbsEq struct{ L, R AbsExpr }
type AbsLt struct{ L, R AbsExpr }
type AbsLst struct{ Es []AbsExpr }
type AbsPair struct{ A, B AbsExpr }

// UnkC is an unknown constant: a value that will be known at runtime but
// cannot be pinned down by static analysis (e.g. read from an external
// source). It's narrower than UnkE because its surrounding expression shape
// is still known.
type UnkC struct{}

// UnkE is an entirely unknown expression, the abstract lattice's top: used
// when two branches of an Ite produce expressions of incompatible shape.
// Parents names the variables this unknown was built from, if any are
// still statically known — a dynamic-absorption decision taken here must
// propagate plan.Dynamic to every one of them, since their own values are
// now as unreasoned-about as the expression they feed.
type UnkE struct{ Parents []ident.Identifier }

func (AbsConst) isAbsExpr() {}
func (AbsVar) isAbsExpr()   {}
func (AbsAdd) isAbsExpr()   {}
func (AbsMul) isAbsExpr()   {}
func (AbsDiv) isAbsExpr()   {}
func (AbsIte) isAbsExpr()   {}
func (AbsEq) isAbsExpr()    {}
func (AbsLt) isAbsExpr()    {}
func (AbsLst) isAbsExpr()   {}
func (AbsPair) isAbsExpr()  {}
func (UnkC) isAbsExpr()     {}
func (UnkE) isAbsExpr()     {}

func (e AbsConst) String() string { return fmt.Sprintf("%v", e.V) }
func (e AbsVar) String() string   { return e.Name.String() }
func (e AbsAdd) String() string   { return fmt.Sprintf("(%s + %s)", e.L, e.R) }
func (e AbsMul) String() string   { return fmt.Sprintf("(%s * %s)", e.L, e.R) }
func (e AbsDiv) String() string   { return fmt.Sprintf("(%s / %s)", e.L, e.R) }
func (e AbsIte) String() string   { return fmt.Sprintf("if %s then %s else %s", e.Cond, e.Then, e.Else) }
func (e AbsEq) String() string    { return fmt.Sprintf("(%s = %s)", e.L, e.R) }
func (e AbsLt) String() string    { return fmt.Sprintf("(%s < %s)", e.L, e.R) }
func (e AbsLst) String() string   { return fmt.Sprintf("%v", e.Es) }
func (e AbsPair) String() string  { return fmt.Sprintf("(%s, %s)", e.A, e.B) }
func (UnkC) String() string       { return "UnkC" }
func (UnkE) String() string       { return "UnkE" }

// ContainsUnknown reports whether expr contains a UnkC or UnkE anywhere in
// its structure — the signal that a variable built from it cannot be
// reasoned about exactly and must fall at best into the sample tier.
func ContainsUnknown(expr AbsExpr) bool {
	switch e := expr.(type) {
	case AbsConst, AbsVar:
		return false
	case UnkC, UnkE:
		return true
	case AbsAdd:
		return ContainsUnknown(e.L) || ContainsUnknown(e.R)
	case AbsMul:
		return ContainsUnknown(e.L) || ContainsUnknown(e.R)
	case AbsDiv:
		return ContainsUnknown(e.L) || ContainsUnknown(e.R)
	case AbsIte:
		return ContainsUnknown(e.Cond) || ContainsUnknown(e.Then) || ContainsUnknown(e.Else)
	case AbsEq:
		return ContainsUnknown(e.L) || ContainsUnknown(e.R)
	case AbsLt:
		return ContainsUnknown(e.L) || ContainsUnknown(e.R)
	case AbsLst:
		for _, sub := range e.Es {
			if ContainsUnknown(sub) {
				return true
			}
		}
		return false
	case AbsPair:
		return ContainsUnknown(e.A) || ContainsUnknown(e.B)
	default:
		return true
	}
}

// UnknownParents collects every identifier named by an UnkE reachable from
// expr, for forcing plan.Dynamic onto the whole dependency set a
// dynamic-absorption decision was taken over.
func UnknownParents(expr AbsExpr) []ident.Identifier {
	seen := make(map[ident.Identifier]bool)
	var out []ident.Identifier
	var walk func(AbsExpr)
	walk = func(e AbsExpr) {
		switch ex := e.(type) {
		case UnkE:
			for _, name := range ex.Parents {
				if !seen[name] {
					seen[name] = true
					out = append(out, name)
				}
			}
		case AbsAdd:
			walk(ex.L)
			walk(ex.R)
		case AbsMul:
			walk(ex.L)
			walk(ex.R)
		case AbsDiv:
			walk(ex.L)
			walk(ex.R)
		case AbsIte:
			walk(ex.Cond)
			walk(ex.Then)
			walk(ex.Else)
		case AbsEq:
			walk(ex.L)
			walk(ex.R)
		case AbsLt:
			walk(ex.L)
			walk(ex.R)
		case AbsLst:
			for _, sub := range ex.Es {
				walk(sub)
			}
		case AbsPair:
			walk(ex.A)
			walk(ex.B)
		}
	}
	walk(expr)

	return out
}

// VarsOf collects every AbsVar name referenced directly in expr.
func VarsOf(expr AbsExpr) []ident.Identifier {
	seen := make(map[ident.Identifier]bool)
	var out []ident.Identifier
	var walk func(AbsExpr)
	walk = func(e AbsExpr) {
		switch ex := e.(type) {
		case AbsVar:
			if !seen[ex.Name] {
				seen[ex.Name] = true
				out = append(out, ex.Name)
			}
		case AbsAdd:
			walk(ex.L)
			walk(ex.R)
		case AbsMul:
			walk(ex.L)
			walk(ex.R)
		case AbsDiv:
			walk(ex.L)
			walk(ex.R)
		case AbsIte:
			walk(ex.Cond)
			walk(ex.Then)
			walk(ex.Else)
		case AbsEq:
			walk(ex.L)
			walk(ex.R)
		case AbsLt:
			walk(ex.L)
			walk(ex.R)
		case AbsLst:
			for _, sub := range ex.Es {
				walk(sub)
			}
		case AbsPair:
			walk(ex.A)
			walk(ex.B)
		}
	}
	walk(expr)

	return out
}
