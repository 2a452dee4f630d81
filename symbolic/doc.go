// Package symbolic implements the concrete half of the symbolic inference
// core: a closed algebra of expressions (SymExpr) and distributions
// (SymDistr), a normalising evaluator, the conjugate-family recognizer used
// by every inference strategy's hoist step, and the SymState data structure
// that ties a program's random variables together as a DAG of
// distribution-valued nodes.
//
// SymState itself does not implement assume/observe/value — those are
// strategy-specific (see the ssi, delayed, and belief packages, each of
// which embeds a *symbolic.State and adds its own hoist/graft/propagate
// algorithm). This package provides everything strategy-independent:
// expression simplification, conjugate rewrites, dependency analysis, and
// state bookkeeping (fresh-variable allocation, annotations, garbage
// collection).
//
// The package mirrors, 1:1 in structure, the abstract package that
// implements the same expression/distribution/state hierarchy for static
// analysis (plus three "unknown" top elements). Keeping the two packages
// structurally parallel rather than sharing one generic implementation
// trades some duplication for exhaustive, compiler-checked type switches on
// both sides.
package symbolic
