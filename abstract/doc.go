// Package abstract is the abstract-interpretation twin of package symbolic:
// every expression and distribution shape symbolic defines has a mirror
// here, plus three "unknown" top elements (UnkC, UnkE, UnkD) standing for a
// constant, expression, or distribution whose exact shape cannot be
// determined without running the program. Running an AbsState over a
// program produces a plan.Plan classifying each variable as symbolic
// (eligible for exact conjugate elimination), sample (must be drawn
// concretely, but the drawing site is known statically), or dynamic
// (unknown until runtime). It deliberately does not reuse symbolic's types
// via generics, so both halves keep an exhaustive, compiler-checked type
// switch over their own closed variant sets.
package abstract
