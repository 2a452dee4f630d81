// Package programs holds hand-written example programs that stand in for
// the surface-language source a parser would otherwise produce (parsing is
// out of scope). Each Program pairs a concrete Run, which drives an
// engine.Interpreter directly, with an AbsRun that performs the same
// sequence of assume/observe/value operations over an abstract.AbsState, so
// that the two can be checked against each other via plan.Agrees.
package programs
