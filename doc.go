// Package siren is a symbolic inference core for a small probabilistic
// programming language: an expression algebra, a DAG-shaped symbolic state
// over that algebra, three interchangeable inference strategies built on
// top of it, and a static abstract-interpretation twin that predicts how a
// program's variables will be classified before it runs.
//
// The functionality lives entirely in subpackages:
//
//	ident/       — program-visible names and variable annotations
//	symbolic/    — the expression algebra, distribution algebra, and
//	               strategy-independent symbolic state (conjugate rules,
//	               evaluation, garbage collection)
//	ssi/         — Semi-Symbolic Inference: hoist-to-front chain
//	delayed/     — Delayed Sampling: marginalize/realize tree
//	belief/      — Belief Propagation: direct parent/child message passing
//	abstract/    — the abstract twin of symbolic, plus UnkC/UnkE/UnkD
//	plan/        — the symbolic < sample < dynamic inference-plan lattice
//	engine/      — the strategy-dispatch facade (Interpreter)
//	particle/    — particle population, weighting, resampling, mixtures
//	programs/    — hand-written example programs
//	internal/    — sampling, TOML config, and a numeric conjugacy cross-check
//	cmd/sirenctl — a thin CLI driver over the above
//
// This package itself declares no exported identifiers.
package siren
