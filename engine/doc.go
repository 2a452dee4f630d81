// Package engine is the strategy-dispatch facade: it exposes the three
// inference strategies (ssi, delayed, belief) behind one Interpreter
// interface so that package particle and package programs can run a
// program under whichever strategy a caller selects without depending on
// any one strategy package directly.
package engine
