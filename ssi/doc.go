// Package ssi implements the Semi-Symbolic Inference strategy: no standing
// variable order is kept; observing or forcing a variable hoists it by
// sorting its ancestors topologically from the current DAG and swapping
// each parent out of its distribution using the conjugate rules in package
// symbolic. When no conjugate rule applies to a swap, the blocking parent
// is forced directly (a concrete sample is drawn for it), which removes it
// from the variable's live ancestors and lets hoisting continue — the
// "recovery" path described for non-conjugate pairs.
package ssi
