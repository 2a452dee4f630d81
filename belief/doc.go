// Package belief implements Belief Propagation: at assume time each random
// variable is categorized by whether its distribution currently references
// exactly one live parent ("conditional") or not ("marginal"). Observing or
// forcing a conditional variable applies exactly one conjugate step against
// its direct parent — unlike ssi and delayed, belief never walks further up
// the ancestor chain; a parent that itself still has a live parent is left
// untouched. When no conjugate rule covers that one step, the blocking
// parent is forced to a concrete sample instead.
package belief
