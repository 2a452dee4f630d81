// Package delayed implements Delayed Sampling: each random variable starts
// "initialized" (bound to a distribution that may reference its stochastic
// parent), becomes "marginalized" once that parent has been integrated out
// of its distribution via a conjugate rule, and finally "realized" once a
// concrete value has been drawn for it. Realizing a node pushes a posterior
// back onto its parent, turning the parent's prior into a distribution
// conditioned on the child's new value — the reverse information flow from
// package ssi's hoist-to-front chain, but grounded on the same conjugate
// rule table in package symbolic.
package delayed
