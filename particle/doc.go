// Package particle implements the particle/weight container inference
// drivers use to run a program many times under one strategy and combine
// the results: Particle pairs an engine.Interpreter with a log-weight,
// ProbState holds a population of particles and can normalize their
// weights, resample, and summarize their final values into a Mixture.
package particle
