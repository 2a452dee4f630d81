// Package config loads cmd/sirenctl's run configuration from an optional
// TOML file, with command-line flags taking precedence over file values.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Run holds the knobs a sirenctl invocation needs: which example program to
// run, which inference strategy, how many particles, and an optional PRNG
// seed for reproducibility.
type Run struct {
	Program   string `toml:"program"`
	Strategy  string `toml:"strategy"`
	Particles int    `toml:"particles"`
	Seed      int64  `toml:"seed"`
}

// Option configures a Run during construction.
type Option func(*Run)

func WithProgram(name string) Option  { return func(r *Run) { r.Program = name } }
func WithStrategy(name string) Option { return func(r *Run) { r.Strategy = name } }
func WithParticles(n int) Option      { return func(r *Run) { r.Particles = n } }
func WithSeed(seed int64) Option      { return func(r *Run) { r.Seed = seed } }

// Default returns the baseline configuration sirenctl falls back to absent
// a config file or flags.
func Default() Run {
	return Run{Program: "coin", Strategy: "ssi", Particles: 100, Seed: 0}
}

// Load reads a TOML file at path into a Run seeded from Default, then
// applies opts (typically built from CLI flags) on top.
func Load(path string, opts ...Option) (Run, error) {
	run := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Run{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &run); err != nil {
			return Run{}, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	for _, opt := range opts {
		opt(&run)
	}

	return run, nil
}
