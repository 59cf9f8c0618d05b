// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the iterative spectral kernels.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: WithX panics only on nonsensical values (programmer error).
//   - Options fields are unexported; public APIs consume ...Option.
package matrix

import (
	"fmt"
	"math"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the relative pivot floor used by inverse iteration:
	// pivots smaller than eps·‖A‖ are replaced by eps·‖A‖.
	DefaultEpsilon = 1e-14

	// DefaultMaxIterPerEigenvalue caps QR sweeps spent on a single eigenvalue
	// (the classic hqr budget).
	DefaultMaxIterPerEigenvalue = 30

	// DefaultInverseIterations is the number of inverse-iteration refinements.
	DefaultInverseIterations = 3
)

// Options holds the resolved numeric policy for spectral kernels.
type Options struct {
	eps         float64
	maxIter     int
	refinements int
}

// Option mutates Options; apply with NewOptions or pass to a kernel.
type Option func(*Options)

// WithEpsilon sets the relative pivot floor. Panics on eps <= 0 or non-finite.
func WithEpsilon(eps float64) Option {
	if !(eps > 0) || math.IsInf(eps, 0) {
		panic(fmt.Sprintf("matrix: WithEpsilon(%v): eps must be finite and > 0", eps))
	}
	return func(o *Options) { o.eps = eps }
}

// WithMaxIterations sets the per-eigenvalue QR sweep budget. Panics on n < 1.
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("matrix: WithMaxIterations(%d): must be >= 1", n))
	}
	return func(o *Options) { o.maxIter = n }
}

// WithRefinements sets the number of inverse-iteration steps. Panics on n < 1.
func WithRefinements(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("matrix: WithRefinements(%d): must be >= 1", n))
	}
	return func(o *Options) { o.refinements = n }
}

// NewOptions resolves defaults plus the given setters (last writer wins).
func NewOptions(opts ...Option) Options {
	o := Options{
		eps:         DefaultEpsilon,
		maxIter:     DefaultMaxIterPerEigenvalue,
		refinements: DefaultInverseIterations,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
