// SPDX-License-Identifier: MIT

package markov

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/stepchain/activity"
	"github.com/katalvlaran/stepchain/matrix"
)

// DefaultSteps are the k-step horizons reported by default: short, medium
// and long run.
var DefaultSteps = []int{3, 10, 100}

// KStep is one k-step transition matrix.
type KStep struct {
	K      int
	Matrix *matrix.Dense
}

// AnalysisResult is everything one Analyzer.Run derives from a sequence.
type AnalysisResult struct {
	RunID uuid.UUID

	Days  int       // records in the analyzed sequence
	First time.Time // first calendar day
	Last  time.Time // last calendar day

	Counts     *matrix.Dense // transition counts
	Transition *matrix.Dense // row-stochastic (or zero-row) transition matrix
	ZeroRows   []activity.State

	// Stationary is nil when no distribution could be extracted; the reason
	// is among Warnings. Verification is nil in that case as well.
	Stationary   Distribution
	Verification *Verification

	Powers []KStep

	// Warnings hold *DegenerateMatrixError, *NoUnitEigenvalueError or a
	// wrapped ErrDegenerateMatrix. Use errors.Is / errors.As to inspect.
	Warnings []error
}

// Warned reports whether any warning matches target.
func (r *AnalysisResult) Warned(target error) bool {
	for _, w := range r.Warnings {
		if errors.Is(w, target) {
			return true
		}
	}
	return false
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithSteps replaces the k-step horizons. Duplicates are kept in order.
func WithSteps(steps ...int) Option {
	return func(a *Analyzer) { a.steps = append([]int(nil), steps...) }
}

// WithMatrixOptions forwards numeric options to the eigen kernels.
func WithMatrixOptions(opts ...matrix.Option) Option {
	return func(a *Analyzer) { a.matrixOpts = append(a.matrixOpts, opts...) }
}

// Analyzer runs the Markov pipeline. It keeps no state between runs and is
// safe for concurrent use.
type Analyzer struct {
	steps      []int
	matrixOpts []matrix.Option
}

// NewAnalyzer returns an Analyzer with DefaultSteps.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{steps: append([]int(nil), DefaultSteps...)}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Steps returns a copy of the configured k-step horizons.
func (a *Analyzer) Steps() []int { return append([]int(nil), a.steps...) }

// Run analyzes seq.
//
// Implementation:
//   - Stage 1: seq must be contiguous and hold at least two records.
//   - Stage 2: counts → transition matrix; zero rows become a warning.
//   - Stage 3: stationary distribution and verification; a missing unit
//     eigenvalue or a non-normalizable vector becomes a warning.
//   - Stage 4: k-step powers for every configured horizon.
//
// Errors:
//   - activity.ErrNotContiguous, activity.ErrUnknownState, ErrEmptySequence,
//     ErrNegativePower (bad horizon), and matrix failures.
func (a *Analyzer) Run(seq activity.DailySequence) (*AnalysisResult, error) {
	if err := seq.Validate(); err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	if len(seq) < 2 {
		return nil, fmt.Errorf("Run: %d record(s): %w", len(seq), ErrEmptySequence)
	}
	res := &AnalysisResult{
		RunID: uuid.New(),
		Days:  len(seq),
		First: seq[0].Day,
		Last:  seq[len(seq)-1].Day,
	}

	var err error
	if res.Counts, err = BuildTransitionCounts(seq.States()); err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	if res.Transition, err = Normalize(res.Counts); err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	if res.ZeroRows, err = ZeroRows(res.Transition); err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	if len(res.ZeroRows) > 0 {
		res.Warnings = append(res.Warnings, &DegenerateMatrixError{ZeroRows: res.ZeroRows})
	}

	pi, err := StationaryDistribution(res.Transition, a.matrixOpts...)
	// A single observed walk has at most one closed class (the one holding its
	// last day), so ErrReducibleChain cannot arise here.
	var noUnit *NoUnitEigenvalueError
	switch {
	case err == nil:
	case errors.As(err, &noUnit):
		res.Warnings = append(res.Warnings, noUnit)
	case errors.Is(err, ErrDegenerateMatrix):
		res.Warnings = append(res.Warnings, err)
	default:
		return nil, fmt.Errorf("Run: %w", err)
	}
	if pi != nil {
		v, err := Verify(res.Transition, pi)
		if err != nil {
			return nil, fmt.Errorf("Run: %w", err)
		}
		res.Stationary, res.Verification = pi, &v
	}

	res.Powers = make([]KStep, 0, len(a.steps))
	for _, k := range a.steps {
		pk, err := Power(res.Transition, k)
		if err != nil {
			return nil, fmt.Errorf("Run: %w", err)
		}
		res.Powers = append(res.Powers, KStep{K: k, Matrix: pk})
	}

	return res, nil
}
