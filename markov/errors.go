// SPDX-License-Identifier: MIT
// Package markov: sentinel errors and typed warnings.
// Typed errors carry data for reporting and match their sentinel via errors.Is.

package markov

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/stepchain/activity"
)

var (
	// ErrEmptySequence is returned when fewer than two days are available,
	// so not a single transition can be observed.
	ErrEmptySequence = errors.New("markov: sequence has fewer than two records")

	// ErrDegenerateMatrix marks a transition matrix with a state that is never
	// left, or an eigenvector that does not yield a nonnegative distribution.
	ErrDegenerateMatrix = errors.New("markov: degenerate transition matrix")

	// ErrNoUnitEigenvalue marks a stationary distribution extracted from an
	// eigenvalue farther than UnitTolerance from 1.
	ErrNoUnitEigenvalue = errors.New("markov: no eigenvalue near 1")

	// ErrReducibleChain marks a chain with more than one closed class, so the
	// stationary distribution is not unique.
	ErrReducibleChain = errors.New("markov: reducible chain has several stationary distributions")

	// ErrNegativePower is returned by Power for k < 0.
	ErrNegativePower = errors.New("markov: negative power")

	// ErrShape is returned for matrices that are not NumStates × NumStates.
	ErrShape = errors.New("markov: matrix shape does not match the state alphabet")
)

// DegenerateMatrixError lists the states whose transition row is all zero.
type DegenerateMatrixError struct {
	ZeroRows []activity.State
}

func (e *DegenerateMatrixError) Error() string {
	names := make([]string, len(e.ZeroRows))
	for i, s := range e.ZeroRows {
		names[i] = s.String()
	}
	return fmt.Sprintf("%v: no observed transitions out of %s", ErrDegenerateMatrix, strings.Join(names, ", "))
}

// Is reports whether target is ErrDegenerateMatrix.
func (e *DegenerateMatrixError) Is(target error) bool { return target == ErrDegenerateMatrix }

// NoUnitEigenvalueError carries the eigenvalue actually used and its
// distance |λ − 1|.
type NoUnitEigenvalueError struct {
	Eigenvalue complex128
	Distance   float64
}

func (e *NoUnitEigenvalueError) Error() string {
	return fmt.Sprintf("%v: closest eigenvalue %v is %.3g away", ErrNoUnitEigenvalue, e.Eigenvalue, e.Distance)
}

// Is reports whether target is ErrNoUnitEigenvalue.
func (e *NoUnitEigenvalueError) Is(target error) bool { return target == ErrNoUnitEigenvalue }

// ReducibleChainError lists the closed classes of a reducible chain in
// alphabet order. The accompanying distribution lives on Classes[0].
type ReducibleChainError struct {
	Classes [][]activity.State
}

func (e *ReducibleChainError) Error() string {
	parts := make([]string, len(e.Classes))
	for i, c := range e.Classes {
		names := make([]string, len(c))
		for j, s := range c {
			names[j] = s.String()
		}
		parts[i] = "{" + strings.Join(names, ", ") + "}"
	}
	return fmt.Sprintf("%v: closed classes %s", ErrReducibleChain, strings.Join(parts, " "))
}

// Is reports whether target is ErrReducibleChain.
func (e *ReducibleChainError) Is(target error) bool { return target == ErrReducibleChain }
