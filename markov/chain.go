// SPDX-License-Identifier: MIT

package markov

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/stepchain/activity"
	"github.com/katalvlaran/stepchain/matrix"
)

// Numeric policy.
const (
	// UnitTolerance is the largest |λ − 1| accepted as "the" unit eigenvalue.
	UnitTolerance = 1e-8

	// VerifyRTol and VerifyATol are the π·P ≈ π closeness tolerances.
	VerifyRTol = 1e-5
	VerifyATol = 1e-8

	// NegativeTolerance is the most negative component a stationary
	// distribution may carry as rounding noise.
	NegativeTolerance = 1e-9

	// degenerateSum: an eigenvector whose (max-abs scaled) components sum
	// below this cannot be turned into a distribution.
	degenerateSum = 1e-12
)

// Distribution is a probability vector indexed by activity.State.
type Distribution []float64

// Of returns the probability of s, or 0 for a state outside the vector.
func (d Distribution) Of(s activity.State) float64 {
	if int(s) < 0 || int(s) >= len(d) {
		return 0
	}
	return d[s]
}

// Verification is the outcome of Verify.
type Verification struct {
	OK       bool    // π·P ≈ π within VerifyRTol/VerifyATol
	Residual float64 // max_i |(π·P)_i − π_i|
}

// BuildTransitionCounts counts consecutive pairs (states[t], states[t+1]) in
// stored order. Fewer than two states yield the all-zero matrix.
func BuildTransitionCounts(states []activity.State) (*matrix.Dense, error) {
	counts, err := matrix.NewDense(activity.NumStates, activity.NumStates)
	if err != nil {
		return nil, err
	}
	for t, s := range states {
		if !s.Valid() {
			return nil, fmt.Errorf("BuildTransitionCounts: position %d: %v: %w", t, s, activity.ErrUnknownState)
		}
	}
	for t := 1; t < len(states); t++ {
		prev, curr := int(states[t-1]), int(states[t])
		c, _ := counts.At(prev, curr)
		if err = counts.Set(prev, curr, c+1); err != nil {
			return nil, fmt.Errorf("BuildTransitionCounts: %w", err)
		}
	}

	return counts, nil
}

// Normalize divides every row of counts by its sum. Rows summing to 0 stay
// all-zero rather than becoming uniform.
func Normalize(counts matrix.Matrix) (*matrix.Dense, error) {
	if err := validateAlphabetShape(counts); err != nil {
		return nil, fmt.Errorf("Normalize: %w", err)
	}
	p, _, err := matrix.NormalizeRowsL1(counts)
	if err != nil {
		return nil, fmt.Errorf("Normalize: %w", err)
	}

	return p, nil
}

// ZeroRows lists, in alphabet order, the states whose row of m is all zero.
func ZeroRows(m matrix.Matrix) ([]activity.State, error) {
	if err := validateAlphabetShape(m); err != nil {
		return nil, fmt.Errorf("ZeroRows: %w", err)
	}
	sums, err := matrix.RowSums(absolute(m))
	if err != nil {
		return nil, fmt.Errorf("ZeroRows: %w", err)
	}
	var out []activity.State
	for i, s := range sums {
		if s == 0 {
			out = append(out, activity.State(i))
		}
	}

	return out, nil
}

// StationaryDistribution returns π with π·P ≈ π and Σπ = 1.
//
// Implementation:
//   - Stage 1: closed classes of P. With two or more, the unit eigenvalue is
//     repeated and π is not unique: the distribution of the first closed class
//     is returned together with a *ReducibleChainError.
//   - Stage 2: eigenvalues of Pᵀ (left eigenvectors of P are right ones of Pᵀ);
//     pick λ minimizing |λ − 1| (first in modulus order on ties).
//   - Stage 3: inverse iteration on Pᵀ − Re(λ)I; normalize to sum 1.
//
// Behavior highlights:
//   - When |λ − 1| > UnitTolerance the best-effort vector is still returned,
//     together with a *NoUnitEigenvalueError; callers decide whether to use it.
//   - A vector whose components cancel out fails with ErrDegenerateMatrix.
//   - A component below −NegativeTolerance is returned with an error matching
//     ErrDegenerateMatrix rather than passed off as a distribution.
//
// Errors:
//   - ErrShape, ErrDegenerateMatrix, *ReducibleChainError,
//     *NoUnitEigenvalueError, and matrix errors (e.g. matrix.ErrEigenFailed).
func StationaryDistribution(p matrix.Matrix, opts ...matrix.Option) (Distribution, error) {
	if err := validateAlphabetShape(p); err != nil {
		return nil, fmt.Errorf("StationaryDistribution: %w", err)
	}
	classes, err := ClosedClasses(p)
	if err != nil {
		return nil, fmt.Errorf("StationaryDistribution: %w", err)
	}
	if len(classes) > 1 {
		pi, err := classDistribution(p, classes[0], opts...)
		if err != nil {
			return nil, fmt.Errorf("StationaryDistribution: class %v: %w", classes[0], err)
		}
		return pi, &ReducibleChainError{Classes: classes}
	}

	vec, lambda, dist, err := unitEigenvector(p, opts...)
	if err != nil {
		return nil, fmt.Errorf("StationaryDistribution: %w", err)
	}
	pi, err := toDistribution(vec)
	if err != nil {
		return nil, fmt.Errorf("StationaryDistribution: λ=%v: %w", lambda, err)
	}
	if dist > UnitTolerance {
		return pi, &NoUnitEigenvalueError{Eigenvalue: lambda, Distance: dist}
	}
	for i, v := range pi {
		if v < -NegativeTolerance {
			return pi, fmt.Errorf("StationaryDistribution: π[%v] = %g: %w", activity.State(i), v, ErrDegenerateMatrix)
		}
	}
	return pi, nil
}

// unitEigenvector returns the eigenvector of mᵀ for the eigenvalue of m
// closest to 1, that eigenvalue, and its distance from 1.
func unitEigenvector(m matrix.Matrix, opts ...matrix.Option) ([]float64, complex128, float64, error) {
	mt, err := matrix.Transpose(m)
	if err != nil {
		return nil, 0, 0, err
	}
	vals, err := matrix.Eigenvalues(mt, opts...)
	if err != nil {
		return nil, 0, 0, err
	}

	lambda, dist := vals[0], cmplx.Abs(vals[0]-1)
	for _, v := range vals[1:] {
		if d := cmplx.Abs(v - 1); d < dist {
			lambda, dist = v, d
		}
	}

	vec, err := matrix.Eigenvector(mt, real(lambda), opts...)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("λ=%v: %w", lambda, err)
	}
	return vec, lambda, dist, nil
}

// classDistribution solves the stationary distribution of p restricted to
// one closed class and embeds it into a full-length vector; states outside
// the class get 0.
func classDistribution(p matrix.Matrix, class []activity.State, opts ...matrix.Option) (Distribution, error) {
	pi := make(Distribution, p.Rows())
	if len(class) == 1 {
		pi[class[0]] = 1
		return pi, nil
	}

	sub, err := matrix.NewDense(len(class), len(class))
	if err != nil {
		return nil, err
	}
	for i, from := range class {
		for j, to := range class {
			v, _ := p.At(int(from), int(to))
			_ = sub.Set(i, j, v)
		}
	}
	vec, lambda, dist, err := unitEigenvector(sub, opts...)
	if err != nil {
		return nil, err
	}
	if dist > UnitTolerance {
		return nil, &NoUnitEigenvalueError{Eigenvalue: lambda, Distance: dist}
	}
	local, err := toDistribution(vec)
	if err != nil {
		return nil, err
	}
	for i, s := range class {
		pi[s] = local[i]
	}
	return pi, nil
}

// toDistribution scales vec to sum 1.
func toDistribution(vec []float64) (Distribution, error) {
	var sum float64
	for _, v := range vec {
		sum += v
	}
	if math.Abs(sum) < degenerateSum {
		return nil, fmt.Errorf("eigenvector sums to %g: %w", sum, ErrDegenerateMatrix)
	}
	pi := make(Distribution, len(vec))
	for i, v := range vec {
		pi[i] = v / sum
	}
	return pi, nil
}

// Verify checks the fixed-point property π·P ≈ π.
func Verify(p matrix.Matrix, pi Distribution) (Verification, error) {
	moved, err := matrix.VecMul(pi, p)
	if err != nil {
		return Verification{}, fmt.Errorf("Verify: %w", err)
	}
	ok, err := matrix.AllCloseVec(moved, pi, VerifyRTol, VerifyATol)
	if err != nil {
		return Verification{}, fmt.Errorf("Verify: %w", err)
	}
	residual, err := matrix.MaxAbsDiffVec(moved, pi)
	if err != nil {
		return Verification{}, fmt.Errorf("Verify: %w", err)
	}

	return Verification{OK: ok, Residual: residual}, nil
}

// Power returns Pᵏ. Power(P, 0) is the identity and Power(P, 1) is an exact
// copy of P. The result is not renormalized.
func Power(p matrix.Matrix, k int) (*matrix.Dense, error) {
	if k < 0 {
		return nil, fmt.Errorf("Power: k=%d: %w", k, ErrNegativePower)
	}
	pk, err := matrix.Power(p, k)
	if err != nil {
		return nil, fmt.Errorf("Power: %w", err)
	}

	return pk, nil
}

func validateAlphabetShape(m matrix.Matrix) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != activity.NumStates || m.Cols() != activity.NumStates {
		return fmt.Errorf("%dx%d: %w", m.Rows(), m.Cols(), ErrShape)
	}
	return nil
}

// absolute returns |m| element-wise so signed noise cannot sum to zero.
func absolute(m matrix.Matrix) matrix.Matrix {
	out := m.Clone()
	for i := 0; i < out.Rows(); i++ {
		for j := 0; j < out.Cols(); j++ {
			v, _ := out.At(i, j)
			_ = out.Set(i, j, math.Abs(v))
		}
	}
	return out
}
