// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// multiplication, transpose, row-vector products and integer powers.
// All functions perform strict fail-fast validation and return clear errors
// on dimension mismatches.
//
// Notes:
//   - Every kernel allocates a fresh result; operands are never mutated.
//   - Errors are wrapped once via matrixErrorf with the op* tag of the facade.

package matrix

import "fmt"

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul         = "Mul"
	opTranspose   = "Transpose"
	opVecMul      = "VecMul"
	opPower       = "Power"
	opRowSums     = "RowSums"
	opNormalizeL1 = "NormalizeRowsL1"
	opAllCloseVec = "AllCloseVec"
	opMaxAbsDiff  = "MaxAbsDiffVec"
	opLUP         = "LUP"
	opSolve       = "Solve"
	opEigenvalues = "Eigenvalues"
	opEigenvector = "Eigenvector"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: i→k→j with row-major strides, skipping zero A[i,k].
//
// Behavior highlights:
//   - Deterministic triple loops; one allocation for C.
//   - Multiplying by the identity reproduces the other operand bit for bit,
//     since every skipped term is an exact zero.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := da.r, da.c, db.c
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, j, k                            int
		av                                 float64
		rowOffsetA, rowOffsetB, rowOffsetR int
	)
	for i = 0; i < aRows; i++ {
		rowOffsetA = i * aCols
		rowOffsetR = i * bCols
		for k = 0; k < aCols; k++ {
			av = da.data[rowOffsetA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Errors: ErrNilMatrix.
// Complexity: Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	dm, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	rows, cols := dm.r, dm.c
	res, err := NewDense(cols, rows) // dims flipped
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	// data[i*cols + j] → res.data[j*rows + i]
	var i, j, baseSrc int
	for i = 0; i < rows; i++ {
		baseSrc = i * cols
		for j = 0; j < cols; j++ {
			res.data[j*rows+i] = dm.data[baseSrc+j]
		}
	}

	return res, nil
}

// VecMul computes the row-vector product y = x · m.
//
// Contract: m non-nil; len(x) == m.Rows(); len(y) == m.Cols().
// This is the natural product for distributions over the states of a
// row-stochastic matrix: if x is a distribution, x·P is the distribution
// one step later.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: Time O(r*c), Space O(c).
func VecMul(x []float64, m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opVecMul, err)
	}
	if err := ValidateVecLen(x, m.Rows()); err != nil {
		return nil, matrixErrorf(opVecMul, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opVecMul, err)
	}
	y := make([]float64, d.c)
	var i, j, base int
	var xv float64
	for i = 0; i < d.r; i++ {
		xv = x[i]
		if xv == 0 {
			continue
		}
		base = i * d.c
		for j = 0; j < d.c; j++ {
			y[j] += xv * d.data[base+j]
		}
	}

	return y, nil
}

// Power computes mᵏ by exponentiation by squaring.
// Implementation:
//   - Stage 1: Validate m (not nil, square) and k >= 0.
//   - Stage 2: k == 0 → identity; otherwise walk the bits of k from the
//     least significant end, squaring the base and folding it into the
//     accumulator whenever the bit is set.
//
// Behavior highlights:
//   - Power(m, 1) is an exact copy of m: the accumulator is seeded with a
//     clone of the base at the first set bit instead of multiplying by I.
//   - No renormalization; floating-point drift at large k is reported as is.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNegativeExponent.
//
// Complexity:
//   - Time O(n³·log k), Space O(n²).
func Power(m Matrix, k int) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opPower, err)
	}
	if k < 0 {
		return nil, matrixErrorf(opPower, fmt.Errorf("k=%d: %w", k, ErrNegativeExponent))
	}
	if k == 0 {
		id, err := NewIdentity(m.Rows())
		if err != nil {
			return nil, matrixErrorf(opPower, err)
		}
		return id, nil
	}

	base, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opPower, err)
	}
	base = base.clone()

	var acc *Dense
	for {
		if k&1 == 1 {
			if acc == nil {
				acc = base.clone()
			} else if acc, err = Mul(acc, base); err != nil {
				return nil, matrixErrorf(opPower, err)
			}
		}
		k >>= 1
		if k == 0 {
			break
		}
		if base, err = Mul(base, base); err != nil {
			return nil, matrixErrorf(opPower, err)
		}
	}

	return acc, nil
}
