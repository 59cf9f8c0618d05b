// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// lup is an in-place LU factorization with partial (row) pivoting: P·A = L·U.
// L is unit lower triangular and stored below the diagonal of lu; U is
// stored on and above it. perm[i] is the original row placed at row i.
type lup struct {
	n    int
	lu   []float64
	perm []int
}

// factor computes the LUP factorization of a square matrix.
// Implementation:
//   - Stage 1: Validate m (not nil, square); copy into a flat work buffer.
//   - Stage 2: For each column k pick the row with max |a[i,k]| (i ≥ k), swap, eliminate.
//
// When floor > 0, pivots with |p| < floor are replaced by floor instead of
// failing. Inverse iteration relies on this to solve against (A - λI) when λ
// is an exact eigenvalue. With floor == 0 an exact zero pivot is ErrSingular.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func factor(m Matrix, floor float64) (*lup, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opLUP, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opLUP, err)
	}
	n := src.r
	f := &lup{n: n, lu: make([]float64, n*n), perm: make([]int, n)}
	copy(f.lu, src.data)
	for i := range f.perm {
		f.perm[i] = i
	}

	a := f.lu
	var (
		i, j, k, p int
		pivot, l   float64
	)
	for k = 0; k < n; k++ {
		// Partial pivoting: largest magnitude in column k at or below the diagonal.
		p = k
		for i = k + 1; i < n; i++ {
			if math.Abs(a[i*n+k]) > math.Abs(a[p*n+k]) {
				p = i
			}
		}
		if p != k {
			for j = 0; j < n; j++ {
				a[k*n+j], a[p*n+j] = a[p*n+j], a[k*n+j]
			}
			f.perm[k], f.perm[p] = f.perm[p], f.perm[k]
		}

		pivot = a[k*n+k]
		if math.Abs(pivot) < floor || pivot == 0 {
			if floor == 0 {
				return nil, matrixErrorf(opLUP, fmt.Errorf("pivot %d: %w", k, ErrSingular))
			}
			pivot = math.Copysign(floor, pivot)
			a[k*n+k] = pivot
		}

		for i = k + 1; i < n; i++ {
			l = a[i*n+k] / pivot
			a[i*n+k] = l
			if l == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a[i*n+j] -= l * a[k*n+j]
			}
		}
	}

	return f, nil
}

// solve returns x with A·x = b using the factorization.
func (f *lup) solve(b []float64) ([]float64, error) {
	if err := ValidateVecLen(b, f.n); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	n, a := f.n, f.lu
	x := make([]float64, n)
	var i, j int
	var sum float64

	// Forward substitution with the permuted right-hand side (L has unit diagonal).
	for i = 0; i < n; i++ {
		sum = b[f.perm[i]]
		for j = 0; j < i; j++ {
			sum -= a[i*n+j] * x[j]
		}
		x[i] = sum
	}
	// Back substitution on U.
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		for j = i + 1; j < n; j++ {
			sum -= a[i*n+j] * x[j]
		}
		x[i] = sum / a[i*n+i]
	}

	return x, nil
}
