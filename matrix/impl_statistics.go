// SPDX-License-Identifier: MIT

// Package matrix - row statistics used to turn count matrices into
// row-stochastic matrices.
//
// Policy:
//   - Rows whose L1 norm is zero are left unchanged (they stay all-zero),
//     so "no observations" is never silently turned into a uniform row.

package matrix

// RowSums returns Σ_j m[i,j] for every row i.
//
// Errors: ErrNilMatrix.
// Complexity: Time O(r*c), Space O(r).
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	sums := make([]float64, d.r)
	var i, j, base int
	for i = 0; i < d.r; i++ {
		base = i * d.c
		for j = 0; j < d.c; j++ {
			sums[i] += d.data[base+j]
		}
	}

	return sums, nil
}

// NormalizeRowsL1 scales each row to have L1-norm == 1 when possible.
// Implementation:
//   - Stage 1: Validate X (non-nil).
//   - Stage 2: Compute per-row L1 norms deterministically.
//   - Stage 3: Scale rows with norm > 0 by 1/norm; zero rows are copied as is.
//
// Behavior highlights:
//   - Degenerate rows (norm==0) stay all-zero; no 0/0 ever happens.
//
// Returns:
//   - *Dense: the normalized copy.
//   - []float64: the original per-row norms (useful to detect zero rows).
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// Notes:
//   - L1 norm is Σ_j |x_ij|; for non-negative count matrices it equals the row sum.
func NormalizeRowsL1(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opNormalizeL1, err)
	}
	src, err := asDense(X)
	if err != nil {
		return nil, nil, matrixErrorf(opNormalizeL1, err)
	}
	out := src.clone()
	norms := make([]float64, out.r)

	var (
		i, j, base int
		s, v       float64
	)
	for i = 0; i < out.r; i++ {
		s = 0.0
		base = i * out.c
		for j = 0; j < out.c; j++ {
			v = out.data[base+j]
			if v < 0 {
				v = -v // abs
			}
			s += v
		}
		norms[i] = s
		if s == 0 {
			continue // zero row: leave untouched
		}
		for j = 0; j < out.c; j++ {
			out.data[base+j] /= s
		}
	}

	return out, norms, nil
}
