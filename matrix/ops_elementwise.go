// SPDX-License-Identifier: MIT

package matrix

import "math"

// AllCloseVec checks element-wise |a-b| ≤ atol + rtol*|b| for two vectors of
// equal length. NaN/Inf tolerances are rejected; rtol and atol are taken as
// absolute values.
func AllCloseVec(a, b []float64, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllCloseVec, ErrNaNInf)
	}
	if a == nil || b == nil {
		return false, matrixErrorf(opAllCloseVec, ErrNilMatrix)
	}
	if len(a) != len(b) {
		return false, matrixErrorf(opAllCloseVec, ErrDimensionMismatch)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	for idx := range a {
		// Check |a-b| ≤ atol + rtol*|b|; early-exit on first violation.
		if math.Abs(a[idx]-b[idx]) > atol+rtol*math.Abs(b[idx]) {
			return false, nil
		}
	}

	return true, nil
}

// MaxAbsDiffVec returns max_i |a_i - b_i| (0 for empty vectors).
func MaxAbsDiffVec(a, b []float64) (float64, error) {
	if a == nil || b == nil {
		return 0, matrixErrorf(opMaxAbsDiff, ErrNilMatrix)
	}
	if len(a) != len(b) {
		return 0, matrixErrorf(opMaxAbsDiff, ErrDimensionMismatch)
	}
	var worst float64
	for idx := range a {
		if d := math.Abs(a[idx] - b[idx]); d > worst {
			worst = d
		}
	}

	return worst, nil
}
