// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.
//
// Purpose:
//   - Provide small, deterministic fixtures and utilities for kernels.
//   - Keep all data finite and well-formed.

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepchain/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing kernels onto their generic (At-based) path.
type hide struct{ matrix.Matrix }

// MustDense builds a *Dense from row literals or fails the test.
func MustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return d
}

// MustAt reads (i,j) or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// RequireClose asserts |a[i,j]-b[i,j]| ≤ tol for all cells.
func RequireClose(t *testing.T, want [][]float64, got matrix.Matrix, tol float64) {
	t.Helper()
	require.Equal(t, len(want), got.Rows(), "rows")
	require.Equal(t, len(want[0]), got.Cols(), "cols")
	for i := range want {
		for j := range want[i] {
			require.InDelta(t, want[i][j], MustAt(t, got, i, j), tol, "cell (%d,%d)", i, j)
		}
	}
}

// chainFixture is a strictly positive, aperiodic 3-state chain.
func chainFixture() [][]float64 {
	return [][]float64{
		{0.9, 0.1, 0.0},
		{0.2, 0.7, 0.1},
		{0.1, 0.3, 0.6},
	}
}

// cabs is |z| for complex eigenvalue assertions.
func cabs(z complex128) float64 { return math.Hypot(real(z), imag(z)) }
