// SPDX-License-Identifier: MIT

package matrix

// Test bridge for unexported kernels; compiled only with the package tests.

// ExportedSolveLUP factors m without a pivot floor and solves m·x = b.
func ExportedSolveLUP(m Matrix, b []float64) ([]float64, error) {
	f, err := factor(m, 0)
	if err != nil {
		return nil, err
	}
	return f.solve(b)
}
