// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra kernels behind the
// Markov analysis in stepchain.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set.
//   - Products and powers: Mul, Transpose, VecMul, Power (exponentiation by squaring).
//   - Row statistics: RowSums and NormalizeRowsL1 (zero rows stay zero).
//   - Comparisons: AllCloseVec and MaxAbsDiffVec with numpy-style tolerances.
//   - Solvers: an internal LUP factorization with partial pivoting, used by
//     inverse iteration.
//   - Spectra: Eigenvalues of general (non-symmetric) matrices via Hessenberg
//     reduction and shifted QR, plus Eigenvector by inverse iteration.
//
// All public kernels validate their inputs, never mutate operands, and
// return package sentinels (see errors.go) wrapped with an operation tag.
// Matrices here are small (one row per activity state), so every kernel
// favours determinism and clarity over blocking or SIMD tricks.
package matrix
