// SPDX-License-Identifier: MIT

// Package markov analyzes a daily activity-state sequence as a finite,
// discrete-time Markov chain over the closed alphabet activity.States().
//
// What it computes:
//
//   - BuildTransitionCounts: cell (i,j) counts day-to-day moves i → j.
//   - Normalize: row-stochastic matrix P; a state never left keeps an
//     all-zero row (no data stays visible as "no data").
//   - StationaryDistribution: π with π·P = π, from the eigenvector of Pᵀ
//     whose eigenvalue is closest to 1.
//   - Verify: π·P ≈ π with numpy-style tolerances, plus the residual.
//   - Power: k-step matrices Pᵏ by exponentiation by squaring.
//
// Analyzer.Run composes all of the above into one AnalysisResult. Conditions
// that make the result questionable but not useless (a zero row, no
// eigenvalue near 1) are returned as typed warnings inside the result;
// only unusable input (fewer than two days, a broken sequence) is an error.
//
// Rows and columns of every matrix follow activity.States() order:
// Low, Medium, High.
package markov
