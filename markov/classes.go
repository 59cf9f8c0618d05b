// SPDX-License-Identifier: MIT

package markov

import (
	"fmt"

	"github.com/katalvlaran/stepchain/activity"
	"github.com/katalvlaran/stepchain/matrix"
)

// ClosedClasses returns the closed communicating classes of m in alphabet
// order, each listing its states in alphabet order. A class is closed when no
// positive entry leads out of it; a state with an all-zero row belongs to none.
//
// A row-stochastic matrix has exactly one stationary distribution per closed
// class, so more than one class means π is not unique. None at all means the
// unit eigenvalue is missing (every closed path leaks into a zero row).
//
// Complexity: O(n³) for the reachability closure, n = NumStates.
func ClosedClasses(m matrix.Matrix) ([][]activity.State, error) {
	if err := validateAlphabetShape(m); err != nil {
		return nil, fmt.Errorf("ClosedClasses: %w", err)
	}

	const n = activity.NumStates
	var reach [n][n]bool
	var i, j, k int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v, _ := m.At(i, j)
			reach[i][j] = v > 0
		}
	}
	// Warshall closure: reach[i][j] ⇔ a path of length ≥ 1 from i to j.
	for k = 0; k < n; k++ {
		for i = 0; i < n; i++ {
			if !reach[i][k] {
				continue
			}
			for j = 0; j < n; j++ {
				if reach[k][j] {
					reach[i][j] = true
				}
			}
		}
	}

	var (
		classes  [][]activity.State
		assigned [n]bool
	)
	for i = 0; i < n; i++ {
		if assigned[i] || !reach[i][i] {
			continue
		}
		class, closed := []activity.State(nil), true
		for j = 0; j < n; j++ {
			if !reach[i][j] {
				continue
			}
			if !reach[j][i] {
				closed = false
				break
			}
			class = append(class, activity.State(j))
		}
		if !closed {
			continue
		}
		for _, s := range class {
			assigned[s] = true
		}
		classes = append(classes, class)
	}

	return classes, nil
}
