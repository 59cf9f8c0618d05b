// SPDX-License-Identifier: MIT

package activity

import (
	"fmt"
	"strings"
)

// State is one of the three ordinal daily activity levels.
// The alphabet is closed; values outside [Low, High] are invalid.
type State int

const (
	// Low is a day with total ≤ LowUpperBound.
	Low State = iota
	// Medium is a day with LowUpperBound < total ≤ MediumUpperBound.
	Medium
	// High is a day with total > MediumUpperBound.
	High
)

// NumStates is the fixed size of the state alphabet.
const NumStates = 3

// Classification thresholds (inclusive upper bounds).
const (
	LowUpperBound    = 4000.0
	MediumUpperBound = 9000.0
)

var stateNames = [NumStates]string{"Low", "Medium", "High"}

// States returns the alphabet in ordinal order.
func States() []State {
	return []State{Low, Medium, High}
}

// Valid reports whether s belongs to the alphabet.
func (s State) Valid() bool {
	return s >= Low && s <= High
}

// String returns the language-neutral enum name.
func (s State) String() string {
	if !s.Valid() {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Classify maps a daily total to its state. Thresholds are applied in order
// and boundary values belong to the lower state.
func Classify(total float64) State {
	switch {
	case total <= LowUpperBound:
		return Low
	case total <= MediumUpperBound:
		return Medium
	default:
		return High
	}
}

// ParseState accepts an enum name ("Low"), or a display label from any
// built-in vocabulary ("Low Activity", "Düşük Aktivite"). Matching ignores
// surrounding whitespace; enum names are case-insensitive.
func ParseState(label string) (State, error) {
	label = strings.TrimSpace(label)
	for _, s := range States() {
		if strings.EqualFold(label, stateNames[s]) {
			return s, nil
		}
	}
	for _, v := range vocabularies {
		if s, ok := v.lookup(label); ok {
			return s, nil
		}
	}

	return 0, fmt.Errorf("%q: %w", label, ErrUnknownState)
}
