// SPDX-License-Identifier: MIT

package activity

import (
	"fmt"
	"sort"
	"strings"
)

// ContiguityPolicy selects which run of consecutive days survives filtering.
type ContiguityPolicy int

const (
	// FirstRun keeps the earliest run of consecutive days: every record after
	// the first gap is dropped. This is the default.
	FirstRun ContiguityPolicy = iota
	// LongestRun keeps the longest run of consecutive days (earliest on ties).
	// It may drop the days before a gap instead of the days after it.
	LongestRun
)

func (p ContiguityPolicy) String() string {
	switch p {
	case FirstRun:
		return "first"
	case LongestRun:
		return "longest"
	default:
		return "unknown"
	}
}

// ParseContiguityPolicy accepts "first" or "longest" (case-insensitive);
// the empty string selects FirstRun.
func ParseContiguityPolicy(s string) (ContiguityPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return FirstRun, nil
	case "longest":
		return LongestRun, nil
	}
	return FirstRun, fmt.Errorf("activity: unknown contiguity policy %q", s)
}

// Runs sorts a copy of records by day and splits it into maximal runs in
// which every record is exactly one calendar day after the previous one.
// The first record of each run is kept: it has no predecessor to disagree with.
// A duplicate day (delta 0) also breaks a run.
func Runs(records []DailyRecord) []DailySequence {
	if len(records) == 0 {
		return nil
	}
	sorted := make([]DailyRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Day.Before(sorted[j].Day) })

	var (
		runs  []DailySequence
		start int
	)
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && nextDay(sorted[i-1].Day).Equal(sorted[i].Day) {
			continue
		}
		runs = append(runs, DailySequence(sorted[start:i:i]))
		start = i
	}

	return runs
}

// FilterContiguous reduces records to a single contiguous DailySequence.
// Records not contiguous with their predecessor are dropped rather than
// interpolated. Under FirstRun a gap drops the record that follows it and
// everything after; LongestRun may instead keep a later run and drop the
// days before the gap. An empty input yields an empty (nil) sequence.
func FilterContiguous(records []DailyRecord, policy ContiguityPolicy) DailySequence {
	runs := Runs(records)
	if len(runs) == 0 {
		return nil
	}
	if policy != LongestRun {
		return runs[0]
	}

	best := runs[0]
	for _, r := range runs[1:] {
		if len(r) > len(best) {
			best = r
		}
	}
	return best
}
