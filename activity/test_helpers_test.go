// SPDX-License-Identifier: MIT

package activity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepchain/activity"
)

// day returns 2024-03-<d> at UTC midnight.
func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

// sample is a one-hour interval starting at hour h on day d.
func sample(subject, d, h int, v float64) activity.RawSample {
	start := day(d).Add(time.Duration(h) * time.Hour)
	return activity.RawSample{SubjectID: subject, Start: start, End: start.Add(time.Hour), Value: v}
}

// record is a classified DailyRecord for day d.
func record(d int, total float64) activity.DailyRecord {
	return activity.DailyRecord{Day: day(d), Total: total, State: activity.Classify(total)}
}

// days projects a sequence onto day-of-month numbers.
func days(seq []activity.DailyRecord) []int {
	out := make([]int, len(seq))
	for i, r := range seq {
		out[i] = r.Day.Day()
	}
	return out
}

func mustValid(t *testing.T, seq activity.DailySequence) {
	t.Helper()
	require.NoError(t, seq.Validate())
}
