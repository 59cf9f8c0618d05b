// SPDX-License-Identifier: MIT

package activity

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar-date layout used for the "gun" column.
const DateLayout = "2006-01-02"

// RawSample is one telemetry interval for one subject. Value is ≥ 0.
type RawSample struct {
	SubjectID int
	Start     time.Time
	End       time.Time
	Value     float64
}

// DailyRecord aggregates all samples whose Start falls on Day.
// Day is the calendar date at UTC midnight, independent of the samples' zone.
type DailyRecord struct {
	Day        time.Time
	Total      float64
	FirstStart time.Time // min Start of the day's samples (zero when read back from CSV)
	LastEnd    time.Time // max End of the day's samples (zero when read back from CSV)
	State      State
}

// DailySequence is ordered by Day with exactly one calendar day between
// neighbours.
type DailySequence []DailyRecord

// States projects the sequence onto its states, in stored order.
func (s DailySequence) States() []State {
	out := make([]State, len(s))
	for i, r := range s {
		out[i] = r.State
	}
	return out
}

// Validate checks the contiguity invariant and the state alphabet.
func (s DailySequence) Validate() error {
	for i, r := range s {
		if !r.State.Valid() {
			return fmt.Errorf("record %d: %v: %w", i, r.State, ErrUnknownState)
		}
		if i == 0 {
			continue
		}
		if !nextDay(s[i-1].Day).Equal(r.Day) {
			return fmt.Errorf("record %d: %s follows %s: %w",
				i, r.Day.Format(DateLayout), s[i-1].Day.Format(DateLayout), ErrNotContiguous)
		}
	}
	return nil
}

// calendarDay truncates t to its calendar date (in t's own location) and
// re-anchors it at UTC midnight so day arithmetic is free of DST effects.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func nextDay(day time.Time) time.Time {
	return day.AddDate(0, 0, 1)
}
