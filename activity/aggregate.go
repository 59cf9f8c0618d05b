// SPDX-License-Identifier: MIT

package activity

import (
	"sort"
	"time"
)

// FilterSubject keeps the samples of one subject, preserving input order.
// The input slice is not modified.
func FilterSubject(samples []RawSample, subjectID int) []RawSample {
	out := make([]RawSample, 0, len(samples))
	for _, s := range samples {
		if s.SubjectID == subjectID {
			out = append(out, s)
		}
	}
	return out
}

// AggregateDaily groups samples by the calendar date of Start and returns one
// classified record per date, sorted ascending by day.
//
// Behavior highlights:
//   - Total is the plain sum of values (missing values were read as 0).
//   - FirstStart/LastEnd are the min Start / max End within the day.
//   - Samples are grouped by the date in each timestamp's own location.
//
// Complexity: O(n log n) for n samples (sorting the distinct days).
func AggregateDaily(samples []RawSample) []DailyRecord {
	byDay := make(map[time.Time]*DailyRecord)
	for _, s := range samples {
		day := calendarDay(s.Start)
		rec, ok := byDay[day]
		if !ok {
			rec = &DailyRecord{Day: day, FirstStart: s.Start, LastEnd: s.End}
			byDay[day] = rec
		}
		rec.Total += s.Value
		if s.Start.Before(rec.FirstStart) {
			rec.FirstStart = s.Start
		}
		if s.End.After(rec.LastEnd) {
			rec.LastEnd = s.End
		}
	}

	out := make([]DailyRecord, 0, len(byDay))
	for _, rec := range byDay {
		rec.State = Classify(rec.Total)
		out = append(out, *rec)
	}
	// Map iteration is random; the day key makes the order total.
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })

	return out
}
