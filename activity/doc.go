// SPDX-License-Identifier: MIT

// Package activity turns raw per-interval step-count telemetry into a
// contiguous daily sequence of activity states.
//
// 🚀 Pipeline (SequenceBuilder.Run):
//
//	raw samples ──FilterSubject──▶ one subject's samples
//	            ──AggregateDaily─▶ one DailyRecord per calendar day (sum of values)
//	            ──Classify───────▶ Low (≤4000) │ Medium (≤9000) │ High
//	            ──FilterContiguous▶ a single run of consecutive days
//
// The resulting DailySequence is the only artifact handed to the Markov
// analyzer; it is persisted as a "gun,value,durum" CSV file (see
// WriteSequence / ReadSequence).
//
// ✨ Key properties:
//   - The state alphabet is closed: {Low, Medium, High}, in that order.
//   - Boundary values belong to the lower state (4000 → Low, 9000 → Medium).
//   - Every adjacent pair of a DailySequence is exactly one calendar day apart.
//   - Identical input always produces byte-identical CSV output.
//
// ⚙️ Usage:
//
//	samples, err := activity.ReadRawFile("step-count-from-phone-app.csv")
//	b := activity.NewSequenceBuilder(4)
//	seq, summary, err := b.Run(samples)
//	err = activity.WriteSequenceFile("gunluk_veriler.csv", seq, activity.Turkish)
//
// Subjects are independent: BuildEach runs one builder per subject
// concurrently.
package activity
