// SPDX-License-Identifier: MIT

package activity

import (
	"context"
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
)

// BuildSummary describes one SequenceBuilder run.
type BuildSummary struct {
	SubjectID   int
	Samples     int // samples belonging to the subject
	Days        int // distinct calendar days before contiguity filtering
	Kept        int // records in the output sequence
	Dropped     int // Days - Kept
	MinTotal    float64
	MaxTotal    float64
	StateCounts [NumStates]int // per-state day counts in the output sequence
}

// BuilderOption configures a SequenceBuilder.
type BuilderOption func(*SequenceBuilder)

// WithContiguityPolicy selects which run of consecutive days is kept.
func WithContiguityPolicy(p ContiguityPolicy) BuilderOption {
	return func(b *SequenceBuilder) { b.policy = p }
}

// SequenceBuilder turns one subject's raw telemetry into a DailySequence.
// It holds no mutable state across runs and is safe for concurrent use.
type SequenceBuilder struct {
	subjectID int
	policy    ContiguityPolicy
}

// NewSequenceBuilder returns a builder for subjectID (default policy FirstRun).
func NewSequenceBuilder(subjectID int, opts ...BuilderOption) *SequenceBuilder {
	b := &SequenceBuilder{subjectID: subjectID, policy: FirstRun}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// SubjectID returns the subject this builder filters for.
func (b *SequenceBuilder) SubjectID() int { return b.subjectID }

// Policy returns the configured contiguity policy.
func (b *SequenceBuilder) Policy() ContiguityPolicy { return b.policy }

// Run filters, aggregates, classifies and contiguity-filters samples.
//
// Errors:
//   - ErrNoSamples when no sample belongs to the subject.
//   - ErrInvalidSample for a negative or non-finite value.
func (b *SequenceBuilder) Run(samples []RawSample) (DailySequence, BuildSummary, error) {
	summary := BuildSummary{SubjectID: b.subjectID}

	mine := FilterSubject(samples, b.subjectID)
	if len(mine) == 0 {
		return nil, summary, fmt.Errorf("subject %d: %w", b.subjectID, ErrNoSamples)
	}
	for i, s := range mine {
		if s.Value < 0 || math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
			return nil, summary, fmt.Errorf("subject %d, sample %d: value %v: %w", b.subjectID, i, s.Value, ErrInvalidSample)
		}
	}
	summary.Samples = len(mine)

	daily := AggregateDaily(mine)
	seq := FilterContiguous(daily, b.policy)

	summary.Days = len(daily)
	summary.Kept = len(seq)
	summary.Dropped = summary.Days - summary.Kept
	for i, r := range seq {
		if i == 0 || r.Total < summary.MinTotal {
			summary.MinTotal = r.Total
		}
		if i == 0 || r.Total > summary.MaxTotal {
			summary.MaxTotal = r.Total
		}
		summary.StateCounts[r.State]++
	}

	return seq, summary, nil
}

// SubjectResult is the per-subject outcome of BuildEach.
type SubjectResult struct {
	Sequence DailySequence
	Summary  BuildSummary
}

// BuildEach runs one SequenceBuilder per distinct subject concurrently.
// Subjects share nothing but the read-only samples slice; a repeated ID is
// built once. The first failure cancels the remaining builds and is returned.
func BuildEach(ctx context.Context, samples []RawSample, subjects []int, opts ...BuilderOption) (map[int]SubjectResult, error) {
	var (
		mu  sync.Mutex
		out = make(map[int]SubjectResult, len(subjects))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, id := range uniqueSubjects(subjects) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			seq, summary, err := NewSequenceBuilder(id, opts...).Run(samples)
			if err != nil {
				return err
			}
			mu.Lock()
			out[id] = SubjectResult{Sequence: seq, Summary: summary}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// uniqueSubjects drops repeated IDs, keeping the first occurrence.
func uniqueSubjects(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
