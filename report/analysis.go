// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"text/tabwriter"

	"github.com/katalvlaran/stepchain/activity"
	"github.com/katalvlaran/stepchain/markov"
)

// Analysis prints every part of res in pipeline order.
func (p *Printer) Analysis(res *markov.AnalysisResult) error {
	if res == nil {
		return fmt.Errorf("Analysis: %w", ErrNilInput)
	}
	sw := &stickyWriter{w: p.w}
	p.msg.Fprintf(sw, "Run %s: %d days, %s to %s", res.RunID.String(), res.Days,
		res.First.Format(activity.DateLayout), res.Last.Format(activity.DateLayout))
	fmt.Fprint(sw, "\n\n")
	if sw.err != nil {
		return sw.err
	}

	if err := p.Matrix(p.msg.Sprintf("Transition counts"), res.Counts, countFormat); err != nil {
		return err
	}
	fmt.Fprintln(sw)
	if err := p.Matrix(p.msg.Sprintf("Transition matrix"), res.Transition, ""); err != nil {
		return err
	}
	fmt.Fprintln(sw)

	if res.Stationary != nil {
		if err := p.Distribution(res.Stationary); err != nil {
			return err
		}
	}
	if err := p.Verification(res.Verification); err != nil {
		return err
	}
	for _, w := range res.Warnings {
		p.msg.Fprintf(sw, "Warning: %v", w)
		fmt.Fprintln(sw)
	}

	for _, ks := range res.Powers {
		fmt.Fprintln(sw)
		if err := p.Matrix(p.msg.Sprintf("%d-step transition matrix", ks.K), ks.Matrix, ""); err != nil {
			return err
		}
	}

	return sw.err
}

// Distribution prints π as one labelled row per state.
func (p *Printer) Distribution(pi markov.Distribution) error {
	if pi == nil {
		return fmt.Errorf("Distribution: %w", ErrNilInput)
	}
	sw := &stickyWriter{w: p.w}
	fmt.Fprintln(sw, p.msg.Sprintf("Stationary distribution"))
	tw := tabwriter.NewWriter(sw, 0, 0, 2, ' ', 0)
	for _, s := range activity.States() {
		fmt.Fprint(tw, p.vocab.Label(s), "\t", p.msg.Sprintf(p.cellFormat, pi.Of(s)), "\t\n")
	}
	if err := tw.Flush(); err != nil && sw.err == nil {
		sw.err = err
	}

	return sw.err
}

// Verification prints the fixed-point check with its residual, or a skip
// notice for nil.
func (p *Printer) Verification(v *markov.Verification) error {
	sw := &stickyWriter{w: p.w}
	if v == nil {
		p.msg.Fprintf(sw, "Verification: skipped (no stationary distribution)")
	} else {
		p.msg.Fprintf(sw, "Verification: %t (residual %.3g)", v.OK, v.Residual)
	}
	fmt.Fprintln(sw)

	return sw.err
}

// BuildSummary prints record counts, daily extremes and days per state.
func (p *Printer) BuildSummary(s activity.BuildSummary) error {
	sw := &stickyWriter{w: p.w}
	p.msg.Fprintf(sw, "Subject %d: %d samples over %d days", s.SubjectID, s.Samples, s.Days)
	fmt.Fprintln(sw)
	p.msg.Fprintf(sw, "Kept %d contiguous days, dropped %d", s.Kept, s.Dropped)
	fmt.Fprintln(sw)
	p.msg.Fprintf(sw, "Max daily total: %.0f", s.MaxTotal)
	fmt.Fprintln(sw)
	p.msg.Fprintf(sw, "Min daily total: %.0f", s.MinTotal)
	fmt.Fprintln(sw)

	fmt.Fprintln(sw, p.msg.Sprintf("Days per state"))
	tw := tabwriter.NewWriter(sw, 0, 0, 2, ' ', 0)
	for _, st := range activity.States() {
		fmt.Fprint(tw, "  ", p.vocab.Label(st), "\t", p.msg.Sprintf("%d", s.StateCounts[st]), "\t\n")
	}
	if err := tw.Flush(); err != nil && sw.err == nil {
		sw.err = err
	}

	return sw.err
}
