// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/stepchain/activity"
	"github.com/katalvlaran/stepchain/markov"
	"github.com/katalvlaran/stepchain/report"
)

func (a *app) analyzeCmd() *cobra.Command {
	var (
		in, colormap, format string
		steps                []int
		heatmap              bool
		timeline             int
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a daily state sequence as a Markov chain",
		Long: "Counts day-to-day state transitions, normalizes them into a transition\n" +
			"matrix, extracts and verifies the stationary distribution and prints\n" +
			"k-step transition matrices, with optional terminal heatmaps.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			f := cmd.Flags()
			if f.Changed("in") {
				cfg.SequenceFile = in
			}
			if f.Changed("steps") {
				cfg.Steps = steps
			}
			if f.Changed("colormap") {
				cfg.Colormap = colormap
			}
			if f.Changed("format") {
				cfg.CellFormat = format
			}
			if f.Changed("heatmap") {
				cfg.Heatmap = heatmap
			}
			if f.Changed("timeline") {
				cfg.TimelineDays = timeline
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			a.cfg = cfg
			if _, err := report.LookupColormap(cfg.Colormap); err != nil {
				return err
			}
			p, err := a.printer()
			if err != nil {
				return err
			}

			seq, err := activity.ReadSequenceFile(cfg.SequenceFile)
			if err != nil {
				return err
			}
			res, err := markov.NewAnalyzer(markov.WithSteps(cfg.Steps...)).Run(seq)
			if err != nil {
				return err
			}

			log := a.log.With("run_id", res.RunID.String(), "command", "analyze")
			log.Info("sequence analyzed", "path", cfg.SequenceFile, "days", res.Days)
			for _, w := range res.Warnings {
				log.Warn("analysis warning", "err", w)
			}
			if res.Verification != nil && !res.Verification.OK {
				log.Warn("stationary distribution failed verification", "residual", res.Verification.Residual)
			}

			if err = p.Analysis(res); err != nil {
				return err
			}
			if cfg.Heatmap {
				if err = a.heatmaps(p, res, cfg.Colormap); err != nil {
					return err
				}
			}
			if cfg.TimelineDays > 0 {
				if _, err = fmt.Fprintln(a.stdout); err != nil {
					return err
				}
				return p.Timeline(seq, cfg.TimelineDays)
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&in, "in", "", "daily sequence CSV (gun,value,durum)")
	fl.IntSliceVar(&steps, "steps", nil, "k-step horizons (default 3,10,100)")
	fl.StringVar(&colormap, "colormap", "", "heatmap colormap: Blues, Greens, Reds, Greys or coolwarm")
	fl.StringVar(&format, "format", "", "printf format for probabilities (default %.2f)")
	fl.BoolVar(&heatmap, "heatmap", true, "render terminal heatmaps")
	fl.IntVar(&timeline, "timeline", 0, "days shown in the state timeline (0 disables)")

	return cmd
}

// heatmaps renders the transition matrix and every k-step matrix.
func (a *app) heatmaps(p *report.Printer, res *markov.AnalysisResult, colormap string) error {
	render := func(title string, ks markov.KStep) error {
		if _, err := fmt.Fprintln(a.stdout); err != nil {
			return err
		}
		return p.Heatmap(ks.Matrix, report.HeatmapOptions{
			Title:    title,
			Colormap: colormap,
			Annotate: true,
		})
	}
	if err := render(p.Sprintf("Transition matrix"), markov.KStep{K: 1, Matrix: res.Transition}); err != nil {
		return err
	}
	for _, ks := range res.Powers {
		if err := render(p.Sprintf("%d-step transition matrix", ks.K), ks); err != nil {
			return err
		}
	}
	return nil
}
