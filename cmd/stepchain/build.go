// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/stepchain/activity"
	"github.com/katalvlaran/stepchain/report"
)

func (a *app) buildCmd() *cobra.Command {
	var (
		raw, out, policy string
		subject          int
		subjects         []int
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the contiguous daily state sequence from raw telemetry",
		Long: "Reads per-interval step counts, sums them per calendar day, classifies\n" +
			"each day as Low (≤4000), Medium (≤9000) or High, keeps one run of\n" +
			"consecutive days and writes it as a gun,value,durum CSV file.\n" +
			"With --subjects every subject is built concurrently into its own file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			f := cmd.Flags()
			if f.Changed("raw") {
				cfg.RawFile = raw
			}
			if f.Changed("out") {
				cfg.SequenceFile = out
			}
			if f.Changed("subject") {
				cfg.Subject = subject
			}
			if f.Changed("policy") {
				cfg.Contiguity = policy
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			pol := cfg.ContiguityPolicy()
			p, err := a.printer()
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			log := a.log.With("run_id", runID, "command", "build")
			log.Info("reading raw telemetry", "path", cfg.RawFile, "policy", pol.String())
			samples, err := activity.ReadRawFile(cfg.RawFile)
			if err != nil {
				return err
			}
			log.Debug("raw telemetry read", "samples", len(samples))

			if len(subjects) == 0 {
				subjects = []int{cfg.Subject}
			}
			return a.build(cmd.Context(), p, samples, subjects, cfg.SequenceFile, pol, runID)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&raw, "raw", "", "raw telemetry CSV (user_id,start,end,value)")
	fl.StringVar(&out, "out", "", "output sequence CSV")
	fl.IntVar(&subject, "subject", 0, "subject (user_id) to build")
	fl.IntSliceVar(&subjects, "subjects", nil, "build several subjects concurrently; files get a _<id> suffix")
	fl.StringVar(&policy, "policy", "", "contiguity policy: longest or first")

	return cmd
}

// build runs one builder per distinct subject and writes each sequence. A
// single subject is written to out as is; several get a _<id> suffix.
func (a *app) build(ctx context.Context, p *report.Printer, samples []activity.RawSample,
	subjects []int, out string, pol activity.ContiguityPolicy, runID string) error {
	results, err := activity.BuildEach(ctx, samples, subjects, activity.WithContiguityPolicy(pol))
	if err != nil {
		return err
	}

	ids := make([]int, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		res := results[id]
		path := out
		if len(results) > 1 {
			path = subjectPath(out, id)
		}
		log := a.log.With("run_id", runID, "subject", id)
		if res.Summary.Dropped > 0 {
			log.Warn("non-contiguous days dropped", "days", res.Summary.Days, "dropped", res.Summary.Dropped)
		}
		if err = activity.WriteSequenceFile(path, res.Sequence, p.Vocabulary()); err != nil {
			return err
		}
		if info, err := os.Stat(path); err == nil {
			log.Info("sequence written", "path", path, "days", len(res.Sequence), "size", humanize.Bytes(uint64(info.Size())))
		}

		if err = p.BuildSummary(res.Summary); err != nil {
			return err
		}
		if _, err = fmt.Fprintln(a.stdout, p.Sprintf("Wrote %d days to %s", len(res.Sequence), path)); err != nil {
			return err
		}
	}

	return nil
}

// subjectPath inserts "_<id>" before the extension: data.csv → data_4.csv.
func subjectPath(path string, id int) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + strconv.Itoa(id) + ext
}
