// SPDX-License-Identifier: MIT

// Command stepchain builds a daily activity-state sequence from raw
// step-count telemetry and analyzes it as a Markov chain.
//
//	stepchain build   --raw step-count-from-phone-app.csv --subject 4
//	stepchain analyze --in gunluk_veriler.csv --steps 3,10,100
//
// Every flag has a STEPCHAIN_* environment counterpart (see package config);
// flags win over the environment, which wins over the .env file.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/stepchain/config"
	"github.com/katalvlaran/stepchain/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "stepchain:", err)
		stop()
		os.Exit(1)
	}
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	stdout, stderr io.Writer
	cfg            config.Config
	log            *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	var envFile, locale, color, logLevel string

	root := &cobra.Command{
		Use:           "stepchain",
		Short:         "Markov-chain analysis of daily step-count activity states",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}
			cfg, err := config.Load(files...)
			if err != nil {
				return err
			}
			f := cmd.Flags()
			if f.Changed("locale") {
				cfg.Locale = locale
			}
			if f.Changed("color") {
				cfg.Color = color
			}
			if f.Changed("log-level") {
				if err = cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
					return fmt.Errorf("--log-level: %w", err)
				}
			}
			a.cfg = cfg
			a.log = newLogger(a.stderr, cfg.LogLevel)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&envFile, "env-file", "", "dotenv file to load (default .env when present)")
	pf.StringVar(&locale, "locale", "", "report language: tr or en")
	pf.StringVar(&color, "color", "", "ANSI colour: auto, always or never")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(a.buildCmd(), a.analyzeCmd())
	return root
}

// newLogger writes text-formatted structured logs to w.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// printer builds the console report printer from the resolved configuration.
func (a *app) printer() (*report.Printer, error) {
	tag, err := report.ParseLocale(a.cfg.Locale)
	if err != nil {
		return nil, err
	}
	mode, err := report.ParseColorMode(a.cfg.Color)
	if err != nil {
		return nil, err
	}
	return report.NewPrinter(a.stdout, tag, report.WithCellFormat(a.cfg.CellFormat), report.WithColor(mode))
}
