// SPDX-License-Identifier: MIT

// Package config loads stepchain settings from the environment, optionally
// seeded from a .env file. Defaults reproduce the original analysis: subject
// 4 of step-count-from-phone-app.csv, written to gunluk_veriler.csv, with
// 3-, 10- and 100-step matrices and Turkish labels.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/katalvlaran/stepchain/activity"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full runtime configuration. CLI flags override it.
type Config struct {
	RawFile      string     `env:"STEPCHAIN_RAW_FILE" envDefault:"step-count-from-phone-app.csv"`
	SequenceFile string     `env:"STEPCHAIN_SEQUENCE_FILE" envDefault:"gunluk_veriler.csv"`
	Subject      int        `env:"STEPCHAIN_SUBJECT" envDefault:"4"`
	Contiguity   string     `env:"STEPCHAIN_CONTIGUITY" envDefault:"first"`
	Steps        []int      `env:"STEPCHAIN_STEPS" envDefault:"3,10,100" envSeparator:","`
	Locale       string     `env:"STEPCHAIN_LOCALE" envDefault:"tr"`
	Colormap     string     `env:"STEPCHAIN_COLORMAP" envDefault:"Blues"`
	CellFormat   string     `env:"STEPCHAIN_CELL_FORMAT" envDefault:"%.2f"`
	Color        string     `env:"STEPCHAIN_COLOR" envDefault:"auto"`
	Heatmap      bool       `env:"STEPCHAIN_HEATMAP" envDefault:"true"`
	TimelineDays int        `env:"STEPCHAIN_TIMELINE_DAYS" envDefault:"30"` // 0 disables the timeline
	LogLevel     slog.Level `env:"STEPCHAIN_LOG_LEVEL" envDefault:"info"`
}

// Load reads the given .env files (".env" when none are named) into the
// process environment, then parses STEPCHAIN_* variables. Missing .env files
// are ignored; variables already set in the environment win.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// FromMap parses configuration from environ alone, ignoring the process
// environment and .env files.
func FromMap(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks values that parse but make no sense.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.RawFile) == "" {
		problems = append(problems, "raw file is empty")
	}
	if strings.TrimSpace(c.SequenceFile) == "" {
		problems = append(problems, "sequence file is empty")
	}
	if _, err := activity.ParseContiguityPolicy(c.Contiguity); err != nil {
		problems = append(problems, err.Error())
	}
	for _, k := range c.Steps {
		if k < 0 {
			problems = append(problems, fmt.Sprintf("negative step %d", k))
		}
	}
	if c.TimelineDays < 0 {
		problems = append(problems, fmt.Sprintf("negative timeline length %d", c.TimelineDays))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// ContiguityPolicy returns the parsed contiguity policy.
func (c Config) ContiguityPolicy() activity.ContiguityPolicy {
	p, _ := activity.ParseContiguityPolicy(c.Contiguity)
	return p
}
