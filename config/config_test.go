// SPDX-License-Identifier: MIT

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepchain/activity"
	"github.com/katalvlaran/stepchain/config"
)

func TestFromMap_Defaults(t *testing.T) {
	cfg, err := config.FromMap(map[string]string{})
	require.NoError(t, err)
	require.Equal(t, config.Config{
		RawFile:      "step-count-from-phone-app.csv",
		SequenceFile: "gunluk_veriler.csv",
		Subject:      4,
		Contiguity:   "first",
		Steps:        []int{3, 10, 100},
		Locale:       "tr",
		Colormap:     "Blues",
		CellFormat:   "%.2f",
		Color:        "auto",
		Heatmap:      true,
		TimelineDays: 30,
		LogLevel:     slog.LevelInfo,
	}, cfg)
	require.Equal(t, activity.FirstRun, cfg.ContiguityPolicy())
}

func TestFromMap_Overrides(t *testing.T) {
	cfg, err := config.FromMap(map[string]string{
		"STEPCHAIN_SUBJECT":    "7",
		"STEPCHAIN_STEPS":      "1,2",
		"STEPCHAIN_LOCALE":     "en",
		"STEPCHAIN_CONTIGUITY": "longest",
		"STEPCHAIN_HEATMAP":    "false",
		"STEPCHAIN_LOG_LEVEL":  "debug",
	})
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Subject)
	require.Equal(t, []int{1, 2}, cfg.Steps)
	require.Equal(t, "en", cfg.Locale)
	require.False(t, cfg.Heatmap)
	require.Equal(t, slog.LevelDebug, cfg.LogLevel)
	require.Equal(t, activity.LongestRun, cfg.ContiguityPolicy())
}

func TestFromMap_Invalid(t *testing.T) {
	_, err := config.FromMap(map[string]string{"STEPCHAIN_SUBJECT": "four"})
	require.ErrorContains(t, err, "parse env:")

	_, err = config.FromMap(map[string]string{"STEPCHAIN_STEPS": "3,-1"})
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.FromMap(map[string]string{"STEPCHAIN_CONTIGUITY": "middle"})
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.FromMap(map[string]string{"STEPCHAIN_TIMELINE_DAYS": "-2"})
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stepchain.env")
	require.NoError(t, os.WriteFile(path, []byte("STEPCHAIN_SUBJECT=12\nSTEPCHAIN_COLORMAP=Reds\n"), 0o600))

	// Variables already in the environment win over the file.
	t.Setenv("STEPCHAIN_COLORMAP", "Greens")
	// godotenv writes into the process environment; register cleanup.
	t.Setenv("STEPCHAIN_SUBJECT", "")
	require.NoError(t, os.Unsetenv("STEPCHAIN_SUBJECT"))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 12, cfg.Subject)
	require.Equal(t, "Greens", cfg.Colormap)
}

func TestLoad_MissingFileIgnored(t *testing.T) {
	t.Setenv("STEPCHAIN_SUBJECT", "5")
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Subject)
}
