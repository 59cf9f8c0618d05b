// SPDX-License-Identifier: MIT

package report_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/katalvlaran/stepchain/activity"
	"github.com/katalvlaran/stepchain/markov"
	"github.com/katalvlaran/stepchain/matrix"
	"github.com/katalvlaran/stepchain/report"
)

func sequenceOf(totals ...float64) activity.DailySequence {
	seq := make(activity.DailySequence, len(totals))
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range totals {
		seq[i] = activity.DailyRecord{Day: start.AddDate(0, 0, i), Total: v, State: activity.Classify(v)}
	}
	return seq
}

func newPrinter(t *testing.T, tag language.Tag, opts ...report.PrinterOption) (*report.Printer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	p, err := report.NewPrinter(&buf, tag, opts...)
	require.NoError(t, err)
	return p, &buf
}

func lineWith(t *testing.T, out, prefix string) string {
	t.Helper()
	for _, l := range strings.Split(out, "\n") {
		if strings.HasPrefix(l, prefix) {
			return l
		}
	}
	require.Failf(t, "line not found", "no line starting with %q in:\n%s", prefix, out)
	return ""
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestLocale(t *testing.T) {
	tag, err := report.ParseLocale("")
	require.NoError(t, err)
	require.Equal(t, language.Turkish, tag)

	tag, err = report.ParseLocale("en-GB")
	require.NoError(t, err)
	require.Equal(t, language.English, report.Match(tag))
	require.Equal(t, activity.English, report.VocabularyFor(tag))

	require.Equal(t, language.Turkish, report.Match(language.German))
	require.Equal(t, activity.Turkish, report.VocabularyFor(language.German))
	require.Len(t, report.Supported(), 2)

	_, err = report.ParseLocale("!!")
	require.ErrorIs(t, err, report.ErrInvalidLocale)
}

func TestNewPrinter_Validation(t *testing.T) {
	_, err := report.NewPrinter(nil, language.English)
	require.ErrorIs(t, err, report.ErrNilInput)

	_, err = report.NewPrinter(&bytes.Buffer{}, language.English, report.WithCellFormat("%d"))
	require.ErrorIs(t, err, report.ErrInvalidFormat)

	p, _ := newPrinter(t, language.English)
	require.False(t, p.Colored(), "a buffer is not a terminal")
	require.False(t, report.IsTerminal(&bytes.Buffer{}))

	p, _ = newPrinter(t, language.English, report.WithColor(report.ColorAlways))
	require.True(t, p.Colored())
}

func TestValidateCellFormat(t *testing.T) {
	for _, ok := range []string{"%.2f", "%6.3g", "%.1e", "%.1f%%", "p=%.3f"} {
		require.NoError(t, report.ValidateCellFormat(ok), ok)
	}
	for _, bad := range []string{"", "abc", "%d", "%s", "%.2f %.2f"} {
		require.ErrorIs(t, report.ValidateCellFormat(bad), report.ErrInvalidFormat, bad)
	}
}

func TestParseColorMode(t *testing.T) {
	for in, want := range map[string]report.ColorMode{
		"": report.ColorAuto, "auto": report.ColorAuto, "ALWAYS": report.ColorAlways, "never": report.ColorNever,
	} {
		got, err := report.ParseColorMode(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := report.ParseColorMode("sometimes")
	require.Error(t, err)
	require.Equal(t, "never", report.ColorNever.String())
}

func TestMatrix_Table(t *testing.T) {
	p, buf := newPrinter(t, language.English)
	counts, err := markov.BuildTransitionCounts([]activity.State{activity.Low, activity.Medium, activity.High, activity.Low, activity.Low})
	require.NoError(t, err)

	require.NoError(t, p.Matrix("Counts", counts, "%.0f"))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "Counts\n"))
	require.Contains(t, out, "Medium Activity")

	low := strings.Fields(lineWith(t, out, "Low Activity"))
	require.Equal(t, []string{"1", "1", "0"}, low[len(low)-3:])
	high := strings.Fields(lineWith(t, out, "High Activity"))
	require.Equal(t, []string{"1", "0", "0"}, high[len(high)-3:])

	require.ErrorIs(t, p.Matrix("x", nil, ""), report.ErrNilInput)

	fp, err := report.NewPrinter(failingWriter{}, language.English)
	require.NoError(t, err)
	require.EqualError(t, fp.Matrix("Counts", counts, ""), "disk full")
}

func TestAnalysis_English(t *testing.T) {
	res, err := markov.NewAnalyzer().Run(sequenceOf(1000, 5000, 12000, 3000, 3000))
	require.NoError(t, err)

	p, buf := newPrinter(t, language.English)
	require.NoError(t, p.Analysis(res))
	out := buf.String()

	require.Contains(t, out, "Run "+res.RunID.String()+": 5 days, 2024-03-01 to 2024-03-05")
	for _, heading := range []string{
		"Transition counts", "Transition matrix", "Stationary distribution",
		"Verification: true", "3-step transition matrix", "10-step transition matrix", "100-step transition matrix",
	} {
		require.Contains(t, out, heading)
	}
	require.NotContains(t, out, "Warning")

	section := out[strings.Index(out, "Stationary distribution"):]
	pi := strings.Fields(lineWith(t, section, "Medium Activity"))
	require.Equal(t, []string{"Medium", "Activity", "0.25"}, pi)
}

func TestAnalysis_TurkishWithWarnings(t *testing.T) {
	res, err := markov.NewAnalyzer().Run(sequenceOf(100, 5000, 9500))
	require.NoError(t, err)

	p, buf := newPrinter(t, language.Turkish)
	require.NoError(t, p.Analysis(res))
	out := buf.String()

	require.Contains(t, out, "Geçiş sayıları")
	require.Contains(t, out, "Geçiş matrisi")
	require.Contains(t, out, "Doğrulama:")
	require.Contains(t, out, "100 adımlı geçiş matrisi")
	require.Contains(t, out, "Uyarı: markov: degenerate transition matrix")
	require.Contains(t, out, "Uyarı: markov: no eigenvalue near 1")
	require.Contains(t, out, "Yüksek Aktivite")

	require.ErrorIs(t, p.Analysis(nil), report.ErrNilInput)
}

func TestDistribution_LocalizedDecimals(t *testing.T) {
	pi := markov.Distribution{0.5, 0.25, 0.25}

	p, buf := newPrinter(t, language.Turkish)
	require.NoError(t, p.Distribution(pi))
	require.Contains(t, buf.String(), "Durağan dağılım")
	require.Contains(t, lineWith(t, buf.String(), "Düşük Aktivite"), "0,50")

	p, buf = newPrinter(t, language.English)
	require.NoError(t, p.Distribution(pi))
	require.Contains(t, lineWith(t, buf.String(), "Low Activity"), "0.50")

	require.ErrorIs(t, p.Distribution(nil), report.ErrNilInput)
}

func TestVerification_Skipped(t *testing.T) {
	p, buf := newPrinter(t, language.English)
	require.NoError(t, p.Verification(nil))
	require.Equal(t, "Verification: skipped (no stationary distribution)\n", buf.String())
}

func TestBuildSummary(t *testing.T) {
	s := activity.BuildSummary{
		SubjectID: 4, Samples: 5, Days: 4, Kept: 3, Dropped: 1,
		MinTotal: 100, MaxTotal: 900, StateCounts: [activity.NumStates]int{3, 0, 0},
	}

	p, buf := newPrinter(t, language.English)
	require.NoError(t, p.BuildSummary(s))
	out := buf.String()
	require.Contains(t, out, "Subject 4: 5 samples over 4 days\n")
	require.Contains(t, out, "Kept 3 contiguous days, dropped 1\n")
	require.Contains(t, out, "Max daily total: 900\n")
	require.Contains(t, out, "Min daily total: 100\n")
	require.Equal(t, []string{"Low", "Activity", "3"}, strings.Fields(lineWith(t, out, "  Low Activity")))

	p, buf = newPrinter(t, language.Turkish)
	require.NoError(t, p.BuildSummary(s))
	require.Contains(t, buf.String(), "Kullanıcı 4: 4 gün boyunca 5 örnek")
	require.Contains(t, buf.String(), "3 ardışık gün tutuldu, 1 gün atıldı")
}

func TestTimeline(t *testing.T) {
	seq := sequenceOf(1000, 5000, 12000, 3000, 3000)

	p, buf := newPrinter(t, language.English)
	require.NoError(t, p.Timeline(seq, 0))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "First 5 days: Activity state\n"))
	require.Contains(t, out, "High Activity   │··█··\n")
	require.Contains(t, out, "Medium Activity │·█···\n")
	require.Contains(t, out, "Low Activity    │█··██\n")
	require.Contains(t, out, "2024-03-01 … 2024-03-05")

	// High comes first.
	require.Less(t, strings.Index(out, "High Activity"), strings.Index(out, "Low Activity"))

	buf.Reset()
	require.NoError(t, p.Timeline(seq, 2))
	require.Contains(t, buf.String(), "Low Activity    │█·\n")

	buf.Reset()
	require.NoError(t, p.Timeline(nil, 30))
	require.Equal(t, "First 0 days: Activity state\n", buf.String())
}

func TestColormaps(t *testing.T) {
	require.Equal(t, []string{"Blues", "Greens", "Greys", "Reds", "coolwarm"}, report.Colormaps())

	cm, err := report.LookupColormap("")
	require.NoError(t, err)
	require.Equal(t, "Blues", cm.Name())
	require.Equal(t, report.RGB{R: 247, G: 251, B: 255}, cm.At(0))
	require.Equal(t, report.RGB{R: 8, G: 48, B: 107}, cm.At(1))
	require.Equal(t, cm.At(0), cm.At(-2))
	require.Equal(t, cm.At(1), cm.At(7))
	require.Equal(t, report.RGB{R: 107, G: 174, B: 214}, cm.At(0.5))

	_, err = report.LookupColormap("viridis")
	require.ErrorIs(t, err, report.ErrUnknownColormap)
	_, err = report.LookupColormap("blues")
	require.ErrorIs(t, err, report.ErrUnknownColormap)

	require.Greater(t, report.RGB{R: 255, G: 255, B: 255}.Luminance(), 0.99)
	require.Zero(t, report.RGB{}.Luminance())
}

func TestHeatmap_Shades(t *testing.T) {
	m, err := matrix.NewDenseFromRows([][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)

	p, buf := newPrinter(t, language.English)
	require.NoError(t, p.Heatmap(m, report.HeatmapOptions{Title: "P", Colormap: "Greys"}))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "P\n"))
	require.NotContains(t, out, "\x1b[")
	require.Contains(t, out, strings.Repeat(" ", 8)+strings.Repeat("█", 8))

	buf.Reset()
	require.NoError(t, p.Heatmap(m, report.HeatmapOptions{Annotate: true, CellFormat: "%.1f"}))
	out = buf.String()
	require.Contains(t, out, "██1.0███")
	require.Contains(t, out, "  0.0   ")
	// Colour bar with both ends.
	require.Contains(t, out, "0.0   ░░▒▒▓▓██ 1.0")
}

func TestHeatmap_ANSI(t *testing.T) {
	m, err := matrix.NewDenseFromRows([][]float64{{0, 0.5, 0.5}, {0, 0, 1}, {1, 0, 0}})
	require.NoError(t, err)

	p, buf := newPrinter(t, language.English, report.WithColor(report.ColorAlways))
	require.NoError(t, p.Heatmap(m, report.HeatmapOptions{Colormap: "Blues", Annotate: true}))
	out := buf.String()
	require.Contains(t, out, "\x1b[48;2;247;251;255m")
	require.Contains(t, out, "\x1b[48;2;8;48;107m")
	require.Contains(t, out, "\x1b[0m")
	require.Contains(t, out, "High Activity")
	require.Contains(t, out, "0.50")
}

func TestHeatmap_Errors(t *testing.T) {
	m, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	p, _ := newPrinter(t, language.English)

	require.ErrorIs(t, p.Heatmap(nil, report.HeatmapOptions{}), report.ErrNilInput)
	require.ErrorIs(t, p.Heatmap(m, report.HeatmapOptions{Colormap: "jet"}), report.ErrUnknownColormap)
	require.ErrorIs(t, p.Heatmap(m, report.HeatmapOptions{CellFormat: "%q"}), report.ErrInvalidFormat)
}
