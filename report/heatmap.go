// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/katalvlaran/stepchain/matrix"
)

// HeatmapOptions mirrors the knobs of a plotting-library heatmap call.
type HeatmapOptions struct {
	Title      string
	Colormap   string // registered colormap name; "" selects DefaultColormap
	Annotate   bool   // print the value inside each cell
	CellFormat string // printf format for annotations; "" uses the Printer's
}

// shades go from lightest to darkest; used when colour is off.
var shades = []rune{' ', '░', '▒', '▓', '█'}

const (
	minCellWidth  = 6
	colorbarWidth = 10
)

// Heatmap renders m as a grid of shaded cells followed by a colour bar.
// Values are scaled linearly between the matrix minimum and maximum; a
// constant matrix renders at the low end of the colormap.
//
// Errors:
//   - ErrNilInput, ErrUnknownColormap, ErrInvalidFormat.
func (p *Printer) Heatmap(m *matrix.Dense, opts HeatmapOptions) error {
	if m == nil {
		return fmt.Errorf("Heatmap: %w", ErrNilInput)
	}
	cm, err := LookupColormap(opts.Colormap)
	if err != nil {
		return fmt.Errorf("Heatmap: %w", err)
	}
	format := opts.CellFormat
	if format == "" {
		format = p.cellFormat
	}
	if err = ValidateCellFormat(format); err != nil {
		return fmt.Errorf("Heatmap: %w", err)
	}

	data := m.RawRows()
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range data {
		for _, v := range row {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	scale := func(v float64) float64 {
		if hi == lo {
			return 0
		}
		return (v - lo) / (hi - lo)
	}

	rowLabels, colLabels := p.axisLabels(m)
	texts := make([][]string, len(data))
	width := minCellWidth
	for _, l := range colLabels {
		width = max(width, utf8.RuneCountInString(l))
	}
	for i, row := range data {
		texts[i] = make([]string, len(row))
		for j, v := range row {
			if opts.Annotate {
				texts[i][j] = p.msg.Sprintf(format, v)
				width = max(width, utf8.RuneCountInString(texts[i][j]))
			}
		}
	}
	width += 2
	labelWidth := 0
	for _, l := range rowLabels {
		labelWidth = max(labelWidth, utf8.RuneCountInString(l))
	}

	sw := &stickyWriter{w: p.w}
	if opts.Title != "" {
		fmt.Fprintln(sw, opts.Title)
	}
	fmt.Fprint(sw, strings.Repeat(" ", labelWidth+1))
	for _, l := range colLabels {
		fmt.Fprint(sw, center(l, width, ' '))
	}
	fmt.Fprintln(sw)
	for i, row := range data {
		fmt.Fprint(sw, padRight(rowLabels[i], labelWidth), " ")
		for j, v := range row {
			fmt.Fprint(sw, p.cell(cm, scale(v), texts[i][j], width))
		}
		fmt.Fprintln(sw)
	}

	// Colour bar: low value, gradient, high value.
	fmt.Fprint(sw, strings.Repeat(" ", labelWidth+1), p.msg.Sprintf(format, lo), " ")
	for k := 0; k < colorbarWidth; k++ {
		fmt.Fprint(sw, p.cell(cm, float64(k)/float64(colorbarWidth-1), "", 1))
	}
	fmt.Fprintln(sw, "", p.msg.Sprintf(format, hi))

	return sw.err
}

// cell renders one heatmap cell of the given width for intensity t.
func (p *Printer) cell(cm Colormap, t float64, text string, width int) string {
	if p.color {
		bg := cm.At(t)
		fg := RGB{255, 255, 255}
		if bg.Luminance() > 0.5 {
			fg = RGB{0, 0, 0}
		}
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm\x1b[38;2;%d;%d;%dm%s\x1b[0m",
			bg.R, bg.G, bg.B, fg.R, fg.G, fg.B, center(text, width, ' '))
	}
	return center(text, width, shadeFor(t))
}

// shadeFor maps t ∈ [0,1] onto the shade ramp.
func shadeFor(t float64) rune {
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	idx := int(math.Round(t * float64(len(shades)-1)))
	return shades[min(idx, len(shades)-1)]
}

// center pads s with fill on both sides to width runes (extra fill goes right).
func center(s string, width int, fill rune) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(string(fill), left) + s + strings.Repeat(string(fill), width-n-left)
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
