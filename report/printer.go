// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/katalvlaran/stepchain/activity"
	"github.com/katalvlaran/stepchain/matrix"
)

// DefaultCellFormat is the printf format for probabilities.
const DefaultCellFormat = "%.2f"

// countFormat prints transition counts and step totals.
const countFormat = "%.0f"

// ColorMode controls ANSI colour output.
type ColorMode int

const (
	// ColorAuto colours output only when the writer is a terminal.
	ColorAuto ColorMode = iota
	// ColorAlways forces ANSI colour.
	ColorAlways
	// ColorNever disables ANSI colour.
	ColorNever
)

func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return fmt.Sprintf("ColorMode(%d)", int(m))
	}
}

// ParseColorMode accepts "auto", "always" or "never" (case-insensitive).
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("report: unknown colour mode %q", s)
}

// Printer renders reports for one locale onto one writer.
// A Printer is not safe for concurrent use.
type Printer struct {
	w          io.Writer
	msg        *message.Printer
	vocab      activity.Vocabulary
	cellFormat string
	colorMode  ColorMode
	color      bool
}

// PrinterOption configures a Printer.
type PrinterOption func(*Printer)

// WithCellFormat sets the printf format for probability cells.
func WithCellFormat(format string) PrinterOption {
	return func(p *Printer) { p.cellFormat = format }
}

// WithColor sets the colour mode (default ColorAuto).
func WithColor(mode ColorMode) PrinterOption {
	return func(p *Printer) { p.colorMode = mode }
}

// NewPrinter returns a Printer writing to w in the supported locale closest
// to tag. Errors: ErrNilInput for a nil writer, ErrInvalidFormat.
func NewPrinter(w io.Writer, tag language.Tag, opts ...PrinterOption) (*Printer, error) {
	if w == nil {
		return nil, fmt.Errorf("NewPrinter: writer: %w", ErrNilInput)
	}
	p := &Printer{
		w:          w,
		msg:        newMessagePrinter(tag),
		vocab:      VocabularyFor(tag),
		cellFormat: DefaultCellFormat,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if err := ValidateCellFormat(p.cellFormat); err != nil {
		return nil, fmt.Errorf("NewPrinter: %w", err)
	}
	switch p.colorMode {
	case ColorAlways:
		p.color = true
	case ColorNever:
		p.color = false
	default:
		p.color = IsTerminal(w)
	}

	return p, nil
}

// Vocabulary returns the state labels in use.
func (p *Printer) Vocabulary() activity.Vocabulary { return p.vocab }

// Sprintf formats a catalog message (or a plain format string) in the
// printer's locale.
func (p *Printer) Sprintf(key string, args ...any) string {
	return p.msg.Sprintf(key, args...)
}

// Colored reports whether ANSI colour is emitted.
func (p *Printer) Colored() bool { return p.color }

// IsTerminal reports whether w is a terminal (including Cygwin/MSYS ptys).
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ValidateCellFormat accepts formats holding exactly one verb that consumes
// a float64, e.g. "%.2f", "%6.3g" or "%.1e".
func ValidateCellFormat(format string) error {
	if !strings.Contains(format, "%") || strings.Contains(fmt.Sprintf(format, 0.5), "%!") {
		return fmt.Errorf("%q: %w", format, ErrInvalidFormat)
	}
	return nil
}

// Matrix prints m as a table with state labels on both axes.
func (p *Printer) Matrix(title string, m *matrix.Dense, format string) error {
	if m == nil {
		return fmt.Errorf("Matrix: %w", ErrNilInput)
	}
	if format == "" {
		format = p.cellFormat
	}
	sw := &stickyWriter{w: p.w}
	if title != "" {
		fmt.Fprintln(sw, title)
	}
	rows, cols := p.axisLabels(m)

	tw := tabwriter.NewWriter(sw, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "\t", strings.Join(cols, "\t"), "\t\n")
	for i, row := range m.RawRows() {
		fmt.Fprint(tw, rows[i])
		for _, v := range row {
			fmt.Fprint(tw, "\t", p.msg.Sprintf(format, v))
		}
		fmt.Fprint(tw, "\t\n")
	}
	if err := tw.Flush(); err != nil && sw.err == nil {
		sw.err = err
	}

	return sw.err
}

// axisLabels uses state labels for alphabet-sized matrices and indices otherwise.
func (p *Printer) axisLabels(m *matrix.Dense) (rows, cols []string) {
	label := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			if n == activity.NumStates {
				out[i] = p.vocab.Label(activity.State(i))
			} else {
				out[i] = fmt.Sprint(i)
			}
		}
		return out
	}
	return label(m.Rows()), label(m.Cols())
}

// stickyWriter remembers the first write error and drops later writes.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) Write(b []byte) (int, error) {
	if s.err != nil {
		return len(b), nil
	}
	n, err := s.w.Write(b)
	if err != nil {
		s.err = err
	}
	return n, err
}
