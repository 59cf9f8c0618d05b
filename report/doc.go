// SPDX-License-Identifier: MIT

// Package report is the console boundary of stepchain: it turns sequences,
// build summaries and Markov analysis results into localized text.
//
// Human-language strings live only here and in activity.Vocabulary. Headings
// come from embedded YAML catalogs (locales/*.yaml) registered with
// golang.org/x/text/message; numbers are formatted by the same printer, so a
// Turkish report prints 0,25 where an English one prints 0.25.
//
// Renderers:
//
//   - Printer.Analysis: count and probability matrices, stationary
//     distribution, verification line, warnings and k-step matrices.
//   - Printer.Heatmap: a terminal heatmap with a named colormap. ANSI colour
//     is emitted only for terminals (or when forced); otherwise cells are
//     shaded with block glyphs.
//   - Printer.Timeline: a step chart of the first N days' states.
//   - Printer.BuildSummary: the sequence builder's record counts.
package report
