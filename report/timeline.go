// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/stepchain/activity"
)

// DefaultTimelineDays is how many leading days Timeline shows by default.
const DefaultTimelineDays = 30

// Timeline draws the states of the first n days (DefaultTimelineDays when
// n ≤ 0) as a step chart: one line per state, highest first, one column per
// day. An empty sequence prints only the heading.
func (p *Printer) Timeline(seq activity.DailySequence, n int) error {
	if n <= 0 {
		n = DefaultTimelineDays
	}
	days := seq[:min(n, len(seq))]

	sw := &stickyWriter{w: p.w}
	p.msg.Fprintf(sw, "First %d days", len(days))
	fmt.Fprintln(sw, ":", p.msg.Sprintf("Activity state"))
	if len(days) == 0 {
		return sw.err
	}

	states := activity.States()
	labelWidth := 0
	for _, s := range states {
		labelWidth = max(labelWidth, len([]rune(p.vocab.Label(s))))
	}
	for i := len(states) - 1; i >= 0; i-- {
		var line strings.Builder
		line.WriteString(padRight(p.vocab.Label(states[i]), labelWidth))
		line.WriteString(" │")
		for _, d := range days {
			if d.State == states[i] {
				line.WriteRune('█')
			} else {
				line.WriteRune('·')
			}
		}
		fmt.Fprintln(sw, line.String())
	}
	fmt.Fprintln(sw, strings.Repeat(" ", labelWidth+1)+"└"+strings.Repeat("─", len(days)))
	fmt.Fprintln(sw, strings.Repeat(" ", labelWidth+2)+days[0].Day.Format(activity.DateLayout),
		"…", days[len(days)-1].Day.Format(activity.DateLayout))

	return sw.err
}
