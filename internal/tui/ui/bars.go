package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rivo/tview"
)

// Bar returns n scaled against max as a run of block characters at most
// width cells wide. Any non-zero n gets at least one cell.
func Bar(n, max, width int) string {
	if n <= 0 || max <= 0 || width <= 0 {
		return ""
	}
	w := min(n*width/max, width)
	if w == 0 {
		w = 1
	}
	return strings.Repeat("█", w)
}

// BarRow is one labelled row of a bar chart.
type BarRow struct {
	Label string
	Value int
}

// BarChart renders rows as tview-colored text, one labelled bar per line.
// Labels are padded to the widest one.
func BarChart(theme *Theme, rows []BarRow, width int) string {
	labelWidth, top := 0, 0
	for _, r := range rows {
		labelWidth = max(labelWidth, utf8.RuneCountInString(r.Label))
		top = max(top, r.Value)
	}

	label := ColorTag(theme.SenderColor)
	bar := ColorTag(theme.BarColor)
	count := ColorTag(theme.CounterColor)

	var b strings.Builder
	for _, r := range rows {
		pad := strings.Repeat(" ", labelWidth-utf8.RuneCountInString(r.Label))
		fmt.Fprintf(&b, " [%s]%s[-]%s [%s]%6d[-] [%s]%s[-]\n",
			label, tview.Escape(r.Label), pad, count, r.Value, bar, Bar(r.Value, top, width))
	}
	return b.String()
}
