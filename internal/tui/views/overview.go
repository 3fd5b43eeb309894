package views

import (
	"fmt"
	"time"

	"github.com/matheus3301/chatlens/internal/rpc"
	"github.com/matheus3301/chatlens/internal/tui/ui"
	"github.com/rivo/tview"
)

// Overview shows the loaded export's statistics and participants.
type Overview struct {
	*tview.Flex
	theme   *ui.Theme
	summary *tview.TextView
	chart   *tview.TextView
}

// NewOverview creates the overview page.
func NewOverview(theme *ui.Theme) *Overview {
	summary := tview.NewTextView().
		SetDynamicColors(true)
	summary.SetBorder(true)
	summary.SetBorderColor(theme.BorderColor)
	summary.SetBackgroundColor(theme.BgColor)
	summary.SetTextColor(theme.FgColor)
	summary.SetTitle(" Export ")
	summary.SetTitleColor(theme.TitleColor)

	chart := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	chart.SetBorder(true)
	chart.SetBorderColor(theme.BorderColor)
	chart.SetBackgroundColor(theme.BgColor)
	chart.SetTextColor(theme.FgColor)
	chart.SetTitle(" Messages per participant ")
	chart.SetTitleColor(theme.TitleColor)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(summary, 6, 0, false).
		AddItem(chart, 0, 1, true)

	o := &Overview{
		Flex:    flex,
		theme:   theme,
		summary: summary,
		chart:   chart,
	}
	o.Update(nil)
	return o
}

// Name implements Component.
func (o *Overview) Name() string { return "Overview" }

// Hints implements Component.
func (o *Overview) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: ":load <file>", Description: "Load export"},
		{Key: "1-4", Description: "Pages", Numeric: true},
	}
}

// Update renders status; a nil status or one without an export shows
// how to load one.
func (o *Overview) Update(st *rpc.GetStatusResponse) {
	o.summary.Clear()
	o.chart.Clear()

	if st == nil || !st.Loaded || st.Stats == nil {
		msg := " No export loaded.\n\n Type [::b]:load /path/to/export.txt[-:-:-] to analyze a chat export."
		if st != nil && st.StateReason != "" {
			msg = fmt.Sprintf(" [red]Last load failed:[-] %s\n\n%s", tview.Escape(st.StateReason), msg)
		}
		_, _ = fmt.Fprint(o.summary, msg)
		return
	}

	stats := st.Stats
	loaded := ""
	if st.LoadedMs > 0 {
		loaded = time.UnixMilli(st.LoadedMs).Format("Jan 02 15:04")
	}
	_, _ = fmt.Fprintf(o.summary,
		" [::b]File:[-:-:-]         %s\n"+
			" [::b]Messages:[-:-:-]     %d\n"+
			" [::b]Participants:[-:-:-] %d\n"+
			" [::b]Range:[-:-:-]        %s\n"+
			" [::b]Loaded:[-:-:-]       %s",
		tview.Escape(sanitizeForTerminal(st.Name)), stats.TotalMessages, stats.Participants, stats.DateRange, loaded)

	rows := make([]ui.BarRow, 0, len(stats.PerSender))
	for _, s := range stats.PerSender {
		rows = append(rows, ui.BarRow{Label: sanitizeForTerminal(s.Sender), Value: s.Messages})
	}
	_, _, width, _ := o.chart.GetInnerRect()
	_, _ = fmt.Fprint(o.chart, ui.BarChart(o.theme, rows, chartWidth(width, rows)))
}

// chartWidth leaves room for labels and counts in a box of inner width w.
func chartWidth(w int, rows []ui.BarRow) int {
	label := 0
	for _, r := range rows {
		label = max(label, len([]rune(r.Label)))
	}
	if bar := w - label - 10; bar > 10 {
		return bar
	}
	return 40
}
