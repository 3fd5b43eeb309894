package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

// Crumbs shows the page trail, active page last, and the loaded export.
type Crumbs struct {
	*tview.TextView
	active, inactive, export string
}

func NewCrumbs(theme *Theme) *Crumbs {
	tv := tview.NewTextView().SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	return &Crumbs{
		TextView: tv,
		active:   fmt.Sprintf("[%s:%s:b]", ColorTag(theme.CrumbActiveFg), ColorTag(theme.CrumbActiveBg)),
		inactive: fmt.Sprintf("[%s:%s:]", ColorTag(theme.CrumbInactiveFg), ColorTag(theme.CrumbInactiveBg)),
		export:   fmt.Sprintf("[%s]", ColorTag(theme.CounterColor)),
	}
}

// Update redraws the trail. export is omitted when empty.
func (c *Crumbs) Update(trail []string, export string) {
	c.Clear()
	if len(trail) == 0 {
		return
	}

	var b strings.Builder
	for i, name := range trail {
		if i > 0 {
			b.WriteString(" > ")
		}
		style := c.inactive
		if i == len(trail)-1 {
			style = c.active
		}
		fmt.Fprintf(&b, "%s %s [-:-:-]", style, name)
	}
	if export != "" {
		fmt.Fprintf(&b, "  %s%s[-]", c.export, tview.Escape(export))
	}
	_, _ = fmt.Fprint(c, b.String())
}
