package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rivo/tview"
)

// Menu displays keyboard shortcut hints in columns of at most rows lines.
type Menu struct {
	*tview.TextView
	theme *Theme
	rows  int
}

// NewMenu creates a new menu hint panel that fills columns top to bottom,
// rows lines each.
func NewMenu(theme *Theme, rows int) *Menu {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 2, 0)

	return &Menu{
		TextView: tv,
		theme:    theme,
		rows:     max(rows, 1),
	}
}

// Update renders menu hints column by column.
func (m *Menu) Update(hints []MenuHint) {
	m.Clear()
	_, _ = fmt.Fprint(m, m.layout(hints))
}

func (m *Menu) layout(hints []MenuHint) string {
	keyColor := ColorTag(m.theme.MenuKeyColor)
	numColor := ColorTag(m.theme.NumericKeyColor)

	cols := (len(hints) + m.rows - 1) / m.rows
	widths := make([]int, cols)
	for i, h := range hints {
		c := i / m.rows
		widths[c] = max(widths[c], utf8.RuneCountInString(h.Key)+utf8.RuneCountInString(h.Description)+3)
	}

	lines := make([]strings.Builder, min(len(hints), m.rows))
	for i, h := range hints {
		kc := keyColor
		if h.Numeric {
			kc = numColor
		}
		line := &lines[i%m.rows]
		fmt.Fprintf(line, "[%s::b]<%s>[-:-:-] %s", kc, tview.Escape(h.Key), h.Description)
		// Pad every column but the last to its width.
		if c := i / m.rows; c < cols-1 {
			pad := widths[c] - utf8.RuneCountInString(h.Key) - utf8.RuneCountInString(h.Description) - 3
			line.WriteString(strings.Repeat(" ", pad+2))
		}
	}

	out := make([]string, len(lines))
	for i := range lines {
		out[i] = lines[i].String()
	}
	return strings.Join(out, "\n")
}
