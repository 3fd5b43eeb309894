package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

var logoArt = []string{
	"╔═╗╦ ╦╔═╗╔╦╗",
	"║  ╠═╣╠═╣ ║ ",
	"╚═╝╩ ╩╩ ╩ ╩ lens",
}

const logoTagline = "chat export analyzer"

// Logo is the header's right-hand panel.
type Logo struct {
	*tview.TextView
}

func NewLogo(theme *Theme) *Logo {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(1, 0, 1, 0)

	title := ColorTag(theme.TitleColor)
	var b strings.Builder
	for _, line := range logoArt {
		fmt.Fprintf(&b, "[%s::b]%s[-:-:-]\n", title, line)
	}
	fmt.Fprintf(&b, "[%s]%s[-]", ColorTag(theme.FgColor), logoTagline)
	tv.SetText(b.String())
	return &Logo{TextView: tv}
}
