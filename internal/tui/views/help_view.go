package views

import (
	"fmt"

	"github.com/matheus3301/chatlens/internal/tui/ui"
	"github.com/rivo/tview"
)

// HelpView displays key binding reference.
type HelpView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHelpView creates a new help view.
func NewHelpView(theme *ui.Theme) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Help ")
	tv.SetTitleColor(theme.TitleColor)

	hv := &HelpView{
		TextView: tv,
		theme:    theme,
	}
	hv.render()
	return hv
}

// Name implements Component.
func (hv *HelpView) Name() string { return "Help" }

// Hints implements Component.
func (hv *HelpView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (hv *HelpView) render() {
	keyColor := ui.DefaultTheme().MenuKeyColor
	kc := fmt.Sprintf("#%06x", keyColor.Hex())

	help := fmt.Sprintf(`
  [::b]Global Keys[-:-:-]

  [%s]:[-:-:-]      Command mode        [%s]Esc[-:-:-]    Cancel / Go back
  [%s]/[-:-:-]      Count a word        [%s]?[-:-:-]      Help
  [%s]1-4[-:-:-]    Switch page         [%s]Ctrl-C[-:-:-] Quit immediately
  [%s]q[-:-:-]      Quit

  [::b]Words[-:-:-]

  [%s]Enter[-:-:-]  Count term          [%s]Tab[-:-:-]    Choose participant
  [%s]Ctrl-T[-:-:-] Top words

  [::b]Assistant[-:-:-]

  [%s]Enter[-:-:-]  Ask question        [%s]Ctrl-S[-:-:-] Summarize conversation
  [%s]Ctrl-K[-:-:-] Enter API key (never written to disk)

  [::b]Commands (: mode)[-:-:-]

  [%s]:load <file>[-:-:-]        Load a chat export
  [%s]:count <term>[-:-:-]       Count a word or phrase per participant
  [%s]:top[-:-:-]                Most used words
  [%s]:ask <question>[-:-:-]     Ask the assistant
  [%s]:summary[-:-:-]            Summarize the conversation
  [%s]:key[-:-:-]                Enter API key
  [%s]:help[-:-:-] / [%s]:h[-:-:-]       Show this help
  [%s]:quit[-:-:-] / [%s]:q[-:-:-]       Quit application
`,
		kc, kc, kc, kc, kc, kc, kc,
		kc, kc, kc,
		kc, kc, kc,
		kc, kc, kc, kc, kc, kc, kc, kc, kc, kc,
	)

	_, _ = fmt.Fprint(hv, help)
}
