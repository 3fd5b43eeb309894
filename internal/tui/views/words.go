package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/chatlens/internal/rpc"
	"github.com/matheus3301/chatlens/internal/tui/ui"
	"github.com/rivo/tview"
)

const allParticipants = "All participants"

// WordsView counts a word or phrase per participant and lists the most
// used words.
type WordsView struct {
	*tview.Flex
	theme   *ui.Theme
	input   *tview.InputField
	sender  *tview.DropDown
	counts  *tview.TextView
	top     *tview.TextView
	senders []string
	onQuery  func(term, sender string)
	onTop    func(sender string)
	setFocus func(p tview.Primitive)
}

// NewWordsView creates the keyword page.
func NewWordsView(theme *ui.Theme) *WordsView {
	input := tview.NewInputField().
		SetLabel(" Word ").
		SetFieldWidth(0)
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.MenuKeyColor)

	sender := tview.NewDropDown().
		SetLabel(" From ")
	sender.SetBackgroundColor(theme.BgColor)
	sender.SetFieldBackgroundColor(theme.BgColor)
	sender.SetFieldTextColor(theme.FgColor)
	sender.SetLabelColor(theme.MenuKeyColor)

	form := tview.NewFlex().
		AddItem(input, 0, 2, true).
		AddItem(sender, 0, 1, false)
	form.SetBorder(true)
	form.SetBorderColor(theme.BorderColor)
	form.SetBackgroundColor(theme.BgColor)
	form.SetTitle(" Search (Tab to switch field) ")
	form.SetTitleColor(theme.TitleColor)

	counts := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	counts.SetBorder(true)
	counts.SetBorderColor(theme.BorderColor)
	counts.SetBackgroundColor(theme.BgColor)
	counts.SetTextColor(theme.FgColor)
	counts.SetTitle(" Occurrences ")
	counts.SetTitleColor(theme.TitleColor)

	top := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	top.SetBorder(true)
	top.SetBorderColor(theme.BorderColor)
	top.SetBackgroundColor(theme.BgColor)
	top.SetTextColor(theme.FgColor)
	top.SetTitle(" Top words ")
	top.SetTitleColor(theme.TitleColor)

	results := tview.NewFlex().
		AddItem(counts, 0, 3, false).
		AddItem(top, 0, 2, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(form, 3, 0, true).
		AddItem(results, 0, 1, false)

	wv := &WordsView{
		Flex:   flex,
		theme:  theme,
		input:  input,
		sender: sender,
		counts: counts,
		top:    top,
	}
	wv.SetParticipants(nil)

	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			wv.submit()
		case tcell.KeyTab:
			wv.focusNext(sender)
		}
	})
	sender.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyTab {
			wv.focusNext(input)
		}
	})

	return wv
}

// Name implements Component.
func (wv *WordsView) Name() string { return "Words" }

// Hints implements Component.
func (wv *WordsView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Count"},
		{Key: "Tab", Description: "Participant"},
		{Key: "Ctrl-T", Description: "Top words"},
	}
}

// Input returns the term input for focus management.
func (wv *WordsView) Input() *tview.InputField {
	return wv.input
}

// SetOnQuery sets the callback invoked with the term and the selected
// participant (empty for everyone).
func (wv *WordsView) SetOnQuery(fn func(term, sender string)) {
	wv.onQuery = fn
}

// SetOnTop sets the callback that loads top words for a participant.
func (wv *WordsView) SetOnTop(fn func(sender string)) {
	wv.onTop = fn
}

// SetParticipants refreshes the dropdown, keeping the selection when the
// participant still exists.
func (wv *WordsView) SetParticipants(names []string) {
	current := wv.Sender()
	wv.senders = names
	options := append([]string{allParticipants}, names...)
	for i, o := range options {
		options[i] = sanitizeForTerminal(o)
	}
	wv.sender.SetOptions(options, nil)
	selected := 0
	for i, n := range names {
		if n == current {
			selected = i + 1
		}
	}
	wv.sender.SetCurrentOption(selected)
}

// Sender returns the selected participant, empty for everyone.
func (wv *WordsView) Sender() string {
	i, _ := wv.sender.GetCurrentOption()
	if i <= 0 || i > len(wv.senders) {
		return ""
	}
	return wv.senders[i-1]
}

// RequestTop asks for top words of the selected participant.
func (wv *WordsView) RequestTop() {
	if wv.onTop != nil {
		wv.onTop(wv.Sender())
	}
}

// Query runs term as if typed into the input.
func (wv *WordsView) Query(term string) {
	wv.input.SetText(term)
	wv.submit()
}

func (wv *WordsView) submit() {
	term := strings.TrimSpace(wv.input.GetText())
	if term == "" || wv.onQuery == nil {
		return
	}
	wv.onQuery(term, wv.Sender())
}

// SetFocusFunc installs the function used to move focus between fields,
// normally the application's SetFocus.
func (wv *WordsView) SetFocusFunc(fn func(p tview.Primitive)) {
	wv.setFocus = fn
}

func (wv *WordsView) focusNext(p tview.Primitive) {
	if wv.setFocus != nil {
		wv.setFocus(p)
	}
}

// UpdateCounts renders a CountWord result.
func (wv *WordsView) UpdateCounts(res *rpc.CountWordResponse) {
	wv.counts.Clear()
	if res == nil {
		_, _ = fmt.Fprint(wv.counts, " Type a word or phrase and press Enter.")
		return
	}
	wv.counts.SetTitle(fmt.Sprintf(" %q: %d total ", res.Term, res.Total))
	rows := make([]ui.BarRow, 0, len(res.Counts))
	for _, c := range res.Counts {
		rows = append(rows, ui.BarRow{Label: sanitizeForTerminal(c.Sender), Value: c.Count})
	}
	_, _, width, _ := wv.counts.GetInnerRect()
	_, _ = fmt.Fprint(wv.counts, ui.BarChart(wv.theme, rows, chartWidth(width, rows)))
	wv.counts.ScrollToBeginning()
}

// UpdateTop renders a TopWords result.
func (wv *WordsView) UpdateTop(words []rpc.WordCount) {
	wv.top.Clear()
	if len(words) == 0 {
		_, _ = fmt.Fprint(wv.top, " Press Ctrl-T to list the most used words.")
		return
	}
	rows := make([]ui.BarRow, 0, len(words))
	for _, w := range words {
		rows = append(rows, ui.BarRow{Label: w.Word, Value: w.Count})
	}
	_, _ = fmt.Fprint(wv.top, ui.BarChart(wv.theme, rows, 16))
	wv.top.ScrollToBeginning()
}
