package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/chatlens/internal/tui/ui"
	"github.com/rivo/tview"
)

// AssistantView sends questions about the conversation to the language
// model and shows the replies.
type AssistantView struct {
	*tview.Flex
	theme    *ui.Theme
	answer   *tview.TextView
	question *tview.InputField
	busy     bool
	onAsk    func(question string)
}

// NewAssistantView creates the assistant page.
func NewAssistantView(theme *ui.Theme) *AssistantView {
	answer := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	answer.SetBorder(true)
	answer.SetBorderColor(theme.BorderColor)
	answer.SetBackgroundColor(theme.BgColor)
	answer.SetTextColor(theme.AnswerColor)
	answer.SetTitle(" Assistant ")
	answer.SetTitleColor(theme.TitleColor)

	question := tview.NewInputField().
		SetLabel(" ? ").
		SetFieldWidth(0)
	question.SetBorder(true)
	question.SetBorderColor(theme.BorderColor)
	question.SetBackgroundColor(theme.BgColor)
	question.SetFieldBackgroundColor(theme.BgColor)
	question.SetFieldTextColor(theme.FgColor)
	question.SetLabelColor(theme.MenuKeyColor)
	question.SetTitle(" Ask about the conversation ")
	question.SetTitleColor(theme.TitleColor)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(answer, 0, 1, false).
		AddItem(question, 3, 0, true)

	av := &AssistantView{
		Flex:     flex,
		theme:    theme,
		answer:   answer,
		question: question,
	}

	question.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		q := strings.TrimSpace(question.GetText())
		if q == "" || av.busy || av.onAsk == nil {
			return
		}
		question.SetText("")
		av.onAsk(q)
	})

	av.ShowAnswer("", "")
	return av
}

// Name implements Component.
func (av *AssistantView) Name() string { return "Assistant" }

// Hints implements Component.
func (av *AssistantView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Ask"},
		{Key: "Ctrl-S", Description: "Summarize"},
		{Key: "Ctrl-K", Description: "Set API key"},
	}
}

// Input returns the question input for focus management.
func (av *AssistantView) Input() *tview.InputField {
	return av.question
}

// SetOnAsk sets the callback invoked with a submitted question.
func (av *AssistantView) SetOnAsk(fn func(question string)) {
	av.onAsk = fn
}

// Busy reports whether a request is in flight.
func (av *AssistantView) Busy() bool {
	return av.busy
}

// ShowPending marks a request as in flight.
func (av *AssistantView) ShowPending(prompt string) {
	av.busy = true
	av.answer.Clear()
	sender := ui.ColorTag(av.theme.SenderColor)
	_, _ = fmt.Fprintf(av.answer, "[%s::b]%s[-:-:-]\n\n[::d]thinking...[-:-:-]", sender, tview.Escape(prompt))
}

// ShowAnswer renders a reply to prompt. Empty prompt and text show usage.
func (av *AssistantView) ShowAnswer(prompt, text string) {
	av.busy = false
	av.answer.Clear()
	if prompt == "" && text == "" {
		_, _ = fmt.Fprint(av.answer,
			" Ask anything about the loaded conversation, e.g. \"when did we plan the trip?\".\n"+
				" Only the messages most relevant to the question are sent to the model.")
		return
	}
	sender := ui.ColorTag(av.theme.SenderColor)
	_, _ = fmt.Fprintf(av.answer, "[%s::b]%s[-:-:-]\n\n%s", sender, tview.Escape(prompt), tview.Escape(sanitizeForTerminal(text)))
	av.answer.ScrollToBeginning()
}

// ShowError renders a failed request.
func (av *AssistantView) ShowError(prompt, msg string) {
	av.busy = false
	av.answer.Clear()
	errColor := ui.ColorTag(av.theme.FlashErrColor)
	_, _ = fmt.Fprintf(av.answer, "%s\n\n[%s]%s[-]", tview.Escape(prompt), errColor, tview.Escape(msg))
}
