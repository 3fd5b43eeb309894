package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// PromptMode selects what the prompt reads.
type PromptMode int

const (
	PromptCommand PromptMode = iota
	// PromptFilter reads a term to count, like '/' in a pager.
	PromptFilter
	// PromptKey reads an API key; input is masked.
	PromptKey
)

var promptModes = map[PromptMode]struct {
	label, title string
	mask         rune
}{
	PromptCommand: {":", " Command ", 0},
	PromptFilter:  {"/", " Count word ", 0},
	PromptKey:     {"key> ", " API key (kept in memory only) ", '*'},
}

// Prompt is the one-line input bar shown above the status bar.
type Prompt struct {
	*tview.InputField
	mode     PromptMode
	onSubmit func(mode PromptMode, text string)
	onCancel func()
}

func NewPrompt(theme *Theme) *Prompt {
	input := tview.NewInputField()
	input.SetBorder(true)
	input.SetBorderColor(theme.PromptBorderColor)
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.MenuKeyColor)

	p := &Prompt{InputField: input}
	input.SetDoneFunc(p.done)
	return p
}

func (p *Prompt) done(key tcell.Key) {
	text := p.GetText()
	p.SetText("")
	switch key {
	case tcell.KeyEnter:
		if text != "" && p.onSubmit != nil {
			p.onSubmit(p.mode, text)
		}
	case tcell.KeyEscape:
		if p.onCancel != nil {
			p.onCancel()
		}
	}
}

// SetOnSubmit registers fn for Enter with non-empty text.
func (p *Prompt) SetOnSubmit(fn func(mode PromptMode, text string)) {
	p.onSubmit = fn
}

// SetOnCancel registers fn for Esc.
func (p *Prompt) SetOnCancel(fn func()) {
	p.onCancel = fn
}

// Activate clears the prompt and switches it to mode.
func (p *Prompt) Activate(mode PromptMode) {
	m := promptModes[mode]
	p.mode = mode
	p.SetText("")
	p.SetLabel(m.label)
	p.SetTitle(m.title)
	p.SetMaskCharacter(m.mask)
}

func (p *Prompt) Mode() PromptMode {
	return p.mode
}
