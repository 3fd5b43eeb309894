package ui

import (
	"slices"

	"github.com/rivo/tview"
)

// Pages shows one registered page at a time and remembers how the user got
// there. Number keys replace the whole trail; help and similar overlays are
// pushed on top and popped with Esc.
type Pages struct {
	*tview.Pages
	trail    []string
	onChange func(trail []string)
}

func NewPages() *Pages {
	return &Pages{Pages: tview.NewPages()}
}

// SetOnChange registers fn to receive a copy of the trail after each change.
func (p *Pages) SetOnChange(fn func(trail []string)) {
	p.onChange = fn
}

// Push shows name on top of the trail. Pushing the page already on top is
// a no-op.
func (p *Pages) Push(name string) {
	if p.Current() == name {
		return
	}
	p.trail = append(p.trail, name)
	p.show()
}

// Pop drops the top page and returns its name. The last page is never
// popped; Pop returns "" then.
func (p *Pages) Pop() string {
	if len(p.trail) < 2 {
		return ""
	}
	top := p.trail[len(p.trail)-1]
	p.trail = p.trail[:len(p.trail)-1]
	p.show()
	return top
}

// Back pops when there is somewhere to go back to and otherwise returns to
// home. It reports whether the visible page changed.
func (p *Pages) Back(home string) bool {
	if p.Pop() != "" {
		return true
	}
	if p.Current() == home {
		return false
	}
	p.Reset(home)
	return true
}

// Reset replaces the trail with name alone.
func (p *Pages) Reset(name string) {
	p.trail = []string{name}
	p.show()
}

// Current is the visible page, "" before the first Reset or Push.
func (p *Pages) Current() string {
	if len(p.trail) == 0 {
		return ""
	}
	return p.trail[len(p.trail)-1]
}

func (p *Pages) Stack() []string {
	return slices.Clone(p.trail)
}

func (p *Pages) Depth() int {
	return len(p.trail)
}

// show makes the top of the trail the only visible page.
func (p *Pages) show() {
	p.SwitchToPage(p.Current())
	if p.onChange != nil {
		p.onChange(p.Stack())
	}
}
