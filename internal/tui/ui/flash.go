package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/chatlens/internal/rpc"
	"github.com/rivo/tview"
)

// FlashLevel is the severity of a flash message.
type FlashLevel int

const (
	FlashInfo FlashLevel = iota
	FlashWarn
	FlashErr
)

// Errors stay up longest: they usually explain why a load or an answer
// did not arrive.
var flashTTL = [...]time.Duration{
	FlashInfo: 5 * time.Second,
	FlashWarn: 8 * time.Second,
	FlashErr:  10 * time.Second,
}

// FlashMessage is one notification and the moment it stops showing.
type FlashMessage struct {
	Text    string
	Level   FlashLevel
	Expires time.Time
}

func (m FlashMessage) expired(now time.Time) bool {
	return !now.Before(m.Expires)
}

// FlashModel keeps the latest notification. Producers are background
// goroutines; the UI loop drains Watch and redraws.
type FlashModel struct {
	mu      sync.RWMutex
	last    FlashMessage
	updates chan FlashMessage
}

func NewFlashModel() *FlashModel {
	return &FlashModel{updates: make(chan FlashMessage, 8)}
}

func (f *FlashModel) Info(msg string) { f.post(msg, FlashInfo) }

func (f *FlashModel) Warn(msg string) { f.post(msg, FlashWarn) }

// Err posts err as the user-facing text for its daemon status code.
func (f *FlashModel) Err(err error) { f.post(rpc.Describe(err), FlashErr) }

func (f *FlashModel) post(text string, level FlashLevel) {
	m := FlashMessage{Text: text, Level: level, Expires: time.Now().Add(flashTTL[level])}
	f.mu.Lock()
	f.last = m
	f.mu.Unlock()
	// A full channel only delays the redraw; Current still has the text.
	select {
	case f.updates <- m:
	default:
	}
}

// Current returns the live message, or nil once it has expired.
func (f *FlashModel) Current() *FlashMessage {
	f.mu.RLock()
	m := f.last
	f.mu.RUnlock()
	if m.Text == "" || m.expired(time.Now()) {
		return nil
	}
	return &m
}

func (f *FlashModel) Watch() <-chan FlashMessage {
	return f.updates
}

// FlashBar shows the current flash message on one line.
type FlashBar struct {
	*tview.TextView
	colors [3]tcell.Color
}

func NewFlashBar(theme *Theme) *FlashBar {
	tv := tview.NewTextView().SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	return &FlashBar{
		TextView: tv,
		colors:   [3]tcell.Color{theme.FlashInfoColor, theme.FlashWarnColor, theme.FlashErrColor},
	}
}

// Update renders msg, or clears the bar when msg is nil.
func (fb *FlashBar) Update(msg *FlashMessage) {
	fb.Clear()
	if msg == nil {
		return
	}
	_, _ = fmt.Fprintf(fb, " [%s]%s[-]", ColorTag(fb.colors[msg.Level]), tview.Escape(msg.Text))
}
