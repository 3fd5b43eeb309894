package keys

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestHandleEventPrefersViewBinding(t *testing.T) {
	r := NewRegistry()
	var fired string
	r.AddGlobal(&Action{Key: tcell.KeyRune, Rune: 's', Handler: func() { fired = "global" }})
	r.AddView("assistant", &Action{Key: tcell.KeyRune, Rune: 's', Handler: func() { fired = "view" }})

	ev := tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone)
	if !r.HandleEvent("assistant", ev) || fired != "view" {
		t.Errorf("assistant: fired = %q", fired)
	}
	if !r.HandleEvent("overview", ev) || fired != "global" {
		t.Errorf("overview: fired = %q", fired)
	}
	if r.HandleEvent("overview", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Error("unbound key should not match")
	}
}

func TestHandleEventSpecialKey(t *testing.T) {
	r := NewRegistry()
	called := false
	r.AddView("assistant", &Action{Key: tcell.KeyCtrlS, Handler: func() { called = true }})

	if !r.HandleEvent("assistant", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)) || !called {
		t.Error("Ctrl-S binding not dispatched")
	}
}

func TestHintsOrder(t *testing.T) {
	r := NewRegistry()
	r.AddGlobal(&Action{Key: tcell.KeyRune, Rune: 'q', Description: "Quit", Visible: true})
	r.AddGlobal(&Action{Key: tcell.KeyRune, Rune: 'x', Description: "Hidden"})
	r.AddView("words", &Action{Key: tcell.KeyRune, Rune: 't', Description: "Top words", Visible: true})
	r.AddView("words", &Action{Key: tcell.KeyCtrlR, Label: "Ctrl-R", Description: "Reset", Visible: true})

	hints := r.Hints("words")
	want := []string{"t", "Ctrl-R", "q"}
	if len(hints) != len(want) {
		t.Fatalf("got %d hints, want %d: %+v", len(hints), len(want), hints)
	}
	for i, h := range hints {
		if h.Key != want[i] {
			t.Errorf("hint %d key = %q, want %q", i, h.Key, want[i])
		}
	}
}
