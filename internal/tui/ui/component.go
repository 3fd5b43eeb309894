package ui

// MenuHint describes a keyboard shortcut for display in the menu bar.
type MenuHint struct {
	Key         string
	Description string
	Numeric     bool // true for page-number shortcuts (displayed in a different color)
}

// Component is a page of the TUI: it has a crumb name and contributes its
// own key hints to the header menu.
type Component interface {
	Name() string
	Hints() []MenuHint
}
