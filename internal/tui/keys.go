package tui

import "github.com/charmbracelet/bubbles/key"

// ConflictKeyMap holds the shortcut keys of the overwrite prompt. Arrow
// navigation and enter are handled by the selector itself.
type ConflictKeyMap struct {
	Overwrite key.Binding
	Skip      key.Binding
	All       key.Binding
	Abort     key.Binding
}

// DefaultConflictKeyMap returns the default shortcut bindings.
func DefaultConflictKeyMap() ConflictKeyMap {
	return ConflictKeyMap{
		Overwrite: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "overwrite"),
		),
		Skip: key.NewBinding(
			key.WithKeys("n", "s"),
			key.WithHelp("n", "skip"),
		),
		All: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "overwrite all"),
		),
		Abort: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "abort"),
		),
	}
}

// HelpText returns a formatted help string for the prompt.
func (k ConflictKeyMap) HelpText() string {
	return "↑/↓ navigate • enter select • y overwrite • n skip • a all • q abort"
}
