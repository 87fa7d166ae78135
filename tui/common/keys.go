package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	Refresh     key.Binding // r: reload the thread
	Like        key.Binding // l: like/unlike
	Bookmark    key.Binding // b: bookmark/unbookmark
	Reply       key.Binding // c: reply via $EDITOR
	ReplyInline key.Binding // C: reply via inline textarea
	Up          key.Binding
	Down        key.Binding
	Top         key.Binding
	Open        key.Binding // o: open attachments in the browser
	Theme       key.Binding // t: toggle dark/light
	ToggleHints key.Binding // ?: full key list
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bookmark"),
		),
		Reply: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "reply ($EDITOR)"),
		),
		ReplyInline: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "reply (inline)"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open media"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		ToggleHints: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "all keys"),
		),
	}
}
