// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// EditorKeyMap defines the keybindings for the editor surface. Printable
// keys are not bound here; they insert text into the focused input.
type EditorKeyMap struct {
	// Block structure
	Enter     key.Binding
	LineBreak key.Binding
	Backspace key.Binding
	Delete    key.Binding

	// Navigation
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	NextInput key.Binding
	PrevInput key.Binding

	// Selection
	SelectUp    key.Binding
	SelectDown  key.Binding
	SelectLeft  key.Binding
	SelectRight key.Binding
	SelectAll   key.Binding

	// Menus
	Toolbox  key.Binding
	Settings key.Binding

	// Clipboard
	Copy key.Binding
	Cut  key.Binding

	// General
	Save       key.Binding
	Preview    key.Binding
	Escape     key.Binding
	Help       key.Binding
	LogOverlay key.Binding
	Quit       key.Binding
}

// DefaultEditorKeyMap returns the default editor keybindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		// Block structure
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "split block"),
		),
		LineBreak: key.NewBinding(
			key.WithKeys("alt+enter"),
			key.WithHelp("alt+enter", "line break"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete / merge back"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "delete / merge forward"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "caret up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "caret down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "caret left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "caret right"),
		),
		NextInput: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next input"),
		),
		PrevInput: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous input"),
		),

		// Selection
		SelectUp: key.NewBinding(
			key.WithKeys("shift+up"),
			key.WithHelp("shift+↑", "select block up"),
		),
		SelectDown: key.NewBinding(
			key.WithKeys("shift+down"),
			key.WithHelp("shift+↓", "select block down"),
		),
		SelectLeft: key.NewBinding(
			key.WithKeys("shift+left"),
			key.WithHelp("shift+←", "select text left"),
		),
		SelectRight: key.NewBinding(
			key.WithKeys("shift+right"),
			key.WithHelp("shift+→", "select text right"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "select input, then all blocks"),
		),

		// Menus. "/" opens the toolbox only in an empty block; elsewhere it
		// types. ctrl+_ is what terminals deliver for ctrl+/.
		Toolbox: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "block menu (empty block)"),
		),
		Settings: key.NewBinding(
			key.WithKeys("ctrl+_"),
			key.WithHelp("ctrl+/", "block settings"),
		),

		// Clipboard
		Copy: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "copy selected blocks"),
		),
		Cut: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "cut selected blocks"),
		),

		// General
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Preview: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "markdown preview"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear selection / close"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		LogOverlay: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "log overlay"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toolbox, k.Settings, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Enter, k.LineBreak, k.Backspace, k.Delete},                  // Blocks
		{k.Up, k.Down, k.Left, k.Right, k.NextInput, k.PrevInput},      // Navigation
		{k.SelectUp, k.SelectDown, k.SelectLeft, k.SelectRight, k.SelectAll}, // Selection
		{k.Toolbox, k.Settings, k.Copy, k.Cut},                         // Menus + clipboard
		{k.Save, k.Preview, k.Escape, k.Help, k.Quit},                  // General
	}
}

// MenuKeyMap defines the keybindings owned by an open menu (the toolbox or
// block settings). These are the focus-cycling keys the editor defers to
// while a menu is open.
type MenuKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Confirm key.Binding
	Close   key.Binding
}

// DefaultMenuKeyMap returns the default menu keybindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down", "right"),
			key.WithHelp("tab/↓", "next item"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up", "left"),
			key.WithHelp("shift+tab/↑", "previous item"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "choose"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}
