// Package toolbar tracks which block menu is open: the toolbox (kind
// picker) or the block settings menu. At most one menu is open at a time,
// always for a single target block. The editor defers the menu's
// focus-cycling keys to the open menu, and the selection engines close
// menus through CloseAll when a gesture starts.
package toolbar

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/encre/internal/document"
	"github.com/zjrosen/encre/internal/keys"
	"github.com/zjrosen/encre/internal/log"
)

// Panel identifies which menu surface is open.
type Panel int

const (
	PanelNone Panel = iota
	PanelToolbox
	PanelSettings
)

// String returns the panel name for logging.
func (p Panel) String() string {
	switch p {
	case PanelToolbox:
		return "toolbox"
	case PanelSettings:
		return "settings"
	default:
		return "none"
	}
}

// State tracks the open menu and its target block. The zero value is
// closed; use New to get one with keybindings attached.
type State struct {
	panel    Panel
	target   document.BlockID
	menuKeys keys.MenuKeyMap
}

// New creates a closed toolbar state.
func New() *State {
	return &State{menuKeys: keys.DefaultMenuKeyMap()}
}

// OpenToolbox opens the block kind picker for the given block, replacing
// any other open menu.
func (s *State) OpenToolbox(target document.BlockID) {
	s.panel = PanelToolbox
	s.target = target
	log.Debug(log.CatUI, "menu opened", "panel", s.panel.String(), "block", target)
}

// OpenSettings opens the block settings menu for the given block,
// replacing any other open menu.
func (s *State) OpenSettings(target document.BlockID) {
	s.panel = PanelSettings
	s.target = target
	log.Debug(log.CatUI, "menu opened", "panel", s.panel.String(), "block", target)
}

// CloseAll closes whichever menu is open. Safe to call when nothing is.
func (s *State) CloseAll() {
	if s.panel == PanelNone {
		return
	}
	log.Debug(log.CatUI, "menus closed", "panel", s.panel.String())
	s.panel = PanelNone
	s.target = ""
}

// IsOpen reports whether any menu is open.
func (s *State) IsOpen() bool { return s.panel != PanelNone }

// Current returns the open panel, or PanelNone.
func (s *State) Current() Panel { return s.panel }

// Target returns the block the open menu acts on. Empty when closed.
func (s *State) Target() document.BlockID { return s.target }

// OwnsKey reports whether the open menu consumes the given key instead of
// the editor. The owned set is the menu's focus-cycling keys: Tab,
// Shift+Tab, Enter, Esc and the plain arrows. Shifted arrows are not
// owned, so Shift+Up/Down keep extending the block selection while a menu
// is open.
func (s *State) OwnsKey(msg tea.KeyMsg) bool {
	if s.panel == PanelNone {
		return false
	}
	return key.Matches(msg,
		s.menuKeys.Next,
		s.menuKeys.Prev,
		s.menuKeys.Confirm,
		s.menuKeys.Close,
	)
}
