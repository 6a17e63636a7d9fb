// Package blocksettings provides the per-block settings menu: a fixed
// action list (move, duplicate, delete) acting on one target block.
package blocksettings

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/encre/internal/document"
	"github.com/zjrosen/encre/internal/keys"
	"github.com/zjrosen/encre/internal/ui/overlay"
	"github.com/zjrosen/encre/internal/ui/styles"
)

const boxWidth = 22

// Action identifies a settings menu entry.
type Action int

const (
	ActionMoveUp Action = iota
	ActionMoveDown
	ActionDuplicate
	ActionDelete
)

var actionLabels = map[Action]string{
	ActionMoveUp:    "Move up",
	ActionMoveDown:  "Move down",
	ActionDuplicate: "Duplicate",
	ActionDelete:    "Delete",
}

// ActionMsg is sent when an action is confirmed for the target block.
type ActionMsg struct {
	Block  document.BlockID
	Action Action
}

// CancelMsg is sent when the menu is dismissed.
type CancelMsg struct{}

// Model holds the settings menu state.
type Model struct {
	target   document.BlockID
	cursor   Action
	menuKeys keys.MenuKeyMap

	viewportWidth  int
	viewportHeight int
	anchorX        int
	anchorY        int
	anchored       bool
}

// New creates a closed settings menu.
func New() Model {
	return Model{menuKeys: keys.DefaultMenuKeyMap()}
}

// Open resets the menu for a target block.
func (m Model) Open(target document.BlockID) Model {
	m.target = target
	m.cursor = ActionMoveUp
	return m
}

// Target returns the block the menu acts on.
func (m Model) Target() document.BlockID { return m.target }

// Selected returns the action under the cursor.
func (m Model) Selected() Action { return m.cursor }

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m
}

// SetAnchor pins the popover near a viewport cell.
func (m Model) SetAnchor(x, y int) Model {
	m.anchorX = x
	m.anchorY = y
	m.anchored = true
	return m
}

// Update handles messages while the menu is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.menuKeys.Next):
		m.cursor = (m.cursor + 1) % Action(len(actionLabels))
		return m, nil

	case key.Matches(keyMsg, m.menuKeys.Prev):
		m.cursor = (m.cursor - 1 + Action(len(actionLabels))) % Action(len(actionLabels))
		return m, nil

	case key.Matches(keyMsg, m.menuKeys.Confirm):
		target, action := m.target, m.cursor
		return m, func() tea.Msg { return ActionMsg{Block: target, Action: action} }

	case key.Matches(keyMsg, m.menuKeys.Close):
		return m, func() tea.Msg { return CancelMsg{} }
	}
	return m, nil
}

// View renders the menu box without positioning.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)
	dividerStyle := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor)
	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	var options strings.Builder
	for a := ActionMoveUp; a <= ActionDelete; a++ {
		label := actionLabels[a]
		labelStyle := lipgloss.NewStyle()
		if a == ActionDelete {
			labelStyle = labelStyle.Foreground(styles.StatusErrorColor)
		}
		var line string
		if a == m.cursor {
			line = styles.SelectionIndicatorStyle.Render(">") + labelStyle.Bold(true).Render(label)
		} else {
			line = " " + labelStyle.Render(label)
		}
		options.WriteString(line)
		if a < ActionDelete {
			options.WriteString("\n")
		}
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth)
	content := titleStyle.Render("Block") + "\n" + divider + "\n" + options.String()
	return boxStyle.Render(content)
}

// Overlay renders the menu over the background, anchored beside its
// block when an anchor was set.
func (m Model) Overlay(background string) string {
	box := m.View()
	if !m.anchored {
		return overlay.Place(overlay.Config{
			Width:    m.viewportWidth,
			Height:   m.viewportHeight,
			Position: overlay.Center,
		}, box, background)
	}
	return overlay.PlaceAt(m.viewportWidth, m.viewportHeight, m.anchorX, m.anchorY, box, background)
}
