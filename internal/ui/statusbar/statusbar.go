// Package statusbar renders the one-line footer: file state on the
// left, key hints on the right.
package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/encre/internal/ui/styles"
)

// Model holds the status bar state.
type Model struct {
	width     int
	filename  string
	dirty     bool
	blocks    int
	selected  int
	caretRow  int
	caretCol  int
	showCaret bool
}

// New creates a status bar for the given file.
func New(filename string) Model {
	return Model{filename: filename}
}

// SetWidth sets the render width.
func (m Model) SetWidth(width int) Model {
	m.width = width
	return m
}

// SetDirty marks whether unsaved changes exist.
func (m Model) SetDirty(dirty bool) Model {
	m.dirty = dirty
	return m
}

// SetCounts sets the document block count and the selected block count.
func (m Model) SetCounts(blocks, selected int) Model {
	m.blocks = blocks
	m.selected = selected
	return m
}

// SetPosition sets the caret location shown as block:input.
func (m Model) SetPosition(block, input int) Model {
	m.caretRow = block
	m.caretCol = input
	m.showCaret = true
	return m
}

// View renders the bar.
func (m Model) View() string {
	name := m.filename
	if m.dirty {
		name += " ●"
	}

	left := name
	if m.blocks > 0 {
		noun := "blocks"
		if m.blocks == 1 {
			noun = "block"
		}
		left += fmt.Sprintf("  %d %s", m.blocks, noun)
	}
	if m.selected > 0 {
		left += fmt.Sprintf("  %d selected", m.selected)
	}
	if m.showCaret {
		left += fmt.Sprintf("  %d:%d", m.caretRow+1, m.caretCol+1)
	}

	right := "ctrl+s save · f1 help · ctrl+q quit"

	// StatusBarStyle pads one cell each side.
	inner := m.width - 2
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return styles.StatusBarStyle.Width(m.width).Render(left)
	}
	return styles.StatusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
