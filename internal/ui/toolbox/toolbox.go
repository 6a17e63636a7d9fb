// Package toolbox provides the slash menu: a filterable list of block
// kinds opened on an empty block. Confirming converts the target block
// to the chosen kind.
package toolbox

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/encre/internal/document"
	"github.com/zjrosen/encre/internal/keys"
	"github.com/zjrosen/encre/internal/ui/overlay"
	"github.com/zjrosen/encre/internal/ui/styles"
)

const boxWidth = 28

// SelectedMsg is sent when a kind is confirmed for the target block.
type SelectedMsg struct {
	Block document.BlockID
	Kind  document.Kind
}

// CancelMsg is sent when the menu is dismissed.
type CancelMsg struct{}

// Model holds the toolbox state.
type Model struct {
	target   document.BlockID
	filter   textinput.Model
	kinds    []document.Kind
	filtered []document.Kind
	cursor   int
	menuKeys keys.MenuKeyMap

	viewportWidth  int
	viewportHeight int
	anchorX        int
	anchorY        int
	anchored       bool
}

// New creates a closed toolbox.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Prompt = ""
	return Model{
		filter:   ti,
		kinds:    document.Kinds(),
		filtered: document.Kinds(),
		menuKeys: keys.DefaultMenuKeyMap(),
	}
}

// Open resets the menu for a target block and starts the filter cursor
// blinking.
func (m Model) Open(target document.BlockID) (Model, tea.Cmd) {
	m.target = target
	m.cursor = 0
	m.filter.SetValue("")
	m.filter.Focus()
	m.filtered = m.kinds
	return m, textinput.Blink
}

// Target returns the block the menu acts on.
func (m Model) Target() document.BlockID { return m.target }

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m
}

// SetAnchor pins the popover near a viewport cell, normally the row
// under the target block. Without an anchor the menu centers.
func (m Model) SetAnchor(x, y int) Model {
	m.anchorX = x
	m.anchorY = y
	m.anchored = true
	return m
}

// Selected returns the kind under the cursor.
func (m Model) Selected() (document.Kind, bool) {
	if m.cursor >= 0 && m.cursor < len(m.filtered) {
		return m.filtered[m.cursor], true
	}
	return "", false
}

// FilteredKinds returns the kinds matching the current filter.
func (m Model) FilteredKinds() []document.Kind { return m.filtered }

// Update handles messages while the menu is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}

	switch {
	// Left/right stay with the filter input, so cycling matches on key
	// types instead of the full menu Next/Prev bindings.
	case keyMsg.Type == tea.KeyDown, keyMsg.Type == tea.KeyTab:
		if len(m.filtered) > 0 {
			m.cursor = (m.cursor + 1) % len(m.filtered)
		}
		return m, nil

	case keyMsg.Type == tea.KeyUp, keyMsg.Type == tea.KeyShiftTab:
		if len(m.filtered) > 0 {
			m.cursor = (m.cursor - 1 + len(m.filtered)) % len(m.filtered)
		}
		return m, nil

	case key.Matches(keyMsg, m.menuKeys.Confirm):
		kind, ok := m.Selected()
		if !ok {
			return m, nil
		}
		target := m.target
		return m, func() tea.Msg { return SelectedMsg{Block: target, Kind: kind} }

	case key.Matches(keyMsg, m.menuKeys.Close):
		return m, func() tea.Msg { return CancelMsg{} }

	case keyMsg.Type == tea.KeyCtrlU:
		m.filter.SetValue("")
		return m.refilter(), nil

	default:
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m.refilter(), cmd
	}
}

// refilter narrows the kind list to titles containing the filter text.
func (m Model) refilter() Model {
	query := strings.ToLower(m.filter.Value())
	if query == "" {
		m.filtered = m.kinds
	} else {
		var out []document.Kind
		for _, k := range m.kinds {
			if strings.Contains(strings.ToLower(k.Title()), query) {
				out = append(out, k)
			}
		}
		m.filtered = out
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
	return m
}

// hint returns the markdown shorthand shown next to each kind.
func hint(k document.Kind) string {
	switch k {
	case document.KindHeading1:
		return "#"
	case document.KindHeading2:
		return "##"
	case document.KindHeading3:
		return "###"
	case document.KindList:
		return "-"
	case document.KindQuote:
		return ">"
	case document.KindCode:
		return "```"
	case document.KindDivider:
		return "---"
	default:
		return ""
	}
}

// View renders the menu box without positioning.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)
	dividerStyle := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor)
	mutedStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)

	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	filter := m.filter
	filter.Width = boxWidth - 4
	searchLine := mutedStyle.Render(" > ") + filter.View()

	var content strings.Builder
	content.WriteString(titleStyle.Render("Blocks"))
	content.WriteString("\n")
	content.WriteString(divider)
	content.WriteString("\n")
	content.WriteString(searchLine)
	content.WriteString("\n")
	content.WriteString(divider)

	if len(m.filtered) == 0 {
		content.WriteString("\n")
		content.WriteString(mutedStyle.Italic(true).Render(" No matching blocks"))
	}
	for i, k := range m.filtered {
		label := k.Title()
		line := " " + label
		if i == m.cursor {
			line = styles.SelectionIndicatorStyle.Render(">") +
				lipgloss.NewStyle().Bold(true).Render(label)
		}
		if h := hint(k); h != "" {
			pad := boxWidth - lipgloss.Width(line) - lipgloss.Width(h) - 1
			if pad > 0 {
				line += strings.Repeat(" ", pad) + mutedStyle.Render(h)
			}
		}
		content.WriteString("\n")
		content.WriteString(line)
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth)
	return boxStyle.Render(content.String())
}

// Overlay renders the menu over the background, anchored under its
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
