// Package preview renders the document as styled markdown in a scrollable
// overlay, showing what the serialized file looks like outside the editor.
package preview

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/encre/internal/ui/markdown"
	"github.com/zjrosen/encre/internal/ui/overlay"
	"github.com/zjrosen/encre/internal/ui/styles"
)

const (
	boxMaxWidth  = 100 // Maximum box width in characters
	boxMinWidth  = 40  // Minimum box width in characters
	minViewportH = 5   // Minimum viewport height for very small screens
)

// CloseMsg is sent when the overlay should be closed.
type CloseMsg struct{}

// Model is the preview overlay component state.
type Model struct {
	visible  bool
	style    string
	content  string
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden preview. style selects the markdown render style
// ("dark", "light", or "" for auto detection).
func New(style string) Model {
	return Model{style: style}
}

// Update handles messages for the preview overlay.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			m.viewport.ScrollDown(1)
			return m, nil

		case "k", "up":
			m.viewport.ScrollUp(1)
			return m, nil

		case "g":
			m.viewport.GotoTop()
			return m, nil

		case "G":
			m.viewport.GotoBottom()
			return m, nil

		case "q", "esc", "ctrl+p":
			m.visible = false
			return m, func() tea.Msg { return CloseMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshViewport()
	}

	return m, nil
}

// View renders the preview box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	boxWidth := m.boxWidth()

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)

	dividerStyle := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor)
	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	hintStyle := lipgloss.NewStyle().
		Foreground(styles.TextMutedColor).
		PaddingLeft(1)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Preview"))
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("j/k scroll · g/G top/bottom · esc close"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth)

	return boxStyle.Render(b.String())
}

// Overlay renders the preview centered on the given background.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// Visible returns whether the overlay is currently visible.
func (m Model) Visible() bool {
	return m.visible
}

// Show makes the overlay visible over the given markdown source.
func (m *Model) Show(content string) {
	m.visible = true
	m.content = content
	m.refreshViewport()
}

// Hide makes the overlay invisible.
func (m *Model) Hide() {
	m.visible = false
}

// SetSize updates the overlay's knowledge of screen size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.refreshViewport()
}

// refreshViewport re-renders the markdown source into the viewport.
func (m *Model) refreshViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}

	contentWidth := m.boxWidth() - 2

	// Header, footer, and borders eat 6 lines.
	viewportHeight := max(m.height-6, minViewportH)

	m.viewport = viewport.New(contentWidth, viewportHeight)
	m.viewport.SetContent(m.renderContent(contentWidth))
}

// renderContent runs the glamour renderer, falling back to the raw
// source when rendering fails.
func (m Model) renderContent(contentWidth int) string {
	if strings.TrimSpace(m.content) == "" {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			Italic(true)
		return emptyStyle.Render("Nothing to preview")
	}

	r, err := markdown.NewWithStyle(contentWidth, m.style)
	if err != nil {
		return m.content
	}
	out, err := r.Render(m.content)
	if err != nil {
		return m.content
	}
	return strings.TrimRight(out, "\n")
}

// boxWidth returns the box width for the current screen size.
func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}
