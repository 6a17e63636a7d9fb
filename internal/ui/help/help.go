// Package help contains the keybinding help overlay.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/encre/internal/keys"
	"github.com/zjrosen/encre/internal/ui/overlay"
	"github.com/zjrosen/encre/internal/ui/styles"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			PaddingLeft(2)

	dividerStyle = lipgloss.NewStyle().
			Foreground(styles.OverlayBorderColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor).
			Width(12)

	descStyle = lipgloss.NewStyle().
			Foreground(styles.TextPrimaryColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			MarginTop(1)
)

// Model holds the help view state.
type Model struct {
	keys   keys.EditorKeyMap
	width  int
	height int
}

// New creates a help view over the default editor keymap.
func New() Model {
	return Model{keys: keys.DefaultEditorKeyMap()}
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help overlay standalone, centered on a blank screen.
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	helpBox := m.renderContent()

	if background == "" {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			helpBox,
		)
	}

	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, helpBox, background)
}

// renderContent builds the help box content.
func (m Model) renderContent() string {
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	// Blocks column
	var blocksCol strings.Builder
	blocksCol.WriteString(sectionStyle.Render("Blocks"))
	blocksCol.WriteString("\n")
	blocksCol.WriteString(m.renderBinding(m.keys.Enter))
	blocksCol.WriteString(m.renderBinding(m.keys.LineBreak))
	blocksCol.WriteString(m.renderBinding(m.keys.Backspace))
	blocksCol.WriteString(m.renderBinding(m.keys.Delete))
	blocksCol.WriteString(m.renderBinding(m.keys.Toolbox))
	blocksCol.WriteString(m.renderBinding(m.keys.Settings))

	// Navigation and selection column
	var navCol strings.Builder
	navCol.WriteString(sectionStyle.Render("Navigation & Selection"))
	navCol.WriteString("\n")
	navCol.WriteString(renderKeyDesc("↑ ↓ ← →", "move caret"))
	navCol.WriteString(m.renderBinding(m.keys.NextInput))
	navCol.WriteString(m.renderBinding(m.keys.PrevInput))
	navCol.WriteString(renderKeyDesc("shift+↑/↓", "select blocks"))
	navCol.WriteString(renderKeyDesc("shift+←/→", "select text"))
	navCol.WriteString(m.renderBinding(m.keys.SelectAll))

	// General column
	var generalCol strings.Builder
	generalCol.WriteString(sectionStyle.Render("General"))
	generalCol.WriteString("\n")
	generalCol.WriteString(m.renderBinding(m.keys.Copy))
	generalCol.WriteString(m.renderBinding(m.keys.Cut))
	generalCol.WriteString(m.renderBinding(m.keys.Save))
	generalCol.WriteString(m.renderBinding(m.keys.Preview))
	generalCol.WriteString(m.renderBinding(m.keys.Escape))
	generalCol.WriteString(m.renderBinding(m.keys.LogOverlay))
	generalCol.WriteString(m.renderBinding(m.keys.Quit))

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(blocksCol.String()),
		columnStyle.Render(navCol.String()),
		generalCol.String(),
	)

	columnsWidth := lipgloss.Width(columns)
	boxWidth := columnsWidth + 4 // horizontal padding, 2 each side

	body := contentStyle.Render(columns + "\n" + footerStyle.Render("Press f1 or esc to close"))
	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Keybindings"))
	content.WriteString("\n")
	content.WriteString(divider)
	content.WriteString("\n")
	content.WriteString(body)

	return boxStyle.Width(boxWidth).Render(content.String())
}

func (m Model) renderBinding(b key.Binding) string {
	help := b.Help()
	return renderKeyDesc(help.Key, help.Desc)
}

func renderKeyDesc(key, desc string) string {
	return keyStyle.Render(key) + descStyle.Render(desc) + "\n"
}
