package help

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp_New(t *testing.T) {
	m := New()

	assert.NotEmpty(t, m.keys.Enter.Keys(), "expected Enter keys to be set")
	assert.NotEmpty(t, m.keys.SelectAll.Keys(), "expected SelectAll keys to be set")
	assert.NotEmpty(t, m.keys.Help.Keys(), "expected Help keys to be set")
	assert.NotEmpty(t, m.keys.Quit.Keys(), "expected Quit keys to be set")
}

func TestHelp_SetSize(t *testing.T) {
	m := New()

	m = m.SetSize(120, 40)

	assert.Equal(t, 120, m.width, "expected width to be 120")
	assert.Equal(t, 40, m.height, "expected height to be 40")

	// SetSize returns a new model
	m2 := m.SetSize(80, 24)
	assert.Equal(t, 80, m2.width, "expected new model width to be 80")
	assert.Equal(t, 120, m.width, "expected original model width unchanged")
}

func TestHelp_View_ContainsSections(t *testing.T) {
	m := New().SetSize(120, 40)
	view := m.View()

	assert.Contains(t, view, "Blocks", "expected view to contain Blocks section")
	assert.Contains(t, view, "Navigation & Selection", "expected view to contain navigation section")
	assert.Contains(t, view, "General", "expected view to contain General section")
}

func TestHelp_View_ContainsKeybindings(t *testing.T) {
	m := New().SetSize(120, 40)
	view := m.View()

	// Block keys
	assert.Contains(t, view, "enter", "expected view to contain enter key")
	assert.Contains(t, view, "alt+enter", "expected view to contain alt+enter key")
	assert.Contains(t, view, "backspace", "expected view to contain backspace key")

	// Navigation and selection
	assert.Contains(t, view, "shift+↑/↓", "expected view to contain block selection keys")
	assert.Contains(t, view, "ctrl+a", "expected view to contain select-all key")
	assert.Contains(t, view, "shift+tab", "expected view to contain previous input key")

	// General keys
	assert.Contains(t, view, "ctrl+s", "expected view to contain save key")
	assert.Contains(t, view, "ctrl+q", "expected view to contain quit key")
	assert.Contains(t, view, "esc", "expected view to contain escape key")
}

func TestHelp_View_ContainsFooter(t *testing.T) {
	m := New().SetSize(120, 40)
	view := m.View()

	assert.Contains(t, view, "Press f1 or esc to close", "expected view to contain footer")
}

func TestHelp_View_ContainsTitle(t *testing.T) {
	m := New().SetSize(120, 40)
	view := m.View()

	assert.Contains(t, view, "Keybindings", "expected view to contain title")
}

func TestHelp_Overlay(t *testing.T) {
	m := New().SetSize(120, 40)

	background := strings.Repeat(strings.Repeat(".", 120)+"\n", 40)
	background = strings.TrimSuffix(background, "\n")

	result := m.Overlay(background)

	assert.Contains(t, result, "Keybindings", "expected overlay to contain title")
	assert.Contains(t, result, "Blocks", "expected overlay to contain Blocks section")

	// The overlay is centered, so the first line should still be background
	lines := strings.Split(result, "\n")
	require.NotEmpty(t, lines, "expected result to have lines")
	assert.Contains(t, lines[0], ".", "expected first line to contain background")
}

func TestHelp_Overlay_EmptyBackground(t *testing.T) {
	m := New().SetSize(120, 40)

	result := m.Overlay("")

	assert.Contains(t, result, "Keybindings")
	assert.Contains(t, result, "General")
}
