package toaster

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New()

	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestShow(t *testing.T) {
	m := New().Show("Copied 3 blocks", StyleSuccess)

	assert.True(t, m.Visible())
	assert.Contains(t, m.View(), "Copied 3 blocks")
}

func TestHide(t *testing.T) {
	m := New().Show("Copied 3 blocks", StyleSuccess).Hide()

	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestShow_ReplacesExisting(t *testing.T) {
	m := New().
		Show("First", StyleSuccess).
		Show("Second", StyleError)

	assert.True(t, m.Visible())
	assert.Contains(t, m.View(), "Second")
	assert.NotContains(t, m.View(), "First")
}

func TestView_EmptyWhenMessageEmpty(t *testing.T) {
	m := Model{visible: true, message: ""}

	assert.Empty(t, m.View())
}

func TestView_StyleSuccess(t *testing.T) {
	m := New().Show("Saved", StyleSuccess)
	view := m.View()

	// Should contain the message with ✅ emoji and have a border
	assert.Contains(t, view, "✅")
	assert.Contains(t, view, "Saved")
	assert.Contains(t, view, "╭") // Rounded border corner
}

func TestView_StyleError(t *testing.T) {
	m := New().Show("Copy failed", StyleError)
	view := m.View()

	assert.Contains(t, view, "❌")
	assert.Contains(t, view, "Copy failed")
	assert.Contains(t, view, "╭")
}

func TestView_StyleInfo(t *testing.T) {
	m := New().Show("Document reloaded", StyleInfo)
	view := m.View()

	assert.Contains(t, view, "ℹ️")
	assert.Contains(t, view, "Document reloaded")
	assert.Contains(t, view, "╭")
}

func TestView_StyleWarn(t *testing.T) {
	m := New().Show("Unsaved changes", StyleWarn)
	view := m.View()

	assert.Contains(t, view, "⚠️")
	assert.Contains(t, view, "Unsaved changes")
	assert.Contains(t, view, "╭")
}

func TestSetSize(t *testing.T) {
	m := New().SetSize(80, 24)

	assert.Equal(t, 80, m.width)
	assert.Equal(t, 24, m.height)
}

func TestOverlay_NotVisibleReturnsBackground(t *testing.T) {
	m := New()
	bg := "Background\nContent"

	result := m.Overlay(bg, 20, 10)

	assert.Equal(t, bg, result)
}

func TestOverlay_VisiblePlacesAtBottom(t *testing.T) {
	m := New().Show("Toast", StyleSuccess)
	bg := strings.Repeat(strings.Repeat(".", 20)+"\n", 10)
	bg = strings.TrimSuffix(bg, "\n")

	result := m.Overlay(bg, 20, 10)

	lines := strings.Split(result, "\n")
	// Toast should be near the bottom (with padding)
	bottomLines := lines[len(lines)-5:]
	found := false
	for _, line := range bottomLines {
		if strings.Contains(line, "Toast") {
			found = true
			break
		}
	}
	assert.True(t, found, "Toast should appear near the bottom of the overlay")
}

func TestOverlay_EmptyMessageReturnsBackground(t *testing.T) {
	m := Model{visible: true, message: ""}
	bg := "Background"

	result := m.Overlay(bg, 20, 10)

	assert.Equal(t, bg, result)
}

func TestShowCmd(t *testing.T) {
	cmd := ShowCmd("Cut 2 blocks", StyleSuccess)
	require.NotNil(t, cmd)

	msg, ok := cmd().(ShowMsg)
	require.True(t, ok)
	assert.Equal(t, "Cut 2 blocks", msg.Message)
	assert.Equal(t, StyleSuccess, msg.Style)
}

func TestScheduleDismiss(t *testing.T) {
	// ScheduleDismiss returns a tea.Cmd, verify it's not nil
	cmd := ScheduleDismiss(0)
	assert.NotNil(t, cmd)
}

func TestVisible_ImmutableModel(t *testing.T) {
	m1 := New()
	m2 := m1.Show("Saved", StyleSuccess)

	// Original should be unchanged
	assert.False(t, m1.Visible())
	assert.True(t, m2.Visible())
}

func TestHide_ImmutableModel(t *testing.T) {
	m1 := New().Show("Saved", StyleSuccess)
	m2 := m1.Hide()

	// Original should be unchanged
	assert.True(t, m1.Visible())
	assert.False(t, m2.Visible())
}

func TestView_WrapsLongMessages(t *testing.T) {
	long := strings.Repeat("disk full ", 20)
	m := New().SetSize(60, 24).Show(long, StyleError)

	for _, line := range strings.Split(m.View(), "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 60, "toast must fit the terminal width")
	}
}
