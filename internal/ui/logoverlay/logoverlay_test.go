package logoverlay

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/encre/internal/log"
)

// TestMain initializes the logger for all tests in this package.
func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "logoverlay-test")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	cleanup, err := log.Init(filepath.Join(tmpDir, "test.log"))
	if err != nil {
		panic(err)
	}
	defer cleanup()

	os.Exit(m.Run())
}

func TestNew(t *testing.T) {
	m := New()

	require.False(t, m.Visible())
	require.Empty(t, m.View())
	require.Equal(t, log.LevelDebug, m.minLevel)
}

func TestToggle(t *testing.T) {
	m := New()
	require.False(t, m.Visible())

	m.Toggle()
	require.True(t, m.Visible())

	m.Toggle()
	require.False(t, m.Visible())
}

func TestShowAndHide(t *testing.T) {
	m := New()
	m.Show()
	require.True(t, m.Visible())

	m.Hide()
	require.False(t, m.Visible())
}

func TestUpdate_IgnoresKeysWhenHidden(t *testing.T) {
	m := New()
	originalLevel := m.minLevel

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})

	require.Equal(t, originalLevel, m.minLevel)
}

func TestUpdate_FilterKeys(t *testing.T) {
	tests := []struct {
		key      string
		expected log.Level
	}{
		{"d", log.LevelDebug},
		{"i", log.LevelInfo},
		{"w", log.LevelWarn},
		{"e", log.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := NewWithSize(80, 24)
			m.Show()

			m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.key)})

			require.Equal(t, tt.expected, m.minLevel)
		})
	}
}

func TestUpdate_ClearBuffer(t *testing.T) {
	m := NewWithSize(80, 24)
	m.Show()

	log.Debug(log.CatUI, "about to vanish")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})

	require.True(t, m.Visible())
	require.Empty(t, log.GetRecentLogs(10))
}

func TestUpdate_CloseKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyCtrlX},
		{Type: tea.KeyEsc},
	} {
		m := NewWithSize(80, 24)
		m.Show()

		m, cmd := m.Update(key)

		require.False(t, m.Visible())
		require.NotNil(t, cmd)
		_, ok := cmd().(CloseMsg)
		require.True(t, ok)
	}
}

func TestUpdate_WindowSize(t *testing.T) {
	m := New()
	m.Show()

	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	require.Equal(t, 100, m.width)
	require.Equal(t, 50, m.height)
}

func TestUpdate_UnhandledKeyReturnsNoCmd(t *testing.T) {
	m := NewWithSize(80, 24)
	m.Show()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	require.Nil(t, cmd)
	require.True(t, m.Visible())
}

func TestUpdate_Scrolling(t *testing.T) {
	log.ClearBuffer()
	for i := 0; i < 40; i++ {
		log.Info(log.CatUI, "entry")
	}

	m := NewWithSize(80, 24)
	m.Show()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	bottom := m.viewport.YOffset
	require.Greater(t, bottom, 0)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	require.Equal(t, bottom-1, m.viewport.YOffset)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	require.Equal(t, bottom, m.viewport.YOffset)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	require.Equal(t, 0, m.viewport.YOffset)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.viewport.YOffset)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 0, m.viewport.YOffset)
}

func TestView_EmptyWhenHidden(t *testing.T) {
	m := New()

	require.Empty(t, m.View())
}

func TestView_ContainsHeaderAndHints(t *testing.T) {
	log.ClearBuffer()
	m := NewWithSize(80, 24)
	m.Show()

	view := m.View()

	require.Contains(t, view, "Logs")
	require.Contains(t, view, "[c] Clear")
	require.Contains(t, view, "[d] Debug")
	require.Contains(t, view, "[i] Info")
	require.Contains(t, view, "[w] Warn")
	require.Contains(t, view, "[e] Error")
}

func TestView_EmptyBufferMessage(t *testing.T) {
	log.ClearBuffer()
	m := NewWithSize(80, 24)
	m.Show()

	require.Contains(t, m.View(), "No logs to display")
}

func TestView_ShowsLogEntries(t *testing.T) {
	log.ClearBuffer()
	log.Info(log.CatUI, "picked a block")

	m := NewWithSize(80, 24)
	m.Show()

	require.Contains(t, m.View(), "picked a block")
}

func TestView_FilteredContent(t *testing.T) {
	log.ClearBuffer()
	log.Debug(log.CatSelect, "DebugMsg")
	log.Info(log.CatSelect, "InfoMsg")
	log.Warn(log.CatSelect, "WarnMsg")
	log.Error(log.CatSelect, "ErrorMsg")

	m := NewWithSize(80, 24)
	m.Show()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})

	view := m.View()
	require.NotContains(t, view, "DebugMsg")
	require.Contains(t, view, "InfoMsg")
	require.Contains(t, view, "WarnMsg")
	require.Contains(t, view, "ErrorMsg")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	view = m.View()
	require.NotContains(t, view, "InfoMsg")
	require.NotContains(t, view, "WarnMsg")
	require.Contains(t, view, "ErrorMsg")
}

func TestOverlay_HiddenReturnsBackground(t *testing.T) {
	m := New()
	bg := "Background\nContent"

	require.Equal(t, bg, m.Overlay(bg))
}

func TestOverlay_VisiblePlacesCentered(t *testing.T) {
	log.ClearBuffer()
	log.Info(log.CatUI, "overlay entry")

	m := NewWithSize(60, 20)
	m.Show()
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 60)+"\n", 20), "\n")

	result := m.Overlay(bg)

	require.Contains(t, result, "Logs")
	require.Contains(t, result, "overlay entry")
	require.NotEqual(t, bg, result)
}

func TestSetSize(t *testing.T) {
	m := New()

	m.SetSize(120, 40)

	require.Equal(t, 120, m.width)
	require.Equal(t, 40, m.height)
}

func TestMatchesLevel(t *testing.T) {
	m := Model{minLevel: log.LevelWarn}

	require.False(t, m.matchesLevel("[DEBUG] test"))
	require.False(t, m.matchesLevel("[INFO] test"))
	require.True(t, m.matchesLevel("[WARN] test"))
	require.True(t, m.matchesLevel("[ERROR] test"))
	require.True(t, m.matchesLevel("no level tag here"))
}

func TestColorizeEntry_TruncatesLongEntries(t *testing.T) {
	m := Model{}
	long := strings.Repeat("a", 100)

	result := m.colorizeEntry(long, 50)

	require.LessOrEqual(t, len(result), 60) // margin for escape codes
	require.Contains(t, result, "...")
}

func TestColorizeEntry_TrimsTrailingNewline(t *testing.T) {
	m := Model{}

	require.NotContains(t, m.colorizeEntry("[INFO] test\n", 80), "\n")
}

func TestBuildFilterHint_ContainsAllOptions(t *testing.T) {
	m := Model{minLevel: log.LevelDebug}

	hint := m.buildFilterHint()

	require.Contains(t, hint, "[c] Clear")
	require.Contains(t, hint, "[d] Debug")
	require.Contains(t, hint, "[i] Info")
	require.Contains(t, hint, "[w] Warn")
	require.Contains(t, hint, "[e] Error")
}
