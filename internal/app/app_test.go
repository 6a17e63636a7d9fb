package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/encre/internal/blockevents"
	"github.com/zjrosen/encre/internal/config"
	"github.com/zjrosen/encre/internal/document"
	"github.com/zjrosen/encre/internal/pubsub"
	"github.com/zjrosen/encre/internal/rectselect"
	"github.com/zjrosen/encre/internal/toolbar"
	"github.com/zjrosen/encre/internal/ui/blocksettings"
	"github.com/zjrosen/encre/internal/ui/editorview"
	"github.com/zjrosen/encre/internal/ui/toaster"
	"github.com/zjrosen/encre/internal/ui/toolbox"
	"github.com/zjrosen/encre/internal/watcher"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

const testDoc = "# Title\n\nFirst paragraph\n\nSecond paragraph\n\n---\n"

// newTestModel builds an app model with no backing file and a 100x24
// terminal.
func newTestModel(t *testing.T, content string) Model {
	t.Helper()
	m := New(document.ParseString(content), "", config.Defaults(), false)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 24})
	return next.(Model)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// blockZone renders until the zone for the block at idx is registered.
// Zone registration is asynchronous via a channel worker in bubblezone,
// so a short retry loop is required after View.
func blockZone(t *testing.T, m Model, idx int) *zone.ZoneInfo {
	t.Helper()
	id := editorview.BlockZoneID(m.reg.Block(idx).ID())

	var z *zone.ZoneInfo
	_ = m.View()
	for retries := 0; retries < 10; retries++ {
		z = zone.Get(id)
		if z != nil && !z.IsZero() {
			break
		}
		time.Sleep(time.Millisecond)
		_ = m.View()
	}
	require.NotNil(t, z, "zone for block %d should exist after View()", idx)
	require.False(t, z.IsZero(), "zone for block %d should have been scanned", idx)
	return z
}

func TestResize_PropagatesToComponents(t *testing.T) {
	m := newTestModel(t, testDoc)

	assert.Equal(t, 100, m.width)
	assert.Equal(t, 24, m.height)
	assert.Equal(t, 23, m.editor.ViewportHeight(), "status bar should take one row")

	view := m.View()
	assert.Equal(t, 24, strings.Count(view, "\n")+1, "view should fill the terminal")
}

func TestQuitKey_ReturnsQuit(t *testing.T) {
	m := newTestModel(t, testDoc)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTyping_MarksDirty(t *testing.T) {
	m := newTestModel(t, testDoc)
	require.False(t, m.dirty)

	m, _ = update(t, m, keyRunes("x"))
	assert.True(t, m.dirty, "typing should dirty the document")
}

func TestNavigation_DoesNotMarkDirty(t *testing.T) {
	m := newTestModel(t, testDoc)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.False(t, m.dirty, "caret movement should not dirty the document")
}

func TestShiftDown_ExtendsSelectionAcrossBlocks(t *testing.T) {
	m := newTestModel(t, testDoc)
	require.Equal(t, 0, m.nav.BlockIndex())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftDown})
	assert.Equal(t, []int{0, 1}, m.reg.SelectedIndices())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftDown})
	assert.Equal(t, []int{0, 1, 2}, m.reg.SelectedIndices())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.reg.SelectedIndices(), "escape should clear the selection")
	assert.False(t, m.dirty)
}

func TestSlash_OpensToolboxOnEmptyBlock(t *testing.T) {
	m := newTestModel(t, "")
	require.True(t, m.reg.Block(0).IsEmpty())

	m, _ = update(t, m, keyRunes("/"))
	assert.True(t, m.bar.IsOpen())
	assert.Equal(t, toolbar.PanelToolbox, m.bar.Current())
	assert.Equal(t, toolbar.PanelToolbox, m.openPanel, "panel model should be synced open")

	// Escape is consumed by the menu and round-trips as a cancel.
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.False(t, m.bar.IsOpen())
	assert.Equal(t, toolbar.PanelNone, m.openPanel)
}

func TestSlash_InsertsIntoNonEmptyBlock(t *testing.T) {
	m := newTestModel(t, "Hello\n")

	m, _ = update(t, m, keyRunes("/"))
	assert.False(t, m.bar.IsOpen())
	assert.Equal(t, "/Hello", m.reg.Block(0).PlainText())
}

func TestToolbox_FilterAndConfirmConvertsBlock(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = update(t, m, keyRunes("/"))
	require.True(t, m.bar.IsOpen())

	// Filter typing is swallowed by the menu, not the document.
	m, _ = update(t, m, keyRunes("code"))
	assert.Equal(t, "", m.reg.Block(0).PlainText())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	sel, ok := cmd().(toolbox.SelectedMsg)
	require.True(t, ok, "confirm should produce a selection message")
	assert.Equal(t, document.KindCode, sel.Kind)

	m, _ = update(t, m, sel)
	assert.Equal(t, document.KindCode, m.reg.Block(0).Kind())
	assert.False(t, m.bar.IsOpen())
	assert.Equal(t, 0, m.nav.BlockIndex())
}

func TestToolboxOpen_ShiftDownBypassesMenu(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = update(t, m, keyRunes("/"))
	require.True(t, m.bar.IsOpen())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftDown})
	assert.Equal(t, []int{0}, m.reg.SelectedIndices(), "selection keys should reach the engine")
	assert.False(t, m.bar.IsOpen(), "extending a selection should close the menu")
	assert.Equal(t, toolbar.PanelNone, m.openPanel)
}

func TestSettingsAction_MoveDown(t *testing.T) {
	m := newTestModel(t, testDoc)
	first := m.reg.Block(0).ID()

	m, _ = update(t, m, blocksettings.ActionMsg{
		Block:  first,
		Action: blocksettings.ActionMoveDown,
	})
	assert.Equal(t, 1, m.reg.IndexOf(first))
	assert.Equal(t, 1, m.nav.BlockIndex(), "focus should follow the moved block")
	assert.True(t, m.dirty)
}

func TestSettingsAction_Duplicate(t *testing.T) {
	m := newTestModel(t, "Hello\n")

	m, _ = update(t, m, blocksettings.ActionMsg{
		Block:  m.reg.Block(0).ID(),
		Action: blocksettings.ActionDuplicate,
	})
	require.Equal(t, 2, m.reg.Len())
	assert.Equal(t, "Hello", m.reg.Block(1).PlainText())
	assert.NotEqual(t, m.reg.Block(0).ID(), m.reg.Block(1).ID())
	assert.Equal(t, 1, m.nav.BlockIndex())
}

func TestSettingsAction_DeleteLastBlockReseeds(t *testing.T) {
	m := newTestModel(t, "Hello\n")
	oldID := m.reg.Block(0).ID()

	m, _ = update(t, m, blocksettings.ActionMsg{
		Block:  oldID,
		Action: blocksettings.ActionDelete,
	})
	require.Equal(t, 1, m.reg.Len(), "document should never go empty")
	assert.NotEqual(t, oldID, m.reg.Block(0).ID())
	assert.Equal(t, "", m.reg.Block(0).PlainText())
	assert.Equal(t, 0, m.nav.BlockIndex())
}

func TestCopyResult_CutRemovesSelection(t *testing.T) {
	m := newTestModel(t, testDoc)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftDown})
	require.Len(t, m.reg.SelectedIndices(), 2)
	before := m.reg.Len()

	m, cmd := update(t, m, blockevents.CopyResultMsg{Cut: true, Count: 2})
	require.NotNil(t, cmd, "cut should toast")
	// Two blocks removed, one fresh block inserted in their place.
	assert.Equal(t, before-1, m.reg.Len())
	assert.Empty(t, m.reg.SelectedIndices())
	assert.Equal(t, 0, m.nav.BlockIndex())
	assert.True(t, m.dirty)
}

func TestToaster_ShowAndDismiss(t *testing.T) {
	m := newTestModel(t, testDoc)

	m, cmd := update(t, m, toaster.ShowMsg{Message: "hi", Style: toaster.StyleInfo})
	assert.True(t, m.toast.Visible())
	require.NotNil(t, cmd, "show should schedule a dismiss")

	m, _ = update(t, m, toaster.DismissMsg{})
	assert.False(t, m.toast.Visible())
}

func TestHelp_ToggleAndDismiss(t *testing.T) {
	m := newTestModel(t, testDoc)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	assert.True(t, m.showHelp)

	m, _ = update(t, m, keyRunes("x"))
	assert.False(t, m.showHelp, "any key should dismiss help")
	assert.False(t, m.dirty, "the dismissing key should not reach the document")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	m, _ = update(t, m, tea.MouseMsg{X: 1, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.False(t, m.showHelp, "a click should dismiss help")
}

func TestSave_WithoutPathWarns(t *testing.T) {
	m := newTestModel(t, testDoc)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	toast, ok := cmd().(toaster.ShowMsg)
	require.True(t, ok)
	assert.Equal(t, toaster.StyleWarn, toast.Style)
}

func TestSave_WritesFileAndClearsDirty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	cfg := config.Defaults()
	cfg.Editor.AutoReload = false

	m := New(document.ParseString("Hello\n"), path, cfg, false)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 24})
	m = next.(Model)

	m, _ = update(t, m, keyRunes("x"))
	require.True(t, m.dirty)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	res, ok := cmd().(saveResultMsg)
	require.True(t, ok)
	require.NoError(t, res.err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, res.content, string(data))

	m, cmd = update(t, m, res)
	assert.False(t, m.dirty)
	require.NotNil(t, cmd)
	toast, ok := cmd().(toaster.ShowMsg)
	require.True(t, ok)
	assert.Equal(t, toaster.StyleSuccess, toast.Style)
}

func TestReloadResult_SwapsDocument(t *testing.T) {
	m := newTestModel(t, testDoc)
	m, _ = update(t, m, keyRunes("x"))
	require.True(t, m.dirty)

	m, cmd := update(t, m, reloadResultMsg{content: "# Fresh\n"})
	require.NotNil(t, cmd)
	require.Equal(t, 1, m.reg.Len())
	assert.Equal(t, document.KindHeading1, m.reg.Block(0).Kind())
	assert.Equal(t, "Fresh", m.reg.Block(0).PlainText())
	assert.False(t, m.dirty, "a reload resets the dirty flag")
	assert.Equal(t, 0, m.nav.BlockIndex())
}

func TestWatcherChange_DirtyBufferWarnsInsteadOfReloading(t *testing.T) {
	m := newTestModel(t, testDoc)
	m, _ = update(t, m, keyRunes("x"))
	original := document.Serialize(m.reg)

	m, cmd := update(t, m, pubsub.Event[watcher.Event]{
		Payload: watcher.Event{Kind: watcher.FileChanged, Path: "doc.md"},
	})
	require.NotNil(t, cmd, "a dirty buffer should warn")
	assert.Equal(t, original, document.Serialize(m.reg), "edits must not be discarded")
}

func TestWatcherChange_OwnSaveEchoIgnored(t *testing.T) {
	m := newTestModel(t, testDoc)
	m.lastSave = time.Now()

	_, cmd := update(t, m, pubsub.Event[watcher.Event]{
		Payload: watcher.Event{Kind: watcher.FileChanged, Path: "doc.md"},
	})
	assert.Nil(t, cmd, "the save echo should be swallowed")
}

func TestMousePress_OnBlockPlacesCaret(t *testing.T) {
	m := newTestModel(t, testDoc)
	z := blockZone(t, m, 1)

	press := tea.MouseMsg{
		X:      z.StartX + 1,
		Y:      z.StartY,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	}
	m, _ = update(t, m, press)
	assert.Equal(t, 1, m.nav.BlockIndex())
	assert.True(t, m.cross.Watching(), "press should arm cross selection")

	m, _ = update(t, m, tea.MouseMsg{
		X: press.X, Y: press.Y,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
	})
	assert.False(t, m.cross.Watching())
	assert.Empty(t, m.reg.SelectedIndices(), "a plain click selects nothing")
}

func TestMouseDrag_AcrossBlocksSelectsRange(t *testing.T) {
	m := newTestModel(t, testDoc)
	z1 := blockZone(t, m, 1)
	z2 := blockZone(t, m, 2)

	m, _ = update(t, m, tea.MouseMsg{
		X: z1.StartX + 1, Y: z1.StartY,
		Button: tea.MouseButtonLeft, Action: tea.MouseActionPress,
	})
	m, _ = update(t, m, tea.MouseMsg{
		X: z2.StartX + 1, Y: z2.StartY,
		Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion,
	})
	assert.Equal(t, []int{1, 2}, m.reg.SelectedIndices())

	m, _ = update(t, m, tea.MouseMsg{
		X: z2.StartX + 1, Y: z2.StartY,
		Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease,
	})
	assert.Equal(t, []int{1, 2}, m.reg.SelectedIndices(), "selection survives release")
	assert.False(t, m.cross.Watching())
}

func TestMouseDrag_OnCanvasDrawsRectangle(t *testing.T) {
	m := newTestModel(t, testDoc)
	_ = blockZone(t, m, 0)

	// The content column is centered, so x=2 is background margin.
	m, _ = update(t, m, tea.MouseMsg{
		X: 2, Y: 0,
		Button: tea.MouseButtonLeft, Action: tea.MouseActionPress,
	})
	assert.Equal(t, rectselect.PhaseArmed, m.rect.Phase())

	m, _ = update(t, m, tea.MouseMsg{
		X: 95, Y: 6,
		Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion,
	})
	require.True(t, m.rect.Active())
	assert.True(t, m.reg.AnySelected(), "sweeping the column should select blocks")
	assert.Contains(t, m.View(), "╭", "the rectangle border should render")

	m, _ = update(t, m, tea.MouseMsg{
		X: 95, Y: 6,
		Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease,
	})
	assert.False(t, m.rect.Active())
	assert.True(t, m.reg.AnySelected(), "selection survives the drag ending")
}

func TestMouseDrag_StaleThrottleFlushIsNoOp(t *testing.T) {
	m := newTestModel(t, testDoc)
	_ = blockZone(t, m, 0)

	m, _ = update(t, m, tea.MouseMsg{
		X: 2, Y: 0,
		Button: tea.MouseButtonLeft, Action: tea.MouseActionPress,
	})
	m, _ = update(t, m, tea.MouseMsg{
		X: 50, Y: 3,
		Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion,
	})
	// A second motion inside the throttle window is held for a flush.
	m, cmd := update(t, m, tea.MouseMsg{
		X: 60, Y: 4,
		Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion,
	})
	require.NotNil(t, cmd, "the held event should schedule a flush")

	m, _ = update(t, m, tea.MouseMsg{
		X: 60, Y: 4,
		Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease,
	})
	require.False(t, m.rect.Active())
	selected := m.reg.SelectedIndices()

	// The flush arrives after release; its token is stale.
	m, cmd = update(t, m, throttleFlushMsg{gen: 0})
	assert.Nil(t, cmd)
	assert.Equal(t, selected, m.reg.SelectedIndices())
	assert.Equal(t, rectselect.PhaseIdle, m.rect.Phase())
}

func TestMousePress_ClosesOpenMenu(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = update(t, m, keyRunes("/"))
	require.True(t, m.bar.IsOpen())

	m, _ = update(t, m, tea.MouseMsg{
		X: 2, Y: 0,
		Button: tea.MouseButtonLeft, Action: tea.MouseActionPress,
	})
	assert.False(t, m.bar.IsOpen())
}

func TestMousePress_StatusRowIgnored(t *testing.T) {
	m := newTestModel(t, testDoc)

	m, _ = update(t, m, tea.MouseMsg{
		X: 5, Y: 23,
		Button: tea.MouseButtonLeft, Action: tea.MouseActionPress,
	})
	assert.False(t, m.dragButton)
	assert.Equal(t, rectselect.PhaseIdle, m.rect.Phase())
}

func TestWheel_ScrollsViewport(t *testing.T) {
	m := newTestModel(t, strings.Repeat("para\n\n", 40))
	require.Equal(t, 0, m.editor.YOffset())

	m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, 3, m.editor.YOffset())

	m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, 0, m.editor.YOffset())
}

func TestPreview_OpenIsModalAndCloses(t *testing.T) {
	m := newTestModel(t, testDoc)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	require.True(t, m.preview.Visible())
	assert.Contains(t, ansi.Strip(m.View()), "Preview")

	// Keys belong to the preview while it is open; typing must not reach
	// the document.
	before := document.Serialize(m.reg)
	m, _ = update(t, m, keyRunes("x"))
	assert.Equal(t, before, document.Serialize(m.reg))
	assert.False(t, m.dirty)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.False(t, m.preview.Visible())

	m, _ = update(t, m, keyRunes("y"))
	assert.True(t, m.dirty, "typing should reach the document again")
}

func TestPreview_FlagDisabled(t *testing.T) {
	cfg := config.Defaults()
	cfg.Flags["markdown-preview"] = false

	m := New(document.ParseString(testDoc), "", cfg, false)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 24})
	m = next.(Model)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.False(t, m.preview.Visible())
}

func TestRectSelect_FlagDisabled(t *testing.T) {
	cfg := config.Defaults()
	cfg.Flags["rect-select"] = false

	m := New(document.ParseString(testDoc), "", cfg, false)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 24})
	m = next.(Model)

	m, _ = update(t, m, tea.MouseMsg{
		X: 2, Y: 0,
		Button: tea.MouseButtonLeft, Action: tea.MouseActionPress,
	})
	assert.Equal(t, rectselect.PhaseIdle, m.rect.Phase(), "canvas drag should stay inert")
}

func TestClose_ReleasesResources(t *testing.T) {
	m := newTestModel(t, testDoc)
	require.NoError(t, m.Close())
}
