package blockevents

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/encre/internal/caret"
	"github.com/zjrosen/encre/internal/document"
	"github.com/zjrosen/encre/internal/testutil"
	"github.com/zjrosen/encre/internal/toolbar"
	"github.com/zjrosen/encre/internal/ui/toaster"
)

func toast(t *testing.T, cmd tea.Cmd) toaster.ShowMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(toaster.ShowMsg)
	require.True(t, ok, "expected a toast command")
	return msg
}

func TestEnterSplitsParagraphMidText(t *testing.T) {
	e := newEnv(paragraphs("hello world")...)
	e.input().PlaceCaret(5)

	e.d.HandleKey(k(tea.KeyEnter))

	require.Equal(t, 2, e.reg.Len())
	assert.Equal(t, "hello", e.reg.Block(0).PlainText())
	assert.Equal(t, " world", e.reg.Block(1).PlainText())
	assert.Equal(t, 1, e.nav.BlockIndex())
	assert.True(t, e.input().AtStart())
}

func TestEnterSplitRemainderIsParagraph(t *testing.T) {
	e := newEnv(document.NewBlock(document.KindHeading1, "Title here"))
	e.nav.SetToInput(0, 0, caret.PosStart)
	e.input().PlaceCaret(5)

	e.d.HandleKey(k(tea.KeyEnter))

	require.Equal(t, 2, e.reg.Len())
	assert.Equal(t, document.KindHeading1, e.reg.Block(0).Kind())
	assert.Equal(t, "Title", e.reg.Block(0).PlainText())
	assert.Equal(t, document.KindParagraph, e.reg.Block(1).Kind())
	assert.Equal(t, " here", e.reg.Block(1).PlainText())
}

func TestEnterAtStartInsertsEmptyAbove(t *testing.T) {
	e := newEnv(paragraphs("abc")...)

	e.d.HandleKey(k(tea.KeyEnter))

	require.Equal(t, 2, e.reg.Len())
	assert.True(t, e.reg.Block(0).IsEmpty())
	assert.Equal(t, "abc", e.reg.Block(1).PlainText())
	assert.Equal(t, 1, e.nav.BlockIndex(), "focus follows the content down")
	assert.True(t, e.input().AtStart())
}

func TestEnterAtEndAppendsEmptyBelow(t *testing.T) {
	e := newEnv(paragraphs("abc")...)
	e.input().CaretToEnd()

	e.d.HandleKey(k(tea.KeyEnter))

	require.Equal(t, 2, e.reg.Len())
	assert.Equal(t, "abc", e.reg.Block(0).PlainText())
	assert.True(t, e.reg.Block(1).IsEmpty())
	assert.Equal(t, 1, e.nav.BlockIndex())
}

func TestEnterInCodeInsertsNewline(t *testing.T) {
	e := newEnv(document.NewBlock(document.KindCode, "x"))
	e.nav.SetToBlock(0, caret.PosEnd)

	e.d.HandleKey(k(tea.KeyEnter))

	require.Equal(t, 1, e.reg.Len())
	assert.Equal(t, "x\n", e.reg.Block(0).PlainText())
}

func TestEnterDeletesTextSelectionBeforeSplitting(t *testing.T) {
	e := newEnv(paragraphs("abcdef")...)
	in := e.input()
	in.PlaceCaret(1)
	in.ExtendCaret(4)

	e.d.HandleKey(k(tea.KeyEnter))

	require.Equal(t, 2, e.reg.Len())
	assert.Equal(t, "a", e.reg.Block(0).PlainText())
	assert.Equal(t, "ef", e.reg.Block(1).PlainText())
}

func TestEnterWithBlockSelectionOnlyCollapses(t *testing.T) {
	e := newEnv(paragraphs("one", "two", "three")...)
	e.d.HandleKey(k(tea.KeyShiftDown))
	require.True(t, e.reg.AnySelected())

	e.d.HandleKey(k(tea.KeyEnter))

	assert.False(t, e.reg.AnySelected())
	assert.Equal(t, 3, e.reg.Len(), "enter never splits while blocks are selected")
}

func TestEnterListItemSplitsInPlace(t *testing.T) {
	e := newEnv(document.NewBlock(document.KindList, "ab", "cd"))
	e.nav.SetToInput(0, 0, caret.PosStart)
	e.input().PlaceCaret(1)

	e.d.HandleKey(k(tea.KeyEnter))

	require.Equal(t, 1, e.reg.Len())
	b := e.reg.Block(0)
	require.Equal(t, 3, b.InputCount())
	assert.Equal(t, "a", b.Input(0).Text())
	assert.Equal(t, "b", b.Input(1).Text())
	assert.Equal(t, "cd", b.Input(2).Text())
	assert.Equal(t, 1, e.nav.InputIndex())
	assert.True(t, e.input().AtStart())
}

func TestEnterTrailingEmptyListItemBreaksOut(t *testing.T) {
	e := newEnv(document.NewBlock(document.KindList, "one", ""))
	e.nav.SetToInput(0, 1, caret.PosStart)

	e.d.HandleKey(k(tea.KeyEnter))

	require.Equal(t, 2, e.reg.Len())
	assert.Equal(t, 1, e.reg.Block(0).InputCount())
	assert.Equal(t, "one", e.reg.Block(0).PlainText())
	assert.Equal(t, document.DefaultKind, e.reg.Block(1).Kind())
	assert.Equal(t, 1, e.nav.BlockIndex())
}

func TestEnterSoleEmptyListItemConvertsAway(t *testing.T) {
	e := newEnv(document.NewBlock(document.KindList, ""))
	e.nav.SetToInput(0, 0, caret.PosStart)

	e.d.HandleKey(k(tea.KeyEnter))

	require.Equal(t, 1, e.reg.Len())
	assert.Equal(t, document.DefaultKind, e.reg.Block(0).Kind())
}

func TestAltEnterInsertsLineBreak(t *testing.T) {
	e := newEnv(paragraphs("ab")...)
	e.input().PlaceCaret(1)

	e.d.HandleKey(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})

	assert.Equal(t, "a\nb", e.input().Text())
	assert.Equal(t, 1, e.reg.Len())
}

func TestAltEnterRejectedWhereLinesReparse(t *testing.T) {
	e := newEnv(document.NewBlock(document.KindHeading2, "ab"))
	e.nav.SetToInput(0, 0, caret.PosEnd)

	e.d.HandleKey(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})

	assert.Equal(t, "ab", e.input().Text())
}

func TestBackspaceDeletesCharacter(t *testing.T) {
	e := newEnv(paragraphs("ab")...)
	e.input().CaretToEnd()

	e.d.HandleKey(k(tea.KeyBackspace))

	assert.Equal(t, "a", e.input().Text())
	assert.Equal(t, 1, e.reg.Len())
}

func TestBackspaceDeletesTextSelection(t *testing.T) {
	e := newEnv(paragraphs("abcdef")...)
	in := e.input()
	in.PlaceCaret(2)
	in.ExtendCaret(5)

	e.d.HandleKey(k(tea.KeyBackspace))

	assert.Equal(t, "abf", in.Text())
	assert.Equal(t, 2, in.Caret())
}

func TestBackspaceAtStartMergesParagraphs(t *testing.T) {
	e := newEnv(paragraphs("foo", "bar")...)
	e.nav.SetToBlock(1, caret.PosStart)

	e.d.HandleKey(k(tea.KeyBackspace))

	require.Equal(t, 1, e.reg.Len())
	assert.Equal(t, "foobar", e.reg.Block(0).PlainText())
	assert.Equal(t, 0, e.nav.BlockIndex())
	assert.Equal(t, 3, e.input().Caret(), "caret lands on the seam")
}

func TestBackspaceMergesAcrossHeadingLevels(t *testing.T) {
	e := newEnv(
		document.NewBlock(document.KindHeading1, "A"),
		document.NewBlock(document.KindHeading2, "B"),
	)
	e.nav.SetToBlock(1, caret.PosStart)

	e.d.HandleKey(k(tea.KeyBackspace))

	require.Equal(t, 1, e.reg.Len())
	assert.Equal(t, document.KindHeading1, e.reg.Block(0).Kind())
	assert.Equal(t, "AB", e.reg.Block(0).PlainText())
}

func TestBackspaceNonMergeableNavigatesWithoutDeleting(t *testing.T) {
	e := newEnv(document.NewBlock(document.KindCode, "x"), paragraphs("y")[0])
	e.nav.SetToBlock(1, caret.PosStart)

	e.d.HandleKey(k(tea.KeyBackspace))

	require.Equal(t, 2, e.reg.Len())
	assert.Equal(t, "x", e.reg.Block(0).PlainText())
	assert.Equal(t, "y", e.reg.Block(1).PlainText())
	assert.Equal(t, 0, e.nav.BlockIndex())
	assert.True(t, e.input().AtEnd())
}

func TestBackspaceListAfterParagraphNavigates(t *testing.T) {
	e := newEnv(paragraphs("p")[0], document.NewBlock(document.KindList, "item"))
	e.nav.SetToInput(1, 0, caret.PosStart)

	e.d.HandleKey(k(tea.KeyBackspace))

	require.Equal(t, 2, e.reg.Len(), "a list never merges into a paragraph")
	assert.Equal(t, 0, e.nav.BlockIndex())
	assert.True(t, e.input().AtEnd())
}

func TestBackspaceRemovesEmptyPreviousBlock(t *testing.T) {
	e := newEnv(paragraphs("", "x")...)
	e.nav.SetToBlock(1, caret.PosStart)

	e.d.HandleKey(k(tea.KeyBackspace))

	require.Equal(t, 1, e.reg.Len())
	assert.Equal(t, "x", e.reg.Block(0).PlainText())
	assert.Equal(t, 0, e.nav.BlockIndex())
	assert.True(t, e.input().AtStart(), "current block keeps its caret")
}

func TestBackspaceRemovesPrecedingDivider(t *testing.T) {
	e := newEnv(
		paragraphs("a")[0],
		document.NewBlock(document.KindDivider),
		paragraphs("b")[0],
	)
	e.nav.SetToBlock(2, caret.PosStart)

	e.d.HandleKey(k(tea.KeyBackspace))

	require.Equal(t, 2, e.reg.Len())
	assert.Equal(t, "a", e.reg.Block(0).PlainText())
	assert.Equal(t, "b", e.reg.Block(1).PlainText())
	assert.Equal(t, 1, e.nav.BlockIndex())
}

func TestBackspaceRemovesEmptyCurrentBlock(t *testing.T) {
	e := newEnv(paragraphs("ab", "")...)
	e.nav.SetToBlock(1, caret.PosStart)

	e.d.HandleKey(k(tea.KeyBackspace))

	require.Equal(t, 1, e.reg.Len())
	assert.Equal(t, "ab", e.reg.Block(0).PlainText())
	assert.Equal(t, 0, e.nav.BlockIndex())
	assert.True(t, e.input().AtEnd())
}

func TestBackspaceOnFirstBlockIsNoop(t *testing.T) {
	e := newEnv(paragraphs("x")...)

	e.d.HandleKey(k(tea.KeyBackspace))

	assert.Equal(t, 1, e.reg.Len())
	assert.Equal(t, "x", e.reg.Block(0).PlainText())
	assert.True(t, e.input().AtStart())
}

func TestBackspaceAtItemStartMovesToPreviousItem(t *testing.T) {
	e := newEnv(document.NewBlock(document.KindList, "one", "two"))
	e.nav.SetToInput(0, 1, caret.PosStart)

	e.d.HandleKey(k(tea.KeyBackspace))

	b := e.reg.Block(0)
	require.Equal(t, 2, b.InputCount())
	assert.Equal(t, 0, e.nav.InputIndex())
	assert.True(t, e.input().AtEnd())
}

func TestBackspaceDeletesBlockSelection(t *testing.T) {
	e := newEnv(paragraphs("one", "two", "three")...)
	e.d.HandleKey(k(tea.KeyShiftDown))
	require.Equal(t, []int{0, 1}, e.reg.SelectedIndices())

	cmd := e.d.HandleKey(k(tea.KeyBackspace))

	require.Equal(t, 1, e.reg.Len())
	assert.Equal(t, "three", e.reg.Block(0).PlainText())
	assert.False(t, e.reg.AnySelected())
	assert.Equal(t, 0, e.nav.BlockIndex())

	msg := toast(t, cmd)
	assert.Equal(t, "Deleted 2 blocks", msg.Message)
	assert.Equal(t, toaster.StyleSuccess, msg.Style)
}

func TestBackspaceDeletingEverythingReseedsDefault(t *testing.T) {
	e := newEnv(paragraphs("a", "b")...)
	e.d.HandleKey(k(tea.KeyCtrlA))
	e.d.HandleKey(k(tea.KeyCtrlA))
	require.Equal(t, []int{0, 1}, e.reg.SelectedIndices())

	e.d.HandleKey(k(tea.KeyBackspace))

	require.Equal(t, 1, e.reg.Len())
	assert.Equal(t, document.DefaultKind, e.reg.Block(0).Kind())
	assert.True(t, e.reg.Block(0).IsEmpty())
	assert.Equal(t, 0, e.nav.BlockIndex())
}

func TestDeleteForwardDeletesCharacter(t *testing.T) {
	e := newEnv(paragraphs("ab")...)

	e.d.HandleKey(k(tea.KeyDelete))

	assert.Equal(t, "b", e.input().Text())
}

func TestDeleteAtEndMergesNextBlock(t *testing.T) {
	e := newEnv(paragraphs("foo", "bar")...)
	e.input().CaretToEnd()

	e.d.HandleKey(k(tea.KeyDelete))

	require.Equal(t, 1, e.reg.Len(), "merge removes exactly one block")
	assert.Equal(t, "foobar", e.reg.Block(0).PlainText())
	assert.Equal(t, 0, e.nav.BlockIndex())
	assert.Equal(t, 3, e.input().Caret())
}

func TestDeleteNonMergeableNavigatesWithoutDeleting(t *testing.T) {
	e := newEnv(paragraphs("y")[0], document.NewBlock(document.KindCode, "x"))
	e.input().CaretToEnd()

	e.d.HandleKey(k(tea.KeyDelete))

	require.Equal(t, 2, e.reg.Len())
	assert.Equal(t, 1, e.nav.BlockIndex())
	assert.True(t, e.input().AtStart())
}

func TestDeleteRemovesEmptyNextBlock(t *testing.T) {
	e := newEnv(paragraphs("a", "")...)
	e.input().CaretToEnd()

	e.d.HandleKey(k(tea.KeyDelete))

	require.Equal(t, 1, e.reg.Len())
	assert.Equal(t, "a", e.reg.Block(0).PlainText())
	assert.Equal(t, 0, e.nav.BlockIndex())
	assert.True(t, e.input().AtEnd(), "focus does not move")
}

func TestDeleteRemovesEmptyCurrentBlock(t *testing.T) {
	e := newEnv(paragraphs("", "b")...)

	e.d.HandleKey(k(tea.KeyDelete))

	require.Equal(t, 1, e.reg.Len())
	assert.Equal(t, "b", e.reg.Block(0).PlainText())
	assert.Equal(t, 0, e.nav.BlockIndex())
	assert.True(t, e.input().AtStart())
}

func TestDeleteOnLastBlockIsNoop(t *testing.T) {
	e := newEnv(paragraphs("x")...)
	e.input().CaretToEnd()

	e.d.HandleKey(k(tea.KeyDelete))

	assert.Equal(t, 1, e.reg.Len())
	assert.Equal(t, "x", e.reg.Block(0).PlainText())
}

func TestDeleteAtItemEndMovesToNextItem(t *testing.T) {
	e := newEnv(document.NewBlock(document.KindList, "one", "two"))
	e.nav.SetToInput(0, 0, caret.PosEnd)

	e.d.HandleKey(k(tea.KeyDelete))

	require.Equal(t, 2, e.reg.Block(0).InputCount())
	assert.Equal(t, 1, e.nav.InputIndex())
	assert.True(t, e.input().AtStart())
}

func TestDeleteForwardRemovesSelectedRun(t *testing.T) {
	e := newRegEnv(testutil.NewBuilder(t).WithSelectedRun().Build())

	cmd := e.d.HandleKey(k(tea.KeyDelete))

	require.Equal(t, 2, e.reg.Len())
	assert.Equal(t, "first", e.reg.Block(0).PlainText())
	assert.Equal(t, "fifth", e.reg.Block(1).PlainText())
	assert.False(t, e.reg.AnySelected())
	assert.Equal(t, 0, e.nav.BlockIndex())

	msg := toast(t, cmd)
	assert.Equal(t, "Deleted 3 blocks", msg.Message)
}

func TestSlashOnEmptyBlockOpensToolbox(t *testing.T) {
	e := newEnv(paragraphs("")...)

	e.d.HandleKey(runes("/"))

	assert.Equal(t, toolbar.PanelToolbox, e.bar.Current())
	assert.Equal(t, e.reg.Block(0).ID(), e.bar.Target())
	assert.True(t, e.reg.Block(0).IsEmpty(), "the slash does not type")
}

func TestSlashOnNonEmptyBlockTypes(t *testing.T) {
	e := newEnv(paragraphs("a")...)
	e.input().CaretToEnd()

	e.d.HandleKey(runes("/"))

	assert.Equal(t, "a/", e.input().Text())
	assert.False(t, e.bar.IsOpen())
}

func TestSlashClearsBlockSelectionFirst(t *testing.T) {
	e := newEnv(paragraphs("one", "two")...)
	e.d.HandleKey(k(tea.KeyShiftDown))
	require.True(t, e.reg.AnySelected())

	e.d.HandleKey(runes("/"))

	assert.False(t, e.reg.AnySelected())
}

func TestSettingsOpensForFocusedBlock(t *testing.T) {
	e := newEnv(paragraphs("a", "b")...)
	e.nav.SetToBlock(1, caret.PosStart)

	e.d.HandleKey(k(tea.KeyCtrlUnderscore))

	assert.Equal(t, toolbar.PanelSettings, e.bar.Current())
	assert.Equal(t, e.reg.Block(1).ID(), e.bar.Target())
}

func TestSettingsAllowedWithSingleSelection(t *testing.T) {
	e := newEnv(paragraphs("a", "b")...)
	e.reg.SetSelected(0, true)

	e.d.HandleKey(k(tea.KeyCtrlUnderscore))

	assert.Equal(t, toolbar.PanelSettings, e.bar.Current())
}

func TestSettingsNoopWithMultiSelection(t *testing.T) {
	e := newEnv(paragraphs("a", "b", "c")...)
	e.d.HandleKey(k(tea.KeyShiftDown))
	require.Len(t, e.reg.SelectedIndices(), 2)

	e.d.HandleKey(k(tea.KeyCtrlUnderscore))

	assert.Equal(t, toolbar.PanelNone, e.bar.Current())
}

func TestCopyWithoutSelectionHints(t *testing.T) {
	e := newEnv(paragraphs("a")...)

	cmd := e.d.HandleKey(k(tea.KeyCtrlC))

	msg := toast(t, cmd)
	assert.Equal(t, toaster.StyleInfo, msg.Style)
	assert.Empty(t, e.clip.copied)
}

func TestCutWithoutSelectionIsNoop(t *testing.T) {
	e := newEnv(paragraphs("a")...)

	cmd := e.d.HandleKey(k(tea.KeyCtrlX))

	assert.Nil(t, cmd)
	assert.Equal(t, 1, e.reg.Len())
}

func TestCopyWritesMarkdownAndKeepsBlocks(t *testing.T) {
	e := newEnv(paragraphs("one", "two", "three")...)
	e.d.HandleKey(k(tea.KeyShiftDown))
	require.Equal(t, []int{0, 1}, e.reg.SelectedIndices())

	cmd := e.d.HandleKey(k(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.Empty(t, e.clip.copied, "the write runs in the command, not inline")

	msg, ok := cmd().(CopyResultMsg)
	require.True(t, ok)
	assert.NoError(t, msg.Err)
	assert.False(t, msg.Cut)
	assert.Equal(t, 2, msg.Count)
	require.Equal(t, []string{"one\n\ntwo\n"}, e.clip.copied)

	done := toast(t, e.d.HandleCopyResult(msg))
	assert.Equal(t, "Copied 2 blocks", done.Message)
	assert.Equal(t, toaster.StyleSuccess, done.Style)
	assert.Equal(t, 3, e.reg.Len())
	assert.Equal(t, []int{0, 1}, e.reg.SelectedIndices(), "copy keeps the selection")
}

func TestCutRemovesOnlyAfterCopyCompletes(t *testing.T) {
	e := newEnv(paragraphs("a", "b", "c", "d")...)
	e.nav.SetToBlock(1, caret.PosStart)
	e.d.HandleKey(k(tea.KeyShiftDown))
	require.Equal(t, []int{1, 2}, e.reg.SelectedIndices())

	cmd := e.d.HandleKey(k(tea.KeyCtrlX))
	require.NotNil(t, cmd)
	assert.Equal(t, 4, e.reg.Len(), "nothing is removed before the copy runs")
	assert.Empty(t, e.clip.copied)

	msg, ok := cmd().(CopyResultMsg)
	require.True(t, ok)
	assert.Equal(t, 4, e.reg.Len(), "removal waits for the result message")
	require.Equal(t, []string{"b\n\nc\n"}, e.clip.copied)

	done := toast(t, e.d.HandleCopyResult(msg))
	assert.Equal(t, "Cut 2 blocks", done.Message)

	require.Equal(t, 3, e.reg.Len())
	assert.Equal(t, "a", e.reg.Block(0).PlainText())
	assert.True(t, e.reg.Block(1).IsEmpty(), "one default block replaces the cut range")
	assert.Equal(t, document.DefaultKind, e.reg.Block(1).Kind())
	assert.Equal(t, "d", e.reg.Block(2).PlainText())
	assert.False(t, e.reg.AnySelected())
	assert.Equal(t, 1, e.nav.BlockIndex())
	assert.True(t, e.input().AtStart())
}

func TestCutCopyFailureKeepsBlocks(t *testing.T) {
	e := newEnv(paragraphs("a", "b")...)
	e.clip.err = errors.New("clipboard unavailable")
	e.d.HandleKey(k(tea.KeyShiftDown))

	cmd := e.d.HandleKey(k(tea.KeyCtrlX))
	msg, ok := cmd().(CopyResultMsg)
	require.True(t, ok)
	require.Error(t, msg.Err)

	done := toast(t, e.d.HandleCopyResult(msg))
	assert.Equal(t, toaster.StyleError, done.Style)
	assert.Equal(t, 2, e.reg.Len(), "a failed copy removes nothing")
	assert.True(t, e.reg.AnySelected())
}

func TestCutAfterSelectionDissolvedKeepsCopy(t *testing.T) {
	e := newEnv(paragraphs("a", "b")...)
	e.d.HandleKey(k(tea.KeyShiftDown))

	cmd := e.d.HandleKey(k(tea.KeyCtrlX))
	msg, ok := cmd().(CopyResultMsg)
	require.True(t, ok)

	e.reg.ClearSelected()

	done := toast(t, e.d.HandleCopyResult(msg))
	assert.Equal(t, "Copied 2 blocks", done.Message)
	assert.Equal(t, 2, e.reg.Len())
}
