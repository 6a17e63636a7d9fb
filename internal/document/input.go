package document

import (
	"strings"

	"github.com/zjrosen/encre/internal/selection"
)

// Input is one editable text region inside a block. Most blocks have a
// single input; list blocks hold one per item. The caret is a grapheme
// index into the text, and the selection anchors against it.
type Input struct {
	text  string
	caret int
	sel   selection.Range
}

// NewInput returns an input holding the given text with the caret at
// the start.
func NewInput(text string) *Input {
	return &Input{text: text}
}

// Text returns the raw text.
func (in *Input) Text() string {
	return in.text
}

// SetText replaces the text, clamping the caret and selection anchor to
// the new length.
func (in *Input) SetText(s string) {
	in.text = s
	n := GraphemeCount(s)
	if in.caret > n {
		in.caret = n
	}
	in.sel.Clamp(n)
}

// Len returns the text length in graphemes.
func (in *Input) Len() int {
	return GraphemeCount(in.text)
}

// Empty reports whether the input holds no text.
func (in *Input) Empty() bool {
	return in.text == ""
}

// Caret returns the caret position as a grapheme index.
func (in *Input) Caret() int {
	return in.caret
}

// PlaceCaret moves the caret to the given grapheme index and drops any
// selection. Out of range positions clamp.
func (in *Input) PlaceCaret(idx int) {
	in.caret = clampIndex(idx, in.Len())
	in.sel.Clear()
}

// ExtendCaret moves the caret while growing a selection. When no
// selection is active one is anchored at the current caret first.
func (in *Input) ExtendCaret(idx int) {
	if !in.sel.Active() {
		in.sel.Start(in.caret)
	}
	in.caret = clampIndex(idx, in.Len())
}

// AtStart reports whether the caret sits before the first grapheme.
func (in *Input) AtStart() bool {
	return in.caret == 0
}

// AtEnd reports whether the caret sits past the last grapheme.
func (in *Input) AtEnd() bool {
	return in.caret >= in.Len()
}

// HasSelection reports whether a non-empty selection exists.
func (in *Input) HasSelection() bool {
	return !in.sel.IsEmpty(in.caret)
}

// SelectionSpan returns the selection as a normalized [lo, hi) grapheme
// interval. Collapsed selections return the caret twice.
func (in *Input) SelectionSpan() (lo, hi int) {
	return in.sel.Span(in.caret)
}

// SelectedText returns the text covered by the selection.
func (in *Input) SelectedText() string {
	lo, hi := in.sel.Span(in.caret)
	return SliceByGraphemes(in.text, lo, hi)
}

// SelectAll selects the whole input and parks the caret at the end.
func (in *Input) SelectAll() {
	in.sel.Start(0)
	in.caret = in.Len()
}

// ClearSelection drops the selection without moving the caret.
func (in *Input) ClearSelection() {
	in.sel.Clear()
}

// InsertText inserts s at the caret, replacing the selection when one is
// active. The caret lands after the inserted text.
func (in *Input) InsertText(s string) {
	in.DeleteSelection()
	in.text = InsertAtGrapheme(in.text, in.caret, s)
	in.caret += GraphemeCount(s)
}

// InsertLineBreak inserts a literal newline at the caret. Only kinds
// that own their line breaks route enter here.
func (in *Input) InsertLineBreak() {
	in.InsertText("\n")
}

// DeleteSelection removes the selected text and reports whether
// anything was removed. The caret collapses to the low edge.
func (in *Input) DeleteSelection() bool {
	lo, hi := in.sel.Span(in.caret)
	if lo == hi {
		in.sel.Clear()
		return false
	}
	in.text = DeleteGraphemeRange(in.text, lo, hi)
	in.caret = lo
	in.sel.Clear()
	return true
}

// DeleteBackward removes the selection if one is active, otherwise the
// grapheme before the caret. Reports whether anything was removed.
func (in *Input) DeleteBackward() bool {
	if in.DeleteSelection() {
		return true
	}
	if in.caret == 0 {
		return false
	}
	in.text = DeleteGraphemeRange(in.text, in.caret-1, in.caret)
	in.caret--
	return true
}

// DeleteForward removes the selection if one is active, otherwise the
// grapheme after the caret. Reports whether anything was removed.
func (in *Input) DeleteForward() bool {
	if in.DeleteSelection() {
		return true
	}
	if in.AtEnd() {
		return false
	}
	in.text = DeleteGraphemeRange(in.text, in.caret, in.caret+1)
	return true
}

// SplitAtCaret cuts the text at the caret and returns both halves. The
// input keeps the text before the caret; the caller decides where the
// remainder goes.
func (in *Input) SplitAtCaret() (before, after string) {
	at := GraphemeToByteOffset(in.text, in.caret)
	before, after = in.text[:at], in.text[at:]
	in.text = before
	in.sel.Clear()
	return before, after
}

// MoveCaret shifts the caret by delta graphemes, clamping at the edges
// and dropping any selection.
func (in *Input) MoveCaret(delta int) {
	in.PlaceCaret(in.caret + delta)
}

// ExtendCaretBy shifts the caret by delta graphemes while growing a
// selection.
func (in *Input) ExtendCaretBy(delta int) {
	in.ExtendCaret(in.caret + delta)
}

// CaretToStart parks the caret before the first grapheme.
func (in *Input) CaretToStart() {
	in.PlaceCaret(0)
}

// CaretToEnd parks the caret past the last grapheme.
func (in *Input) CaretToEnd() {
	in.PlaceCaret(in.Len())
}

// CaretLine returns the caret position as a line index and a column in
// graphemes from the line start. Lines are separated by hard newlines.
func (in *Input) CaretLine() (line, col int) {
	start := 0
	for i, l := range strings.Split(in.text, "\n") {
		n := GraphemeCount(l)
		if in.caret <= start+n {
			return i, in.caret - start
		}
		start += n + 1 // +1 for the newline grapheme
	}
	return 0, in.caret
}

// LineCount returns the number of hard lines in the text. Empty text
// still counts as one line.
func (in *Input) LineCount() int {
	return strings.Count(in.text, "\n") + 1
}

// MoveCaretVertical shifts the caret delta hard lines, keeping the
// column where possible and clamping it to the target line's length.
// Reports false when the caret is already on the boundary line, which
// tells the caller to move between blocks instead.
func (in *Input) MoveCaretVertical(delta int) bool {
	lines := strings.Split(in.text, "\n")
	line, col := in.CaretLine()

	target := line + delta
	if target < 0 || target >= len(lines) {
		return false
	}

	start := 0
	for i := 0; i < target; i++ {
		start += GraphemeCount(lines[i]) + 1
	}
	if n := GraphemeCount(lines[target]); col > n {
		col = n
	}
	in.caret = start + col
	in.sel.Clear()
	return true
}

// SelectionContains reports whether the grapheme at idx falls inside
// the selection. Renderers use it to decide which cells to highlight.
func (in *Input) SelectionContains(idx int) bool {
	return in.sel.Contains(in.caret, idx)
}

func clampIndex(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx > n {
		return n
	}
	return idx
}
