// Package crossselect implements cross-block selection: dragging from
// inside one block across others, or extending with shift+up/down,
// selects a contiguous run of blocks anchored where the gesture began.
//
// Pointer extension reconciles the whole selected range against
// [min(anchor, target), max(anchor, target)] on every event instead of
// toggling incrementally. That makes leaving the editing surface
// mid-drag and re-entering at an arbitrary block a non-special case:
// wherever the pointer shows up next, the range is rebuilt from the
// anchor to it.
package crossselect

import (
	"github.com/zjrosen/encre/internal/log"
)

// Blocks is the document surface the engine drives: per-block selected
// flags plus range queries over them.
type Blocks interface {
	Len() int
	Selected(i int) bool
	SetSelected(i int, sel bool) bool
	// SelectedRange returns the first and last selected indexes, or
	// ok false when nothing is selected.
	SelectedRange() (first, last int, ok bool)
	ClearSelected() int
}

// Caret is the slice of focus control the engine needs: where focus is,
// and parking the caret on a block edge when a clear hands control back
// to keyboard navigation.
type Caret interface {
	BlockIndex() int
	// PlaceCaret focuses block idx with the caret at its start, or at
	// its end when atEnd is set.
	PlaceCaret(idx int, atEnd bool) bool
}

// TextSelections collapses in-input selections competing with a block
// drag.
type TextSelections interface {
	CollapseAll()
}

// Menus closes any open toolbox or settings panel while a selection
// grows.
type Menus interface {
	CloseAll()
}

// Viewport scrolls a block into view when keyboard extension reaches
// it.
type Viewport interface {
	ScrollBlockIntoView(idx int)
}

// Reason says what ended a selection. Arrow-triggered clears carry a
// direction so the caret lands on the matching edge of the cleared
// range.
type Reason int

const (
	// ReasonPointer is a plain click or a new drag elsewhere.
	ReasonPointer Reason = iota
	// ReasonTyping is a printable key replacing the selection context.
	ReasonTyping
	// ReasonEscape is an explicit dismissal.
	ReasonEscape
	// ReasonCommand is a command (cut, delete) that already dealt with
	// the selected blocks itself.
	ReasonCommand
	// ReasonNavigateNext is a down or right arrow; the caret lands at
	// the end of the last selected block.
	ReasonNavigateNext
	// ReasonNavigatePrev is an up or left arrow; the caret lands at
	// the start of the first selected block.
	ReasonNavigatePrev
)

// Engine owns the cross-block selection anchors for one editor.
type Engine struct {
	blocks Blocks
	caret  Caret
	texts  TextSelections
	menus  Menus
	view   Viewport

	anchor int // block where the gesture began, -1 when none
	last   int // block the gesture most recently reached
	end    int // last index the pointer reconciliation recorded
	armed  bool
}

// New wires an engine to its collaborators.
func New(blocks Blocks, caret Caret, texts TextSelections, menus Menus, view Viewport) *Engine {
	return &Engine{blocks: blocks, caret: caret, texts: texts, menus: menus, view: view, anchor: -1, last: -1, end: -1}
}

// Active reports whether a cross-block selection spanning more than the
// anchor exists.
func (e *Engine) Active() bool {
	return e.anchor >= 0 && e.last >= 0 && e.anchor != e.last
}

// Watching reports whether a pointer gesture is armed.
func (e *Engine) Watching() bool {
	return e.armed
}

// Range returns the inclusive block range the gesture spans.
func (e *Engine) Range() (first, last int, ok bool) {
	if e.anchor < 0 || e.last < 0 {
		return 0, 0, false
	}
	first, last = e.anchor, e.last
	if first > last {
		first, last = last, first
	}
	return first, last, true
}

// Watch arms a pointer gesture anchored at the block under the press.
// Only the caller knows the button; primary-button filtering happens
// upstream.
func (e *Engine) Watch(idx int) {
	if idx < 0 || idx >= e.blocks.Len() {
		return
	}
	e.anchor = idx
	e.last = idx
	e.end = idx
	e.armed = true
	log.Debug(log.CatSelect, "cross selection armed", "anchor", idx)
}

// MouseOver extends or retracts the selection as the pointer crosses
// from the related block into the target block. Negative indexes mean
// the side could not be resolved; an unresolved related side falls back
// to the last reached block, which is how re-entering the editor from
// outside keeps working.
func (e *Engine) MouseOver(target, related int) {
	if !e.armed {
		return
	}
	if related < 0 {
		related = e.last
	}
	if target < 0 || target >= e.blocks.Len() || related < 0 || target == related {
		return
	}

	switch {
	case related == e.anchor:
		// First step off the anchor. For the usual adjacent target
		// this selects exactly anchor and target; a distant target
		// means the pointer left the surface immediately and
		// re-entered, and resyncing the span keeps the selection
		// contiguous either way.
		e.texts.CollapseAll()
		e.resyncRange(target)
		e.last = target

	case target == e.anchor:
		// Collapsed back onto the anchor: nothing stays selected.
		e.blocks.SetSelected(related, false)
		e.blocks.SetSelected(target, false)
		if e.end != e.anchor {
			// The pointer left the editor while the selection was
			// grown; sweep out everything recorded beyond the anchor.
			lo, hi := orderRange(e.anchor, e.end)
			for i := lo; i <= hi; i++ {
				e.blocks.SetSelected(i, false)
			}
			e.end = e.anchor
		}
		e.last = target

	default:
		e.menus.CloseAll()
		e.resyncRange(target)
		e.last = target
	}
}

// resyncRange reconciles the selected set to exactly
// [min(anchor, target), max(anchor, target)]: blocks inside the
// previously recorded range but outside the new one deselect first,
// then the whole new range selects.
func (e *Engine) resyncRange(target int) {
	newLo, newHi := orderRange(e.anchor, target)
	prevLo, prevHi := orderRange(e.anchor, e.end)

	for i := prevLo; i <= prevHi; i++ {
		if i < newLo || i > newHi {
			e.blocks.SetSelected(i, false)
		}
	}
	for i := newLo; i <= newHi; i++ {
		e.blocks.SetSelected(i, true)
	}
	e.end = target
}

// Unwatch ends the pointer gesture on release. The anchors persist so
// keyboard commands issued right after a drag still see the selection;
// only Clear resets them.
func (e *Engine) Unwatch() {
	e.armed = false
}

// KeyExtend grows or shrinks the selection by one block in the given
// direction (+1 down, -1 up). With no anchor, the focused block becomes
// one and gets selected. At the document edge the call is a no-op.
func (e *Engine) KeyExtend(dir int) {
	if dir == 0 {
		return
	}
	if e.anchor < 0 {
		idx := e.caret.BlockIndex()
		if idx < 0 || idx >= e.blocks.Len() {
			return
		}
		e.anchor = idx
		e.last = idx
		e.end = idx
		e.blocks.SetSelected(idx, true)
		e.texts.CollapseAll()
	}

	next := e.last + dir
	if next < 0 || next >= e.blocks.Len() {
		return
	}

	if e.blocks.Selected(next) != e.blocks.Selected(e.last) {
		// Stepping onto an unselected block grows the range.
		e.blocks.SetSelected(next, true)
	} else {
		// Stepping onto an already selected block shrinks it back
		// toward the anchor.
		e.blocks.SetSelected(e.last, false)
	}
	e.last = next
	e.end = next

	e.view.ScrollBlockIntoView(next)
	e.menus.CloseAll()
	log.Debug(log.CatSelect, "cross selection extended", "anchor", e.anchor, "last", e.last)
}

// Clear deselects everything and resets the anchors. Arrow-key reasons
// first park the caret on the outer edge of the cleared range.
func (e *Engine) Clear(reason Reason) {
	first, last, ok := e.blocks.SelectedRange()
	if ok {
		switch reason {
		case ReasonNavigateNext:
			e.caret.PlaceCaret(last, true)
		case ReasonNavigatePrev:
			e.caret.PlaceCaret(first, false)
		}
	}
	if n := e.blocks.ClearSelected(); n > 0 {
		log.Debug(log.CatSelect, "cross selection cleared", "blocks", n, "reason", int(reason))
	}
	e.anchor = -1
	e.last = -1
	e.end = -1
	e.armed = false
}

func orderRange(a, b int) (lo, hi int) {
	if a <= b {
		return a, b
	}
	return b, a
}
