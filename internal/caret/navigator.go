// Package caret tracks which input holds focus and moves it across the
// document. Exactly one input is focused at a time; blocks without
// inputs (dividers) are skipped during navigation but still count for
// merge adjacency, which is why the navigator never hides raw indexes.
package caret

import (
	"github.com/zjrosen/encre/internal/document"
	"github.com/zjrosen/encre/internal/log"
)

// Pos names the caret landing spot when focus jumps to another input.
type Pos int

const (
	// PosStart parks the caret before the first grapheme.
	PosStart Pos = iota
	// PosEnd parks the caret past the last grapheme.
	PosEnd
)

// Navigator owns the focus position: the current block index and the
// current input index within it. It mutates caret positions on the
// document's inputs but never the block structure.
type Navigator struct {
	reg      *document.Registry
	blockIdx int
	inputIdx int
}

// New returns a navigator focused on the first focusable block. The
// registry must contain one; see Registry.EnsureFocusable.
func New(reg *document.Registry) *Navigator {
	n := &Navigator{reg: reg}
	n.blockIdx = reg.FirstFocusable()
	if n.blockIdx < 0 {
		n.blockIdx = 0
	}
	return n
}

// BlockIndex returns the index of the focused block.
func (n *Navigator) BlockIndex() int {
	return n.blockIdx
}

// InputIndex returns the index of the focused input within its block.
func (n *Navigator) InputIndex() int {
	return n.inputIdx
}

// CurrentBlock returns the focused block, or nil when the document
// shifted out from under the focus.
func (n *Navigator) CurrentBlock() *document.Block {
	return n.reg.Block(n.blockIdx)
}

// CurrentInput returns the focused input, or nil when unresolvable.
func (n *Navigator) CurrentInput() *document.Input {
	b := n.CurrentBlock()
	if b == nil {
		return nil
	}
	return b.Input(n.inputIdx)
}

// IsFirstInput reports whether focus sits on the block's first input.
func (n *Navigator) IsFirstInput() bool {
	return n.inputIdx == 0
}

// IsLastInput reports whether focus sits on the block's last input.
func (n *Navigator) IsLastInput() bool {
	b := n.CurrentBlock()
	return b != nil && n.inputIdx == b.InputCount()-1
}

// SetToBlock focuses the block at idx, landing the caret at the given
// edge. Blocks without inputs cannot take focus; the call reports
// whether focus moved.
func (n *Navigator) SetToBlock(idx int, pos Pos) bool {
	b := n.reg.Block(idx)
	if b == nil || b.InputCount() == 0 {
		return false
	}
	inputIdx := 0
	if pos == PosEnd {
		inputIdx = b.InputCount() - 1
	}
	return n.SetToInput(idx, inputIdx, pos)
}

// SetToInput focuses a specific input, landing the caret at the given
// edge.
func (n *Navigator) SetToInput(blockIdx, inputIdx int, pos Pos) bool {
	b := n.reg.Block(blockIdx)
	if b == nil {
		return false
	}
	in := b.Input(inputIdx)
	if in == nil {
		return false
	}
	n.blockIdx = blockIdx
	n.inputIdx = inputIdx
	if pos == PosEnd {
		in.CaretToEnd()
	} else {
		in.CaretToStart()
	}
	log.Debug(log.CatDocument, "focus moved", "block", blockIdx, "input", inputIdx)
	return true
}

// SetTo focuses a specific input and places the caret on an exact
// grapheme index, as a mouse click does.
func (n *Navigator) SetTo(blockIdx, inputIdx, grapheme int) bool {
	b := n.reg.Block(blockIdx)
	if b == nil {
		return false
	}
	in := b.Input(inputIdx)
	if in == nil {
		return false
	}
	n.blockIdx = blockIdx
	n.inputIdx = inputIdx
	in.PlaceCaret(grapheme)
	return true
}

// NavigateNext moves focus to the next input: the block's following
// input when there is one, otherwise the first input of the next
// focusable block. The caret lands at the start. Reports whether focus
// moved.
func (n *Navigator) NavigateNext() bool {
	b := n.CurrentBlock()
	if b == nil {
		return false
	}
	if n.inputIdx < b.InputCount()-1 {
		return n.SetToInput(n.blockIdx, n.inputIdx+1, PosStart)
	}
	next := n.nextFocusable(n.blockIdx, +1)
	if next < 0 {
		return false
	}
	return n.SetToInput(next, 0, PosStart)
}

// NavigatePrevious moves focus to the previous input: the block's
// preceding input when there is one, otherwise the last input of the
// previous focusable block. The caret lands at the end.
func (n *Navigator) NavigatePrevious() bool {
	if n.inputIdx > 0 {
		return n.SetToInput(n.blockIdx, n.inputIdx-1, PosEnd)
	}
	prev := n.nextFocusable(n.blockIdx, -1)
	if prev < 0 {
		return false
	}
	b := n.reg.Block(prev)
	return n.SetToInput(prev, b.InputCount()-1, PosEnd)
}

// nextFocusable steps from idx in the given direction until a block
// with inputs turns up. Returns -1 at the document edge.
func (n *Navigator) nextFocusable(idx, dir int) int {
	for i := idx + dir; i >= 0 && i < n.reg.Len(); i += dir {
		b := n.reg.Block(i)
		if b.InputCount() > 0 {
			return i
		}
	}
	return -1
}

// Clamp pulls the focus back into range after block mutations the
// navigator did not orchestrate, such as a document reload.
func (n *Navigator) Clamp() {
	if n.blockIdx >= n.reg.Len() {
		n.blockIdx = n.reg.Len() - 1
	}
	if n.blockIdx < 0 {
		n.blockIdx = 0
	}
	b := n.CurrentBlock()
	if b == nil {
		n.inputIdx = 0
		return
	}
	if b.InputCount() == 0 {
		// Focus drifted onto a divider; settle on a focusable neighbour.
		if next := n.nextFocusable(n.blockIdx, +1); next >= 0 {
			n.blockIdx = next
		} else if prev := n.nextFocusable(n.blockIdx, -1); prev >= 0 {
			n.blockIdx = prev
		}
		n.inputIdx = 0
		b = n.CurrentBlock()
		if b == nil {
			return
		}
	}
	if n.inputIdx >= b.InputCount() {
		n.inputIdx = b.InputCount() - 1
	}
	if n.inputIdx < 0 {
		n.inputIdx = 0
	}
}
