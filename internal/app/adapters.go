package app

import (
	"github.com/zjrosen/encre/internal/caret"
	"github.com/zjrosen/encre/internal/document"
)

// registryBlocks adapts the registry's selection flags to the engines.
type registryBlocks struct {
	reg *document.Registry
}

func (a registryBlocks) Len() int {
	return a.reg.Len()
}

func (a registryBlocks) Selected(i int) bool {
	b := a.reg.Block(i)
	return b != nil && b.Selected()
}

func (a registryBlocks) SetSelected(i int, sel bool) bool {
	return a.reg.SetSelected(i, sel)
}

func (a registryBlocks) SelectedRange() (first, last int, ok bool) {
	idx := a.reg.SelectedIndices()
	if len(idx) == 0 {
		return 0, 0, false
	}
	return idx[0], idx[len(idx)-1], true
}

func (a registryBlocks) ClearSelected() int {
	return a.reg.ClearSelected()
}

// navCaret adapts the navigator to the cross-selection engine.
type navCaret struct {
	nav *caret.Navigator
}

func (a navCaret) BlockIndex() int {
	return a.nav.BlockIndex()
}

func (a navCaret) PlaceCaret(idx int, atEnd bool) bool {
	pos := caret.PosStart
	if atEnd {
		pos = caret.PosEnd
	}
	return a.nav.SetToBlock(idx, pos)
}

// inputSelections collapses every in-input text selection.
type inputSelections struct {
	reg *document.Registry
}

func (a inputSelections) CollapseAll() {
	for _, b := range a.reg.Blocks() {
		for _, in := range b.Inputs() {
			in.ClearSelection()
		}
	}
}
