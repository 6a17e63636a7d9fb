package document

import (
	"strings"

	"github.com/google/uuid"
)

// BlockID uniquely identifies a block for the lifetime of a session.
// It is a string-based type using UUID format so renderers can use it
// as a stable mouse zone key.
type BlockID string

// NewBlockID generates a new unique BlockID using UUID v4.
func NewBlockID() BlockID {
	return BlockID(uuid.New().String())
}

// String returns the string representation of the BlockID.
func (id BlockID) String() string {
	return string(id)
}

// Block is one unit of document content: a kind plus its text inputs.
// Divider blocks carry no inputs; list blocks carry one per item; every
// other kind carries exactly one.
type Block struct {
	id        BlockID
	kind      Kind
	inputs    []*Input
	selected  bool
	fenceInfo string // code fence info string, preserved across load and save
}

// NewBlock creates a block of the given kind. Text arguments become the
// block's inputs; kinds that accept input always get at least one, even
// when no text is supplied. Extra texts beyond the first are joined into
// the single input for non-list kinds.
func NewBlock(kind Kind, texts ...string) *Block {
	b := &Block{id: NewBlockID(), kind: kind}
	if !kind.HasInputs() {
		return b
	}
	switch {
	case kind.MultiInput():
		for _, t := range texts {
			b.inputs = append(b.inputs, NewInput(t))
		}
		if len(b.inputs) == 0 {
			b.inputs = append(b.inputs, NewInput(""))
		}
	case len(texts) == 0:
		b.inputs = []*Input{NewInput("")}
	default:
		b.inputs = []*Input{NewInput(strings.Join(texts, "\n"))}
	}
	return b
}

// ID returns the block's stable identifier.
func (b *Block) ID() BlockID {
	return b.id
}

// Kind returns the block's kind.
func (b *Block) Kind() Kind {
	return b.kind
}

// InputCount returns the number of inputs the block holds.
func (b *Block) InputCount() int {
	return len(b.inputs)
}

// Input returns the input at index i, or nil when out of range.
func (b *Block) Input(i int) *Input {
	if i < 0 || i >= len(b.inputs) {
		return nil
	}
	return b.inputs[i]
}

// Inputs returns the block's inputs in order.
func (b *Block) Inputs() []*Input {
	return b.inputs
}

// InsertInput inserts an input at index i, clamping out of range
// positions to the ends. Used when list blocks grow items.
func (b *Block) InsertInput(i int, in *Input) {
	if i < 0 {
		i = 0
	}
	if i > len(b.inputs) {
		i = len(b.inputs)
	}
	b.inputs = append(b.inputs, nil)
	copy(b.inputs[i+1:], b.inputs[i:])
	b.inputs[i] = in
}

// RemoveInput removes the input at index i and returns it. Removing the
// last input of a kind that requires one leaves a fresh empty input
// behind.
func (b *Block) RemoveInput(i int) *Input {
	if i < 0 || i >= len(b.inputs) {
		return nil
	}
	in := b.inputs[i]
	b.inputs = append(b.inputs[:i], b.inputs[i+1:]...)
	if len(b.inputs) == 0 && b.kind.HasInputs() {
		b.inputs = []*Input{NewInput("")}
	}
	return in
}

// Selected reports whether the block is part of a block selection.
func (b *Block) Selected() bool {
	return b.selected
}

// SetSelected marks or unmarks the block as selected and reports
// whether the flag changed.
func (b *Block) SetSelected(sel bool) bool {
	if b.selected == sel {
		return false
	}
	b.selected = sel
	return true
}

// IsEmpty reports whether the block holds no text at all. Dividers are
// always empty.
func (b *Block) IsEmpty() bool {
	for _, in := range b.inputs {
		if !in.Empty() {
			return false
		}
	}
	return true
}

// PlainText returns the block's text with inputs joined by newlines.
func (b *Block) PlainText() string {
	if len(b.inputs) == 0 {
		return ""
	}
	parts := make([]string, len(b.inputs))
	for i, in := range b.inputs {
		parts[i] = in.Text()
	}
	return strings.Join(parts, "\n")
}

// Clone returns a deep copy of the block under a fresh ID. Selection
// state and caret positions do not carry over.
func (b *Block) Clone() *Block {
	c := &Block{id: NewBlockID(), kind: b.kind, fenceInfo: b.fenceInfo}
	for _, in := range b.inputs {
		c.inputs = append(c.inputs, NewInput(in.Text()))
	}
	return c
}

// ConvertTo reshapes the block into another kind in place, keeping its
// ID. Multi-input text flattens into lines when converting away from a
// list, and lines become items when converting into one. Converting to
// a divider drops all text.
func (b *Block) ConvertTo(kind Kind) {
	if kind == b.kind {
		return
	}
	text := b.PlainText()
	b.kind = kind
	b.selected = false
	switch {
	case !kind.HasInputs():
		b.inputs = nil
	case kind.MultiInput():
		b.inputs = nil
		for _, line := range SplitLines(text) {
			b.inputs = append(b.inputs, NewInput(line))
		}
		if len(b.inputs) == 0 {
			b.inputs = []*Input{NewInput("")}
		}
	default:
		b.inputs = []*Input{NewInput(text)}
	}
}
