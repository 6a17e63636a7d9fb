package document

import (
	"fmt"

	"github.com/zjrosen/encre/internal/log"
)

// Registry is the ordered collection of blocks making up a document.
// Indexes shift as blocks are inserted and removed; BlockIDs stay
// stable. The registry owns the per-block selected flag but not the
// caret, which belongs to the focus navigator.
type Registry struct {
	blocks []*Block
}

// NewRegistry builds a registry from the given blocks. An empty call
// seeds a single default block so a document is never without one.
func NewRegistry(blocks ...*Block) *Registry {
	r := &Registry{blocks: blocks}
	if len(r.blocks) == 0 {
		r.blocks = []*Block{NewBlock(DefaultKind)}
	}
	return r
}

// Len returns the number of blocks.
func (r *Registry) Len() int {
	return len(r.blocks)
}

// Block returns the block at index i, or nil when out of range.
func (r *Registry) Block(i int) *Block {
	if i < 0 || i >= len(r.blocks) {
		return nil
	}
	return r.blocks[i]
}

// Blocks returns the blocks in order. The slice is shared; callers must
// not reorder it.
func (r *Registry) Blocks() []*Block {
	return r.blocks
}

// IndexOf returns the index of the block with the given ID, or -1.
func (r *Registry) IndexOf(id BlockID) int {
	for i, b := range r.blocks {
		if b.id == id {
			return i
		}
	}
	return -1
}

// Insert places b at index i, clamping out of range positions to the
// ends.
func (r *Registry) Insert(i int, b *Block) {
	if i < 0 {
		i = 0
	}
	if i > len(r.blocks) {
		i = len(r.blocks)
	}
	r.blocks = append(r.blocks, nil)
	copy(r.blocks[i+1:], r.blocks[i:])
	r.blocks[i] = b
}

// Remove deletes the block at index i and returns it. The registry may
// be left empty; callers that can drain it decide what to insert back.
func (r *Registry) Remove(i int) *Block {
	if i < 0 || i >= len(r.blocks) {
		return nil
	}
	b := r.blocks[i]
	r.blocks = append(r.blocks[:i], r.blocks[i+1:]...)
	return b
}

// Replace swaps the block at index i for b, returning the old block.
func (r *Registry) Replace(i int, b *Block) *Block {
	if i < 0 || i >= len(r.blocks) {
		return nil
	}
	old := r.blocks[i]
	r.blocks[i] = b
	return old
}

// Move relocates the block at from to position to. Out of range
// arguments are a no-op.
func (r *Registry) Move(from, to int) {
	if from < 0 || from >= len(r.blocks) || to < 0 || to >= len(r.blocks) || from == to {
		return
	}
	b := r.blocks[from]
	r.blocks = append(r.blocks[:from], r.blocks[from+1:]...)
	r.blocks = append(r.blocks[:to], append([]*Block{b}, r.blocks[to:]...)...)
}

// EnsureNotEmpty appends a fresh default block when the registry has
// none and reports whether it did.
func (r *Registry) EnsureNotEmpty() bool {
	if len(r.blocks) > 0 {
		return false
	}
	r.blocks = []*Block{NewBlock(DefaultKind)}
	return true
}

// FirstFocusable returns the index of the first block that accepts the
// caret, or -1 when none does.
func (r *Registry) FirstFocusable() int {
	for i, b := range r.blocks {
		if b.kind.HasInputs() {
			return i
		}
	}
	return -1
}

// EnsureFocusable appends a default block when no block accepts the
// caret, so the user always has somewhere to type. Reports whether a
// block was added.
func (r *Registry) EnsureFocusable() bool {
	if r.FirstFocusable() >= 0 {
		return false
	}
	r.blocks = append(r.blocks, NewBlock(DefaultKind))
	return true
}

// Split cuts the text of the given input at its caret and moves the
// remainder into a new default block inserted right after idx. The
// original block keeps the text before the caret. Returns the new
// block.
func (r *Registry) Split(idx, inputIdx int) (*Block, error) {
	b := r.Block(idx)
	if b == nil {
		return nil, fmt.Errorf("split block %d: no such block", idx)
	}
	in := b.Input(inputIdx)
	if in == nil {
		return nil, fmt.Errorf("split block %d: no input %d", idx, inputIdx)
	}
	_, after := in.SplitAtCaret()
	nb := NewBlock(DefaultKind, after)
	r.Insert(idx+1, nb)
	log.Debug(log.CatDocument, "block split", "index", idx, "kind", b.Kind())
	return nb, nil
}

// Seam marks where merged content joined inside the surviving block so
// the caret can land on the join point.
type Seam struct {
	Input    int
	Grapheme int
}

// CanMerge reports whether the blocks at indexes i and j can be merged.
// Both must be of mergeable kinds and share a content family, so
// headings of different levels merge but a list never merges into a
// paragraph.
func (r *Registry) CanMerge(i, j int) bool {
	a, b := r.Block(i), r.Block(j)
	if a == nil || b == nil {
		return false
	}
	return a.kind.Mergeable() && b.kind.Mergeable() && kindFamily(a.kind) == kindFamily(b.kind)
}

// Merge absorbs the source block's content into the target block and
// removes the source from the registry. The returned seam points at the
// end of the target's pre-merge content.
func (r *Registry) Merge(targetIdx, sourceIdx int) (Seam, error) {
	target, source := r.Block(targetIdx), r.Block(sourceIdx)
	if target == nil || source == nil {
		return Seam{}, fmt.Errorf("merge %d into %d: no such block", sourceIdx, targetIdx)
	}
	if targetIdx == sourceIdx {
		return Seam{}, fmt.Errorf("merge %d into itself", targetIdx)
	}

	lastInput := target.InputCount() - 1
	seam := Seam{Input: lastInput}
	if lastInput >= 0 {
		seam.Grapheme = target.Input(lastInput).Len()
	}

	if target.kind.MultiInput() {
		for _, line := range SplitLines(source.PlainText()) {
			target.inputs = append(target.inputs, NewInput(line))
		}
	} else if lastInput >= 0 {
		in := target.Input(lastInput)
		in.SetText(in.Text() + source.PlainText())
	}

	r.Remove(sourceIdx)
	log.Debug(log.CatDocument, "blocks merged",
		"target", targetIdx, "source", sourceIdx, "kind", target.Kind())
	return seam, nil
}

// kindFamily groups kinds whose text can concatenate. Heading levels
// share one family.
func kindFamily(k Kind) Kind {
	switch k {
	case KindHeading1, KindHeading2, KindHeading3:
		return KindHeading1
	default:
		return k
	}
}

// SetSelected marks or unmarks the block at index i and reports whether
// its state changed. Out of range indexes are a silent no-op.
func (r *Registry) SetSelected(i int, sel bool) bool {
	b := r.Block(i)
	if b == nil {
		return false
	}
	return b.SetSelected(sel)
}

// ClearSelected unmarks every block and returns how many were selected.
func (r *Registry) ClearSelected() int {
	n := 0
	for _, b := range r.blocks {
		if b.SetSelected(false) {
			n++
		}
	}
	return n
}

// SelectAll marks every block as selected.
func (r *Registry) SelectAll() {
	for _, b := range r.blocks {
		b.SetSelected(true)
	}
}

// AnySelected reports whether at least one block is selected.
func (r *Registry) AnySelected() bool {
	for _, b := range r.blocks {
		if b.selected {
			return true
		}
	}
	return false
}

// SelectedIndices returns the indexes of all selected blocks in order.
func (r *Registry) SelectedIndices() []int {
	var out []int
	for i, b := range r.blocks {
		if b.selected {
			out = append(out, i)
		}
	}
	return out
}

// SelectedBlocks returns the selected blocks in document order.
func (r *Registry) SelectedBlocks() []*Block {
	var out []*Block
	for _, b := range r.blocks {
		if b.selected {
			out = append(out, b)
		}
	}
	return out
}

// RemoveSelected deletes every selected block and returns the removed
// blocks in document order along with the index where the first one
// stood. When nothing is selected it returns (nil, -1). The registry
// may be left empty; callers insert the replacement block.
func (r *Registry) RemoveSelected() ([]*Block, int) {
	indices := r.SelectedIndices()
	if len(indices) == 0 {
		return nil, -1
	}
	removed := make([]*Block, 0, len(indices))
	for i := len(indices) - 1; i >= 0; i-- {
		removed = append(removed, r.Remove(indices[i]))
	}
	// Removal ran back to front; restore document order.
	for i, j := 0, len(removed)-1; i < j; i, j = i+1, j-1 {
		removed[i], removed[j] = removed[j], removed[i]
	}
	log.Debug(log.CatDocument, "selected blocks removed", "count", len(removed), "at", indices[0])
	return removed, indices[0]
}
