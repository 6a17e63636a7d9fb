package testutil

import "github.com/zjrosen/encre/internal/document"

// caretData pins the caret inside one of a block's inputs. A non-nil
// head extends the placement into an in-input selection anchored at
// offset.
type caretData struct {
	input  int
	offset int
	head   *int
}

// blockData holds all data for a block to be built.
type blockData struct {
	kind     document.Kind
	texts    []string
	selected bool
	caret    *caretData
}

// defaultBlock returns a blockData with sensible defaults.
func defaultBlock(kind document.Kind) blockData {
	return blockData{kind: kind}
}

// BlockOption configures a block during builder setup.
type BlockOption func(*blockData)

// Text sets the block's text. List blocks turn each argument into one
// item; every other kind joins the arguments with newlines into its
// single input.
func Text(texts ...string) BlockOption {
	return func(b *blockData) { b.texts = append(b.texts, texts...) }
}

// Selected marks the block as part of a block selection.
func Selected() BlockOption {
	return func(b *blockData) { b.selected = true }
}

// CaretAt places the caret at a grapheme offset inside the given input.
func CaretAt(input, offset int) BlockOption {
	return func(b *blockData) {
		b.caret = &caretData{input: input, offset: offset}
	}
}

// TextSelection selects the grapheme range from anchor to head inside
// the given input, leaving the caret at head.
func TextSelection(input, anchor, head int) BlockOption {
	return func(b *blockData) {
		h := head
		b.caret = &caretData{input: input, offset: anchor, head: &h}
	}
}
