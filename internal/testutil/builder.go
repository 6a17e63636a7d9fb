// Package testutil builds document fixtures for tests. The builder
// accumulates block definitions fluently and assembles them into a
// registry, so a test states the document it needs instead of wiring
// blocks and selection state by hand.
package testutil

import (
	"testing"

	"github.com/zjrosen/encre/internal/document"
)

// entry is one pending block: a definition to realize, or a block
// already parsed from markdown.
type entry struct {
	def    *blockData
	parsed *document.Block
}

// Builder accumulates block definitions in insertion order.
type Builder struct {
	t       *testing.T
	entries []entry
}

// NewBuilder creates a fixture builder for the given test.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t}
}

// WithBlock adds a block of the given kind with optional configuration.
func (b *Builder) WithBlock(kind document.Kind, opts ...BlockOption) *Builder {
	def := defaultBlock(kind)
	for _, opt := range opts {
		opt(&def)
	}
	b.entries = append(b.entries, entry{def: &def})
	return b
}

// WithMarkdown parses src and appends every block it yields.
func (b *Builder) WithMarkdown(src string) *Builder {
	for _, blk := range document.ParseString(src).Blocks() {
		b.entries = append(b.entries, entry{parsed: blk})
	}
	return b
}

// Build assembles the accumulated blocks into a registry. An empty
// builder yields the registry's usual single default block.
func (b *Builder) Build() *document.Registry {
	b.t.Helper()
	blocks := make([]*document.Block, 0, len(b.entries))
	for i, e := range b.entries {
		if e.parsed != nil {
			blocks = append(blocks, e.parsed)
			continue
		}
		blocks = append(blocks, b.realize(i, *e.def))
	}
	return document.NewRegistry(blocks...)
}

// realize turns one definition into a block. Placing the caret in an
// input the block does not have fails the test.
func (b *Builder) realize(i int, def blockData) *document.Block {
	b.t.Helper()
	blk := document.NewBlock(def.kind, def.texts...)
	blk.SetSelected(def.selected)
	c := def.caret
	if c == nil {
		return blk
	}
	in := blk.Input(c.input)
	if in == nil {
		b.t.Fatalf("block %d (%s) has no input %d to place the caret in", i, def.kind, c.input)
	}
	in.PlaceCaret(c.offset)
	if c.head != nil {
		in.ExtendCaret(*c.head)
	}
	return blk
}
