package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringKinds(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantKind Kind
		wantText string
	}{
		{name: "heading 1", in: "# Title", wantKind: KindHeading1, wantText: "Title"},
		{name: "heading 2", in: "## Sub", wantKind: KindHeading2, wantText: "Sub"},
		{name: "heading 3", in: "### Deep", wantKind: KindHeading3, wantText: "Deep"},
		{name: "paragraph", in: "just text", wantKind: KindParagraph, wantText: "just text"},
		{name: "quote", in: "> wise words", wantKind: KindQuote, wantText: "wise words"},
		{name: "divider", in: "---", wantKind: KindDivider, wantText: ""},
		{name: "code", in: "```\nx := 1\n```", wantKind: KindCode, wantText: "x := 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ParseString(tt.in)
			require.Equal(t, 1, r.Len())
			assert.Equal(t, tt.wantKind, r.Block(0).Kind())
			assert.Equal(t, tt.wantText, r.Block(0).PlainText())
		})
	}
}

func TestParseStringList(t *testing.T) {
	r := ParseString("- one\n- two\n* three")

	require.Equal(t, 1, r.Len())
	b := r.Block(0)
	assert.Equal(t, KindList, b.Kind())
	require.Equal(t, 3, b.InputCount())
	assert.Equal(t, "one", b.Input(0).Text())
	assert.Equal(t, "three", b.Input(2).Text())
}

func TestParseStringEmptySeedsDefault(t *testing.T) {
	r := ParseString("")

	require.Equal(t, 1, r.Len())
	assert.Equal(t, DefaultKind, r.Block(0).Kind())
	assert.True(t, r.Block(0).IsEmpty())
}

func TestParseStringSoftBreaks(t *testing.T) {
	r := ParseString("first line\nsecond line\n\nnext block")

	require.Equal(t, 2, r.Len())
	assert.Equal(t, "first line\nsecond line", r.Block(0).PlainText())
	assert.Equal(t, "next block", r.Block(1).PlainText())
}

func TestParseStringAdjacentBlocksWithoutBlankLine(t *testing.T) {
	r := ParseString("text\n# Heading\n- item")

	require.Equal(t, 3, r.Len())
	assert.Equal(t, KindParagraph, r.Block(0).Kind())
	assert.Equal(t, KindHeading1, r.Block(1).Kind())
	assert.Equal(t, KindList, r.Block(2).Kind())
}

func TestParseStringUnclosedFence(t *testing.T) {
	r := ParseString("```go\nfunc main() {}")

	require.Equal(t, 1, r.Len())
	assert.Equal(t, KindCode, r.Block(0).Kind())
	assert.Equal(t, "func main() {}", r.Block(0).PlainText())
}

func TestParseStringCRLF(t *testing.T) {
	r := ParseString("# Title\r\n\r\nbody\r\n")

	require.Equal(t, 2, r.Len())
	assert.Equal(t, "Title", r.Block(0).PlainText())
	assert.Equal(t, "body", r.Block(1).PlainText())
}

func TestSerializeEmptyDocument(t *testing.T) {
	assert.Equal(t, "", Serialize(NewRegistry()))
}

func TestSerializeKinds(t *testing.T) {
	r := NewRegistry(
		NewBlock(KindHeading2, "Gear"),
		NewBlock(KindList, "rope", "tent"),
		NewBlock(KindQuote, "onward"),
		NewBlock(KindDivider),
	)

	want := "## Gear\n\n- rope\n- tent\n\n> onward\n\n---\n"
	assert.Equal(t, want, Serialize(r))
}

func TestSerializeBlocksFragment(t *testing.T) {
	r := NewRegistry(
		NewBlock(KindHeading1, "Title"),
		NewBlock(KindParagraph, "one"),
		NewBlock(KindParagraph, "two"),
	)

	// A selection export covers just the chosen blocks
	got := SerializeBlocks(r.Blocks()[1:])
	assert.Equal(t, "one\n\ntwo\n", got)
}

func TestSerializeNormalizesStarListMarker(t *testing.T) {
	r := ParseString("* one\n* two")
	assert.Equal(t, "- one\n- two\n", Serialize(r))
}

func TestSerializeKeepsFenceInfo(t *testing.T) {
	r := ParseString("```go\nx := 1\n```")
	assert.Equal(t, "```go\nx := 1\n```\n", Serialize(r))
}

func TestRoundTripSampleDocument(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "sample.md"))
	require.NoError(t, err)

	r := ParseString(string(raw))

	kinds := make([]Kind, r.Len())
	for i := range kinds {
		kinds[i] = r.Block(i).Kind()
	}
	assert.Equal(t, []Kind{
		KindHeading1,
		KindParagraph,
		KindHeading2,
		KindList,
		KindQuote,
		KindCode,
		KindDivider,
		KindParagraph,
	}, kinds)

	assert.Equal(t, string(raw), Serialize(r), "canonical documents round-trip byte for byte")
}

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")

	r := NewRegistry(NewBlock(KindHeading1, "Saved"), NewBlock(KindParagraph, "body"))
	require.NoError(t, Save(path, r))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())
	assert.Equal(t, "Saved", loaded.Block(0).PlainText())
	assert.Equal(t, KindParagraph, loaded.Block(1).Kind())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.md"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
