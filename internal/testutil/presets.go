package testutil

import "github.com/zjrosen/encre/internal/document"

// WithStandardDocument adds the document most editor tests open with: a
// title, two paragraphs, and a divider.
// Mirrors app_test.go's testDoc markdown.
func (b *Builder) WithStandardDocument() *Builder {
	return b.
		WithBlock(document.KindHeading1, Text("Title")).
		WithBlock(document.KindParagraph, Text("First paragraph")).
		WithBlock(document.KindParagraph, Text("Second paragraph")).
		WithBlock(document.KindDivider)
}

// WithEveryKind adds one block of every kind in reading order:
//
//	# Heading
//	## Section
//	### Detail
//	body paragraph
//	- two list items
//	> quote
//	fenced code
//	---
func (b *Builder) WithEveryKind() *Builder {
	return b.
		WithBlock(document.KindHeading1, Text("Heading")).
		WithBlock(document.KindHeading2, Text("Section")).
		WithBlock(document.KindHeading3, Text("Detail")).
		WithBlock(document.KindParagraph, Text("Body text for the paragraph")).
		WithBlock(document.KindList, Text("first item", "second item")).
		WithBlock(document.KindQuote, Text("a quoted line")).
		WithBlock(document.KindCode, Text("func main() {}")).
		WithBlock(document.KindDivider)
}

// WithSelectedRun adds five paragraphs with the middle three selected,
// the shape a block selection has after extending it across blocks:
//
//	first
//	second   ← selected
//	third    ← selected
//	fourth   ← selected
//	fifth
func (b *Builder) WithSelectedRun() *Builder {
	return b.
		WithBlock(document.KindParagraph, Text("first")).
		WithBlock(document.KindParagraph, Text("second"), Selected()).
		WithBlock(document.KindParagraph, Text("third"), Selected()).
		WithBlock(document.KindParagraph, Text("fourth"), Selected()).
		WithBlock(document.KindParagraph, Text("fifth"))
}
