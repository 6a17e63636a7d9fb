// Package document holds the block model for an encre document: typed
// blocks made of editable text inputs, the registry that orders them,
// and the markdown form they load from and save to.
//
// All caret positions and selection offsets in this package are grapheme
// indices, not byte offsets. Byte offsets appear only at the string
// manipulation boundary in grapheme.go.
package document

// Kind identifies the tool a block was created with. The kind decides
// how a block renders, how it serializes, and which editing behaviors
// apply to it.
type Kind string

const (
	KindParagraph Kind = "paragraph"
	KindHeading1  Kind = "heading1"
	KindHeading2  Kind = "heading2"
	KindHeading3  Kind = "heading3"
	KindList      Kind = "list"
	KindQuote     Kind = "quote"
	KindCode      Kind = "code"
	KindDivider   Kind = "divider"
)

// DefaultKind is the kind of blocks created by splits and empty inserts.
const DefaultKind = KindParagraph

// Mergeable reports whether a block of this kind can absorb a neighbour
// (or be absorbed) when the caret crosses a block boundary with
// backspace or delete. Code keeps its fences to itself and dividers
// have no text to merge.
func (k Kind) Mergeable() bool {
	switch k {
	case KindParagraph, KindHeading1, KindHeading2, KindHeading3, KindList, KindQuote:
		return true
	default:
		return false
	}
}

// OwnsLineBreaks reports whether enter should insert a literal newline
// inside the current input instead of splitting the block.
func (k Kind) OwnsLineBreaks() bool {
	return k == KindCode
}

// AcceptsLineBreak reports whether a literal newline can live inside
// this kind's text. Line-oriented kinds (headings, list items) reparse
// as one block per line, so a newline would not survive a save and load
// round trip.
func (k Kind) AcceptsLineBreak() bool {
	switch k {
	case KindParagraph, KindQuote, KindCode:
		return true
	default:
		return false
	}
}

// MultiInput reports whether blocks of this kind hold one input per item
// rather than a single input.
func (k Kind) MultiInput() bool {
	return k == KindList
}

// HasInputs reports whether blocks of this kind accept the caret at all.
func (k Kind) HasInputs() bool {
	return k != KindDivider
}

// Title returns the human name shown in the toolbox menu.
func (k Kind) Title() string {
	switch k {
	case KindParagraph:
		return "Text"
	case KindHeading1:
		return "Heading 1"
	case KindHeading2:
		return "Heading 2"
	case KindHeading3:
		return "Heading 3"
	case KindList:
		return "List"
	case KindQuote:
		return "Quote"
	case KindCode:
		return "Code"
	case KindDivider:
		return "Divider"
	default:
		return string(k)
	}
}

// Kinds returns every kind in toolbox display order.
func Kinds() []Kind {
	return []Kind{
		KindParagraph,
		KindHeading1,
		KindHeading2,
		KindHeading3,
		KindList,
		KindQuote,
		KindCode,
		KindDivider,
	}
}
