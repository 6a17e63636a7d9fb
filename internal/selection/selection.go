// Package selection tracks the text selection inside a single block input.
//
// A selection is a pair of grapheme indices: the anchor, fixed where the
// selection began, and the caret, which moves as the user drags or extends
// with shift+arrows. The caret itself lives on the input; a Range only
// remembers the anchor and whether a selection is live.
package selection

// Range is the selection state for one input. The zero value is inactive.
type Range struct {
	anchor int
	active bool
}

// Start anchors a new selection at the given grapheme index.
func (r *Range) Start(at int) {
	r.anchor = at
	r.active = true
}

// Clear deactivates the selection.
func (r *Range) Clear() {
	r.anchor = 0
	r.active = false
}

// Active reports whether a selection has been started. An active selection
// may still be empty when the caret sits on the anchor.
func (r *Range) Active() bool {
	return r.active
}

// Anchor returns the grapheme index the selection is anchored at.
func (r *Range) Anchor() int {
	return r.anchor
}

// Span returns the selection as a normalized [lo, hi) grapheme interval
// given the input's current caret position.
func (r *Range) Span(caret int) (lo, hi int) {
	if !r.active {
		return caret, caret
	}
	if r.anchor <= caret {
		return r.anchor, caret
	}
	return caret, r.anchor
}

// IsEmpty reports whether the selection covers no graphemes.
func (r *Range) IsEmpty(caret int) bool {
	lo, hi := r.Span(caret)
	return lo == hi
}

// Contains reports whether the grapheme at index i falls inside the
// selection. Used by renderers to decide which cells to highlight.
func (r *Range) Contains(caret, i int) bool {
	lo, hi := r.Span(caret)
	return i >= lo && i < hi
}

// Clamp pulls the anchor back into [0, n] after the underlying text
// changed out from under the selection.
func (r *Range) Clamp(n int) {
	if r.anchor > n {
		r.anchor = n
	}
	if r.anchor < 0 {
		r.anchor = 0
	}
}
