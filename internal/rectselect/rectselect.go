// Package rectselect implements rectangle drag selection: a mouse drag
// starting on the page background grows a visual rectangle, and blocks
// whose rows the rectangle sweeps over become selected.
//
// The engine tracks the drag as a stack of block indexes forming one
// contiguous run in the current direction of travel. Moving further
// pushes newly covered indexes (filling gaps the pointer skipped),
// reversing pops and deselects them one at a time. Whether stacked
// blocks are actually marked selected is decided by the overlap flag:
// a rectangle drawn entirely beside the content column stacks indexes
// without selecting anything.
//
// Coordinates arriving at the engine are viewport-relative cells; the
// engine converts rows to document space using the layout's scroll
// offset, so the rectangle stays anchored while autoscroll moves the
// viewport underneath the pointer.
package rectselect

import (
	"math"

	"github.com/zjrosen/encre/internal/log"
)

// Blocks is the slice of the document the engine mutates: per-block
// selected flags addressed by index.
type Blocks interface {
	Len() int
	Selected(i int) bool
	SetSelected(i int, selected bool) bool
}

// Layout answers geometry questions about the rendered document.
type Layout interface {
	// ColumnBounds returns the content column's horizontal extent in
	// viewport cells.
	ColumnBounds() (left, right int)
	// BlockIndexAtRow maps an absolute document row to the block
	// rendered there, or -1 for gaps and out of range rows.
	BlockIndexAtRow(row int) int
	ViewportHeight() int
	ScrollOffset() int
}

// TextSelections collapses in-input text selections that a drag would
// otherwise leave behind.
type TextSelections interface {
	CollapseAll()
}

// Menus closes any open toolbox or settings panel when a drag starts
// sweeping.
type Menus interface {
	CloseAll()
}

// Config tunes the engine. Zero ScrollZone disables edge autoscroll;
// Enabled false disables the engine entirely.
type Config struct {
	Enabled         bool
	ScrollZone      int
	BaseScrollSpeed float64
	ReferenceRows   int
}

// Phase is the engine's drag lifecycle state.
type Phase int

const (
	// PhaseIdle means no drag is in progress.
	PhaseIdle Phase = iota
	// PhaseArmed means the button is down but the pointer has not moved.
	PhaseArmed
	// PhaseDragging means a visible rectangle is being drawn.
	PhaseDragging
)

// Rect is the drawn rectangle in document coordinates, normalized so
// (X1, Y1) is the top-left corner.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Engine owns one rectangle selection gesture at a time.
type Engine struct {
	blocks Blocks
	layout Layout
	texts  TextSelections
	menus  Menus
	cfg    Config

	phase       Phase
	startX      int // document coordinates
	startY      int
	curX        int
	curY        int
	lastVX      int // viewport coordinates of the latest pointer event
	lastVY      int
	stack       []int
	overlap     bool
	speedFactor float64
	scrollGen   int
	scrolling   bool
}

// New wires an engine to its collaborators.
func New(cfg Config, blocks Blocks, layout Layout, texts TextSelections, menus Menus) *Engine {
	return &Engine{cfg: cfg, blocks: blocks, layout: layout, texts: texts, menus: menus}
}

// Phase returns the current drag phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Active reports whether a visible rectangle exists right now.
func (e *Engine) Active() bool {
	return e.phase == PhaseDragging
}

// Start arms a drag at the given viewport position. The caller has
// already ruled out presses on toolbars and block content.
func (e *Engine) Start(x, y int) {
	if !e.cfg.Enabled {
		return
	}
	e.phase = PhaseArmed
	e.startX = x
	e.startY = y + e.layout.ScrollOffset()
	e.curX = e.startX
	e.curY = e.startY
	e.lastVX = x
	e.lastVY = y
	e.stack = e.stack[:0]
	e.overlap = false
	e.scrolling = false

	ref := e.cfg.ReferenceRows
	if ref <= 0 {
		ref = 24
	}
	e.speedFactor = float64(e.layout.ViewportHeight()) / float64(ref)
	log.Debug(log.CatSelect, "rect drag armed", "x", x, "y", e.startY)
}

// Move advances the drag to a new viewport position. The first move of
// a drag activates the rectangle; every move recomputes overlap and
// reconciles block selection.
func (e *Engine) Move(x, y int) {
	if e.phase == PhaseIdle {
		return
	}
	e.lastVX = x
	e.lastVY = y
	e.curX = x
	e.curY = y + e.layout.ScrollOffset()

	e.recompute(e.phase == PhaseArmed)
	if e.phase == PhaseArmed {
		e.phase = PhaseDragging
	}
}

// Scrolled re-reconciles the rectangle after the viewport scrolled
// under a stationary pointer, so autoscroll keeps selecting blocks the
// rectangle reaches.
func (e *Engine) Scrolled() {
	if e.phase != PhaseDragging {
		return
	}
	e.curY = e.lastVY + e.layout.ScrollOffset()
	e.recompute(false)
}

// recompute runs the per-move reconciliation: overlap, stack, and the
// overlap-authoritative selection sweep.
func (e *Engine) recompute(firstMove bool) {
	e.overlap = e.rectOverlapsColumn()
	if firstMove {
		// A fresh rectangle is a point at the origin and by definition
		// has not crossed the column yet.
		e.overlap = false
	}

	e.menus.CloseAll()

	if idx := e.layout.BlockIndexAtRow(e.curY); idx >= 0 {
		e.trySelectNextBlock(idx)
	}
	e.inverseSelection()
	e.texts.CollapseAll()
}

// rectOverlapsColumn reports whether the rectangle's horizontal extent
// touches the content column. Only when both vertical edges sit outside
// the column on the same side is the rectangle clear of it.
func (e *Engine) rectOverlapsColumn() bool {
	left, right := e.layout.ColumnBounds()
	lo, hi := e.startX, e.curX
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi < left || lo > right {
		return false
	}
	return true
}

// trySelectNextBlock reconciles the stack against the block index now
// under the pointer.
func (e *Engine) trySelectNextBlock(idx int) {
	n := len(e.stack)
	if n == 0 {
		e.push(idx)
		return
	}
	top := e.stack[n-1]
	if idx == top {
		return
	}

	dir := 0
	if n > 1 {
		if e.stack[n-1] > e.stack[n-2] {
			dir = 1
		} else {
			dir = -1
		}
	}

	movingDown := idx > top
	continues := dir == 0 || movingDown == (dir > 0)
	if continues {
		// Travel in the established direction: push every index
		// between the old top and the pointer, covering rows the
		// pointer skipped between events.
		step := 1
		if !movingDown {
			step = -1
		}
		for i := top + step; i >= 0 && i < e.blocks.Len(); i += step {
			e.push(i)
			if i == idx {
				break
			}
		}
		return
	}

	// Reversal: pop and deselect until the top reaches the pointer.
	// Draining the whole stack means the pointer crossed the anchor;
	// the current index then seeds a fresh run on the other side.
	for len(e.stack) > 0 {
		top = e.stack[len(e.stack)-1]
		if top == idx {
			return
		}
		wrongSide := (dir > 0 && top > idx) || (dir < 0 && top < idx)
		if !wrongSide {
			return
		}
		e.blocks.SetSelected(top, false)
		e.stack = e.stack[:len(e.stack)-1]
	}
	e.push(idx)
}

func (e *Engine) push(idx int) {
	e.stack = append(e.stack, idx)
	if e.overlap {
		e.blocks.SetSelected(idx, true)
	}
}

// inverseSelection makes the overlap flag authoritative over the whole
// stack: entering the column selects every stacked block, leaving it
// deselects them, detected by comparing the flag against the first
// stacked block's state.
func (e *Engine) inverseSelection() {
	if len(e.stack) == 0 {
		return
	}
	first := e.stack[0]
	switch {
	case e.overlap && !e.blocks.Selected(first):
		for _, i := range e.stack {
			e.blocks.SetSelected(i, true)
		}
	case !e.overlap && e.blocks.Selected(first):
		for _, i := range e.stack {
			e.blocks.SetSelected(i, false)
		}
	}
}

// End finishes the drag, keeping whatever selection it produced.
// Outstanding autoscroll ticks turn stale.
func (e *Engine) End() {
	if e.phase == PhaseIdle {
		return
	}
	if e.phase == PhaseDragging {
		log.Debug(log.CatSelect, "rect drag ended", "stacked", len(e.stack))
	}
	e.phase = PhaseIdle
	e.stack = e.stack[:0]
	e.overlap = false
	e.scrolling = false
	e.scrollGen++
}

// Cancel abandons the drag and deselects everything it selected.
func (e *Engine) Cancel() {
	if e.phase == PhaseIdle {
		return
	}
	for _, i := range e.stack {
		e.blocks.SetSelected(i, false)
	}
	log.Debug(log.CatSelect, "rect drag cancelled", "stacked", len(e.stack))
	e.phase = PhaseIdle
	e.stack = e.stack[:0]
	e.overlap = false
	e.scrolling = false
	e.scrollGen++
}

// Rect returns the rectangle to draw. ok is false while no rectangle
// is active.
func (e *Engine) Rect() (r Rect, ok bool) {
	if e.phase != PhaseDragging {
		return Rect{}, false
	}
	r = Rect{X1: e.startX, Y1: e.startY, X2: e.curX, Y2: e.curY}
	if r.X1 > r.X2 {
		r.X1, r.X2 = r.X2, r.X1
	}
	if r.Y1 > r.Y2 {
		r.Y1, r.Y2 = r.Y2, r.Y1
	}
	return r, true
}

// ScrollIntent reports whether a new autoscroll tick chain should
// start. It returns true at most once per entry into an edge zone; a
// chain that is already running continues through ScrollStep instead.
func (e *Engine) ScrollIntent() (gen int, start bool) {
	if e.phase != PhaseDragging || e.scrollDelta() == 0 {
		return 0, false
	}
	if e.scrolling {
		return e.scrollGen, false
	}
	e.scrolling = true
	e.scrollGen++
	return e.scrollGen, true
}

// ScrollStep validates one autoscroll tick. It returns the signed row
// delta to scroll and whether the chain should continue. Stale
// generations and pointers that left the edge zones stop the chain.
func (e *Engine) ScrollStep(gen int) (delta int, cont bool) {
	if gen != e.scrollGen || e.phase != PhaseDragging {
		e.scrolling = false
		return 0, false
	}
	delta = e.scrollDelta()
	if delta == 0 {
		e.scrolling = false
		return 0, false
	}
	return delta, true
}

// scrollDelta translates the pointer's penetration into the edge zones
// to a signed per-tick row delta, scaled by the configured base speed
// and the viewport-proportional speed factor. A pointer inside a zone
// always scrolls at least one row per tick.
func (e *Engine) scrollDelta() int {
	zone := e.cfg.ScrollZone
	if zone <= 0 {
		return 0
	}
	h := e.layout.ViewportHeight()
	vy := e.lastVY

	var penetration, sign int
	switch {
	case vy < zone:
		penetration = zone - vy
		sign = -1
	case vy >= h-zone:
		penetration = vy - (h - zone) + 1
		sign = 1
	default:
		return 0
	}

	d := int(math.Round(float64(penetration) * e.cfg.BaseScrollSpeed * e.speedFactor))
	if d < 1 {
		d = 1
	}
	return sign * d
}
