// Package blockevents routes editor keyboard events to block semantics:
// split and merge at caret boundaries, focus navigation between inputs
// and blocks, menu opening, and the clipboard commands over block
// selections.
//
// The dispatcher holds no per-event state beyond the select-all
// escalation stage; each key is resolved against the live registry and
// navigator. Lookups that fail to resolve (focus on a block that was
// just removed, indexes past the document edge) are silent no-ops so a
// single stray event can never corrupt navigation or selection state.
package blockevents

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/encre/internal/caret"
	"github.com/zjrosen/encre/internal/clipboard"
	"github.com/zjrosen/encre/internal/crossselect"
	"github.com/zjrosen/encre/internal/document"
	"github.com/zjrosen/encre/internal/keys"
	"github.com/zjrosen/encre/internal/log"
	"github.com/zjrosen/encre/internal/toolbar"
)

// Viewport reveals a block after a keyboard move lands focus on it.
type Viewport interface {
	ScrollBlockIntoView(idx int)
}

// Drag is the rectangle gesture the escape key can cancel.
type Drag interface {
	Active() bool
	Cancel()
}

// Dispatcher owns the keyboard semantics of the editor surface. The app
// routes every key here except the ones an open menu's flipper claims.
type Dispatcher struct {
	reg   *document.Registry
	nav   *caret.Navigator
	cross *crossselect.Engine
	bar   *toolbar.State
	clip  clipboard.Clipboard
	view  Viewport
	drag  Drag
	keys  keys.EditorKeyMap

	// selectStage tracks the ctrl+a escalation: 0 nothing, 1 the
	// focused input is fully selected. Any other key resets it.
	selectStage int
}

// New wires a dispatcher to its collaborators.
func New(
	reg *document.Registry,
	nav *caret.Navigator,
	cross *crossselect.Engine,
	bar *toolbar.State,
	clip clipboard.Clipboard,
	view Viewport,
	drag Drag,
) *Dispatcher {
	return &Dispatcher{
		reg:   reg,
		nav:   nav,
		cross: cross,
		bar:   bar,
		clip:  clip,
		view:  view,
		drag:  drag,
		keys:  keys.DefaultEditorKeyMap(),
	}
}

// HandleKey dispatches one key press. The returned command carries any
// async follow-up (clipboard writes, toasts); all document mutation has
// already happened synchronously by the time it returns.
func (d *Dispatcher) HandleKey(msg tea.KeyMsg) tea.Cmd {
	km := d.keys
	if !key.Matches(msg, km.SelectAll) {
		d.selectStage = 0
	}

	switch {
	case key.Matches(msg, km.SelectUp):
		d.cross.KeyExtend(-1)
		return nil
	case key.Matches(msg, km.SelectDown):
		d.cross.KeyExtend(+1)
		return nil
	case key.Matches(msg, km.SelectLeft):
		return d.extendText(-1)
	case key.Matches(msg, km.SelectRight):
		return d.extendText(+1)
	case key.Matches(msg, km.Enter):
		return d.handleEnter()
	case key.Matches(msg, km.LineBreak):
		return d.handleLineBreak()
	case key.Matches(msg, km.Backspace):
		return d.handleBackspace()
	case key.Matches(msg, km.Delete):
		return d.handleDelete()
	case key.Matches(msg, km.NextInput):
		return d.handleTab(+1)
	case key.Matches(msg, km.PrevInput):
		return d.handleTab(-1)
	case key.Matches(msg, km.Up):
		return d.handleArrow(-1, false)
	case key.Matches(msg, km.Down):
		return d.handleArrow(+1, false)
	case key.Matches(msg, km.Left):
		return d.handleArrow(-1, true)
	case key.Matches(msg, km.Right):
		return d.handleArrow(+1, true)
	case key.Matches(msg, km.Toolbox):
		return d.handleSlash()
	case key.Matches(msg, km.Settings):
		return d.handleSettings()
	case key.Matches(msg, km.Copy):
		return d.handleCopy(false)
	case key.Matches(msg, km.Cut):
		return d.handleCopy(true)
	case key.Matches(msg, km.SelectAll):
		return d.handleSelectAll()
	case key.Matches(msg, km.Escape):
		return d.handleEscape()
	}

	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		return d.insertRunes(string(msg.Runes))
	case tea.KeySpace:
		return d.insertRunes(" ")
	}
	return nil
}

// insertRunes is the printable-key path: it closes any open menu,
// replaces an active block selection, and types into the focused input.
func (d *Dispatcher) insertRunes(s string) tea.Cmd {
	if s == "" {
		return nil
	}
	d.bar.CloseAll()
	if d.reg.AnySelected() {
		d.cross.Clear(crossselect.ReasonTyping)
	}

	b := d.nav.CurrentBlock()
	in := d.nav.CurrentInput()
	if b == nil || in == nil {
		return nil
	}
	if !b.Kind().AcceptsLineBreak() {
		// Pasted newlines flatten in kinds that reparse per line.
		s = strings.ReplaceAll(s, "\n", " ")
	}
	in.InsertText(s)
	return nil
}

// extendText grows the in-input selection one grapheme left or right.
// Horizontal shift-arrows never cross blocks; only the vertical pair
// hands off to the cross-block engine.
func (d *Dispatcher) extendText(dir int) tea.Cmd {
	in := d.nav.CurrentInput()
	if in == nil {
		return nil
	}
	in.ExtendCaretBy(dir)
	return nil
}

// handleArrow moves the caret, crossing to the adjacent input or block
// at a boundary. An active block selection collapses onto its edge in
// the arrow's direction instead.
func (d *Dispatcher) handleArrow(dir int, horizontal bool) tea.Cmd {
	if d.reg.AnySelected() {
		if dir > 0 {
			d.cross.Clear(crossselect.ReasonNavigateNext)
		} else {
			d.cross.Clear(crossselect.ReasonNavigatePrev)
		}
		d.view.ScrollBlockIntoView(d.nav.BlockIndex())
		return nil
	}

	in := d.nav.CurrentInput()
	if in == nil {
		return nil
	}

	if horizontal {
		if in.HasSelection() {
			// Plain arrows collapse a text selection onto its edge.
			lo, hi := in.SelectionSpan()
			if dir > 0 {
				in.PlaceCaret(hi)
			} else {
				in.PlaceCaret(lo)
			}
			return nil
		}
		if dir > 0 && !in.AtEnd() {
			in.MoveCaret(1)
			return nil
		}
		if dir < 0 && !in.AtStart() {
			in.MoveCaret(-1)
			return nil
		}
	} else if in.MoveCaretVertical(dir) {
		return nil
	}

	var moved bool
	if dir > 0 {
		moved = d.nav.NavigateNext()
	} else {
		moved = d.nav.NavigatePrevious()
	}
	if moved {
		d.view.ScrollBlockIntoView(d.nav.BlockIndex())
	}
	return nil
}

// handleTab moves focus to the next or previous input across blocks.
// At the document edges the key is consumed with no effect. Code blocks
// take forward tab as indentation.
func (d *Dispatcher) handleTab(dir int) tea.Cmd {
	b := d.nav.CurrentBlock()
	if b == nil {
		return nil
	}
	if dir > 0 && b.Kind() == document.KindCode {
		if in := d.nav.CurrentInput(); in != nil {
			in.InsertText("  ")
		}
		return nil
	}

	var moved bool
	if dir > 0 {
		moved = d.nav.NavigateNext()
	} else {
		moved = d.nav.NavigatePrevious()
	}
	if moved {
		d.view.ScrollBlockIntoView(d.nav.BlockIndex())
	}
	return nil
}

// handleSelectAll escalates: first press selects the focused input's
// text, the second selects every block. An empty input skips straight
// to blocks.
func (d *Dispatcher) handleSelectAll() tea.Cmd {
	if d.reg.AnySelected() {
		return nil
	}
	in := d.nav.CurrentInput()
	if in == nil {
		return nil
	}
	if d.selectStage == 0 && !in.Empty() {
		in.SelectAll()
		d.selectStage = 1
		return nil
	}

	in.ClearSelection()
	d.reg.SelectAll()
	d.selectStage = 0
	d.bar.CloseAll()
	log.Debug(log.CatEvents, "all blocks selected", "count", d.reg.Len())
	return nil
}

// handleEscape unwinds one layer per press: open menu, live drag, block
// selection, then in-input selection.
func (d *Dispatcher) handleEscape() tea.Cmd {
	switch {
	case d.bar.IsOpen():
		d.bar.CloseAll()
	case d.drag.Active():
		d.drag.Cancel()
	case d.reg.AnySelected() || d.cross.Active():
		d.cross.Clear(crossselect.ReasonEscape)
	default:
		if in := d.nav.CurrentInput(); in != nil {
			in.ClearSelection()
		}
	}
	return nil
}
