package blockevents

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/encre/internal/caret"
	"github.com/zjrosen/encre/internal/crossselect"
	"github.com/zjrosen/encre/internal/document"
	"github.com/zjrosen/encre/internal/log"
	"github.com/zjrosen/encre/internal/tracing"
	"github.com/zjrosen/encre/internal/ui/toaster"
)

// CopyResultMsg reports the outcome of an async clipboard write. When
// Cut is set and Err is nil the removal step runs on receipt, which is
// what keeps cut from destroying content before it is safely captured.
type CopyResultMsg struct {
	Err   error
	Cut   bool
	Count int
}

// handleEnter splits the focused block at the caret. Kinds that own
// their line breaks take a literal newline instead, and an active block
// selection just collapses.
func (d *Dispatcher) handleEnter() tea.Cmd {
	if d.reg.AnySelected() {
		d.cross.Clear(crossselect.ReasonTyping)
		return nil
	}
	b := d.nav.CurrentBlock()
	in := d.nav.CurrentInput()
	if b == nil || in == nil {
		return nil
	}
	if b.Kind().OwnsLineBreaks() {
		in.InsertText("\n")
		return nil
	}
	in.DeleteSelection()

	idx := d.nav.BlockIndex()
	switch {
	case b.Kind().MultiInput():
		d.listEnter(b, in, idx)

	case in.AtStart():
		// A new default block above; focus stays on the block that just
		// slid down, so the caret visually moves a row without leaving
		// its content.
		d.reg.Insert(idx, document.NewBlock(document.DefaultKind))
		d.nav.SetToInput(idx+1, 0, caret.PosStart)
		log.Debug(log.CatEvents, "block inserted above", "index", idx)

	case in.AtEnd():
		d.reg.Insert(idx+1, document.NewBlock(document.DefaultKind))
		d.nav.SetToBlock(idx+1, caret.PosStart)
		log.Debug(log.CatEvents, "block appended", "index", idx+1)

	default:
		if _, err := d.reg.Split(idx, d.nav.InputIndex()); err != nil {
			log.ErrorErr(log.CatEvents, "split failed", err)
			return nil
		}
		d.nav.SetToBlock(idx+1, caret.PosStart)
	}

	d.bar.CloseAll()
	d.view.ScrollBlockIntoView(d.nav.BlockIndex())
	return nil
}

// listEnter is the per-item enter behavior of multi-input blocks: items
// split in place, and empty trailing items break out of the list.
func (d *Dispatcher) listEnter(b *document.Block, in *document.Input, idx int) {
	itemIdx := d.nav.InputIndex()
	switch {
	case in.Empty() && b.InputCount() == 1:
		// The only item is empty; enter converts the list away.
		b.ConvertTo(document.DefaultKind)
		d.nav.SetToInput(idx, 0, caret.PosStart)

	case in.Empty() && itemIdx == b.InputCount()-1:
		// A trailing empty item ends the list and continues below it.
		b.RemoveInput(itemIdx)
		d.reg.Insert(idx+1, document.NewBlock(document.DefaultKind))
		d.nav.SetToBlock(idx+1, caret.PosStart)

	default:
		_, after := in.SplitAtCaret()
		b.InsertInput(itemIdx+1, document.NewInput(after))
		d.nav.SetToInput(idx, itemIdx+1, caret.PosStart)
	}
}

// handleLineBreak inserts a literal newline where the kind's serialized
// form can hold one.
func (d *Dispatcher) handleLineBreak() tea.Cmd {
	b := d.nav.CurrentBlock()
	in := d.nav.CurrentInput()
	if b == nil || in == nil {
		return nil
	}
	if !b.Kind().AcceptsLineBreak() {
		log.Debug(log.CatEvents, "line break rejected", "kind", b.Kind())
		return nil
	}
	in.InsertLineBreak()
	return nil
}

// handleBackspace resolves the caret-at-start chain: previous input,
// empty-block removal, merge, or a plain focus hop. Away from the input
// start it is an ordinary character delete.
func (d *Dispatcher) handleBackspace() tea.Cmd {
	if d.reg.AnySelected() {
		return d.removeSelectedBlocks()
	}
	in := d.nav.CurrentInput()
	if in == nil {
		return nil
	}
	if in.HasSelection() {
		in.DeleteSelection()
		return nil
	}
	if !in.AtStart() {
		in.DeleteBackward()
		return nil
	}

	if !d.nav.IsFirstInput() {
		d.nav.NavigatePrevious()
		return nil
	}

	idx := d.nav.BlockIndex()
	prev := idx - 1
	prevBlock := d.reg.Block(prev)
	cur := d.nav.CurrentBlock()
	if prevBlock == nil || cur == nil {
		return nil
	}

	switch {
	case prevBlock.IsEmpty():
		// Empty neighbours (dividers included) delete outright; the
		// current block slides up with its caret untouched.
		d.reg.Remove(prev)
		d.nav.SetToInput(idx-1, 0, caret.PosStart)
		log.Debug(log.CatEvents, "empty previous block removed", "index", prev)

	case cur.IsEmpty():
		d.reg.Remove(idx)
		d.nav.SetToBlock(idx-1, caret.PosEnd)
		log.Debug(log.CatEvents, "empty block removed", "index", idx)

	case d.reg.CanMerge(prev, idx):
		seam, err := d.reg.Merge(prev, idx)
		if err != nil {
			log.ErrorErr(log.CatEvents, "merge back failed", err)
			return nil
		}
		d.nav.SetTo(prev, seam.Input, seam.Grapheme)

	default:
		// Non-mergeable kinds just hand the caret across the boundary.
		d.nav.SetToBlock(idx-1, caret.PosEnd)
	}

	d.bar.CloseAll()
	d.view.ScrollBlockIntoView(d.nav.BlockIndex())
	return nil
}

// handleDelete mirrors handleBackspace toward the next block.
func (d *Dispatcher) handleDelete() tea.Cmd {
	if d.reg.AnySelected() {
		return d.removeSelectedBlocks()
	}
	in := d.nav.CurrentInput()
	if in == nil {
		return nil
	}
	if in.HasSelection() {
		in.DeleteSelection()
		return nil
	}
	if !in.AtEnd() {
		in.DeleteForward()
		return nil
	}

	if !d.nav.IsLastInput() {
		d.nav.NavigateNext()
		return nil
	}

	idx := d.nav.BlockIndex()
	next := idx + 1
	nextBlock := d.reg.Block(next)
	cur := d.nav.CurrentBlock()
	if nextBlock == nil || cur == nil {
		return nil
	}

	switch {
	case nextBlock.IsEmpty():
		d.reg.Remove(next)
		log.Debug(log.CatEvents, "empty next block removed", "index", next)

	case cur.IsEmpty():
		d.reg.Remove(idx)
		d.nav.SetToBlock(idx, caret.PosStart)
		log.Debug(log.CatEvents, "empty block removed", "index", idx)

	case d.reg.CanMerge(idx, next):
		seam, err := d.reg.Merge(idx, next)
		if err != nil {
			log.ErrorErr(log.CatEvents, "merge forward failed", err)
			return nil
		}
		d.nav.SetTo(idx, seam.Input, seam.Grapheme)

	default:
		d.nav.SetToBlock(idx+1, caret.PosStart)
	}

	d.bar.CloseAll()
	d.view.ScrollBlockIntoView(d.nav.BlockIndex())
	return nil
}

// removeSelectedBlocks deletes the block selection wholesale, reseeding
// a default block only when the document empties.
func (d *Dispatcher) removeSelectedBlocks() tea.Cmd {
	removed, at := d.reg.RemoveSelected()
	if removed == nil {
		return nil
	}
	d.cross.Clear(crossselect.ReasonCommand)

	if d.reg.EnsureNotEmpty() {
		d.nav.SetToBlock(0, caret.PosStart)
	} else {
		target, pos := at-1, caret.PosEnd
		if target < 0 {
			target, pos = 0, caret.PosStart
		}
		if !d.nav.SetToBlock(target, pos) {
			d.nav.Clamp()
		}
	}

	d.bar.CloseAll()
	d.view.ScrollBlockIntoView(d.nav.BlockIndex())
	log.Info(log.CatEvents, "selected blocks deleted", "count", len(removed))
	return toaster.ShowCmd("Deleted "+countBlocks(len(removed)), toaster.StyleSuccess)
}

// handleSlash opens the toolbox on an empty block; anywhere else the
// rune types.
func (d *Dispatcher) handleSlash() tea.Cmd {
	if d.reg.AnySelected() {
		d.cross.Clear(crossselect.ReasonTyping)
	}
	b := d.nav.CurrentBlock()
	if b == nil {
		return nil
	}
	if b.IsEmpty() {
		d.bar.OpenToolbox(b.ID())
		return nil
	}
	return d.insertRunes("/")
}

// handleSettings opens block settings for the focused block. A
// multi-block selection has no single settings target, so it no-ops.
func (d *Dispatcher) handleSettings() tea.Cmd {
	if len(d.reg.SelectedIndices()) > 1 {
		return nil
	}
	b := d.nav.CurrentBlock()
	if b == nil {
		return nil
	}
	d.bar.OpenSettings(b.ID())
	return nil
}

// handleCopy exports the selected blocks to the clipboard. The write
// runs as a command; cut defers its removal until HandleCopyResult sees
// the write succeed.
func (d *Dispatcher) handleCopy(cut bool) tea.Cmd {
	blocks := d.reg.SelectedBlocks()
	if len(blocks) == 0 {
		if cut {
			return nil
		}
		return toaster.ShowCmd("Select blocks to copy (shift+↑/↓)", toaster.StyleInfo)
	}

	payload := document.SerializeBlocks(blocks)
	n := len(blocks)
	clip := d.clip
	log.Debug(log.CatClipboard, "copying blocks", "count", n, "cut", cut)
	return func() tea.Msg {
		_, span := tracing.StartSpan(context.Background(), tracing.SpanClipboardCopy)
		span.SetAttributes(attribute.Int(tracing.AttrBlockCount, n))
		err := clip.Copy(payload)
		tracing.EndSpan(span, err)
		return CopyResultMsg{Err: err, Cut: cut, Count: n}
	}
}

// HandleCopyResult finishes a copy or cut. Cut removes whatever is
// selected at resolution time; resolving by stale index after the
// async hop could hit the wrong blocks.
func (d *Dispatcher) HandleCopyResult(msg CopyResultMsg) tea.Cmd {
	if msg.Err != nil {
		log.ErrorErr(log.CatClipboard, "clipboard copy failed", msg.Err)
		return toaster.ShowCmd("Copy failed: "+msg.Err.Error(), toaster.StyleError)
	}
	if !msg.Cut {
		return toaster.ShowCmd("Copied "+countBlocks(msg.Count), toaster.StyleSuccess)
	}

	removed, at := d.reg.RemoveSelected()
	if removed == nil {
		// The selection dissolved while the copy ran; keep the copy.
		return toaster.ShowCmd("Copied "+countBlocks(msg.Count), toaster.StyleSuccess)
	}
	d.cross.Clear(crossselect.ReasonCommand)
	d.reg.Insert(at, document.NewBlock(document.DefaultKind))
	d.nav.SetToBlock(at, caret.PosStart)
	d.bar.CloseAll()
	d.view.ScrollBlockIntoView(at)
	log.Info(log.CatEvents, "blocks cut", "count", len(removed))
	return toaster.ShowCmd("Cut "+countBlocks(len(removed)), toaster.StyleSuccess)
}

func countBlocks(n int) string {
	if n == 1 {
		return "1 block"
	}
	return fmt.Sprintf("%d blocks", n)
}
