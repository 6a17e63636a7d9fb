package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/encre/internal/crossselect"
	"github.com/zjrosen/encre/internal/rectselect"
	"github.com/zjrosen/encre/internal/tracing"
	"github.com/zjrosen/encre/internal/ui/editorview"
)

// wheelRows is how many rows one wheel notch scrolls.
const wheelRows = 3

// throttleFlushMsg fires when the drag throttle owes a deferred event.
type throttleFlushMsg struct {
	gen int
}

// scrollTickMsg drives one step of the auto-scroll chain.
type scrollTickMsg struct {
	gen int
}

// handleMouse routes pointer input. Wheel events scroll regardless of
// any drag; button events feed the press/motion/release state machine.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.showHelp {
		if msg.Action == tea.MouseActionPress {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.editor.ScrollUp(wheelRows)
		m.rect.Scrolled()
		return m, nil

	case msg.Button == tea.MouseButtonWheelDown:
		m.editor.ScrollDown(wheelRows)
		m.rect.Scrolled()
		return m, nil

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		return m.handlePress(msg), nil

	case msg.Action == tea.MouseActionMotion && m.dragButton:
		return m.handleMotion(msg)

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease:
		return m.handleRelease(msg), nil
	}

	return m, nil
}

// handlePress starts a gesture. A press on a block places the caret and
// arms cross-block selection; a press on empty canvas arms the
// rectangle engine. Either way any open menu closes first.
func (m Model) handlePress(msg tea.MouseMsg) Model {
	if m.bar.IsOpen() {
		m.bar.CloseAll()
		_ = m.syncMenus()
	}
	if msg.Y >= m.editor.ViewportHeight() {
		// Status bar row.
		return m
	}

	m.dragButton = true
	m.dragStart = time.Now()
	if idx := m.blockAt(msg); idx >= 0 {
		m.pressOnBlock(idx, msg)
		return m
	}

	m.hoverBlock = -1
	m.cross.Clear(crossselect.ReasonPointer)
	m.rect.Start(msg.X, msg.Y)
	return m
}

// pressOnBlock clears the previous selection, arms the cross engine on
// the pressed block, and places the caret at the hit grapheme. Blocks
// without inputs become selected instead.
func (m *Model) pressOnBlock(idx int, msg tea.MouseMsg) {
	m.cross.Clear(crossselect.ReasonPointer)
	m.texts.CollapseAll()
	m.cross.Watch(idx)
	m.hoverBlock = idx

	if input, grapheme, ok := m.editor.CaretHit(idx, msg.X, msg.Y); ok {
		m.nav.SetTo(idx, input, grapheme)
		return
	}
	if b := m.reg.Block(idx); b != nil && !b.Kind().HasInputs() {
		m.reg.SetSelected(idx, true)
	}
}

// blockAt returns the index of the block whose zone contains the event,
// or -1 when the press landed between blocks.
func (m Model) blockAt(msg tea.MouseMsg) int {
	for i := 0; i < m.reg.Len(); i++ {
		b := m.reg.Block(i)
		if b == nil {
			continue
		}
		if z := zone.Get(editorview.BlockZoneID(b.ID())); z != nil && z.InBounds(msg) {
			return i
		}
	}
	return -1
}

// handleMotion feeds drag movement through the throttle so a fast
// pointer cannot flood the selection engines.
func (m Model) handleMotion(msg tea.MouseMsg) (Model, tea.Cmd) {
	runNow, flushIn, gen := m.gate.Offer()
	if runNow {
		return m.routeDrag(msg)
	}

	held := msg
	m.pending = &held
	if flushIn > 0 {
		return m, tea.Tick(flushIn, func(time.Time) tea.Msg {
			return throttleFlushMsg{gen: gen}
		})
	}
	// A flush is already scheduled; it will pick up the latest event.
	return m, nil
}

// routeDrag forwards one drag step to whichever engine owns the
// gesture.
func (m Model) routeDrag(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.rect.Phase() != rectselect.PhaseIdle {
		m.rect.Move(msg.X, msg.Y)
		if gen, start := m.rect.ScrollIntent(); start {
			return m, m.scrollTickCmd(gen)
		}
		return m, nil
	}

	target := m.blockAt(msg)
	if target >= 0 && target != m.hoverBlock {
		m.cross.MouseOver(target, m.hoverBlock)
	}
	m.hoverBlock = target
	return m, nil
}

func (m Model) scrollTickCmd(gen int) tea.Cmd {
	return tea.Tick(m.cfg.Selection.ScrollTickInterval(), func(time.Time) tea.Msg {
		return scrollTickMsg{gen: gen}
	})
}

// handleScrollTick advances edge auto-scroll by one step and keeps the
// chain alive while the pointer stays in the zone.
func (m Model) handleScrollTick(msg scrollTickMsg) (Model, tea.Cmd) {
	delta, cont := m.rect.ScrollStep(msg.gen)
	if delta != 0 {
		m.editor.SetYOffset(m.editor.YOffset() + delta)
		m.rect.Scrolled()
	}
	if !cont {
		return m, nil
	}
	return m, m.scrollTickCmd(msg.gen)
}

// handleThrottleFlush delivers the event the throttle held back.
func (m Model) handleThrottleFlush(msg throttleFlushMsg) (Model, tea.Cmd) {
	if !m.gate.Flush(msg.gen) || m.pending == nil {
		return m, nil
	}
	ev := *m.pending
	m.pending = nil
	return m.routeDrag(ev)
}

// handleRelease finishes the gesture. Any held motion event is applied
// first so the selection matches where the pointer actually stopped.
func (m Model) handleRelease(msg tea.MouseMsg) Model {
	if !m.dragButton {
		return m
	}
	if m.pending != nil {
		ev := *m.pending
		m.pending = nil
		m, _ = m.routeDrag(ev)
	}

	m.dragButton = false
	m.finishDragSpan()
	m.rect.End()
	m.cross.Unwatch()
	m.gate.Reset()
	return m
}

// finishDragSpan emits one span covering the whole gesture, stamped with
// the press time. Clicks that never grew a selection stay silent.
func (m *Model) finishDragSpan() {
	start := m.dragStart
	m.dragStart = time.Time{}
	if start.IsZero() {
		return
	}

	var name, mode string
	switch {
	case m.rect.Phase() == rectselect.PhaseDragging:
		name, mode = tracing.SpanRectangleDrag, tracing.ModeRectangle
	case m.cross.Active():
		name, mode = tracing.SpanCrossDrag, tracing.ModeCross
	default:
		return
	}

	_, span := tracing.StartSpan(context.Background(), name, trace.WithTimestamp(start))
	span.SetAttributes(
		attribute.String(tracing.AttrSelectionMode, mode),
		attribute.Int(tracing.AttrSelectionSize, len(m.reg.SelectedIndices())),
	)
	span.End()
}
