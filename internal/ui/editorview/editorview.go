// Package editorview renders the document as a centered column of blocks
// and answers the geometry questions the selection engines ask about it.
//
// The view renders only visible rows. Block heights are tracked in a row
// index rebuilt lazily after document mutations, so hit tests and scroll
// math stay exact between frames without rendering anything.
package editorview

import (
	"strings"
	"time"

	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/encre/internal/cachemanager"
	"github.com/zjrosen/encre/internal/document"
)

const (
	// gapRows is the blank rows between adjacent blocks.
	gapRows = 1

	// renderTTL bounds how long a cold block's rendering is kept.
	renderTTL = 5 * time.Minute
)

// Model is the document column renderer. It is shared by pointer with
// the selection engines, which read its geometry through the layout
// methods while the app mutates scroll and focus.
type Model struct {
	reg   *document.Registry
	cache cachemanager.CacheManager[string, string]

	width     int
	height    int
	maxColumn int

	scroll int

	focusBlock int
	focusInput int
	caretShown bool

	layoutDirty bool
	spans       []span
	totalRows   int
}

// span is one block's vertical extent in document rows.
type span struct {
	top  int
	rows int
}

// New creates a view over the registry. columnWidth caps the content
// column; the column narrows to the viewport when the terminal is
// smaller.
func New(reg *document.Registry, columnWidth int) *Model {
	if columnWidth <= 0 {
		columnWidth = 80
	}
	return &Model{
		reg:         reg,
		cache:       cachemanager.NewInMemoryCache[string, string]("blockrender", renderTTL, 2*renderTTL),
		maxColumn:   columnWidth,
		caretShown:  true,
		layoutDirty: true,
	}
}

// SetSize updates the viewport dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.layoutDirty = true
	m.clampScroll()
}

// SetFocus records which input carries the caret.
func (m *Model) SetFocus(blockIdx, inputIdx int) {
	m.focusBlock = blockIdx
	m.focusInput = inputIdx
}

// SetCaretVisible toggles caret painting. The app hides the caret while
// a block selection is active.
func (m *Model) SetCaretVisible(v bool) {
	m.caretShown = v
}

// Invalidate marks the row index stale. Call after any mutation that
// can change a block's height: edits, splits, merges, kind changes.
func (m *Model) Invalidate() {
	m.layoutDirty = true
}

// YOffset returns the first visible document row.
func (m *Model) YOffset() int {
	return m.scroll
}

// SetYOffset scrolls to an absolute document row, clamped to content.
func (m *Model) SetYOffset(offset int) {
	m.scroll = offset
	m.clampScroll()
}

// ScrollUp scrolls up by n rows.
func (m *Model) ScrollUp(n int) {
	m.scroll -= n
	m.clampScroll()
}

// ScrollDown scrolls down by n rows.
func (m *Model) ScrollDown(n int) {
	m.scroll += n
	m.clampScroll()
}

// AtTop reports whether the view is scrolled to the top.
func (m *Model) AtTop() bool {
	return m.scroll == 0
}

// AtBottom reports whether the view is scrolled to the bottom.
func (m *Model) AtBottom() bool {
	return m.scroll >= m.MaxScrollOffset()
}

// TotalRows returns the document's height in rows, gaps included.
func (m *Model) TotalRows() int {
	m.ensureLayout()
	return m.totalRows
}

// MaxScrollOffset returns the highest valid scroll offset.
func (m *Model) MaxScrollOffset() int {
	m.ensureLayout()
	max := m.totalRows - m.height
	if max < 0 {
		return 0
	}
	return max
}

// ScrollBlockIntoView scrolls the minimum distance that makes block idx
// fully visible. Blocks taller than the viewport align to their top.
func (m *Model) ScrollBlockIntoView(idx int) {
	top, bottom, ok := m.BlockRowRange(idx)
	if !ok {
		return
	}
	switch {
	case top < m.scroll:
		m.scroll = top
	case bottom >= m.scroll+m.height:
		m.scroll = bottom - m.height + 1
		if m.scroll > top {
			m.scroll = top
		}
	}
	m.clampScroll()
}

func (m *Model) clampScroll() {
	if m.scroll < 0 {
		m.scroll = 0
		return
	}
	if max := m.MaxScrollOffset(); m.scroll > max {
		m.scroll = max
	}
}

// View renders the visible slice of the document. Each visible block's
// rows are wrapped in a bubblezone mark covering exactly its column
// cells, so presses resolve to blocks without coordinate bookkeeping.
func (m *Model) View() string {
	m.ensureLayout()
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	margin := strings.Repeat(" ", m.marginLeft())
	lines := make([]string, 0, m.height)
	row := m.scroll
	end := m.scroll + m.height

	for i := 0; i < m.reg.Len() && row < end; i++ {
		sp := m.spans[i]
		if sp.top+sp.rows <= row {
			continue
		}
		if sp.top >= end {
			break
		}

		for row < sp.top && row < end {
			lines = append(lines, "")
			row++
		}
		if row >= end {
			break
		}

		rows := m.blockRows(i)
		lo := row - sp.top
		hi := sp.rows
		if end-sp.top < hi {
			hi = end - sp.top
		}

		// Mark only the visible slice so both zone markers stay in
		// frame while the block is partially scrolled off.
		content := strings.Join(rows[lo:hi], "\n")
		marked := zone.Mark(BlockZoneID(m.reg.Block(i).ID()), content)
		for _, ln := range strings.Split(marked, "\n") {
			lines = append(lines, margin+ln)
		}
		row = sp.top + hi
	}

	for len(lines) < m.height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
