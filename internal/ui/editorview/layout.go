package editorview

import (
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/encre/internal/document"
)

// seg is one wrapped row of a logical line, as a half-open grapheme
// range [start, end) into the line's clusters.
type seg struct {
	start int
	end   int
}

// tabWidth is the display width of a tab cluster. Tabs are expanded to
// spaces at paint time so the terminal never applies its own tab stops.
const tabWidth = 4

// clusterWidth returns the cells one grapheme cluster occupies.
func clusterWidth(cl string) int {
	if cl == "\t" {
		return tabWidth
	}
	return runewidth.StringWidth(cl)
}

// rowWidth returns the cells a row of clusters occupies.
func rowWidth(s string) int {
	w := 0
	for _, cl := range document.Graphemes(s) {
		w += clusterWidth(cl)
	}
	return w
}

// wrapSpans breaks a logical line into rows of at most width cells.
// Wrapping is per grapheme cluster with no word boundaries, matching
// how the caret column maps back to a cluster index. An empty line
// still occupies one row.
func wrapSpans(line string, width int) []seg {
	if width <= 0 {
		return []seg{{0, 0}}
	}
	clusters := document.Graphemes(line)
	segs := make([]seg, 0, 1)
	start, w := 0, 0
	for idx, cl := range clusters {
		cw := clusterWidth(cl)
		if w+cw > width && w > 0 {
			segs = append(segs, seg{start, idx})
			start = idx
			w = 0
		}
		w += cw
	}
	return append(segs, seg{start, len(clusters)})
}

// columnCluster maps a display column inside a row to the cluster
// occupying it, using the same widths the wrapper used. Columns past
// the text clamp to the cluster count.
func columnCluster(rowText string, col int) int {
	if col < 0 {
		return 0
	}
	clusters := document.Graphemes(rowText)
	w := 0
	for i, cl := range clusters {
		cw := clusterWidth(cl)
		if col < w+cw {
			return i
		}
		w += cw
	}
	return len(clusters)
}

// colWidth returns the content column width in cells.
func (m *Model) colWidth() int {
	if m.width > 0 && m.width < m.maxColumn {
		return m.width
	}
	return m.maxColumn
}

// marginLeft returns the blank cells left of the column.
func (m *Model) marginLeft() int {
	margin := (m.width - m.colWidth()) / 2
	if margin < 0 {
		return 0
	}
	return margin
}

// kindPrefixWidth returns the cells a kind's row prefix occupies, the
// list bullet or the quote bar.
func kindPrefixWidth(k document.Kind) int {
	switch k {
	case document.KindList, document.KindQuote:
		return 2
	default:
		return 0
	}
}

// textWidth returns the cells available to a block's text per row. One
// cell is held back so the caret can sit past the last cluster without
// forcing an extra wrap.
func (m *Model) textWidth(k document.Kind) int {
	w := m.colWidth() - kindPrefixWidth(k) - 1
	if w < 1 {
		return 1
	}
	return w
}

// blockHeight returns a block's height in rows at the current width.
func (m *Model) blockHeight(b *document.Block) int {
	if !b.Kind().HasInputs() {
		return 1
	}
	w := m.textWidth(b.Kind())
	rows := 0
	for _, in := range b.Inputs() {
		for _, line := range document.SplitLines(in.Text()) {
			rows += len(wrapSpans(line, w))
		}
	}
	if rows == 0 {
		return 1
	}
	return rows
}

// ensureLayout rebuilds the row index if a mutation invalidated it. A
// block count change rebuilds even without Invalidate, so an insert or
// remove can never leave the index pointing past the registry.
func (m *Model) ensureLayout() {
	if !m.layoutDirty && len(m.spans) == m.reg.Len() {
		return
	}
	n := m.reg.Len()
	m.spans = m.spans[:0]
	row := 0
	for i := 0; i < n; i++ {
		if i > 0 {
			row += gapRows
		}
		h := m.blockHeight(m.reg.Block(i))
		m.spans = append(m.spans, span{top: row, rows: h})
		row += h
	}
	m.totalRows = row
	m.layoutDirty = false
	m.clampScrollLocked()
}

// clampScrollLocked clamps without re-entering ensureLayout.
func (m *Model) clampScrollLocked() {
	if m.scroll < 0 {
		m.scroll = 0
		return
	}
	max := m.totalRows - m.height
	if max < 0 {
		max = 0
	}
	if m.scroll > max {
		m.scroll = max
	}
}

// ColumnBounds returns the first and last viewport column of the
// content column.
func (m *Model) ColumnBounds() (left, right int) {
	left = m.marginLeft()
	return left, left + m.colWidth() - 1
}

// BlockIndexAtRow returns the block covering a document row, or -1 for
// gap rows and rows past the document.
func (m *Model) BlockIndexAtRow(docRow int) int {
	m.ensureLayout()
	if docRow < 0 {
		return -1
	}
	for i, sp := range m.spans {
		if docRow < sp.top {
			return -1
		}
		if docRow < sp.top+sp.rows {
			return i
		}
	}
	return -1
}

// BlockRowRange returns a block's first and last document row.
func (m *Model) BlockRowRange(idx int) (top, bottom int, ok bool) {
	m.ensureLayout()
	if idx < 0 || idx >= len(m.spans) {
		return 0, 0, false
	}
	sp := m.spans[idx]
	return sp.top, sp.top + sp.rows - 1, true
}

// ViewportHeight returns the visible row count.
func (m *Model) ViewportHeight() int {
	return m.height
}

// ScrollOffset returns the first visible document row.
func (m *Model) ScrollOffset() int {
	return m.scroll
}

// CaretHit maps a viewport press at (x, y) inside block blockIdx to the
// input and grapheme index under it. Columns left of the text snap to
// the row start, columns past it snap to the row end.
func (m *Model) CaretHit(blockIdx, x, y int) (inputIdx, grapheme int, ok bool) {
	m.ensureLayout()
	if blockIdx < 0 || blockIdx >= len(m.spans) {
		return 0, 0, false
	}
	b := m.reg.Block(blockIdx)
	if !b.Kind().HasInputs() {
		return 0, 0, false
	}

	rowInBlock := y + m.scroll - m.spans[blockIdx].top
	if rowInBlock < 0 || rowInBlock >= m.spans[blockIdx].rows {
		return 0, 0, false
	}

	col := x - m.marginLeft() - kindPrefixWidth(b.Kind())
	if col < 0 {
		col = 0
	}

	w := m.textWidth(b.Kind())
	row := 0
	for ii, in := range b.Inputs() {
		lineBase := 0
		for _, line := range document.SplitLines(in.Text()) {
			for _, sg := range wrapSpans(line, w) {
				if row == rowInBlock {
					rowText := document.SliceByGraphemes(line, sg.start, sg.end)
					return ii, lineBase + sg.start + columnCluster(rowText, col), true
				}
				row++
			}
			lineBase += document.GraphemeCount(line) + 1
		}
	}
	return 0, 0, false
}
