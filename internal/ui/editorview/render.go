package editorview

import (
	"context"
	"hash/fnv"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/encre/internal/document"
	"github.com/zjrosen/encre/internal/ui/styles"
)

// emptyHint is shown on a focused empty paragraph.
const emptyHint = "Type / for blocks"

// blockRows returns a block's styled rows. The count always equals the
// block's layout height. Cold blocks, those without focus or any
// selection, render through the cache keyed by content so scrolling
// does not re-style the whole document.
func (m *Model) blockRows(i int) []string {
	b := m.reg.Block(i)
	if !m.cacheable(i, b) {
		return m.renderBlock(i, b)
	}
	ctx := context.Background()
	key := m.renderKey(b)
	if joined, ok := m.cache.Get(ctx, key); ok {
		return strings.Split(joined, "\n")
	}
	rows := m.renderBlock(i, b)
	m.cache.Set(ctx, key, strings.Join(rows, "\n"), renderTTL)
	return rows
}

// cacheable reports whether a block's rows depend only on its content.
// Focus, caret, and selections are not part of the cache key, so blocks
// carrying them render fresh every frame.
func (m *Model) cacheable(i int, b *document.Block) bool {
	if i == m.focusBlock || b.Selected() {
		return false
	}
	for _, in := range b.Inputs() {
		if in.HasSelection() {
			return false
		}
	}
	return true
}

// renderKey fingerprints everything a cold block's rows depend on.
func (m *Model) renderKey(b *document.Block) string {
	h := fnv.New64a()
	io.WriteString(h, string(b.Kind()))
	io.WriteString(h, "\x00")
	io.WriteString(h, strconv.Itoa(m.colWidth()))
	for _, in := range b.Inputs() {
		io.WriteString(h, "\x00")
		io.WriteString(h, in.Text())
	}
	return b.ID().String() + ":" + strconv.FormatUint(h.Sum64(), 16)
}

func (m *Model) renderBlock(i int, b *document.Block) []string {
	cw := m.colWidth()
	if !b.Kind().HasInputs() {
		if b.Selected() {
			// One cell shorter: the indicator bar takes the first cell.
			return []string{washRow(strings.Repeat("─", cw-1), cw)}
		}
		return []string{styles.DividerStyle.Render(strings.Repeat("─", cw))}
	}
	if b.Selected() {
		return m.renderSelected(b)
	}

	focused := i == m.focusBlock
	if focused && b.Kind() == document.KindParagraph && b.IsEmpty() {
		return []string{m.padRow(m.renderEmptyFocused())}
	}

	base := kindStyle(b.Kind())
	w := m.textWidth(b.Kind())
	var rows []string
	for ii, in := range b.Inputs() {
		caret := -1
		if focused && m.caretShown && ii == m.focusInput {
			caret = in.Caret()
		}
		selLo, selHi := -1, -1
		if in.HasSelection() {
			selLo, selHi = in.SelectionSpan()
		}

		firstRow := true
		lineBase := 0
		for _, line := range document.SplitLines(in.Text()) {
			count := document.GraphemeCount(line)
			segs := wrapSpans(line, w)
			for si, sg := range segs {
				rowText := document.SliceByGraphemes(line, sg.start, sg.end)
				a := lineBase + sg.start
				rowCount := sg.end - sg.start

				localCaret := -1
				if caret >= 0 {
					switch {
					case caret >= a && caret < a+rowCount:
						localCaret = caret - a
					case si == len(segs)-1 && caret == lineBase+count:
						localCaret = rowCount
					}
				}

				localLo, localHi := -1, -1
				if selLo >= 0 {
					lo, hi := selLo, selHi
					if lo < a {
						lo = a
					}
					if hi > a+rowCount {
						hi = a + rowCount
					}
					if lo < hi {
						localLo, localHi = lo-a, hi-a
					}
				}

				row := rowPrefix(b.Kind(), firstRow) + paintRow(rowText, base, localLo, localHi, localCaret)

				// Fill the text area with the base style so kinds with a
				// background paint the whole column, not just the text.
				fill := w - rowWidth(rowText)
				if localCaret == rowCount {
					fill--
				}
				if fill > 0 {
					row += base.Render(strings.Repeat(" ", fill))
				}

				rows = append(rows, m.padRow(row))
				firstRow = false
			}
			lineBase += count + 1
		}
	}
	if len(rows) == 0 {
		rows = []string{m.padRow("")}
	}
	return rows
}

// renderSelected paints a block's rows over the selection wash with the
// indicator bar in the leftmost cell. Rows are plain text: nesting
// styled runs inside a background render would reset it mid-row.
func (m *Model) renderSelected(b *document.Block) []string {
	w := m.textWidth(b.Kind())
	var rows []string
	for _, in := range b.Inputs() {
		first := true
		for _, line := range document.SplitLines(in.Text()) {
			for _, sg := range wrapSpans(line, w) {
				plain := plainPrefix(b.Kind(), first) + document.SliceByGraphemes(line, sg.start, sg.end)
				rows = append(rows, washRow(expandTabs(plain), m.colWidth()))
				first = false
			}
		}
	}
	if len(rows) == 0 {
		rows = []string{washRow("", m.colWidth())}
	}
	return rows
}

func (m *Model) renderEmptyFocused() string {
	row := ""
	if m.caretShown {
		row = styles.CaretStyle.Render(" ")
	}
	return row + styles.PlaceholderStyle.Render(emptyHint)
}

// paintRow styles one row of text. selLo and selHi bound a selection in
// row-local grapheme indices, caretAt is the caret's grapheme or -1. A
// caret equal to the grapheme count renders as a trailing reverse cell.
func paintRow(rowText string, base lipgloss.Style, selLo, selHi, caretAt int) string {
	count := document.GraphemeCount(rowText)
	hasSel := selLo >= 0 && selLo < selHi
	caretIn := caretAt >= 0 && caretAt < count

	var sb strings.Builder
	if !hasSel && !caretIn {
		sb.WriteString(base.Render(expandTabs(rowText)))
	} else {
		cuts := []int{0, count}
		if hasSel {
			cuts = append(cuts, selLo, selHi)
		}
		if caretIn {
			cuts = append(cuts, caretAt, caretAt+1)
		}
		sort.Ints(cuts)

		sel := base.Background(styles.TextSelectionBgColor)
		for k := 0; k+1 < len(cuts); k++ {
			lo, hi := cuts[k], cuts[k+1]
			if lo >= hi {
				continue
			}
			part := expandTabs(document.SliceByGraphemes(rowText, lo, hi))
			switch {
			case caretIn && lo == caretAt:
				sb.WriteString(styles.CaretStyle.Render(part))
			case hasSel && lo >= selLo && hi <= selHi:
				sb.WriteString(sel.Render(part))
			default:
				sb.WriteString(base.Render(part))
			}
		}
	}
	if caretAt == count {
		sb.WriteString(styles.CaretStyle.Render(" "))
	}
	return sb.String()
}

// expandTabs rewrites tab clusters as spaces. clusterWidth assigns tabs
// the same width, so wrap math and painted cells agree.
func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// padRow pads a styled row with spaces to the full column width so the
// block's zone covers the column and presses right of the text resolve.
func (m *Model) padRow(row string) string {
	pad := m.colWidth() - ansi.StringWidth(row)
	if pad <= 0 {
		return row
	}
	return row + strings.Repeat(" ", pad)
}

// washRow renders one selected-block row.
func washRow(plain string, colWidth int) string {
	return styles.SelectionIndicatorStyle.Render("▍") +
		styles.SelectedBlockStyle.Render(runewidth.FillRight(plain, colWidth-1))
}

func kindStyle(k document.Kind) lipgloss.Style {
	switch k {
	case document.KindHeading1:
		return styles.Heading1Style
	case document.KindHeading2:
		return styles.Heading2Style
	case document.KindHeading3:
		return styles.Heading3Style
	case document.KindQuote:
		return styles.QuoteStyle
	case document.KindCode:
		return styles.CodeStyle
	default:
		return lipgloss.NewStyle()
	}
}

func rowPrefix(k document.Kind, first bool) string {
	switch k {
	case document.KindQuote:
		return styles.QuoteBarStyle.Render("│ ")
	case document.KindList:
		if first {
			return styles.BulletStyle.Render("• ")
		}
		return "  "
	default:
		return ""
	}
}

// plainPrefix is rowPrefix without styling, for selected-block rows.
func plainPrefix(k document.Kind, first bool) string {
	switch k {
	case document.KindQuote:
		return "│ "
	case document.KindList:
		if first {
			return "• "
		}
		return "  "
	default:
		return ""
	}
}
