package document

// Markdown is the storage form of a document. The reader recognizes the
// handful of line shapes that map onto block kinds; anything else is a
// paragraph. Inline marks pass through untouched.

import (
	"strings"
)

// ParseString reads markdown-shaped text into a registry. Parsing never
// fails: unrecognized content becomes paragraph blocks, and an empty
// document seeds a single default block.
func ParseString(s string) *Registry {
	lines := SplitLines(strings.ReplaceAll(s, "\r\n", "\n"))
	var blocks []*Block

	for i := 0; i < len(lines); {
		line := lines[i]
		trimmed := strings.TrimRight(line, " \t")

		switch {
		case trimmed == "":
			i++

		case strings.HasPrefix(trimmed, "```"):
			b, next := parseFence(lines, i)
			blocks = append(blocks, b)
			i = next

		case isRule(trimmed):
			blocks = append(blocks, NewBlock(KindDivider))
			i++

		case strings.HasPrefix(trimmed, "### "):
			blocks = append(blocks, NewBlock(KindHeading3, strings.TrimPrefix(trimmed, "### ")))
			i++

		case strings.HasPrefix(trimmed, "## "):
			blocks = append(blocks, NewBlock(KindHeading2, strings.TrimPrefix(trimmed, "## ")))
			i++

		case strings.HasPrefix(trimmed, "# "):
			blocks = append(blocks, NewBlock(KindHeading1, strings.TrimPrefix(trimmed, "# ")))
			i++

		case isListItem(trimmed):
			var items []string
			for i < len(lines) && isListItem(strings.TrimRight(lines[i], " \t")) {
				items = append(items, strings.TrimRight(lines[i], " \t")[2:])
				i++
			}
			blocks = append(blocks, NewBlock(KindList, items...))

		case isQuoteLine(trimmed):
			var quoted []string
			for i < len(lines) && isQuoteLine(strings.TrimRight(lines[i], " \t")) {
				quoted = append(quoted, stripQuote(strings.TrimRight(lines[i], " \t")))
				i++
			}
			blocks = append(blocks, NewBlock(KindQuote, strings.Join(quoted, "\n")))

		default:
			var plain []string
			for i < len(lines) {
				l := strings.TrimRight(lines[i], " \t")
				if l == "" || startsBlock(l) {
					break
				}
				plain = append(plain, l)
				i++
			}
			blocks = append(blocks, NewBlock(KindParagraph, strings.Join(plain, "\n")))
		}
	}

	return NewRegistry(blocks...)
}

// Serialize renders the registry back to markdown. Blocks are separated
// by blank lines; a document holding only one empty default block
// serializes to the empty string.
func Serialize(r *Registry) string {
	return SerializeBlocks(r.Blocks())
}

// SerializeBlocks renders a slice of blocks to markdown. The clipboard
// export of a block selection goes through here so copied text round
// trips as a valid document fragment.
func SerializeBlocks(blocks []*Block) string {
	var parts []string
	for _, b := range blocks {
		parts = append(parts, serializeBlock(b))
	}

	out := strings.Join(parts, "\n\n")
	if strings.TrimSpace(out) == "" {
		return ""
	}
	return out + "\n"
}

func serializeBlock(b *Block) string {
	switch b.Kind() {
	case KindHeading1:
		return prefixLines(b.PlainText(), "# ")
	case KindHeading2:
		return prefixLines(b.PlainText(), "## ")
	case KindHeading3:
		return prefixLines(b.PlainText(), "### ")
	case KindList:
		items := make([]string, 0, b.InputCount())
		for _, in := range b.Inputs() {
			items = append(items, "- "+in.Text())
		}
		return strings.Join(items, "\n")
	case KindQuote:
		return prefixLines(b.PlainText(), "> ")
	case KindCode:
		return "```" + b.fenceInfo + "\n" + b.PlainText() + "\n```"
	case KindDivider:
		return "---"
	default:
		return b.PlainText()
	}
}

func parseFence(lines []string, start int) (*Block, int) {
	info := strings.TrimPrefix(strings.TrimRight(lines[start], " \t"), "```")
	var body []string
	i := start + 1
	for ; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == "```" {
			i++
			break
		}
		body = append(body, lines[i])
	}
	b := NewBlock(KindCode, strings.Join(body, "\n"))
	b.fenceInfo = info
	return b, i
}

func prefixLines(s, prefix string) string {
	lines := SplitLines(s)
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func isRule(line string) bool {
	if len(line) < 3 {
		return false
	}
	for _, r := range line {
		if r != '-' {
			return false
		}
	}
	return true
}

func isListItem(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ")
}

func isQuoteLine(line string) bool {
	return line == ">" || strings.HasPrefix(line, "> ")
}

func stripQuote(line string) string {
	if line == ">" {
		return ""
	}
	return strings.TrimPrefix(line, "> ")
}

func startsBlock(line string) bool {
	return strings.HasPrefix(line, "```") ||
		strings.HasPrefix(line, "# ") ||
		strings.HasPrefix(line, "## ") ||
		strings.HasPrefix(line, "### ") ||
		isRule(line) ||
		isListItem(line) ||
		isQuoteLine(line)
}
