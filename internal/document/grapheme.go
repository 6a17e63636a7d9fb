package document

// Grapheme cluster helpers. Text lives in Go strings (bytes), the caret
// moves in graphemes, and the renderer measures display columns; these
// functions translate between the three units.

import (
	"strings"

	"github.com/rivo/uniseg"
)

// GraphemeCount returns the number of grapheme clusters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Graphemes splits s into its grapheme clusters.
func Graphemes(s string) []string {
	var out []string
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		out = append(out, cluster)
		s = rest
		state = newState
	}
	return out
}

// GraphemeAt returns the cluster at the given grapheme index, or "" when
// the index is out of bounds.
func GraphemeAt(s string, idx int) string {
	if idx < 0 {
		return ""
	}
	i := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		if i == idx {
			return cluster
		}
		i++
		s = rest
		state = newState
	}
	return ""
}

// GraphemeToByteOffset converts a grapheme index to a byte offset.
// Indexes past the end clamp to len(s).
func GraphemeToByteOffset(s string, idx int) int {
	if idx <= 0 {
		return 0
	}
	i := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		_, tail, _, newState := uniseg.StepString(rest, state)
		i++
		if i == idx {
			return len(s) - len(tail)
		}
		rest = tail
		state = newState
	}
	return len(s)
}

// SliceByGraphemes returns the substring covering grapheme indexes
// [start, end).
func SliceByGraphemes(s string, start, end int) string {
	if start >= end {
		return ""
	}
	lo := GraphemeToByteOffset(s, start)
	hi := GraphemeToByteOffset(s, end)
	return s[lo:hi]
}

// InsertAtGrapheme inserts ins before the grapheme at idx.
func InsertAtGrapheme(s string, idx int, ins string) string {
	at := GraphemeToByteOffset(s, idx)
	return s[:at] + ins + s[at:]
}

// DeleteGraphemeRange removes grapheme indexes [start, end) from s.
func DeleteGraphemeRange(s string, start, end int) string {
	if start >= end {
		return s
	}
	lo := GraphemeToByteOffset(s, start)
	hi := GraphemeToByteOffset(s, end)
	return s[:lo] + s[hi:]
}

// StringWidth returns the display width of s in terminal columns.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}

// PrefixWidth returns the display width of the first n graphemes of s.
// The renderer uses it to place the caret cell.
func PrefixWidth(s string, n int) int {
	if n <= 0 {
		return 0
	}
	width := 0
	i := 0
	state := -1
	for len(s) > 0 && i < n {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		width += uniseg.StringWidth(cluster)
		i++
		s = rest
		state = newState
	}
	return width
}

// GraphemeAtColumn maps a display column to the index of the grapheme
// occupying it, clamping past-the-end columns to the grapheme count.
// Clicking the right half of a wide cluster still lands on that cluster.
func GraphemeAtColumn(s string, col int) int {
	if col < 0 {
		return 0
	}
	width := 0
	i := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		w := uniseg.StringWidth(cluster)
		if col < width+w {
			return i
		}
		width += w
		i++
		s = rest
		state = newState
	}
	return i
}

// SplitLines splits s on newlines for row-by-row rendering. An empty
// string yields a single empty line so every input renders at least
// one row.
func SplitLines(s string) []string {
	return strings.Split(s, "\n")
}
