// Package overlay provides utilities for rendering modal content
// on top of background views without clearing the screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	// Center places the overlay in the center of the viewport.
	Center Position = iota
	// Top places the overlay at the top center of the viewport.
	Top
	// Bottom places the overlay at the bottom center of the viewport.
	Bottom
)

// Config controls overlay rendering behavior.
type Config struct {
	// Width is the total viewport width.
	Width int
	// Height is the total viewport height.
	Height int
	// Position specifies where to place the overlay (Center, Top, Bottom).
	Position Position
	// PadX adds horizontal padding from edges (unused for Center position).
	PadX int
	// PadY adds vertical padding from edges (for Top/Bottom positions).
	PadY int
}

// Place renders foreground content on top of background.
// Uses ANSI-aware string manipulation to preserve styling in both
// the foreground and background content.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	startX, startY := calculatePosition(cfg, lipgloss.Width(fg), len(fgLines))
	return compose(bg, fgLines, startX, startY, cfg.Width, cfg.Height)
}

// PlaceAt renders foreground content with its top-left corner at x, y
// in viewport coordinates, shifting the content back inside the
// viewport when it would spill past an edge. Menus anchored to a block
// use this so they stay fully visible near the bottom of the screen.
func PlaceAt(width, height, x, y int, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")

	if over := x + lipgloss.Width(fg) - width; over > 0 {
		x -= over
	}
	if over := y + len(fgLines) - height; over > 0 {
		y -= over
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return compose(bg, fgLines, x, y, width, height)
}

// Frame draws a hollow rectangle over the background between cells
// (x1, y1) and (x2, y2) inclusive, in viewport coordinates. Only the
// border cells are overwritten, so content inside the frame stays
// visible. The drag rectangle during mouse selection renders this way.
// Coordinates may arrive in any order and are clamped to the viewport.
func Frame(width, height, x1, y1, x2, y2 int, style lipgloss.Style, bg string) string {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if x2 >= width {
		x2 = width - 1
	}
	if y2 >= height {
		y2 = height - 1
	}
	if x2 < x1 || y2 < y1 {
		return bg
	}

	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, strings.Repeat(" ", width))
	}

	w := x2 - x1 + 1
	h := y2 - y1 + 1
	side := style.Render("│")

	switch {
	case h == 1:
		bgLines[y1] = spliceLine(bgLines[y1], style.Render(strings.Repeat("─", w)), x1)
	case w == 1:
		for y := y1; y <= y2; y++ {
			bgLines[y] = spliceLine(bgLines[y], side, x1)
		}
	default:
		run := strings.Repeat("─", w-2)
		bgLines[y1] = spliceLine(bgLines[y1], style.Render("╭"+run+"╮"), x1)
		bgLines[y2] = spliceLine(bgLines[y2], style.Render("╰"+run+"╯"), x1)
		for y := y1 + 1; y < y2; y++ {
			bgLines[y] = spliceLine(bgLines[y], side, x1)
			bgLines[y] = spliceLine(bgLines[y], side, x2)
		}
	}

	return strings.Join(bgLines, "\n")
}

// compose lays fgLines over the background starting at startX, startY.
// The background is padded to the viewport height first so placement
// near the bottom never falls off the buffer.
func compose(bg string, fgLines []string, startX, startY, width, height int) string {
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, strings.Repeat(" ", width))
	}

	for i, fgLine := range fgLines {
		bgY := startY + i
		if bgY >= len(bgLines) {
			break
		}
		bgLines[bgY] = spliceLine(bgLines[bgY], fgLine, startX)
	}

	return strings.Join(bgLines, "\n")
}

// spliceLine embeds fgLine into bgLine at column x using ANSI-aware
// truncation to preserve styling on both sides of the splice.
func spliceLine(bgLine, fgLine string, x int) string {
	// Left portion of the background before the overlay.
	leftPart := ansi.Truncate(bgLine, x, "")
	if leftWidth := ansi.StringWidth(leftPart); leftWidth < x {
		leftPart += strings.Repeat(" ", x-leftWidth)
	}

	// Right portion of the background after the overlay.
	// TruncateLeft removes chars from the left, keeping the right.
	endX := x + ansi.StringWidth(fgLine)
	var rightPart string
	if endX < ansi.StringWidth(bgLine) {
		rightPart = ansi.TruncateLeft(bgLine, endX, "")
	}

	return leftPart + fgLine + rightPart
}

// calculatePosition determines the x,y starting coordinates for the overlay.
func calculatePosition(cfg Config, fgWidth, fgHeight int) (x, y int) {
	switch cfg.Position {
	case Top:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.PadY
	case Bottom:
		x = (cfg.Width - fgWidth) / 2
		y = cfg.Height - fgHeight - cfg.PadY
	default: // Center
		x = (cfg.Width - fgWidth) / 2
		y = (cfg.Height - fgHeight) / 2
	}

	// Ensure non-negative
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
