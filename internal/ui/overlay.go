// Package ui provides shared UI components and helpers for the TUI.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DimStyle is applied to the board behind a modal. Existing ANSI codes are
// stripped first because SGR 2 (faint) doesn't reliably combine with colors.
var DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

// maxLineWidth returns the maximum visual width of the given lines.
func maxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// dimLine strips ANSI codes and applies dim gray styling.
func dimLine(s string) string {
	return DimStyle.Render(ansi.Strip(s))
}

// compositeRow overlays modalLine onto bgLine at column startX.
func compositeRow(bgLine, modalLine string, startX, modalWidth, totalWidth int) string {
	var b strings.Builder

	plain := ansi.Strip(bgLine)
	bgWidth := ansi.StringWidth(plain)

	if startX > 0 {
		left := ansi.Truncate(plain, startX, "")
		b.WriteString(DimStyle.Render(left))
		if w := ansi.StringWidth(left); w < startX {
			b.WriteString(strings.Repeat(" ", startX-w))
		}
	}

	b.WriteString(modalLine)

	if right := startX + modalWidth; right < totalWidth && bgWidth > right {
		b.WriteString(DimStyle.Render(ansi.Cut(plain, right, bgWidth)))
	}
	return b.String()
}

// ModalOrigin returns the top-left cell where OverlayModal places modal
// inside a width x height screen.
func ModalOrigin(modal string, width, height int) (x, y int) {
	lines := strings.Split(modal, "\n")
	x = max((width-maxLineWidth(lines))/2, 0)
	y = max((height-len(lines))/2, 0)
	return x, y
}

// OverlayModal centers modal on top of a dimmed background.
func OverlayModal(background, modal string, width, height int) string {
	bgLines := strings.Split(background, "\n")
	modalLines := strings.Split(modal, "\n")
	modalWidth := maxLineWidth(modalLines)
	startX, startY := ModalOrigin(modal, width, height)

	out := make([]string, 0, height)
	for y := 0; y < height; y++ {
		bg := ""
		if y < len(bgLines) {
			bg = bgLines[y]
		}
		if row := y - startY; row >= 0 && row < len(modalLines) {
			out = append(out, compositeRow(bg, modalLines[row], startX, modalWidth, width))
		} else {
			out = append(out, dimLine(bg))
		}
	}
	return strings.Join(out, "\n")
}
