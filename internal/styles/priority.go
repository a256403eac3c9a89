package styles

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// hexColorRegex validates hex color codes (#RRGGBB or #RRGGBBAA with alpha)
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)

// IsValidHexColor checks if a string is a valid hex color code.
func IsValidHexColor(hex string) bool {
	return hexColorRegex.MatchString(hex)
}

// Sticky note colors by priority name.
var priorityColors = map[string]string{
	"high":   "#FCA5A5", // pink
	"medium": "#FDE68A", // yellow
	"low":    "#A7F3D0", // mint
}

// completedColor is the paper color of finished notes.
const completedColor = "#D1D5DB"

// SetPriorityColor overrides the note color for a priority.
func SetPriorityColor(priority, hex string) error {
	if _, ok := priorityColors[priority]; !ok {
		return fmt.Errorf("unknown priority %q", priority)
	}
	if !IsValidHexColor(hex) {
		return fmt.Errorf("invalid color %q for %s", hex, priority)
	}
	priorityColors[priority] = hex
	return nil
}

// PriorityColor returns the note color for a priority.
func PriorityColor(priority string) lipgloss.Color {
	if c, ok := priorityColors[priority]; ok {
		return lipgloss.Color(c)
	}
	return lipgloss.Color(priorityColors["medium"])
}

// PriorityBadge renders a small colored label for a priority.
func PriorityBadge(priority string) string {
	bg := priorityColors[priority]
	if bg == "" {
		bg = priorityColors["medium"]
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(TextOn(bg)).
		Padding(0, 1).
		Bold(true).
		Render(priority)
}

// Card returns the style of a note card of the given inner width.
func Card(priority string, completed, selected bool, width int) lipgloss.Style {
	bg := priorityColors[priority]
	if bg == "" {
		bg = priorityColors["medium"]
	}
	if completed {
		bg = completedColor
	}
	s := lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Background(lipgloss.Color(bg)).
		Foreground(TextOn(bg)).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(bg))
	if completed {
		s = s.Strikethrough(true).Faint(true)
	}
	if selected {
		s = s.Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(Primary)
	}
	return s
}
