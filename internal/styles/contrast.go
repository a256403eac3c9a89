package styles

import (
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// RGB is a color with channels in 0-255.
type RGB struct {
	R, G, B float64
}

var (
	darkText  = lipgloss.Color("#111827")
	lightText = lipgloss.Color("#F9FAFB")
)

// TextOn picks the dark or light text color with the better contrast on bg.
// Invalid colors get dark text.
func TextOn(bg string) lipgloss.Color {
	c, ok := parseHex(bg)
	if !ok {
		return darkText
	}
	dark, _ := parseHex(string(darkText))
	light, _ := parseHex(string(lightText))
	if contrastRatio(light, c) > contrastRatio(dark, c) {
		return lightText
	}
	return darkText
}

func parseHex(hex string) (RGB, bool) {
	if !IsValidHexColor(hex) {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(hex[1:7], 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: float64(v >> 16 & 0xff), G: float64(v >> 8 & 0xff), B: float64(v & 0xff)}, true
}

func contrastRatio(fg, bg RGB) float64 {
	l1 := relativeLuminance(fg)
	l2 := relativeLuminance(bg)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(c RGB) float64 {
	r := linearize(c.R / 255.0)
	g := linearize(c.G / 255.0)
	b := linearize(c.B / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}
