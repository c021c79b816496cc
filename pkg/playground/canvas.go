package playground

import (
	"strings"

	"github.com/dshills/goterm"
	"github.com/mattn/go-runewidth"
)

// Canvas is the drawing surface a demo renders onto.
type Canvas interface {
	DrawText(x, y int, text string, fg, bg goterm.Color, style goterm.Style)
	Size() (width, height int)
}

type screenCanvas struct {
	screen *goterm.Screen
}

func (c screenCanvas) DrawText(x, y int, text string, fg, bg goterm.Color, style goterm.Style) {
	c.screen.DrawText(x, y, text, fg, bg, style)
}

func (c screenCanvas) Size() (int, int) { return c.screen.Size() }

// Colors
var (
	colorTitle = goterm.ColorRGB(100, 200, 255)
	colorMuted = goterm.ColorRGB(150, 150, 150)
	colorText  = goterm.ColorRGB(220, 220, 220)
)

// fit truncates s to width display cells and pads it with spaces to exactly
// width cells. Wide runes count twice.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// bar draws a horizontal gauge of width cells filled to percent.
func bar(percent float64, width int) string {
	filled := int(percent/100*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
