package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalFramebufferSize returns the framebuffer size that exactly covers
// a terminal of cols x rows using half-block cells.
func TerminalFramebufferSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Each cell shows two stacked pixels with ▀ (fg = upper pixel,
// bg = lower pixel), so the framebuffer height should be 2x the area height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topRow := (row - area.Min.Y) * 2
		if topRow >= fb.Height {
			break
		}

		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.rowPixel(x, topRow)),
					Bg: rgbaToColor(fb.rowPixel(x, topRow+1)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}
