package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// CellRows returns the framebuffer height that fills a terminal with the
// given number of rows. Each cell shows two pixels stacked vertically.
func CellRows(termRows int) int {
	return termRows * 2
}

// Draw presents the framebuffer on a terminal screen. Each cell is an upper
// half block with the top pixel as foreground and the one below as
// background.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1
		if topY >= fb.Height {
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
					Fg: PackedRGBA(fb.At(x, topY)),
					Bg: PackedRGBA(fb.At(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}
