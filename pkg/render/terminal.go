package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw paints the framebuffer into area, one terminal cell per pair of
// pixel rows: an upper half block whose foreground is the top pixel and
// whose background is the bottom one. Transparent pixels leave the
// terminal's default color.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	cols := min(area.Dx(), fb.Width)
	for row := range area.Dy() {
		for x := range cols {
			scr.SetCell(area.Min.X+x, area.Min.Y+row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.Pixel(x, 2*row)),
					Bg: cellColor(fb.Pixel(x, 2*row+1)),
				},
			})
		}
	}
}

func cellColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// FramebufferSize returns the framebuffer dimensions that cover a terminal
// of the given size in cells.
func FramebufferSize(cols, rows int) (width, height int) {
	return max(cols, 1), max(rows, 1) * 2
}

// DrawText writes a line of text, which may contain SGR escape sequences,
// at column x of row y.
func DrawText(scr uv.Screen, x, y int, text string) {
	b := scr.Bounds()
	if y < b.Min.Y || y >= b.Max.Y || x >= b.Max.X {
		return
	}
	uv.NewStyledString(text).Draw(scr, uv.Rect(x, y, b.Max.X-x, 1))
}
