package render

import (
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
)

func TestFramebufferSize(t *testing.T) {
	tests := []struct {
		cols, rows int
		w, h       int
	}{
		{80, 24, 80, 48},
		{1, 1, 1, 2},
		{0, 0, 1, 2},
	}
	for _, tc := range tests {
		w, h := FramebufferSize(tc.cols, tc.rows)
		if w != tc.w || h != tc.h {
			t.Errorf("FramebufferSize(%d, %d) = %d, %d; want %d, %d", tc.cols, tc.rows, w, h, tc.w, tc.h)
		}
	}
}

func TestFramebufferDraw(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Clear(ColorBlack)
	fb.SetPixel(1, 0, ColorRed)  // top half of cell (1, 0)
	fb.SetPixel(1, 1, ColorBlue) // bottom half of cell (1, 0)

	scr := uv.NewScreenBuffer(4, 2)
	fb.Draw(scr, scr.Bounds())

	cell := scr.CellAt(1, 0)
	if cell == nil {
		t.Fatal("cell (1, 0) not drawn")
	}
	if cell.Content != "▀" {
		t.Errorf("content = %q, want upper half block", cell.Content)
	}
	if cell.Style.Fg != ColorRed {
		t.Errorf("fg = %v, want red", cell.Style.Fg)
	}
	if cell.Style.Bg != ColorBlue {
		t.Errorf("bg = %v, want blue", cell.Style.Bg)
	}
}

func TestDrawText(t *testing.T) {
	scr := uv.NewScreenBuffer(20, 2)
	DrawText(scr, 2, 1, "hello")

	if c := scr.CellAt(2, 1); c == nil || c.Content != "h" {
		t.Errorf("cell (2, 1) = %v, want h", c)
	}
	// Out of bounds rows are ignored
	DrawText(scr, 0, 5, "nope")
}

func BenchmarkFramebufferDraw(b *testing.B) {
	fb := NewFramebuffer(200, 100)
	fb.Clear(ColorGray)
	scr := uv.NewScreenBuffer(200, 50)

	for b.Loop() {
		fb.Draw(scr, scr.Bounds())
	}
}
