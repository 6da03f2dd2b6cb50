// Package render provides the software renderer behind meshview: camera and
// orbit controls, a depth-buffered rasterizer, and output to the terminal or
// to image files.
package render

import (
	"image"
	"image/color"
)

// Framebuffer is the color target of the rasterizer. On a terminal every
// cell shows two vertically stacked pixels, so a framebuffer for a
// cols x rows terminal is cols x 2*rows (see FramebufferSize).
type Framebuffer struct {
	Width, Height int
	Pixels        []color.RGBA // row-major
}

// NewFramebuffer allocates a width x height framebuffer of transparent
// pixels.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

func (fb *Framebuffer) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < fb.Width && y < fb.Height
}

// Clear paints every pixel c.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel paints (x, y). Coordinates off the buffer are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if fb.contains(x, y) {
		fb.Pixels[y*fb.Width+x] = c
	}
}

// Pixel returns the color at (x, y), or transparent black off the buffer.
func (fb *Framebuffer) Pixel(x, y int) color.RGBA {
	if !fb.contains(x, y) {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// ToImage copies the framebuffer into an image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for i, c := range fb.Pixels {
		copy(img.Pix[i*4:], []uint8{c.R, c.G, c.B, c.A})
	}
	return img
}
