// Package render rasterizes MeshData into an RGBA frame buffer.
package render

import (
	"image"
)

// Framebuffer is a flat RGBA8 pixel buffer.
//
// Drawing coordinates put the origin at the bottom-left corner with y
// growing upward, while Pix is stored top row first. SetPixel performs the
// flip, so Pix can be handed to image encoders, the terminal and the window
// without further reordering.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []uint8 // 4 bytes per pixel, top row first
}

// NewFramebuffer creates a framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, 4*width*height),
	}
}

// Clear fills every pixel with c.
func (fb *Framebuffer) Clear(c Color) {
	if len(fb.Pix) == 0 {
		return
	}
	fb.Pix[0], fb.Pix[1], fb.Pix[2], fb.Pix[3] = c.R, c.G, c.B, c.A
	for i := 4; i < len(fb.Pix); i *= 2 {
		copy(fb.Pix[i:], fb.Pix[:i])
	}
}

// offset returns the byte offset of drawing coordinate (x, y), or -1 when
// out of bounds.
func (fb *Framebuffer) offset(x, y int) int {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return -1
	}
	return 4 * (x + fb.Width*(fb.Height-1-y))
}

// SetPixel writes c at (x, y). Out-of-bounds writes are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	i := fb.offset(x, y)
	if i < 0 {
		return
	}
	fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3] = c.R, c.G, c.B, c.A
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	i := fb.offset(x, y)
	if i < 0 {
		return Color{}
	}
	return Color{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3]}
}

// rowPixel reads by storage row, 0 being the top of the image.
func (fb *Framebuffer) rowPixel(x, row int) Color {
	return fb.GetPixel(x, fb.Height-1-row)
}

// ToImage copies the framebuffer into an image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Pix)
	return img
}
