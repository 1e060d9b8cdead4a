package render

import "testing"

func TestFramebufferOriginBottomLeft(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.SetPixel(0, 0, ColorRed)
	fb.SetPixel(3, 2, ColorBlue)

	img := fb.ToImage()
	if got := img.RGBAAt(0, 2); got != ColorRed {
		t.Errorf("drawing (0,0) should be the bottom-left image pixel, got %v", got)
	}
	if got := img.RGBAAt(3, 0); got != ColorBlue {
		t.Errorf("drawing (3,2) should be the top-right image pixel, got %v", got)
	}
	if got := fb.rowPixel(0, 2); got != ColorRed {
		t.Errorf("rowPixel(0,2) = %v, want red", got)
	}
}

func TestFramebufferClear(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 5}, {16, 16}} {
		fb := NewFramebuffer(size[0], size[1])
		c := RGBA(10, 20, 30, 40)
		fb.Clear(c)
		for y := range fb.Height {
			for x := range fb.Width {
				if got := fb.GetPixel(x, y); got != c {
					t.Fatalf("%dx%d: pixel (%d,%d) = %v after clear", size[0], size[1], x, y, got)
				}
			}
		}
	}

	// Zero-sized buffers must not panic.
	NewFramebuffer(0, 0).Clear(ColorWhite)
}

func TestFramebufferOutOfBounds(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.SetPixel(-1, 0, ColorWhite)
	fb.SetPixel(0, 2, ColorWhite)
	fb.SetPixel(2, 0, ColorWhite)
	for _, b := range fb.Pix {
		if b != 0 {
			t.Fatal("out-of-bounds write modified the buffer")
		}
	}
	if got := fb.GetPixel(5, 5); got != (Color{}) {
		t.Errorf("GetPixel out of bounds = %v, want transparent", got)
	}
}

func TestToImageCopies(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	img := fb.ToImage()
	fb.SetPixel(0, 0, ColorWhite)
	if img.RGBAAt(0, 1) == ColorWhite {
		t.Error("ToImage should not alias the framebuffer")
	}
}
