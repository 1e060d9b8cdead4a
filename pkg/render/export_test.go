package render

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"out.png":  FormatPNG,
		"OUT.PNG":  FormatPNG,
		"a/b.webp": FormatWebP,
		"x.bmp":    FormatBMP,
		"x.tga":    FormatTGA,
		"x.jpg":    FormatJPEG,
		"x.jpeg":   FormatJPEG,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil {
			t.Errorf("FormatFromPath(%q): %v", path, err)
			continue
		}
		if got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}

	if _, err := FormatFromPath("out.gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestEncodeAllFormats(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	fb.Clear(ColorBlue)
	img := fb.ToImage()

	for _, f := range []Format{FormatPNG, FormatWebP, FormatBMP, FormatTGA, FormatJPEG} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, img, f); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if buf.Len() == 0 {
				t.Error("no bytes written")
			}
		})
	}

	if err := Encode(&bytes.Buffer{}, img, Format("gif")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestUpscale(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.SetPixel(0, 1, ColorRed) // top-left

	img := Upscale(fb.ToImage(), 3)
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("bounds = %v, want 6x6", b)
	}
	rgba := img.(*image.RGBA)
	for y := range 3 {
		for x := range 3 {
			if got := rgba.RGBAAt(x, y); got != ColorRed {
				t.Fatalf("pixel (%d,%d) = %v, want red", x, y, got)
			}
		}
	}
	if got := rgba.RGBAAt(3, 3); got == ColorRed {
		t.Error("upscaled block leaked into neighbor")
	}

	src := fb.ToImage()
	if Upscale(src, 1) != image.Image(src) {
		t.Error("factor 1 should return the source image")
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	fb := NewFramebuffer(4, 4)
	fb.Clear(ColorGreen)

	path := filepath.Join(dir, "frame.png")
	if err := fb.Save(path, 2); err != nil {
		t.Fatalf("Save: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("saved bounds = %v, want 8x8", b)
	}

	if err := fb.Save(filepath.Join(dir, "frame.xyz"), 1); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}
