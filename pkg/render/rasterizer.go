package render

import (
	"math"

	"github.com/taigrr/toyrender/pkg/math3d"
)

// clearDepth is the depth every pixel starts a frame with; any finite
// depth is nearer.
const clearDepth = -math.MaxFloat64

// Rasterizer fills flat-shaded triangles with a per-pixel depth test.
// Larger depth values are nearer the viewer.
type Rasterizer struct {
	fb      *Framebuffer
	zbuffer []float64 // Depth buffer (1D array, row-major)
	Stats   Stats     // Counters for the current frame
}

// Stats counts rasterizer work within one frame.
type Stats struct {
	TrianglesTested int // Triangles submitted
	TrianglesCulled int // Facing away from the light, or unusable
	TrianglesDrawn  int // Triangles that reached pixel coverage
	PixelsWritten   int // Pixels that passed the depth test
	LinesDrawn      int // Wireframe edges
}

// NewRasterizer creates a rasterizer drawing into fb.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{fb: fb}
	r.Resize()
	r.ClearDepth()
	return r
}

// Resize reallocates the depth buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
}

// ClearDepth resets every depth sample (call before each frame).
func (r *Rasterizer) ClearDepth() {
	// Use copy-doubling for faster clearing
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = clearDepth
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// ResetStats zeroes the frame counters.
func (r *Rasterizer) ResetStats() {
	r.Stats = Stats{}
}

// Depth returns the stored depth at (x, y), or the cleared value when out
// of bounds.
func (r *Rasterizer) Depth(x, y int) float64 {
	if x < 0 || x >= r.fb.Width || y < 0 || y >= r.fb.Height {
		return clearDepth
	}
	return r.zbuffer[y*r.fb.Width+x]
}

// Project maps a point of the [-1,1] cube to screen space. Z passes through.
func Project(v math3d.Vec3, width, height int) math3d.Vec3 {
	return math3d.V3(
		(v.X+1)*float64(width-1)/2,
		(v.Y+1)*float64(height-1)/2,
		v.Z,
	)
}

// Intensity returns the flat-shading intensity of tri lit from light as an
// 8-bit value. Zero means the face is turned away and should be culled.
func Intensity(tri [3]math3d.Vec3, light math3d.Vec3) uint8 {
	normal := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])).Normalize()
	v := normal.Dot(light) * 255
	switch {
	case !(v > 0): // also catches NaN
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

// DrawTriangle projects and flat-shades a triangle given in the [-1,1]
// cube. The lit color is tint scaled by the intensity. It reports whether
// the triangle survived culling.
func (r *Rasterizer) DrawTriangle(tri [3]math3d.Vec3, light math3d.Vec3, tint Color) bool {
	r.Stats.TrianglesTested++

	intensity := Intensity(tri, light)
	if intensity == 0 {
		r.Stats.TrianglesCulled++
		return false
	}

	var screen [3]math3d.Vec3
	for i := range 3 {
		screen[i] = Project(tri[i], r.fb.Width, r.fb.Height)
	}
	r.Stats.TrianglesDrawn++
	r.FillTriangle(screen, modulate(tint, intensity))
	return true
}

// FillTriangle fills a screen-space triangle with c, honoring the depth
// buffer. It returns the number of pixels written.
func (r *Rasterizer) FillTriangle(pts [3]math3d.Vec3, c Color) int {
	maxX := float64(r.fb.Width - 1)
	maxY := float64(r.fb.Height - 1)
	if maxX < 0 || maxY < 0 {
		return 0
	}

	minBX := math.Max(0, min3(pts[0].X, pts[1].X, pts[2].X))
	minBY := math.Max(0, min3(pts[0].Y, pts[1].Y, pts[2].Y))
	maxBX := math.Min(maxX, max3(pts[0].X, pts[1].X, pts[2].X))
	maxBY := math.Min(maxY, max3(pts[0].Y, pts[1].Y, pts[2].Y))
	if !(minBX <= maxBX && minBY <= maxBY) {
		return 0
	}

	written := 0
	for y := int(minBY); y <= int(maxBY); y++ {
		for x := int(minBX); x <= int(maxBX); x++ {
			bc := barycentric(pts, float64(x), float64(y))
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			// Depth blends only the first two vertices.
			z := pts[0].Z*bc.X + pts[1].Z*bc.Y

			i := y*r.fb.Width + x
			if z <= r.zbuffer[i] {
				continue
			}
			r.zbuffer[i] = z
			r.fb.SetPixel(x, y, c)
			written++
		}
	}

	r.Stats.PixelsWritten += written
	return written
}

// barycentric returns the weights of (px, py) in the projected triangle
// using the 2D cross-product form. Triangles with less than unit area at
// this scale yield a negative weight so every pixel is rejected.
func barycentric(pts [3]math3d.Vec3, px, py float64) math3d.Vec3 {
	u := math3d.V3(pts[1].X-pts[0].X, pts[2].X-pts[0].X, pts[0].X-px).
		Cross(math3d.V3(pts[1].Y-pts[0].Y, pts[2].Y-pts[0].Y, pts[0].Y-py))
	if math.Abs(u.Z) < 1 {
		return math3d.V3(-1, 1, 1)
	}
	return math3d.V3(1-(u.X+u.Y)/u.Z, u.Y/u.Z, u.X/u.Z)
}

// finite reports whether every coordinate of tri is a finite number.
func finite(tri [3]math3d.Vec3) bool {
	for _, v := range tri {
		for _, f := range [3]float64{v.X, v.Y, v.Z} {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return false
			}
		}
	}
	return true
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
