package render

import (
	"math"

	"github.com/taigrr/toyrender/pkg/math3d"
)

// Wireframe draws triangle outlines without depth testing.
type Wireframe struct {
	fb *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(fb *Framebuffer) *Wireframe {
	return &Wireframe{fb: fb}
}

// ProjectInt maps a point of the [-1,1] cube to integer screen coordinates.
func ProjectInt(v math3d.Vec3, width, height int) (x, y int) {
	fx, fy := projectXY(v, width, height)
	return int(fx), int(fy)
}

func projectXY(v math3d.Vec3, width, height int) (x, y float64) {
	return (v.X + 1) * float64(width-1) / 2, (v.Y + 1) * float64(height-1) / 2
}

// DrawTriangle draws the edges 0-1 and 1-2 of tri and returns how many
// were drawn. The closing edge 2-0 is left out, as are edges that miss the
// frame entirely. Edges are clipped before they are projected to integers,
// so vertices far outside the cube cost no more than the frame size.
func (w *Wireframe) DrawTriangle(tri [3]math3d.Vec3, c Color) int {
	if !finite(tri) {
		return 0
	}
	lines := 0
	for i := range 2 {
		x1, y1 := projectXY(tri[i], w.fb.Width, w.fb.Height)
		x2, y2 := projectXY(tri[i+1], w.fb.Width, w.fb.Height)
		cx1, cy1, cx2, cy2, ok := w.fb.clipLine(x1, y1, x2, y2)
		if !ok {
			continue
		}
		w.fb.walkLine(int(math.Floor(cx1)), int(math.Floor(cy1)), int(math.Floor(cx2)), int(math.Floor(cy2)), c)
		lines++
	}
	return lines
}
