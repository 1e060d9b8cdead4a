package render

import "math"

// DrawLine draws a one-pixel line from (x1, y1) towards (x2, y2) with
// integer Bresenham stepping. The end point itself is not drawn, so a line
// whose endpoints coincide draws nothing. Segments reaching outside the
// buffer are clipped first, so the walk never exceeds the buffer size.
func (fb *Framebuffer) DrawLine(x1, y1, x2, y2 int, c Color) {
	cx1, cy1, cx2, cy2, ok := fb.clipLine(float64(x1), float64(y1), float64(x2), float64(y2))
	if !ok {
		return
	}
	fb.walkLine(int(math.Round(cx1)), int(math.Round(cy1)), int(math.Round(cx2)), int(math.Round(cy2)), c)
}

func (fb *Framebuffer) walkLine(x1, y1, x2, y2 int, c Color) {
	steep := abs(x1-x2) < abs(y1-y2)
	if steep {
		x1, y1 = y1, x1
		x2, y2 = y2, x2
	}
	if x1 > x2 {
		x1, x2 = x2, x1
		y1, y2 = y2, y1
	}

	dx := x2 - x1
	dy := y2 - y1
	derror := abs(dy * 2)
	step := 1
	if y2 < y1 {
		step = -1
	}

	errAcc := 0
	y := y1
	for x := x1; x < x2; x++ {
		if steep {
			fb.SetPixel(y, x, c)
		} else {
			fb.SetPixel(x, y, c)
		}
		errAcc += derror
		if errAcc > dx {
			y += step
			errAcc -= dx * 2
		}
	}
}

// clipLine clips a segment to the buffer grown by one pixel on every side
// (Liang-Barsky). Endpoints already inside are returned unchanged, and a
// clipped endpoint lands on the margin, so the excluded end pixel is never
// a visible one. ok is false when nothing of the segment remains or a
// coordinate is not finite.
func (fb *Framebuffer) clipLine(x1, y1, x2, y2 float64) (cx1, cy1, cx2, cy2 float64, ok bool) {
	for _, v := range [4]float64{x1, y1, x2, y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}

	minX, minY := -1.0, -1.0
	maxX, maxY := float64(fb.Width), float64(fb.Height)
	dx, dy := x2-x1, y2-y1

	bounds := [4]float64{minX, maxX, minY, maxY}
	t0, t1 := 0.0, 1.0
	e0, e1 := -1, -1
	for i, e := range [4][2]float64{
		{-dx, x1 - minX},
		{dx, maxX - x1},
		{-dy, y1 - minY},
		{dy, maxY - y1},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0, e0 = r, i
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1, e1 = r, i
			}
		}
	}

	// A clipped endpoint sits exactly on the edge it was clipped against.
	at := func(t float64, edge int) (x, y float64) {
		x, y = x1+t*dx, y1+t*dy
		if edge < 2 {
			x = bounds[edge]
		} else {
			y = bounds[edge]
		}
		return x, y
	}
	cx1, cy1, cx2, cy2 = x1, y1, x2, y2
	if e0 >= 0 {
		cx1, cy1 = at(t0, e0)
	}
	if e1 >= 0 {
		cx2, cy2 = at(t1, e1)
	}
	return cx1, cy1, cx2, cy2, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
