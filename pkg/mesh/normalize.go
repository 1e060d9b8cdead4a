package mesh

import (
	"math"

	"github.com/taigrr/toyrender/pkg/math3d"
)

// Normalize rescales the mesh positions into the [-1,1] cube in place.
// It reports whether anything changed.
func (m *MeshData) Normalize() bool {
	return NormalizePositions(m.Positions)
}

// NormalizePositions recenters and uniformly rescales ps so the widest axis
// spans exactly [-1,1]. Positions already inside the cube are left alone.
//
// The extents are seeded at the origin, so an axis whose values are all
// positive (or all negative) is measured from 0 rather than from its
// nearest value.
func NormalizePositions(ps []math3d.Vec3) bool {
	var lo, hi math3d.Vec3
	for _, p := range ps {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	if inUnitCube(lo) && inUnitCube(hi) {
		return false
	}

	half := hi.Sub(lo).Scale(0.5)
	translation := lo.Add(half).Negate()
	scale := math.Min(1/half.X, math.Min(1/half.Y, 1/half.Z))

	for i, p := range ps {
		ps[i] = clampUnit(p.Add(translation).Scale(scale))
	}
	return true
}

func inUnitCube(v math3d.Vec3) bool {
	return within(v.X) && within(v.Y) && within(v.Z)
}

func within(f float64) bool {
	return f >= -1 && f <= 1
}

// clampUnit absorbs rounding that lands a hair outside the cube, which
// would otherwise make a second pass rescale again.
func clampUnit(v math3d.Vec3) math3d.Vec3 {
	return math3d.V3(clamp1(v.X), clamp1(v.Y), clamp1(v.Z))
}

func clamp1(f float64) float64 {
	return math.Max(-1, math.Min(1, f))
}
