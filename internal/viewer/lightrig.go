package viewer

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/toyrender/pkg/math3d"
)

// OrbitStep is the angle one key press moves the light.
const OrbitStep = math.Pi / 12

// maxPitch keeps the light off the poles so yaw stays meaningful.
const maxPitch = math.Pi/2 - 0.05

// LightAxis eases one angle toward its target with a spring.
type LightAxis struct {
	Position float64
	Target   float64
	velocity float64
	spring   harmonica.Spring
}

// NewLightAxis creates an axis resting at angle.
func NewLightAxis(fps int, angle float64) LightAxis {
	return LightAxis{
		Position: angle,
		Target:   angle,
		// Frequency 6 with critical damping settles in a few frames without overshoot.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Update advances the spring by one frame.
func (a *LightAxis) Update() {
	a.Position, a.velocity = a.spring.Update(a.Position, a.velocity, a.Target)
}

// Settled reports whether the axis has effectively reached its target.
func (a *LightAxis) Settled() bool {
	return math.Abs(a.Position-a.Target) < 1e-3 && math.Abs(a.velocity) < 1e-3
}

// LightRig orbits the light direction around the mesh. Yaw turns about
// the Y axis starting from +Z; pitch tilts toward +Y.
type LightRig struct {
	Yaw, Pitch LightAxis

	fps       int
	home      math3d.Vec3
	homeYaw   float64
	homePitch float64
}

// NewLightRig creates a rig pointing along dir.
func NewLightRig(fps int, dir math3d.Vec3) *LightRig {
	yaw, pitch := anglesOf(dir)
	return &LightRig{
		Yaw:       NewLightAxis(fps, yaw),
		Pitch:     NewLightAxis(fps, pitch),
		fps:       fps,
		home:      dir.Normalize(),
		homeYaw:   yaw,
		homePitch: pitch,
	}
}

// Orbit moves the target by the given angles. Pitch is clamped short of
// the poles.
func (r *LightRig) Orbit(dYaw, dPitch float64) {
	r.Yaw.Target += dYaw
	r.Pitch.Target = math.Max(-maxPitch, math.Min(maxPitch, r.Pitch.Target+dPitch))
}

// Reset eases the light back to its starting direction.
func (r *LightRig) Reset() {
	r.Yaw.Target = r.homeYaw
	r.Pitch.Target = r.homePitch
}

// Update advances both springs by one frame.
func (r *LightRig) Update() {
	r.Yaw.Update()
	r.Pitch.Update()
}

// Settled reports whether both axes are at rest.
func (r *LightRig) Settled() bool {
	return r.Yaw.Settled() && r.Pitch.Settled()
}

// Direction returns the current unit light direction.
func (r *LightRig) Direction() math3d.Vec3 {
	if r.Settled() && r.Yaw.Target == r.homeYaw && r.Pitch.Target == r.homePitch {
		return r.home
	}
	return directionOf(r.Yaw.Position, r.Pitch.Position)
}

func anglesOf(dir math3d.Vec3) (yaw, pitch float64) {
	d := dir.Normalize()
	pitch = math.Asin(math.Max(-1, math.Min(1, d.Y)))
	pitch = math.Max(-maxPitch, math.Min(maxPitch, pitch))
	yaw = math.Atan2(d.X, d.Z)
	return yaw, pitch
}

func directionOf(yaw, pitch float64) math3d.Vec3 {
	cp := math.Cos(pitch)
	return math3d.V3(math.Sin(yaw)*cp, math.Sin(pitch), math.Cos(yaw)*cp)
}
