// Package viewer presents a mesh interactively in the terminal. The Scene
// type holds the presenter-independent state and is shared with the
// desktop window.
package viewer

import (
	"sync"

	"github.com/taigrr/toyrender/pkg/math3d"
	"github.com/taigrr/toyrender/pkg/mesh"
	"github.com/taigrr/toyrender/pkg/render"
	"go.uber.org/zap"
)

// Scene couples a mesh with a render context and the interactive state
// (light rig, draw mode). A render context is immutable, so the scene
// builds a new one whenever the size, light or mode of a frame differs
// from the one it holds. SetMesh may be called from another goroutine;
// everything else belongs to the presenter loop.
type Scene struct {
	mu   sync.Mutex
	mesh *mesh.MeshData

	base      render.Config
	cfg       render.Config // what ctx was built from
	ctx       *render.Context
	rig       *LightRig
	wireframe bool
	ShowHUD   bool

	stats  render.Stats
	Logger *zap.Logger
}

// NewScene prepares a scene rendering m with cfg at the given frame rate.
func NewScene(m *mesh.MeshData, cfg render.Config, fps int) (*Scene, error) {
	ctx, err := render.NewContext(cfg)
	if err != nil {
		return nil, err
	}
	return &Scene{
		mesh:      m,
		base:      cfg,
		cfg:       cfg,
		ctx:       ctx,
		rig:       NewLightRig(fps, cfg.LightDir),
		wireframe: cfg.Wireframe,
		ShowHUD:   true,
		Logger:    zap.NewNop(),
	}, nil
}

// SetMesh swaps the mesh shown from the next frame on.
func (s *Scene) SetMesh(m *mesh.MeshData) {
	s.mu.Lock()
	s.mesh = m
	s.mu.Unlock()
}

// Mesh returns the mesh currently shown.
func (s *Scene) Mesh() *mesh.MeshData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mesh
}

// Apply performs a key action. It returns false when the action asks the
// presenter to quit.
func (s *Scene) Apply(a Action) bool {
	switch a {
	case ActionQuit:
		return false
	case ActionToggleWireframe:
		s.wireframe = !s.wireframe
		s.Logger.Debug("toggled wireframe", zap.Bool("wireframe", s.wireframe))
	case ActionToggleHUD:
		s.ShowHUD = !s.ShowHUD
	case ActionOrbitLeft:
		s.rig.Orbit(-OrbitStep, 0)
	case ActionOrbitRight:
		s.rig.Orbit(OrbitStep, 0)
	case ActionOrbitUp:
		s.rig.Orbit(0, OrbitStep)
	case ActionOrbitDown:
		s.rig.Orbit(0, -OrbitStep)
	case ActionReset:
		s.rig.Reset()
	}
	return true
}

// Resize changes the frame size. Non-positive sizes are ignored.
func (s *Scene) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	prev := s.base
	s.base.Width, s.base.Height = width, height
	if err := s.use(s.frameConfig()); err != nil {
		s.base = prev
		return err
	}
	return nil
}

// Frame advances the light rig by one frame and renders.
func (s *Scene) Frame() *render.Framebuffer {
	s.rig.Update()
	if err := s.use(s.frameConfig()); err != nil {
		s.Logger.Error("render context rejected frame config", zap.Error(err))
	}
	s.stats = s.ctx.Render(s.Mesh())
	return s.ctx.Framebuffer()
}

// use swaps in a context built for cfg unless the current one already is.
// On error the current context stays.
func (s *Scene) use(cfg render.Config) error {
	if cfg == s.cfg {
		return nil
	}
	ctx, err := render.NewContext(cfg)
	if err != nil {
		return err
	}
	ctx.Logger = s.Logger
	s.ctx, s.cfg = ctx, cfg
	return nil
}

func (s *Scene) frameConfig() render.Config {
	cfg := s.base
	cfg.Wireframe = s.wireframe
	cfg.LightDir = s.rig.Direction()
	return cfg
}

// Wireframe reports whether outlines are drawn instead of filled faces.
func (s *Scene) Wireframe() bool { return s.wireframe }

// Light returns the light direction of the last frame.
func (s *Scene) Light() math3d.Vec3 { return s.ctx.Config().LightDir }

// Stats returns the counters of the last frame.
func (s *Scene) Stats() render.Stats { return s.stats }
