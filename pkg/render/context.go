package render

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/taigrr/toyrender/pkg/math3d"
	"github.com/taigrr/toyrender/pkg/mesh"
	"go.uber.org/zap"
)

// Config errors.
var (
	ErrInvalidSize = errors.New("viewport size must be positive")
	ErrZeroLight   = errors.New("light direction must be non-zero")
)

// Config describes how a Context renders.
type Config struct {
	Width, Height int
	LightDir      math3d.Vec3 // normalized by NewContext
	Wireframe     bool        // draw outlines instead of filled faces
	Foreground    Color       // wireframe line color, and fill tint
	Background    Color

	// DebugColors paints each lit triangle a pseudo-random color drawn from
	// a generator seeded with Seed at the start of every frame.
	DebugColors bool
	Seed        uint64

	// MaterialColors tints filled faces with the group's diffuse color.
	MaterialColors bool
}

// DefaultConfig returns a 512x512 filled render lit head-on.
func DefaultConfig() Config {
	return Config{
		Width:      512,
		Height:     512,
		LightDir:   math3d.V3(0, 0, 1),
		Foreground: ColorWhite,
		Background: ColorBlack,
		Seed:       1,
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if c.LightDir.Len() == 0 {
		return ErrZeroLight
	}
	return nil
}

// Context owns a frame buffer and depth buffer and renders one frame at a
// time. Its configuration and buffers are fixed at construction; a caller
// that needs a different size, light or mode builds a new Context. It is
// not safe for concurrent use.
type Context struct {
	cfg    Config
	fb     *Framebuffer
	raster *Rasterizer
	wire   *Wireframe
	pcg    *rand.PCG // debug color source, reseeded each frame
	rng    *rand.Rand

	Logger *zap.Logger
}

// NewContext allocates buffers for cfg.
func NewContext(cfg Config) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.LightDir = cfg.LightDir.Normalize()

	fb := NewFramebuffer(cfg.Width, cfg.Height)
	pcg := rand.NewPCG(cfg.Seed, cfg.Seed)
	return &Context{
		cfg:    cfg,
		fb:     fb,
		raster: NewRasterizer(fb),
		wire:   NewWireframe(fb),
		pcg:    pcg,
		rng:    rand.New(pcg),
		Logger: zap.NewNop(),
	}, nil
}

// Config returns the configuration the context was built with.
func (c *Context) Config() Config { return c.cfg }

// Framebuffer returns the buffer the last frame was drawn into.
func (c *Context) Framebuffer() *Framebuffer { return c.fb }

// Render draws one frame of m. The frame buffer is cleared to the
// background and the depth buffer reset before any group is drawn.
func (c *Context) Render(m *mesh.MeshData) Stats {
	c.fb.Clear(c.cfg.Background)
	c.raster.ClearDepth()
	c.raster.ResetStats()
	c.pcg.Seed(c.cfg.Seed, c.cfg.Seed)

	for _, obj := range m.Objects {
		for _, g := range obj.Groups {
			if c.cfg.Wireframe {
				c.drawOutline(m, g)
			} else {
				c.fillGroup(m, g)
			}
		}
	}

	stats := c.raster.Stats
	c.logger().Debug("frame rendered",
		zap.Int("tested", stats.TrianglesTested),
		zap.Int("culled", stats.TrianglesCulled),
		zap.Int("drawn", stats.TrianglesDrawn),
		zap.Int("pixels", stats.PixelsWritten),
		zap.Int("lines", stats.LinesDrawn),
	)
	return stats
}

func (c *Context) drawOutline(m *mesh.MeshData, g mesh.Group) {
	for _, poly := range g.Polygons {
		tri, ok := m.Triangle(poly)
		if !ok {
			continue
		}
		c.raster.Stats.LinesDrawn += c.wire.DrawTriangle(tri, c.cfg.Foreground)
	}
}

func (c *Context) fillGroup(m *mesh.MeshData, g mesh.Group) {
	tint := c.cfg.Foreground
	if c.cfg.MaterialColors && g.Material.Resolved() && g.Material.Material.Diffuse != nil {
		kd := g.Material.Material.Diffuse
		tint = RGB(unitToByte(kd.X), unitToByte(kd.Y), unitToByte(kd.Z))
	}

	for _, poly := range g.Polygons {
		tri, ok := m.Triangle(poly)
		if !ok || !finite(tri) {
			c.raster.Stats.TrianglesTested++
			c.raster.Stats.TrianglesCulled++
			continue
		}
		color := tint
		if c.cfg.DebugColors {
			color = c.debugColor()
		}
		c.raster.DrawTriangle(tri, c.cfg.LightDir, color)
	}
}

func (c *Context) debugColor() Color {
	v := c.rng.Uint32()
	return RGB(uint8(v), uint8(v>>8), uint8(v>>16))
}

func (c *Context) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func unitToByte(f float64) uint8 {
	switch {
	case !(f > 0):
		return 0
	case f >= 1:
		return 255
	default:
		return uint8(f * 255)
	}
}
