package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/taigrr/toyrender/pkg/math3d"
	"github.com/taigrr/toyrender/pkg/mesh"
)

// fullTriangle covers the lower-left half of the viewport, facing +Z.
const fullTriangle = `v -1 -1 0
v 1 -1 0
v -1 1 0
f 1 2 3
`

func testContext(t *testing.T, mutate func(*Config)) *Context {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 10, 10
	if mutate != nil {
		mutate(&cfg)
	}
	ctx, err := NewContext(cfg)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return ctx
}

func parseMesh(t *testing.T, src string) *mesh.MeshData {
	t.Helper()
	m, err := mesh.ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	return m
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"default", func(*Config) {}, nil},
		{"zero width", func(c *Config) { c.Width = 0 }, ErrInvalidSize},
		{"negative height", func(c *Config) { c.Height = -3 }, ErrInvalidSize},
		{"zero light", func(c *Config) { c.LightDir = math3d.Vec3{} }, ErrZeroLight},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, tc.want) || (tc.want == nil && err != nil) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
			if _, err := NewContext(cfg); (err != nil) != (tc.want != nil) {
				t.Errorf("NewContext error = %v", err)
			}
		})
	}
}

func TestNewContextNormalizesLight(t *testing.T) {
	ctx := testContext(t, func(c *Config) { c.LightDir = math3d.V3(0, 0, 5) })
	if got := ctx.Config().LightDir; got != math3d.V3(0, 0, 1) {
		t.Errorf("LightDir = %v, want unit +Z", got)
	}
}

func TestRenderFilled(t *testing.T) {
	ctx := testContext(t, nil)
	stats := ctx.Render(parseMesh(t, fullTriangle))

	fb := ctx.Framebuffer()
	if got := fb.GetPixel(1, 1); got != ColorWhite {
		t.Errorf("pixel (1,1) = %v, want white", got)
	}
	if got := fb.GetPixel(9, 9); got != ColorBlack {
		t.Errorf("pixel (9,9) = %v, want background", got)
	}
	if stats.TrianglesDrawn != 1 || stats.TrianglesCulled != 0 || stats.PixelsWritten == 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestRenderCullsBackFaces(t *testing.T) {
	ctx := testContext(t, func(c *Config) { c.LightDir = math3d.V3(0, 0, -1) })
	stats := ctx.Render(parseMesh(t, fullTriangle))

	if stats.TrianglesCulled != 1 || stats.PixelsWritten != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if got := ctx.Framebuffer().GetPixel(1, 1); got != ColorBlack {
		t.Errorf("culled face wrote %v", got)
	}
}

func TestRenderWireframe(t *testing.T) {
	ctx := testContext(t, func(c *Config) { c.Wireframe = true })
	stats := ctx.Render(parseMesh(t, fullTriangle))

	fb := ctx.Framebuffer()
	if got := fb.GetPixel(1, 1); got != ColorBlack {
		t.Errorf("wireframe should not fill the interior, got %v", got)
	}
	if got := fb.GetPixel(4, 0); got != ColorWhite {
		t.Errorf("edge pixel (4,0) = %v, want white", got)
	}
	if stats.LinesDrawn != 2 || stats.PixelsWritten != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestRenderClearsBetweenFrames(t *testing.T) {
	ctx := testContext(t, nil)
	ctx.Render(parseMesh(t, fullTriangle))

	// The same triangle at the same depth must draw again after a clear.
	stats := ctx.Render(parseMesh(t, fullTriangle))
	if stats.PixelsWritten == 0 {
		t.Error("depth buffer was not cleared between frames")
	}

	ctx.Render(&mesh.MeshData{})
	if got := ctx.Framebuffer().GetPixel(1, 1); got != ColorBlack {
		t.Errorf("frame buffer was not cleared, pixel (1,1) = %v", got)
	}
}

func TestRenderSkipsBadPolygons(t *testing.T) {
	m := parseMesh(t, fullTriangle)
	m.Objects[0].Groups[0].Polygons = append(m.Objects[0].Groups[0].Polygons,
		mesh.Polygon{{Position: 0}, {Position: 1}},
		mesh.Polygon{{Position: 0}, {Position: 1}, {Position: 99}},
	)

	stats := testContext(t, nil).Render(m)
	if stats.TrianglesTested != 3 || stats.TrianglesCulled != 2 || stats.TrianglesDrawn != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestRenderDebugColorsDeterministic(t *testing.T) {
	ctx := testContext(t, func(c *Config) {
		c.DebugColors = true
		c.Seed = 42
	})
	m := parseMesh(t, fullTriangle)

	ctx.Render(m)
	first := ctx.Framebuffer().GetPixel(1, 1)
	ctx.Render(m)
	second := ctx.Framebuffer().GetPixel(1, 1)

	if first != second {
		t.Errorf("debug colors differ between frames: %v vs %v", first, second)
	}
	if first == ColorBlack {
		t.Error("debug color triangle was not drawn")
	}
}

func TestRenderMaterialColors(t *testing.T) {
	m := parseMesh(t, fullTriangle)
	kd := math3d.V3(1, 0, 0)
	m.Objects[0].Groups[0].Material = &mesh.MaterialRef{
		Name:     "red",
		Material: &mesh.Material{Name: "red", Diffuse: &kd},
	}

	plain := testContext(t, nil)
	plain.Render(m)
	if got := plain.Framebuffer().GetPixel(1, 1); got != ColorWhite {
		t.Errorf("without MaterialColors pixel = %v, want white", got)
	}

	tinted := testContext(t, func(c *Config) { c.MaterialColors = true })
	tinted.Render(m)
	if got := tinted.Framebuffer().GetPixel(1, 1); got != ColorRed {
		t.Errorf("with MaterialColors pixel = %v, want red", got)
	}
}

func TestContextsAreIndependent(t *testing.T) {
	m := parseMesh(t, fullTriangle)

	filled := testContext(t, nil)
	filled.Render(m)
	before := append([]uint8(nil), filled.Framebuffer().Pix...)

	wire := testContext(t, func(c *Config) {
		c.Wireframe = true
		c.Width = 20
	})
	stats := wire.Render(m)
	if stats.LinesDrawn != 2 {
		t.Errorf("wireframe context stats = %+v, want 2 lines", stats)
	}
	if got := wire.Framebuffer(); got == filled.Framebuffer() || got.Width != 20 {
		t.Error("each context should own its frame buffer")
	}
	if wire.Config().Height != 10 || filled.Config().Wireframe {
		t.Error("contexts should keep the configuration they were built with")
	}

	for i, b := range filled.Framebuffer().Pix {
		if b != before[i] {
			t.Fatal("rendering one context changed another's frame buffer")
		}
	}
}
