package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"github.com/taigrr/toyrender/internal/config"
	"github.com/taigrr/toyrender/internal/logger"
	"github.com/taigrr/toyrender/pkg/mesh"
	"github.com/taigrr/toyrender/pkg/render"
	"go.uber.org/zap"
)

// runRender renders one frame of the mesh to the output file, then keeps
// re-rendering on change when --watch is set.
func runRender(cmd *cobra.Command, opts *options, path string) error {
	cfg, err := setup(cmd, opts, true)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Reject an unknown output extension before doing any work.
	if _, err := render.FormatFromPath(cfg.Output.Path); err != nil {
		return err
	}

	m, err := loadMesh(cfg, path)
	if err != nil {
		return err
	}

	rc, err := cfg.RenderConfig()
	if err != nil {
		return err
	}
	ctx, err := render.NewContext(rc)
	if err != nil {
		return err
	}
	ctx.Logger = logger.Named("render")

	if err := renderToFile(ctx, cfg, m); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	var (
		mu     sync.Mutex
		latest *mesh.MeshData
	)
	changed := make(chan struct{}, 1)
	if err := watchMesh(cmd.Context(), cfg, path, m, func(next *mesh.MeshData) {
		mu.Lock()
		latest = next
		mu.Unlock()
		select {
		case changed <- struct{}{}:
		default:
		}
	}); err != nil {
		return err
	}
	logger.Info("watching for changes", zap.String("mesh", path))

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case <-changed:
			mu.Lock()
			next := latest
			mu.Unlock()
			if err := renderToFile(ctx, cfg, next); err != nil {
				logger.Error("render failed", zap.Error(err))
			}
		}
	}
}

func renderToFile(ctx *render.Context, cfg *config.Config, m *mesh.MeshData) error {
	stats := ctx.Render(m)
	if err := ctx.Framebuffer().Save(cfg.Output.Path, cfg.Output.Scale); err != nil {
		return fmt.Errorf("save frame: %w", err)
	}
	logger.Info("frame written",
		zap.String("path", cfg.Output.Path),
		zap.Int("triangles", stats.TrianglesDrawn),
		zap.Int("culled", stats.TrianglesCulled),
	)
	return nil
}
