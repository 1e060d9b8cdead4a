package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/taigrr/toyrender/internal/config"
	"github.com/taigrr/toyrender/internal/logger"
	"github.com/taigrr/toyrender/internal/viewer"
	"github.com/taigrr/toyrender/internal/window"
	"github.com/taigrr/toyrender/pkg/mesh"
)

func newViewCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "view [mesh]",
		Short: "Show the mesh interactively in the terminal",
		Long:  "Show the mesh in the terminal using half-block cells.\n\n" + viewer.Help,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, ok := meshArg(cmd, args)
			if !ok {
				return nil
			}
			cfg, err := setup(cmd, opts, false)
			if err != nil {
				return err
			}
			defer logger.Sync()

			scene, err := newScene(cmd, cfg, path, opts.watch)
			if err != nil {
				return err
			}
			return viewer.Run(cmd.Context(), scene, viewer.Options{
				Title: filepath.Base(path),
				FPS:   cfg.View.FPS,
			})
		},
	}
}

func newWindowCmd(opts *options) *cobra.Command {
	var scale int
	cmd := &cobra.Command{
		Use:   "window [mesh]",
		Short: "Show the mesh in a desktop window",
		Long:  "Show the mesh in a desktop window.\n\n" + viewer.Help,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, ok := meshArg(cmd, args)
			if !ok {
				return nil
			}
			cfg, err := setup(cmd, opts, true)
			if err != nil {
				return err
			}
			defer logger.Sync()

			scene, err := newScene(cmd, cfg, path, opts.watch)
			if err != nil {
				return err
			}
			return window.Run(scene, window.Options{
				Title: "toyrender - " + filepath.Base(path),
				FPS:   cfg.View.FPS,
				Scale: scale,
			})
		},
	}
	cmd.Flags().IntVar(&scale, "zoom", 1, "Window pixels per frame pixel")
	return cmd
}

// newScene loads the mesh and prepares the interactive scene, wiring
// --watch reloads into it.
func newScene(cmd *cobra.Command, cfg *config.Config, path string, watchFiles bool) (*viewer.Scene, error) {
	m, err := loadMesh(cfg, path)
	if err != nil {
		return nil, err
	}
	rc, err := cfg.RenderConfig()
	if err != nil {
		return nil, err
	}

	scene, err := viewer.NewScene(m, rc, cfg.View.FPS)
	if err != nil {
		return nil, err
	}
	scene.Logger = logger.Named("viewer")
	scene.ShowHUD = cfg.View.ShowHUD

	if watchFiles {
		if err := watchMesh(cmd.Context(), cfg, path, m, func(next *mesh.MeshData) {
			scene.SetMesh(next)
		}); err != nil {
			return nil, err
		}
	}
	return scene, nil
}
