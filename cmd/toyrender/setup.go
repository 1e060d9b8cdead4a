package main

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"github.com/taigrr/toyrender/internal/config"
	"github.com/taigrr/toyrender/internal/logger"
	"github.com/taigrr/toyrender/internal/watch"
	"github.com/taigrr/toyrender/pkg/mesh"
	"go.uber.org/zap"
)

// loadConfig merges defaults, the config file and the flags the user
// actually set.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	fl := cmd.Flags()
	var flags config.Flags
	if fl.Changed("width") {
		flags.Width = &opts.width
	}
	if fl.Changed("height") {
		flags.Height = &opts.height
	}
	if fl.Changed("wireframe") {
		flags.Wireframe = &opts.wireframe
	}
	if fl.Changed("light") {
		flags.Light = &opts.light
	}
	if fl.Changed("fg") {
		flags.Foreground = &opts.fg
	}
	if fl.Changed("bg") {
		flags.Background = &opts.bg
	}
	if fl.Changed("debug-colors") {
		flags.DebugColors = &opts.debugColors
	}
	if fl.Changed("seed") {
		flags.Seed = &opts.seed
	}
	if fl.Changed("material-colors") {
		flags.MaterialColors = &opts.materialColors
	}
	if fl.Changed("out") {
		flags.Out = &opts.out
	}
	if fl.Changed("scale") {
		flags.Scale = &opts.scale
	}
	if fl.Changed("fps") {
		flags.FPS = &opts.fps
	}
	if fl.Changed("log-level") {
		flags.LogLevel = &opts.logLevel
	}
	if fl.Changed("log-file") {
		flags.LogFile = &opts.logFile
	}
	return config.Load(opts.configPath, flags)
}

// setup loads the configuration and initializes logging. Interactive
// terminal commands pass console=false so log lines do not tear the screen.
func setup(cmd *cobra.Command, opts *options, console bool) (*config.Config, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, console); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadMesh loads the mesh at path. Material library failures are logged by
// the loader and do not fail the load.
func loadMesh(cfg *config.Config, path string) (*mesh.MeshData, error) {
	l := mesh.NewLoader()
	l.Normalize = cfg.Render.Normalize
	l.Materials = cfg.Render.LoadMaterials
	l.Logger = logger.Named("mesh")

	m, err := l.Load(path)
	if err != nil && !mesh.IsMaterialLoadError(err) {
		return nil, err
	}
	return m, nil
}

// meshFiles lists the files a rendered mesh depends on.
func meshFiles(path string, m *mesh.MeshData) []string {
	files := []string{path}
	for _, lib := range m.MaterialLibraries {
		if !filepath.IsAbs(lib) {
			lib = filepath.Join(m.Dir, lib)
		}
		files = append(files, lib)
	}
	return files
}

// watchMesh reloads the mesh whenever it or one of its material libraries
// changes and hands the result to onReload. The watcher stops when ctx is
// done.
func watchMesh(ctx context.Context, cfg *config.Config, path string, m *mesh.MeshData, onReload func(*mesh.MeshData)) error {
	fw, err := watch.NewFileWatcher(watch.DefaultDebounce)
	if err != nil {
		return err
	}
	fw.Logger = logger.Named("watch")
	log := logger.Named("reload")

	var (
		mu      sync.Mutex
		watched = meshFiles(path, m)
		reload  func(string)
	)
	reload = func(changed string) {
		next, err := loadMesh(cfg, path)
		if err != nil {
			log.Warn("reload failed", zap.String("changed", changed), zap.Error(err))
			return
		}

		mu.Lock()
		files := meshFiles(path, next)
		if err := rewatch(fw, watched, files, reload); err != nil {
			log.Warn("watch failed", zap.Error(err))
		}
		watched = files
		mu.Unlock()

		log.Info("mesh reloaded", zap.String("changed", changed), zap.Strings("watching", fw.Files()))
		onReload(next)
	}

	if err := fw.Watch(watched, reload); err != nil {
		fw.Close()
		return err
	}
	fw.Start()

	go func() {
		<-ctx.Done()
		fw.Close()
	}()
	return nil
}

// rewatch points fw at next. Libraries the mesh no longer declares are
// dropped by starting over; otherwise next is added to what is watched.
func rewatch(fw *watch.FileWatcher, prev, next []string, cb func(string)) error {
	keep := make(map[string]bool, len(next))
	for _, f := range next {
		keep[f] = true
	}
	for _, f := range prev {
		if !keep[f] {
			if err := fw.RemoveAll(); err != nil {
				return err
			}
			break
		}
	}
	return fw.Watch(next, cb)
}
