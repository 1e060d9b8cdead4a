// toyrender - flat-shaded software renderer for Wavefront OBJ meshes.
//
// Renders a mesh to an image file, or shows it interactively in the
// terminal or a desktop window:
//
//	toyrender model.obj --out model.png
//	toyrender view model.obj
//	toyrender window model.obj
//	toyrender info model.obj
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// options holds the raw command-line values shared by every command.
type options struct {
	configPath     string
	width          int
	height         int
	wireframe      bool
	light          string
	fg             string
	bg             string
	debugColors    bool
	seed           uint64
	materialColors bool
	out            string
	scale          int
	fps            int
	watch          bool
	logLevel       string
	logFile        string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "toyrender [mesh]",
		Short: "Render OBJ and glTF meshes with a flat-shaded software rasterizer",
		Long: `toyrender parses a Wavefront OBJ mesh (with its MTL material libraries) or a
glTF file, normalizes it into the unit cube and rasterizes it with flat
shading and a depth buffer. The frame is written to --out, whose extension
selects the format (png, webp, bmp, tga, jpg).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, ok := meshArg(cmd, args)
			if !ok {
				return nil
			}
			return runRender(cmd, opts, path)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "Path to config file")
	f.IntVar(&opts.width, "width", 0, "Frame width in pixels")
	f.IntVar(&opts.height, "height", 0, "Frame height in pixels")
	f.BoolVar(&opts.wireframe, "wireframe", false, "Draw triangle outlines instead of filled faces")
	f.StringVar(&opts.light, "light", "", "Light direction as x,y,z")
	f.StringVar(&opts.fg, "fg", "", "Foreground color as r,g,b[,a]")
	f.StringVar(&opts.bg, "bg", "", "Background color as r,g,b[,a]")
	f.BoolVar(&opts.debugColors, "debug-colors", false, "Paint each triangle a pseudo-random color")
	f.Uint64Var(&opts.seed, "seed", 0, "Seed for --debug-colors")
	f.BoolVar(&opts.materialColors, "material-colors", false, "Tint faces with their material's diffuse color")
	f.IntVar(&opts.fps, "fps", 0, "Target frame rate for interactive views")
	f.BoolVar(&opts.watch, "watch", false, "Reload when the mesh or its material libraries change")
	f.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	f.StringVar(&opts.logFile, "log-file", "", "Also write logs to this file")

	root.Flags().StringVarP(&opts.out, "out", "o", "", "Output image path")
	root.Flags().IntVar(&opts.scale, "scale", 0, "Integer upscale factor for the output image")

	root.AddCommand(
		newViewCmd(opts),
		newWindowCmd(opts),
		newInfoCmd(opts),
	)
	return root
}

// meshArg returns the mesh path argument. When it is missing the command
// prints a notice and should exit successfully without output.
func meshArg(cmd *cobra.Command, args []string) (string, bool) {
	if len(args) == 0 || args[0] == "" {
		cmd.PrintErrln("No mesh file provided")
		return "", false
	}
	return args[0], true
}
