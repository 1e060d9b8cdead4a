package main

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/ftrvxmtrx/tga"
	"github.com/spf13/cobra"
	"github.com/taigrr/toyrender/internal/logger"
	"github.com/taigrr/toyrender/pkg/mesh"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5fd787"))
	sectionStyle = lipgloss.NewStyle().Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaf5f"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

func newInfoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info [mesh]",
		Short: "Print mesh statistics and materials",
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

			l := mesh.NewLoader()
			l.Normalize = false
			l.Materials = cfg.Render.LoadMaterials
			l.Logger = logger.Named("mesh")

			m, err := l.Load(path)
			if err != nil && !mesh.IsMaterialLoadError(err) {
				return err
			}
			lipgloss.Fprintln(cmd.OutOrStdout(), infoReport(path, m, err))
			return nil
		},
	}
}

// infoReport formats mesh statistics, material libraries and materials.
// matErr is the material error returned alongside m, if any.
func infoReport(path string, m *mesh.MeshData, matErr error) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(filepath.Base(path)) + "\n\n")

	counts := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("positions", "texcoords", "normals", "objects", "groups", "polygons").
		Row(
			fmt.Sprint(len(m.Positions)),
			fmt.Sprint(len(m.Texcoords)),
			fmt.Sprint(len(m.Normals)),
			fmt.Sprint(len(m.Objects)),
			fmt.Sprint(m.GroupCount()),
			fmt.Sprint(m.PolygonCount()),
		)
	b.WriteString(counts.String() + "\n")

	if len(m.MaterialLibraries) > 0 {
		b.WriteString("\n" + sectionStyle.Render("Material libraries") + "\n")
		failed := libraryFailures(matErr)
		for _, lib := range m.MaterialLibraries {
			if err, ok := failed[lib]; ok {
				b.WriteString("  " + warnStyle.Render(fmt.Sprintf("%s: %v", lib, err)) + "\n")
				continue
			}
			b.WriteString("  " + lib + "\n")
		}
	}

	if missing := m.UnresolvedMaterials(); len(missing) > 0 {
		b.WriteString("\n" + warnStyle.Render("Unresolved materials: "+strings.Join(missing, ", ")) + "\n")
	}

	if mats := m.Materials(); len(mats) > 0 {
		b.WriteString("\n" + sectionStyle.Render("Materials") + "\n")
		for _, mat := range mats {
			b.WriteString("  " + mat.Name)
			if mat.Diffuse != nil {
				b.WriteString(dimStyle.Render(fmt.Sprintf("  Kd %.3g %.3g %.3g", mat.Diffuse.X, mat.Diffuse.Y, mat.Diffuse.Z)))
			}
			b.WriteString("\n")

			maps := mat.TextureMaps()
			keys := make([]string, 0, len(maps))
			for k := range maps {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				b.WriteString(fmt.Sprintf("    %-9s %s %s\n", k, maps[k], textureSummary(m.Dir, maps[k])))
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// libraryFailures indexes material library errors by library name.
func libraryFailures(matErr error) map[string]error {
	failed := make(map[string]error)
	var mle *mesh.MaterialLoadError
	if !errors.As(matErr, &mle) {
		return failed
	}
	for _, err := range mle.Errors() {
		var le *mesh.LibraryError
		if errors.As(err, &le) {
			failed[le.Library] = le.Err
		}
	}
	return failed
}

func textureSummary(dir, name string) string {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	cfg, format, err := probeImage(path)
	if err != nil {
		return dimStyle.Render("(" + err.Error() + ")")
	}
	return dimStyle.Render(fmt.Sprintf("%dx%d %s", cfg.Width, cfg.Height, format))
}

// configDecoders reads image headers by file extension. TGA has no magic
// number, so sniffing through image.DecodeConfig is not reliable.
var configDecoders = map[string]func(io.Reader) (image.Config, error){
	".png":  png.DecodeConfig,
	".jpg":  jpeg.DecodeConfig,
	".jpeg": jpeg.DecodeConfig,
	".bmp":  bmp.DecodeConfig,
	".webp": webp.DecodeConfig,
	".tga":  tga.DecodeConfig,
}

// probeImage reads the dimensions of a texture map.
func probeImage(path string) (image.Config, string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := configDecoders[ext]
	if !ok {
		return image.Config{}, "", fmt.Errorf("unsupported image format %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, "", err
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return image.Config{}, "", err
	}
	return cfg, strings.TrimPrefix(ext, "."), nil
}
