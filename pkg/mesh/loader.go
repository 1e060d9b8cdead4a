package mesh

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// MaterialLoadError is returned together with a usable mesh when one or
// more material libraries could not be loaded.
type MaterialLoadError struct {
	Err error // aggregate of *LibraryError
}

func (e *MaterialLoadError) Error() string {
	return fmt.Sprintf("%d material libraries failed: %v", len(e.Errors()), e.Err)
}

func (e *MaterialLoadError) Unwrap() error { return e.Err }

// Errors returns the individual library failures.
func (e *MaterialLoadError) Errors() []error {
	return multierr.Errors(e.Err)
}

// Loader reads mesh files, choosing the format by extension.
type Loader struct {
	// Normalize rescales positions into the [-1,1] cube after loading.
	Normalize bool
	// Materials resolves mtllib references of OBJ meshes.
	Materials bool
	// Open locates material libraries. Defaults to DirOpener of the mesh directory.
	Open   LibraryOpener
	Logger *zap.Logger
}

// NewLoader creates a loader that resolves materials and normalizes.
func NewLoader() *Loader {
	return &Loader{
		Normalize: true,
		Materials: true,
		Logger:    zap.NewNop(),
	}
}

// Load reads the mesh at path. A *MaterialLoadError is returned alongside
// a non-nil mesh when only material libraries failed; any other error means
// the mesh is nil.
func (l *Loader) Load(path string) (*MeshData, error) {
	log := l.logger().With(zap.String("path", path))

	var (
		m   *MeshData
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		m, err = l.loadOBJ(path)
	case ".gltf", ".glb":
		m, err = LoadGLTF(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	var matErr error
	if l.Materials && len(m.MaterialLibraries) > 0 {
		if err := m.ResolveMaterials(l.Open); err != nil {
			for _, e := range multierr.Errors(err) {
				log.Warn("material library failed", zap.Error(e))
			}
			matErr = &MaterialLoadError{Err: err}
		}
		if missing := m.UnresolvedMaterials(); len(missing) > 0 {
			log.Debug("unresolved materials", zap.Strings("names", missing))
		}
	}

	if l.Normalize && m.Normalize() {
		log.Debug("positions normalized")
	}

	log.Debug("mesh loaded",
		zap.Int("positions", len(m.Positions)),
		zap.Int("objects", len(m.Objects)),
		zap.Int("groups", m.GroupCount()),
		zap.Int("polygons", m.PolygonCount()),
	)
	return m, matErr
}

func (l *Loader) loadOBJ(path string) (*MeshData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mesh: %w", err)
	}
	defer f.Close()

	m, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	m.Dir = filepath.Dir(path)
	return m, nil
}

func (l *Loader) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}

// IsMaterialLoadError reports whether err only carries material library
// failures, meaning the accompanying mesh is usable.
func IsMaterialLoadError(err error) bool {
	var mle *MaterialLoadError
	return errors.As(err, &mle)
}
