package mesh

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// LibraryOpener opens a material library by the name a mesh declared.
type LibraryOpener func(name string) (io.ReadCloser, error)

// DirOpener resolves relative library names against dir.
func DirOpener(dir string) LibraryOpener {
	return func(name string) (io.ReadCloser, error) {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		return os.Open(path)
	}
}

// ResolveMaterials loads every declared library in order and binds each
// group's by-name reference to the first definition of that name. A library
// that fails to load is reported in the returned error, which aggregates one
// *LibraryError per failure (see multierr.Errors); the remaining libraries
// are still applied.
func (m *MeshData) ResolveMaterials(open LibraryOpener) error {
	if open == nil {
		open = DirOpener(m.Dir)
	}

	byName := make(map[string]*Material)
	var errs error
	for _, lib := range m.MaterialLibraries {
		materials, err := loadLibrary(open, lib)
		if err != nil {
			errs = multierr.Append(errs, &LibraryError{Library: lib, Err: err})
			continue
		}
		for _, mat := range materials {
			if _, ok := byName[mat.Name]; !ok {
				byName[mat.Name] = mat
			}
		}
	}

	m.bindMaterials(byName)
	return errs
}

func (m *MeshData) bindMaterials(byName map[string]*Material) {
	for oi := range m.Objects {
		groups := m.Objects[oi].Groups
		for gi := range groups {
			ref := groups[gi].Material
			if ref == nil || ref.Resolved() {
				continue
			}
			if mat, ok := byName[ref.Name]; ok {
				ref.Material = mat
			}
		}
	}
}

func loadLibrary(open LibraryOpener, name string) ([]*Material, error) {
	rc, err := open(name)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer rc.Close()
	return ParseMTL(rc)
}
