package mesh

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoaderCreation(t *testing.T) {
	l := NewLoader()
	if !l.Normalize || !l.Materials {
		t.Error("Normalize and Materials should default to true")
	}
	if l.Logger == nil {
		t.Error("Logger should default to a no-op logger")
	}
}

func TestLoaderLoadOBJ(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cube.mtl", "newmtl Grey\nKd 0.5 0.5 0.5\n")
	path := writeFile(t, dir, "cube.obj", `mtllib cube.mtl
v 0 0 0
v 10 0 0
v 0 10 0
usemtl Grey
f 1 2 3
`)

	m, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Dir != dir {
		t.Errorf("Dir = %q, want %q", m.Dir, dir)
	}
	if !m.Objects[0].Groups[0].Material.Resolved() {
		t.Error("material should be resolved")
	}
	for _, p := range m.Positions {
		if p.X > 1 || p.Y > 1 {
			t.Errorf("position %v not normalized", p)
		}
	}
}

func TestLoaderMaterialFailureKeepsMesh(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "m.obj", "mtllib gone.mtl\nv 0 0 0\nf 1 1 1\n")

	m, err := NewLoader().Load(path)
	if m == nil {
		t.Fatal("mesh should still be returned")
	}
	if !IsMaterialLoadError(err) {
		t.Fatalf("expected a material load error, got %v", err)
	}
	var mle *MaterialLoadError
	errors.As(err, &mle)
	if len(mle.Errors()) != 1 {
		t.Errorf("expected 1 library failure, got %d", len(mle.Errors()))
	}
}

func TestLoaderOptionsOff(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "m.obj", "mtllib gone.mtl\nv 0 0 5\nf 1 1 1\n")

	l := NewLoader()
	l.Normalize = false
	l.Materials = false
	m, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Positions[0].Z != 5 {
		t.Errorf("positions should be untouched, got %v", m.Positions[0])
	}
}

func TestLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.obj", "v 1 2\n")
	stl := writeFile(t, dir, "model.stl", "solid x\n")

	tests := []struct {
		name string
		path string
		is   error
	}{
		{"unsupported extension", stl, ErrUnsupportedFormat},
		{"parse failure", bad, ErrArgumentList},
		{"missing file", filepath.Join(dir, "nope.obj"), os.ErrNotExist},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewLoader().Load(tc.path)
			if !errors.Is(err, tc.is) {
				t.Errorf("expected %v, got %v", tc.is, err)
			}
			if m != nil {
				t.Error("mesh should be nil on failure")
			}
			if IsMaterialLoadError(err) {
				t.Error("not a material error")
			}
		})
	}
}

func TestLoaderExtensionIsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "UPPER.OBJ", "v 0 0 0\nf 1 1 1\n")

	if _, err := NewLoader().Load(path); err != nil {
		t.Errorf("Load: %v", err)
	}
}
