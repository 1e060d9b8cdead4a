package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchTriggersOnceAfterBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}
	defer fw.Close()

	changed := make(chan string, 8)
	if err := fw.Watch([]string{path}, func(p string) { changed <- p }); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	fw.Start()

	for i := range 3 {
		if err := os.WriteFile(path, []byte("v 0 0 "+string(rune('1'+i))+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case got := <-changed:
		want, _ := filepath.Abs(path)
		if got != want {
			t.Errorf("callback path = %q, want %q", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("callback was not invoked")
	}

	select {
	case <-changed:
		t.Error("burst of writes should collapse into one callback")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "cube.obj")
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{watched, other} {
		if err := os.WriteFile(p, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	fw, err := NewFileWatcher(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}
	defer fw.Close()

	changed := make(chan string, 1)
	if err := fw.Watch([]string{watched}, func(p string) { changed <- p }); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	fw.Start()

	if err := os.WriteFile(other, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case p := <-changed:
		t.Errorf("unexpected callback for %s", p)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRemoveAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.mtl")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(DefaultDebounce)
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}
	defer fw.Close()

	if err := fw.Watch([]string{path, path}, func(string) {}); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if n := fw.dirs[dir]; n != 1 {
		t.Errorf("directory refcount = %d, want 1", n)
	}
	if files := fw.Files(); len(files) != 1 || files[0] != path {
		t.Errorf("Files() = %v, want [%s]", files, path)
	}
	if err := fw.RemoveAll(); err != nil {
		t.Fatalf("RemoveAll: %v", err)
	}
	if len(fw.callbacks) != 0 || len(fw.dirs) != 0 {
		t.Error("RemoveAll should forget every file")
	}
}
