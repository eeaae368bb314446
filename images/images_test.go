package images

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store := &Store{Dir: dir}

	path, err := store.Save(strings.NewReader("fake image bytes"), ".png")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Ext(path) != ".png" {
		t.Errorf("path = %q, want a .png file", path)
	}

	data, err := os.ReadFile(filepath.FromSlash(path))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("stored content = %q", data)
	}

	if err := store.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.FromSlash(path)); !os.IsNotExist(err) {
		t.Error("file still exists after Remove")
	}
}

func TestRemoveMissingFile(t *testing.T) {
	store := &Store{Dir: t.TempDir()}
	if err := store.Remove(filepath.ToSlash(filepath.Join(store.Dir, "nope.png"))); err != nil {
		t.Errorf("removing a missing file should not error, got %v", err)
	}
}

func TestRemoveRejectsOutsidePaths(t *testing.T) {
	store := &Store{Dir: t.TempDir()}

	for _, path := range []string{
		"/etc/passwd",
		filepath.ToSlash(filepath.Join(store.Dir, "..", "escape.png")),
	} {
		if err := store.Remove(path); err == nil {
			t.Errorf("Remove(%q) succeeded, want an error", path)
		}
	}
}

func TestRemoveEmptyPathIsNoop(t *testing.T) {
	store := &Store{Dir: t.TempDir()}
	if err := store.Remove(""); err != nil {
		t.Errorf("Remove(\"\") = %v, want nil", err)
	}
}
