// Package images stores uploaded files on local disk under a single
// directory served read-only at /images.
package images

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Store struct {
	Dir string
}

// Save writes the reader to a new uuid-named file and returns the
// relative path under which it is served.
func (s *Store) Save(r io.Reader, ext string) (string, error) {
	name := uuid.NewString() + ext
	path := filepath.Join(s.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", err
	}

	return filepath.ToSlash(path), nil
}

// Remove deletes a stored file. Paths outside the store directory are
// rejected; a missing file is not an error.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}

	clean := filepath.Clean(filepath.FromSlash(path))
	rel, err := filepath.Rel(s.Dir, clean)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path %q is outside the image directory", path)
	}

	if err := os.Remove(clean); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
