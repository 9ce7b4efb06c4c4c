// Package upload persists item photos to the local content store and hands
// back reference paths the web layer can serve.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/xid"

	"github.com/mkolar/najdeno/internal/imaging"
)

// DefaultImagePath is the sentinel reference used when a posting has no
// photo. It resolves to a bundled placeholder served from the embedded
// static assets.
const DefaultImagePath = "/static/images/default.svg"

// Store holds uploaded photos in a directory on disk.
type Store struct {
	dir string
}

// NewStore creates the upload directory if needed and returns a Store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory photos are stored in.
func (s *Store) Dir() string {
	return s.dir
}

// Save processes an uploaded photo and writes it to the store, returning
// its reference path. A nil reader means no photo was supplied and the
// default sentinel reference is returned unchanged.
//
// Stored names are xid-generated rather than derived from the original
// filename or a timestamp, so concurrent uploads cannot collide.
func (s *Store) Save(file io.Reader) (string, error) {
	if file == nil {
		return DefaultImagePath, nil
	}

	data, err := imaging.Process(file)
	if err != nil {
		return "", err
	}

	name := xid.New().String() + ".jpg"
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing photo: %w", err)
	}

	return "/uploads/" + name, nil
}

// Remove deletes a stored photo by its reference path. The sentinel and
// references outside the store are left alone.
func (s *Store) Remove(ref string) error {
	if ref == "" || ref == DefaultImagePath {
		return nil
	}

	name := filepath.Base(ref)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing photo: %w", err)
	}
	return nil
}
