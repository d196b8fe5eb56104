// Package storage persists raw audio bytes on local disk and hands out
// opaque path references.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// BlobStore saves and retrieves uploaded audio files.
type BlobStore interface {
	Save(src io.Reader, userID, filename string) (ref string, size int64, err error)
	Open(ref string) (io.ReadCloser, error)
	Delete(ref string) bool
}

type localStore struct {
	dir string
}

// NewLocalStore returns a BlobStore rooted at dir. The directory is created
// on first save.
func NewLocalStore(dir string) BlobStore {
	return &localStore{dir: dir}
}

func (s *localStore) Save(src io.Reader, userID, filename string) (string, int64, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("creating upload directory: %w", err)
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".wav"
	}
	name := fmt.Sprintf("%s_%s%s", userID, uuid.New().String(), ext)
	dst := filepath.Join(s.dir, name)

	out, err := os.Create(dst)
	if err != nil {
		return "", 0, fmt.Errorf("creating file: %w", err)
	}
	defer out.Close()

	size, err := io.Copy(out, src)
	if err != nil {
		os.Remove(dst)
		return "", 0, fmt.Errorf("writing file: %w", err)
	}

	return dst, size, nil
}

func (s *localStore) Open(ref string) (io.ReadCloser, error) {
	return os.Open(ref)
}

func (s *localStore) Delete(ref string) bool {
	return os.Remove(ref) == nil
}
