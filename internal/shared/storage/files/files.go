package files

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store defines the contract for persisting raw uploaded bytes keyed by
// document id.
type Store interface {
	Save(ctx context.Context, id string, data []byte) (path string, err error)
	Open(ctx context.Context, id string) (io.ReadCloser, error)
	Remove(ctx context.Context, id string) error
}

// Dir implements Store using a flat directory, one file per document id.
type Dir struct {
	baseDir string
}

// NewDir creates a file store rooted at baseDir, creating it if needed.
func NewDir(baseDir string) (*Dir, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir upload dir: %w", err)
	}
	return &Dir{baseDir: baseDir}, nil
}

// BaseDir returns the directory files are stored under.
func (s *Dir) BaseDir() string {
	return s.baseDir
}

// Save writes data to <baseDir>/<id>.pdf.
func (s *Dir) Save(ctx context.Context, id string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := s.pathFor(id)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

// Open opens a stored file for reading.
func (s *Dir) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.pathFor(id)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Remove deletes a stored file. Removing a file that does not exist is not an
// error.
func (s *Dir) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.pathFor(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func (s *Dir) pathFor(id string) (string, error) {
	clean := filepath.Clean(id)
	if clean == "" || clean == "." || strings.ContainsAny(clean, `/\`) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid document id")
	}
	return filepath.Join(s.baseDir, clean+".pdf"), nil
}

var _ Store = (*Dir)(nil)
