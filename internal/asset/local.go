package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	apperrors "showcase/internal/errors"
)

// LocalStorage keeps assets as files in a single directory.
type LocalStorage struct {
	dir string
}

var _ Storage = (*LocalStorage)(nil)

// NewLocalStorage ensures dir exists and returns a storage rooted there.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Save writes r to a new file. Existing files are never overwritten.
func (s *LocalStorage) Save(ctx context.Context, name, contentType string, r io.Reader, size int64) error {
	if !ValidName(name) {
		return fmt.Errorf("invalid asset name %q", name)
	}
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create asset file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path) // Clean up partial file
		return fmt.Errorf("write asset file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close asset file: %w", err)
	}
	return nil
}

// Open returns the stored file. Missing files yield apperrors.ErrNotFound.
func (s *LocalStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !ValidName(name) {
		return nil, apperrors.ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("open asset file: %w", err)
	}
	return f, nil
}

// Delete removes the file.
func (s *LocalStorage) Delete(ctx context.Context, name string) error {
	if !ValidName(name) {
		return fmt.Errorf("invalid asset name %q", name)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("remove asset file: %w", err)
	}
	return nil
}
