package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage keeps objects as files in a single directory.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a LocalStorage rooted at basePath
func NewLocalStorage(basePath string) *LocalStorage {
	return &LocalStorage{
		basePath: basePath,
	}
}

func (s *LocalStorage) path(key string) string {
	return filepath.Join(s.basePath, key)
}

// Save writes r under key and returns the number of bytes written.
// The file is created exclusively, so an existing key fails with ErrKeyExists.
func (s *LocalStorage) Save(_ context.Context, key, _ string, r io.Reader) (int64, error) {
	if err := ValidateKey(key); err != nil {
		return 0, err
	}

	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return 0, fmt.Errorf("failed to create media directory: %w", err)
	}

	path := s.path(key)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, os.ErrExist) {
		return 0, ErrKeyExists
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	sw := &sizeWriter{}
	if _, err := io.Copy(file, io.TeeReader(r, sw)); err != nil {
		file.Close()
		os.Remove(path)
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("failed to close file: %w", err)
	}

	return sw.size, nil
}

// Open opens the object stored under key for reading
func (s *LocalStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	file, err := os.Open(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Delete removes the object stored under key
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	err := os.Remove(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return ErrObjectNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Name identifies the backend in metrics and logs
func (s *LocalStorage) Name() string {
	return "local"
}
