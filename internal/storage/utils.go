// Package storage holds the object store backends behind the upload endpoint.
package storage

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrKeyExists is returned when a key is already taken. Objects are never overwritten.
	ErrKeyExists = errors.New("object key already exists")
	// ErrObjectNotFound is returned when no object is stored under a key.
	ErrObjectNotFound = errors.New("object not found")
	// ErrInvalidKey is returned for keys that are not a single safe path segment.
	ErrInvalidKey = errors.New("invalid object key")
)

var validKey = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,255}$`)

// ValidateKey checks that key can be used as a file name and an S3 key alike.
func ValidateKey(key string) error {
	if !validKey.MatchString(key) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// sizeWriter counts the bytes written through it
type sizeWriter struct {
	size int64
}

func (sw *sizeWriter) Write(p []byte) (int, error) {
	sw.size += int64(len(p))
	return len(p), nil
}
