package media

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReference means a draft handle could not be resolved to bytes,
	// or a string is not a usable reference. The user has to select the file again.
	ErrInvalidReference = errors.New("invalid media reference")
	// ErrTransport means the object store could not be reached or refused the upload.
	ErrTransport = errors.New("media transport failure")
	// ErrUploadFailed is what a form submission sees when any of its fields
	// could not be resolved. Nothing derived from the upload may be saved.
	ErrUploadFailed = errors.New("media upload failed")
	// ErrSessionNotFound means the draft session expired, was discarded, or
	// belongs to somebody else.
	ErrSessionNotFound = errors.New("draft session not found")
	// ErrSessionFull means staging another file would exceed the session's limits.
	ErrSessionFull = errors.New("draft session is full")
)

// TransportError describes a failed request to the object store. StatusCode is
// zero when no response was received.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("upload gateway responded with status %d: %v", e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("upload gateway responded with status %d", e.StatusCode)
	default:
		return fmt.Sprintf("upload gateway unreachable: %v", e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is makes every TransportError match ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// UploadError wraps the failure of a single field. It matches ErrUploadFailed
// and unwraps to the underlying ErrInvalidReference or TransportError.
type UploadError struct {
	Label string
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Label, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Is makes every UploadError match ErrUploadFailed.
func (e *UploadError) Is(target error) bool {
	return target == ErrUploadFailed
}
