package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/portfoliobuilder/backend/internal/media"
	"github.com/portfoliobuilder/backend/internal/models"
)

// DraftService manages the draft sessions in which form files are staged
// until the form is submitted.
type DraftService struct {
	sessions media.SessionStore
}

// NewDraftService creates a new draft service
func NewDraftService(sessions media.SessionStore) *DraftService {
	return &DraftService{sessions: sessions}
}

// Create opens a draft session for userID
func (s *DraftService) Create(ctx context.Context, userID string) (string, error) {
	id, err := s.sessions.Create(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to create draft session: %w", err)
	}
	return id, nil
}

// Stage keeps an image in the session and returns its ephemeral reference.
// The content type is sniffed when the client sent none.
func (s *DraftService) Stage(ctx context.Context, userID, sessionID, contentType string, r io.Reader) (*models.DraftFileResponse, error) {
	table, err := s.open(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyBody
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, contentType)
	}

	ref, err := table.Put(ctx, media.Blob{Data: data, ContentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("failed to stage file: %w", err)
	}

	return &models.DraftFileResponse{
		Ref:         ref.String(),
		ContentType: contentType,
		Size:        len(data),
	}, nil
}

// Remove forgets a staged file, e.g. when the user clears the field
func (s *DraftService) Remove(ctx context.Context, userID, sessionID, handle string) error {
	table, err := s.open(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if err := table.Release(ctx, media.Ephemeral(handle)); err != nil {
		return fmt.Errorf("failed to release handle: %w", err)
	}
	return nil
}

// Discard drops the session and everything staged in it
func (s *DraftService) Discard(ctx context.Context, userID, sessionID string) error {
	err := s.sessions.Discard(ctx, sessionID, userID)
	if errors.Is(err, media.ErrSessionNotFound) {
		return fmt.Errorf("discard draft session: %w", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to discard draft session: %w", err)
	}
	return nil
}

// Handles returns the handle table a form submission resolves against.
//
// No session id, an expired session and a session of another user all yield a
// nil table: persisted and empty references still resolve, while every
// ephemeral reference fails with media.ErrInvalidReference.
func (s *DraftService) Handles(ctx context.Context, userID, sessionID string) (media.HandleTable, error) {
	if sessionID == "" {
		return nil, nil
	}
	table, err := s.sessions.Open(ctx, sessionID, userID)
	if errors.Is(err, media.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open draft session: %w", err)
	}
	return table, nil
}

func (s *DraftService) open(ctx context.Context, userID, sessionID string) (media.HandleTable, error) {
	table, err := s.sessions.Open(ctx, sessionID, userID)
	if errors.Is(err, media.ErrSessionNotFound) {
		return nil, fmt.Errorf("open draft session: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open draft session: %w", err)
	}
	return table, nil
}
