package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/portfoliobuilder/backend/internal/metrics"
	"github.com/portfoliobuilder/backend/internal/models"
	"github.com/portfoliobuilder/backend/internal/repositories"
	"github.com/portfoliobuilder/backend/internal/storage"
)

const sniffLen = 512

// Storage defines the interface for object storage operations
type Storage interface {
	// Save writes a new object and returns its size. Existing keys fail with
	// storage.ErrKeyExists; objects are never overwritten.
	Save(ctx context.Context, key, contentType string, r io.Reader) (int64, error)

	// Open returns the object for reading. Missing keys fail with storage.ErrObjectNotFound.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object. Missing keys fail with storage.ErrObjectNotFound.
	Delete(ctx context.Context, key string) error

	// Name identifies the backend in metrics
	Name() string
}

// MetadataRepository defines the interface for metadata data access
type MetadataRepository interface {
	Create(ctx context.Context, metadata *models.Metadata) error
	GetByID(ctx context.Context, id string) (*models.Metadata, error)
	DeleteByID(ctx context.Context, id string) error
}

// UploadService stores objects for the object store endpoint
type UploadService struct {
	metadataRepo MetadataRepository
	storage      Storage
	publicURL    string
	metrics      metrics.StoreMetrics
}

// NewUploadService creates a new upload service. Stored objects are served
// under publicURL.
func NewUploadService(metadataRepo MetadataRepository, store Storage, publicURL string, m metrics.StoreMetrics) *UploadService {
	if m == nil {
		m = metrics.Noop{}
	}
	return &UploadService{
		metadataRepo: metadataRepo,
		storage:      store,
		publicURL:    strings.TrimRight(publicURL, "/"),
		metrics:      m,
	}
}

// Upload stores the body under key and records its metadata.
//
// An empty contentType, or application/octet-stream, is replaced by the type
// sniffed from the first bytes. If the metadata cannot be recorded the stored
// object is deleted again.
func (s *UploadService) Upload(ctx context.Context, key, contentType string, body io.Reader) (*models.Metadata, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}

	reader := bufio.NewReaderSize(body, sniffLen)
	head, err := reader.Peek(sniffLen)
	if len(head) == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read body: %w", err)
		}
		return nil, ErrEmptyBody
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(head)
	}

	size, err := s.storage.Save(ctx, key, contentType, reader)
	if err != nil {
		s.metrics.IncStored(s.storage.Name(), "failure")
		if errors.Is(err, storage.ErrKeyExists) {
			return nil, fmt.Errorf("%w: %s", ErrKeyExists, key)
		}
		return nil, fmt.Errorf("failed to store object: %w", err)
	}

	metadata := &models.Metadata{
		ID:          key,
		ContentType: contentType,
		Size:        size,
		URL:         s.publicURL + "/" + key,
	}
	if err := s.metadataRepo.Create(ctx, metadata); err != nil {
		s.storage.Delete(ctx, key)
		s.metrics.IncStored(s.storage.Name(), "failure")
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrKeyExists, key)
		}
		return nil, fmt.Errorf("failed to create metadata: %w", err)
	}

	s.metrics.IncStored(s.storage.Name(), "success")
	return metadata, nil
}

// GetMetadata returns the metadata of a stored object
func (s *UploadService) GetMetadata(ctx context.Context, key string) (*models.Metadata, error) {
	metadata, err := s.metadataRepo.GetByID(ctx, key)
	if err != nil {
		return nil, notFound("get metadata", err)
	}
	return metadata, nil
}

// Open returns the object and its metadata. The caller closes the reader.
func (s *UploadService) Open(ctx context.Context, key string) (io.ReadCloser, *models.Metadata, error) {
	metadata, err := s.GetMetadata(ctx, key)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.storage.Open(ctx, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, nil, fmt.Errorf("open object: %w", ErrNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open object: %w", err)
	}
	return rc, metadata, nil
}

// Delete removes a stored object and its metadata
func (s *UploadService) Delete(ctx context.Context, key string) error {
	err := s.storage.Delete(ctx, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return fmt.Errorf("delete object: %w", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	if err := s.metadataRepo.DeleteByID(ctx, key); err != nil {
		return notFound("delete metadata", err)
	}
	return nil
}
