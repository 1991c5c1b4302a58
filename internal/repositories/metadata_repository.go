package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/portfoliobuilder/backend/internal/models"
)

// metadataRepository stores what the object store knows about each object
type metadataRepository struct {
	db *sql.DB
}

// NewMetadataRepository creates a new metadata repository
func NewMetadataRepository(db *sql.DB) *metadataRepository {
	return &metadataRepository{
		db: db,
	}
}

// Create inserts a new metadata record
func (r *metadataRepository) Create(ctx context.Context, metadata *models.Metadata) error {
	query := `
		INSERT INTO media_metadata (id, content_type, size, url, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	now := time.Now().UTC().Truncate(time.Second)
	_, err := r.db.ExecContext(ctx, query,
		metadata.ID,
		metadata.ContentType,
		metadata.Size,
		metadata.URL,
		now,
	)
	if err != nil {
		return wrapWriteError("create metadata", err)
	}

	metadata.CreatedAt = now
	return nil
}

// GetByID retrieves metadata by object key
func (r *metadataRepository) GetByID(ctx context.Context, id string) (*models.Metadata, error) {
	query := `
		SELECT content_type, size, url, created_at
		FROM media_metadata
		WHERE id = ?
		LIMIT 1
	`

	metadata := &models.Metadata{ID: id}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&metadata.ContentType,
		&metadata.Size,
		&metadata.URL,
		&metadata.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("metadata %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata by id: %w", err)
	}

	return metadata, nil
}

// DeleteByID deletes metadata by object key
func (r *metadataRepository) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM media_metadata WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete metadata: %w", err)
	}
	return requireAffected(result, "metadata")
}
