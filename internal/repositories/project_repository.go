package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/portfoliobuilder/backend/internal/models"
)

const projectColumns = `id, organization_id, title, description, cover_image, images, date,
		is_pinned, is_featured, project_url, tags, sort_order, created_at, updated_at`

type projectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *projectRepository {
	return &projectRepository{
		db: db,
	}
}

func scanProject(row rowScanner) (*models.Project, error) {
	p := &models.Project{}
	var (
		images []byte
		tags   []byte
		date   sql.NullTime
	)
	err := row.Scan(&p.ID, &p.OrganizationID, &p.Title, &p.Description, &p.CoverImage, &images, &date,
		&p.IsPinned, &p.IsFeatured, &p.ProjectURL, &tags, &p.Order, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if p.Images, err = unmarshalList[string](images); err != nil {
		return nil, fmt.Errorf("failed to decode images: %w", err)
	}
	if p.Tags, err = unmarshalList[string](tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	if date.Valid {
		p.Date = &date.Time
	}
	return p, nil
}

func (r *projectRepository) list(ctx context.Context, query string, args ...any) ([]models.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}
	return projects, nil
}

// Method ListByOrganization returns all projects of an organization in display order
func (r *projectRepository) ListByOrganization(ctx context.Context, organizationID string) ([]models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE organization_id = ?
		ORDER BY is_pinned DESC, is_featured DESC, sort_order ASC, created_at DESC
	`
	return r.list(ctx, query, organizationID)
}

// Method ListHighlighted returns at most limit pinned or featured projects,
// pinned first, then featured, then by order
func (r *projectRepository) ListHighlighted(ctx context.Context, organizationID string, limit int) ([]models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE organization_id = ? AND (is_pinned = TRUE OR is_featured = TRUE)
		ORDER BY is_pinned DESC, is_featured DESC, sort_order ASC
		LIMIT ?
	`
	return r.list(ctx, query, organizationID, limit)
}

// Method GetByID returns one project
func (r *projectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ? LIMIT 1`

	p, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// Method Create inserts a project
func (r *projectRepository) Create(ctx context.Context, p *models.Project) error {
	images, tags, err := encodeProjectLists(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC().Truncate(time.Second)
	_, err = r.db.ExecContext(ctx, query,
		p.ID, p.OrganizationID, p.Title, p.Description, p.CoverImage, images, p.Date,
		p.IsPinned, p.IsFeatured, p.ProjectURL, tags, p.Order, now, now,
	)
	if err != nil {
		return wrapWriteError("create project", err)
	}

	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

// Method Update writes every editable field of a project
func (r *projectRepository) Update(ctx context.Context, p *models.Project) error {
	images, tags, err := encodeProjectLists(p)
	if err != nil {
		return err
	}

	query := `
		UPDATE projects
		SET title = ?, description = ?, cover_image = ?, images = ?, date = ?,
			is_pinned = ?, is_featured = ?, project_url = ?, tags = ?, sort_order = ?, updated_at = ?
		WHERE id = ?
	`

	now := time.Now().UTC().Truncate(time.Second)
	_, err = r.db.ExecContext(ctx, query,
		p.Title, p.Description, p.CoverImage, images, p.Date,
		p.IsPinned, p.IsFeatured, p.ProjectURL, tags, p.Order, now,
		p.ID,
	)
	if err != nil {
		return wrapWriteError("update project", err)
	}

	p.UpdatedAt = now
	return nil
}

// Method Delete removes a project
func (r *projectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return requireAffected(result, "project")
}

func encodeProjectLists(p *models.Project) ([]byte, []byte, error) {
	images, err := marshalList(p.Images)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode images: %w", err)
	}
	tags, err := marshalList(p.Tags)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode tags: %w", err)
	}
	return images, tags, nil
}
