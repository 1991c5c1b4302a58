package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/portfoliobuilder/backend/internal/models"
)

const organizationColumns = `o.id, o.user_id, o.name, o.display_name, o.tagline, o.description, o.logo, o.cover_image,
		o.website, o.location, o.team_size, o.phone, o.country, o.currency, o.slug,
		o.linkedin, o.twitter, o.instagram, o.facebook, o.is_published, o.created_at, o.updated_at`

type organizationRepository struct {
	db *sql.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *sql.DB) *organizationRepository {
	return &organizationRepository{
		db: db,
	}
}

func scanOrganization(row rowScanner, org *models.Organization, extra ...any) error {
	dest := []any{
		&org.ID, &org.UserID, &org.Name, &org.DisplayName, &org.Tagline, &org.Description, &org.Logo, &org.CoverImage,
		&org.Website, &org.Location, &org.TeamSize, &org.Phone, &org.Country, &org.Currency, &org.Slug,
		&org.LinkedIn, &org.Twitter, &org.Instagram, &org.Facebook, &org.IsPublished, &org.CreatedAt, &org.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

// Method List returns the organizations of a user, newest first, with the
// number of projects, services, clients and reviews of each.
func (r *organizationRepository) List(ctx context.Context, userID string) ([]models.OrganizationSummary, error) {
	query := `
		SELECT ` + organizationColumns + `,
			(SELECT COUNT(*) FROM projects p WHERE p.organization_id = o.id),
			(SELECT COUNT(*) FROM services s WHERE s.organization_id = o.id),
			(SELECT COUNT(*) FROM clients c WHERE c.organization_id = o.id),
			(SELECT COUNT(*) FROM reviews rv WHERE rv.organization_id = o.id)
		FROM organizations o
		WHERE o.user_id = ?
		ORDER BY o.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query organizations: %w", err)
	}
	defer rows.Close()

	summaries := make([]models.OrganizationSummary, 0)
	for rows.Next() {
		var s models.OrganizationSummary
		if err := scanOrganization(rows, &s.Organization, &s.ProjectCount, &s.ServiceCount, &s.ClientCount, &s.ReviewCount); err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organizations: %w", err)
	}

	return summaries, nil
}

// Method GetByID returns one organization regardless of its owner
func (r *organizationRepository) GetByID(ctx context.Context, id string) (*models.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations o WHERE o.id = ? LIMIT 1`
	return r.getOne(ctx, query, id)
}

// Method GetPublishedBySlug returns a published organization by its slug
func (r *organizationRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations o WHERE o.slug = ? AND o.is_published = TRUE LIMIT 1`
	return r.getOne(ctx, query, slug)
}

func (r *organizationRepository) getOne(ctx context.Context, query string, arg any) (*models.Organization, error) {
	org := &models.Organization{}
	err := scanOrganization(r.db.QueryRowContext(ctx, query, arg), org)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("organization %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return org, nil
}

// Method SlugExists reports whether another organization than excludeID uses slug.
// Pass an empty excludeID when creating.
func (r *organizationRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM organizations WHERE slug = ? AND id <> ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

// Method Create inserts org; CreatedAt and UpdatedAt are set to now
func (r *organizationRepository) Create(ctx context.Context, org *models.Organization) error {
	query := `
		INSERT INTO organizations (id, user_id, name, display_name, tagline, description, logo, cover_image,
			website, location, team_size, phone, country, currency, slug,
			linkedin, twitter, instagram, facebook, is_published, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC().Truncate(time.Second)
	_, err := r.db.ExecContext(ctx, query,
		org.ID, org.UserID, org.Name, org.DisplayName, org.Tagline, org.Description, org.Logo, org.CoverImage,
		org.Website, org.Location, org.TeamSize, org.Phone, org.Country, org.Currency, org.Slug,
		org.LinkedIn, org.Twitter, org.Instagram, org.Facebook, org.IsPublished, now, now,
	)
	if err != nil {
		return wrapWriteError("create organization", err)
	}

	org.CreatedAt = now
	org.UpdatedAt = now
	return nil
}

// Method Update writes every editable field of org. MySQL reports unchanged
// rows as unaffected, so callers load the row first to detect a missing one.
func (r *organizationRepository) Update(ctx context.Context, org *models.Organization) error {
	query := `
		UPDATE organizations
		SET name = ?, display_name = ?, tagline = ?, description = ?, logo = ?, cover_image = ?,
			website = ?, location = ?, team_size = ?, phone = ?, country = ?, currency = ?, slug = ?,
			linkedin = ?, twitter = ?, instagram = ?, facebook = ?, updated_at = ?
		WHERE id = ?
	`

	now := time.Now().UTC().Truncate(time.Second)
	_, err := r.db.ExecContext(ctx, query,
		org.Name, org.DisplayName, org.Tagline, org.Description, org.Logo, org.CoverImage,
		org.Website, org.Location, org.TeamSize, org.Phone, org.Country, org.Currency, org.Slug,
		org.LinkedIn, org.Twitter, org.Instagram, org.Facebook, now,
		org.ID,
	)
	if err != nil {
		return wrapWriteError("update organization", err)
	}

	org.UpdatedAt = now
	return nil
}

// Method SetPublished sets the published flag
func (r *organizationRepository) SetPublished(ctx context.Context, id string, published bool) error {
	query := `UPDATE organizations SET is_published = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, published, time.Now().UTC().Truncate(time.Second), id)
	if err != nil {
		return fmt.Errorf("failed to update publish state: %w", err)
	}
	return requireAffected(result, "organization")
}

// Method Delete removes the organization; its sections go with it
func (r *organizationRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM organizations WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	return requireAffected(result, "organization")
}

func requireAffected(result sql.Result, entity string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s %w", entity, ErrNotFound)
	}
	return nil
}
