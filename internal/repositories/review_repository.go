package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/portfoliobuilder/backend/internal/models"
)

const reviewColumns = `id, organization_id, author_name, author_company, author_logo, rating, content, date, created_at`

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sql.DB) *reviewRepository {
	return &reviewRepository{
		db: db,
	}
}

func scanReview(row rowScanner) (*models.Review, error) {
	rv := &models.Review{}
	var date sql.NullTime
	err := row.Scan(&rv.ID, &rv.OrganizationID, &rv.AuthorName, &rv.AuthorCompany, &rv.AuthorLogo,
		&rv.Rating, &rv.Content, &date, &rv.CreatedAt)
	if err != nil {
		return nil, err
	}
	if date.Valid {
		rv.Date = &date.Time
	}
	return rv, nil
}

// Method ListByOrganization returns the reviews of an organization, newest
// first. A positive limit caps the number of rows.
func (r *reviewRepository) ListByOrganization(ctx context.Context, organizationID string, limit int) ([]models.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE organization_id = ?
		ORDER BY created_at DESC
	`
	args := []any{organizationID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}
	return reviews, nil
}

// Method GetByID returns one review
func (r *reviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ? LIMIT 1`

	rv, err := scanReview(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("review %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return rv, nil
}

// Method Create inserts a review
func (r *reviewRepository) Create(ctx context.Context, rv *models.Review) error {
	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC().Truncate(time.Second)
	_, err := r.db.ExecContext(ctx, query,
		rv.ID, rv.OrganizationID, rv.AuthorName, rv.AuthorCompany, rv.AuthorLogo,
		rv.Rating, rv.Content, rv.Date, now,
	)
	if err != nil {
		return wrapWriteError("create review", err)
	}
	rv.CreatedAt = now
	return nil
}

// Method Update writes every editable field of a review
func (r *reviewRepository) Update(ctx context.Context, rv *models.Review) error {
	query := `
		UPDATE reviews
		SET author_name = ?, author_company = ?, author_logo = ?, rating = ?, content = ?, date = ?
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query,
		rv.AuthorName, rv.AuthorCompany, rv.AuthorLogo, rv.Rating, rv.Content, rv.Date,
		rv.ID,
	)
	if err != nil {
		return wrapWriteError("update review", err)
	}
	return nil
}

// Method Delete removes a review
func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return requireAffected(result, "review")
}
