package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/portfoliobuilder/backend/internal/models"
)

const serviceColumns = `id, organization_id, title, description, icon, logo, banner,
		price_per_hour, sample_work, sort_order, created_at, updated_at`

type serviceRepository struct {
	db *sql.DB
}

// NewServiceRepository creates a new service repository
func NewServiceRepository(db *sql.DB) *serviceRepository {
	return &serviceRepository{
		db: db,
	}
}

func scanService(row rowScanner) (*models.Service, error) {
	s := &models.Service{}
	var (
		price      sql.NullFloat64
		sampleWork []byte
	)
	err := row.Scan(&s.ID, &s.OrganizationID, &s.Title, &s.Description, &s.Icon, &s.Logo, &s.Banner,
		&price, &sampleWork, &s.Order, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if price.Valid {
		s.PricePerHour = &price.Float64
	}
	if s.SampleWork, err = unmarshalList[models.SampleWork](sampleWork); err != nil {
		return nil, fmt.Errorf("failed to decode sample work: %w", err)
	}
	return s, nil
}

// Method ListByOrganization returns the services of an organization by order
func (r *serviceRepository) ListByOrganization(ctx context.Context, organizationID string) ([]models.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE organization_id = ?
		ORDER BY sort_order ASC, created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	services := make([]models.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating services: %w", err)
	}
	return services, nil
}

// Method GetByID returns one service
func (r *serviceRepository) GetByID(ctx context.Context, id string) (*models.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = ? LIMIT 1`

	s, err := scanService(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("service %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return s, nil
}

// Method Create inserts a service
func (r *serviceRepository) Create(ctx context.Context, s *models.Service) error {
	sampleWork, err := marshalList(s.SampleWork)
	if err != nil {
		return fmt.Errorf("failed to encode sample work: %w", err)
	}

	query := `
		INSERT INTO services (` + serviceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC().Truncate(time.Second)
	_, err = r.db.ExecContext(ctx, query,
		s.ID, s.OrganizationID, s.Title, s.Description, s.Icon, s.Logo, s.Banner,
		s.PricePerHour, sampleWork, s.Order, now, now,
	)
	if err != nil {
		return wrapWriteError("create service", err)
	}

	s.CreatedAt = now
	s.UpdatedAt = now
	return nil
}

// Method Update writes every editable field of a service
func (r *serviceRepository) Update(ctx context.Context, s *models.Service) error {
	sampleWork, err := marshalList(s.SampleWork)
	if err != nil {
		return fmt.Errorf("failed to encode sample work: %w", err)
	}

	query := `
		UPDATE services
		SET title = ?, description = ?, icon = ?, logo = ?, banner = ?,
			price_per_hour = ?, sample_work = ?, sort_order = ?, updated_at = ?
		WHERE id = ?
	`

	now := time.Now().UTC().Truncate(time.Second)
	_, err = r.db.ExecContext(ctx, query,
		s.Title, s.Description, s.Icon, s.Logo, s.Banner,
		s.PricePerHour, sampleWork, s.Order, now,
		s.ID,
	)
	if err != nil {
		return wrapWriteError("update service", err)
	}

	s.UpdatedAt = now
	return nil
}

// Method Delete removes a service
func (r *serviceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return requireAffected(result, "service")
}
