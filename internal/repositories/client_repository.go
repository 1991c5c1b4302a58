package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/portfoliobuilder/backend/internal/models"
)

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *sql.DB) *clientRepository {
	return &clientRepository{
		db: db,
	}
}

// Method ListByOrganization returns the clients of an organization by order.
// A positive limit caps the number of rows.
func (r *clientRepository) ListByOrganization(ctx context.Context, organizationID string, limit int) ([]models.Client, error) {
	query := `
		SELECT id, organization_id, name, logo, sort_order, created_at
		FROM clients
		WHERE organization_id = ?
		ORDER BY sort_order ASC, created_at ASC
	`
	args := []any{organizationID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := make([]models.Client, 0)
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.OrganizationID, &c.Name, &c.Logo, &c.Order, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}
	return clients, nil
}

// Method GetByID returns one client
func (r *clientRepository) GetByID(ctx context.Context, id string) (*models.Client, error) {
	query := `
		SELECT id, organization_id, name, logo, sort_order, created_at
		FROM clients
		WHERE id = ?
		LIMIT 1
	`

	c := &models.Client{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.OrganizationID, &c.Name, &c.Logo, &c.Order, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

// Method Create inserts a client
func (r *clientRepository) Create(ctx context.Context, c *models.Client) error {
	query := `
		INSERT INTO clients (id, organization_id, name, logo, sort_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	now := time.Now().UTC().Truncate(time.Second)
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.OrganizationID, c.Name, c.Logo, c.Order, now); err != nil {
		return wrapWriteError("create client", err)
	}
	c.CreatedAt = now
	return nil
}

// Method Update writes the name, logo and order of a client
func (r *clientRepository) Update(ctx context.Context, c *models.Client) error {
	query := `UPDATE clients SET name = ?, logo = ?, sort_order = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, c.Name, c.Logo, c.Order, c.ID); err != nil {
		return wrapWriteError("update client", err)
	}
	return nil
}

// Method Delete removes a client
func (r *clientRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return requireAffected(result, "client")
}
