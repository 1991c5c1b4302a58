package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/portfoliobuilder/backend/internal/media"
	"github.com/portfoliobuilder/backend/internal/models"
)

// ClientRepository is the interface that wraps methods for clients table data access
type ClientRepository interface {
	// Method ListByOrganization returns the clients of an organization by order;
	// limit <= 0 returns all of them.
	ListByOrganization(ctx context.Context, organizationID string, limit int) ([]models.Client, error)
	GetByID(ctx context.Context, id string) (*models.Client, error)
	Create(ctx context.Context, c *models.Client) error
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, id string) error
}

type clientService struct {
	repo  ClientRepository
	orgs  OrganizationLookup
	media MediaResolver
}

// NewClientService creates a new client service
func NewClientService(repo ClientRepository, orgs OrganizationLookup, resolver MediaResolver) *clientService {
	return &clientService{
		repo:  repo,
		orgs:  orgs,
		media: resolver,
	}
}

// ListByOrganization returns the clients of an organization of userID
func (s *clientService) ListByOrganization(ctx context.Context, userID, orgID string) ([]models.Client, error) {
	if _, err := ownedOrganization(ctx, s.orgs, userID, orgID); err != nil {
		return nil, err
	}
	clients, err := s.repo.ListByOrganization(ctx, orgID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// Get returns a client whose organization belongs to userID
func (s *clientService) Get(ctx context.Context, userID, id string) (*models.Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("get client", err)
	}
	if _, err := ownedOrganization(ctx, s.orgs, userID, c.OrganizationID); err != nil {
		return nil, err
	}
	return c, nil
}

// Create adds a client to an organization of userID
func (s *clientService) Create(ctx context.Context, userID, orgID string, handles media.HandleTable, req *models.ClientRequest) (*models.Client, error) {
	if _, err := ownedOrganization(ctx, s.orgs, userID, orgID); err != nil {
		return nil, err
	}

	fields := []media.Field{{Label: LabelClientLogo, Ref: req.Logo}}
	refs, err := resolveMedia(ctx, s.media, handles, fields)
	if err != nil {
		return nil, err
	}

	c := &models.Client{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		Name:           req.Name,
		Logo:           refs[0].String(),
		Order:          req.Order,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.media.Release(ctx, handles, fields)
	return c, nil
}

// Update replaces the name, logo and order of a client of userID
func (s *clientService) Update(ctx context.Context, userID, id string, handles media.HandleTable, req *models.ClientRequest) (*models.Client, error) {
	c, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	fields := []media.Field{{Label: LabelClientLogo, Ref: req.Logo}}
	refs, err := resolveMedia(ctx, s.media, handles, fields)
	if err != nil {
		return nil, err
	}

	c.Name = req.Name
	c.Logo = refs[0].String()
	c.Order = req.Order
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	s.media.Release(ctx, handles, fields)
	return c, nil
}

// Delete removes a client of userID
func (s *clientService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound("delete client", err)
	}
	return nil
}
