package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/portfoliobuilder/backend/internal/media"
	"github.com/portfoliobuilder/backend/internal/models"
)

// ServiceRepository is the interface that wraps methods for services table data access
type ServiceRepository interface {
	// Method ListByOrganization returns the services of an organization by order.
	ListByOrganization(ctx context.Context, organizationID string) ([]models.Service, error)
	// Method GetByID returns one service. A missing row matches repositories.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Service, error)
	Create(ctx context.Context, s *models.Service) error
	Update(ctx context.Context, s *models.Service) error
	Delete(ctx context.Context, id string) error
}

// servicesService manages the services an organization offers
type servicesService struct {
	repo  ServiceRepository
	orgs  OrganizationLookup
	media MediaResolver
}

// NewServicesService creates a new service for offered services
func NewServicesService(repo ServiceRepository, orgs OrganizationLookup, resolver MediaResolver) *servicesService {
	return &servicesService{
		repo:  repo,
		orgs:  orgs,
		media: resolver,
	}
}

// serviceFields lists logo, banner, then one image per sample work
func serviceFields(req *models.ServiceRequest) []media.Field {
	fields := make([]media.Field, 0, len(req.SampleWork)+2)
	fields = append(fields,
		media.Field{Label: LabelServiceLogo, Ref: req.Logo},
		media.Field{Label: LabelServiceBanner, Ref: req.Banner},
	)
	for _, work := range req.SampleWork {
		fields = append(fields, media.Field{Label: LabelSampleWork, Ref: work.ImageURL})
	}
	return fields
}

func (s *servicesService) build(ctx context.Context, svc *models.Service, handles media.HandleTable, req *models.ServiceRequest) ([]media.Field, error) {
	fields := serviceFields(req)
	refs, err := resolveMedia(ctx, s.media, handles, fields)
	if err != nil {
		return nil, err
	}

	work := make([]models.SampleWork, 0, len(req.SampleWork))
	for i, w := range req.SampleWork {
		id := w.ID
		if id == "" {
			id = uuid.NewString()
		}
		technologies := w.Technologies
		if technologies == nil {
			technologies = []string{}
		}
		work = append(work, models.SampleWork{
			ID:           id,
			Title:        w.Title,
			Description:  w.Description,
			ImageURL:     refs[i+2].String(),
			ProjectURL:   w.ProjectURL,
			Technologies: technologies,
		})
	}

	svc.Title = req.Title
	svc.Description = req.Description
	svc.Icon = req.Icon
	svc.Logo = refs[0].String()
	svc.Banner = refs[1].String()
	svc.PricePerHour = req.PricePerHour
	svc.SampleWork = work
	svc.Order = req.Order
	return fields, nil
}

// ListByOrganization returns the services of an organization of userID
func (s *servicesService) ListByOrganization(ctx context.Context, userID, orgID string) ([]models.Service, error) {
	if _, err := ownedOrganization(ctx, s.orgs, userID, orgID); err != nil {
		return nil, err
	}
	services, err := s.repo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// Get returns a service whose organization belongs to userID
func (s *servicesService) Get(ctx context.Context, userID, id string) (*models.Service, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("get service", err)
	}
	if _, err := ownedOrganization(ctx, s.orgs, userID, svc.OrganizationID); err != nil {
		return nil, err
	}
	return svc, nil
}

// Create adds a service to an organization of userID
func (s *servicesService) Create(ctx context.Context, userID, orgID string, handles media.HandleTable, req *models.ServiceRequest) (*models.Service, error) {
	if _, err := ownedOrganization(ctx, s.orgs, userID, orgID); err != nil {
		return nil, err
	}

	svc := &models.Service{ID: uuid.NewString(), OrganizationID: orgID}
	fields, err := s.build(ctx, svc, handles, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	s.media.Release(ctx, handles, fields)
	return svc, nil
}

// Update replaces the editable fields of a service of userID
func (s *servicesService) Update(ctx context.Context, userID, id string, handles media.HandleTable, req *models.ServiceRequest) (*models.Service, error) {
	svc, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	fields, err := s.build(ctx, svc, handles, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	s.media.Release(ctx, handles, fields)
	return svc, nil
}

// Delete removes a service of userID
func (s *servicesService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound("delete service", err)
	}
	return nil
}
