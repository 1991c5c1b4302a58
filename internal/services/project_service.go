package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/portfoliobuilder/backend/internal/media"
	"github.com/portfoliobuilder/backend/internal/models"
)

// ProjectRepository is the interface that wraps methods for projects table data access
type ProjectRepository interface {
	// Method ListByOrganization returns every project of an organization in display order.
	ListByOrganization(ctx context.Context, organizationID string) ([]models.Project, error)
	// Method GetByID returns one project. A missing row matches repositories.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, p *models.Project) error
	Update(ctx context.Context, p *models.Project) error
	Delete(ctx context.Context, id string) error
}

type projectService struct {
	repo  ProjectRepository
	orgs  OrganizationLookup
	media MediaResolver
}

// NewProjectService creates a new project service
func NewProjectService(repo ProjectRepository, orgs OrganizationLookup, resolver MediaResolver) *projectService {
	return &projectService{
		repo:  repo,
		orgs:  orgs,
		media: resolver,
	}
}

// projectFields lists the cover first, then every image in order
func projectFields(req *models.ProjectRequest) []media.Field {
	fields := make([]media.Field, 0, len(req.Images)+1)
	fields = append(fields, media.Field{Label: LabelProjectCover, Ref: req.CoverImage})
	for _, image := range req.Images {
		fields = append(fields, media.Field{Label: LabelProjectImage, Ref: image})
	}
	return fields
}

func (s *projectService) build(ctx context.Context, p *models.Project, handles media.HandleTable, req *models.ProjectRequest) ([]media.Field, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	fields := projectFields(req)
	refs, err := resolveMedia(ctx, s.media, handles, fields)
	if err != nil {
		return nil, err
	}

	images := make([]string, 0, len(refs)-1)
	for _, ref := range refs[1:] {
		if !ref.IsEmpty() {
			images = append(images, ref.String())
		}
	}

	p.Title = req.Title
	p.Description = req.Description
	p.CoverImage = refs[0].String()
	p.Images = images
	p.Date = date
	p.IsPinned = req.IsPinned
	p.IsFeatured = req.IsFeatured
	p.ProjectURL = req.ProjectURL
	p.Tags = splitTags(req.Tags)
	p.Order = req.Order
	return fields, nil
}

// ListByOrganization returns the projects of an organization of userID
func (s *projectService) ListByOrganization(ctx context.Context, userID, orgID string) ([]models.Project, error) {
	if _, err := ownedOrganization(ctx, s.orgs, userID, orgID); err != nil {
		return nil, err
	}
	projects, err := s.repo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Get returns a project whose organization belongs to userID
func (s *projectService) Get(ctx context.Context, userID, id string) (*models.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("get project", err)
	}
	if _, err := ownedOrganization(ctx, s.orgs, userID, p.OrganizationID); err != nil {
		return nil, err
	}
	return p, nil
}

// Create adds a project to an organization of userID
func (s *projectService) Create(ctx context.Context, userID, orgID string, handles media.HandleTable, req *models.ProjectRequest) (*models.Project, error) {
	if _, err := ownedOrganization(ctx, s.orgs, userID, orgID); err != nil {
		return nil, err
	}

	p := &models.Project{ID: uuid.NewString(), OrganizationID: orgID}
	fields, err := s.build(ctx, p, handles, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.media.Release(ctx, handles, fields)
	return p, nil
}

// Update replaces the editable fields of a project of userID
func (s *projectService) Update(ctx context.Context, userID, id string, handles media.HandleTable, req *models.ProjectRequest) (*models.Project, error) {
	p, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	fields, err := s.build(ctx, p, handles, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.media.Release(ctx, handles, fields)
	return p, nil
}

// Delete removes a project of userID
func (s *projectService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound("delete project", err)
	}
	return nil
}
