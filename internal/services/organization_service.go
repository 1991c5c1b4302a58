package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/portfoliobuilder/backend/internal/media"
	"github.com/portfoliobuilder/backend/internal/models"
	"github.com/portfoliobuilder/backend/internal/repositories"
)

// OrganizationRepository is the interface that wraps methods for organizations table data access
type OrganizationRepository interface {
	// Method List returns the organizations of a user with section counts, newest first.
	List(ctx context.Context, userID string) ([]models.OrganizationSummary, error)
	// Method GetByID returns one organization. A missing row matches repositories.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Organization, error)
	// Method SlugExists reports whether an organization other than excludeID uses slug.
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	// Method Create inserts an organization. A taken slug matches repositories.ErrDuplicate.
	Create(ctx context.Context, org *models.Organization) error
	// Method Update writes the editable fields of an organization.
	Update(ctx context.Context, org *models.Organization) error
	// Method SetPublished sets the published flag.
	SetPublished(ctx context.Context, id string, published bool) error
	// Method Delete removes an organization together with its sections.
	Delete(ctx context.Context, id string) error
}

type organizationService struct {
	repo  OrganizationRepository
	media MediaResolver
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(repo OrganizationRepository, resolver MediaResolver) *organizationService {
	return &organizationService{
		repo:  repo,
		media: resolver,
	}
}

func organizationFields(req *models.OrganizationRequest) []media.Field {
	return []media.Field{
		{Label: LabelOrganizationLogo, Ref: req.Logo},
		{Label: LabelOrganizationCover, Ref: req.CoverImage},
	}
}

func applyOrganizationRequest(org *models.Organization, req *models.OrganizationRequest, refs []media.Ref) {
	org.Name = req.Name
	org.DisplayName = req.DisplayName
	org.Tagline = req.Tagline
	org.Description = req.Description
	org.Logo = refs[0].String()
	org.CoverImage = refs[1].String()
	org.Website = req.Website
	org.Location = req.Location
	org.TeamSize = req.TeamSize
	org.Phone = req.Phone
	org.Country = req.Country
	org.Currency = req.Currency
	org.Slug = req.Slug
	org.LinkedIn = req.LinkedIn
	org.Twitter = req.Twitter
	org.Instagram = req.Instagram
	org.Facebook = req.Facebook
}

// List returns the organizations owned by userID
func (s *organizationService) List(ctx context.Context, userID string) ([]models.OrganizationSummary, error) {
	orgs, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// Get returns one organization of userID
func (s *organizationService) Get(ctx context.Context, userID, id string) (*models.Organization, error) {
	return ownedOrganization(ctx, s.repo, userID, id)
}

// Create stores a new unpublished organization.
//
// The slug is checked before any media is uploaded, so a taken slug never leaves
// orphaned objects behind. Media fields are resolved before the row is written.
func (s *organizationService) Create(ctx context.Context, userID string, handles media.HandleTable, req *models.OrganizationRequest) (*models.Organization, error) {
	if err := s.checkSlug(ctx, req.Slug, ""); err != nil {
		return nil, err
	}

	fields := organizationFields(req)
	refs, err := resolveMedia(ctx, s.media, handles, fields)
	if err != nil {
		return nil, err
	}

	org := &models.Organization{ID: uuid.NewString(), UserID: userID}
	applyOrganizationRequest(org, req, refs)

	if err := s.repo.Create(ctx, org); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	s.media.Release(ctx, handles, fields)
	return org, nil
}

// Update replaces the editable fields of an organization of userID
func (s *organizationService) Update(ctx context.Context, userID, id string, handles media.HandleTable, req *models.OrganizationRequest) (*models.Organization, error) {
	org, err := ownedOrganization(ctx, s.repo, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkSlug(ctx, req.Slug, id); err != nil {
		return nil, err
	}

	fields := organizationFields(req)
	refs, err := resolveMedia(ctx, s.media, handles, fields)
	if err != nil {
		return nil, err
	}

	applyOrganizationRequest(org, req, refs)
	if err := s.repo.Update(ctx, org); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	s.media.Release(ctx, handles, fields)
	return org, nil
}

// TogglePublish flips the published flag and returns the updated organization
func (s *organizationService) TogglePublish(ctx context.Context, userID, id string) (*models.Organization, error) {
	org, err := ownedOrganization(ctx, s.repo, userID, id)
	if err != nil {
		return nil, err
	}

	published := !org.IsPublished
	if err := s.repo.SetPublished(ctx, id, published); err != nil {
		return nil, notFound("update publish state", err)
	}
	org.IsPublished = published
	return org, nil
}

// Delete removes an organization of userID and everything in it
func (s *organizationService) Delete(ctx context.Context, userID, id string) error {
	if _, err := ownedOrganization(ctx, s.repo, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound("delete organization", err)
	}
	return nil
}

func (s *organizationService) checkSlug(ctx context.Context, slug, excludeID string) error {
	taken, err := s.repo.SlugExists(ctx, slug, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return ErrSlugTaken
	}
	return nil
}
