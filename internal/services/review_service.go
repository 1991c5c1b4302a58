package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/portfoliobuilder/backend/internal/media"
	"github.com/portfoliobuilder/backend/internal/models"
)

// ReviewRepository is the interface that wraps methods for reviews table data access
type ReviewRepository interface {
	// Method ListByOrganization returns the reviews of an organization, newest
	// first; limit <= 0 returns all of them.
	ListByOrganization(ctx context.Context, organizationID string, limit int) ([]models.Review, error)
	GetByID(ctx context.Context, id string) (*models.Review, error)
	Create(ctx context.Context, rv *models.Review) error
	Update(ctx context.Context, rv *models.Review) error
	Delete(ctx context.Context, id string) error
}

type reviewService struct {
	repo  ReviewRepository
	orgs  OrganizationLookup
	media MediaResolver
}

// NewReviewService creates a new review service
func NewReviewService(repo ReviewRepository, orgs OrganizationLookup, resolver MediaResolver) *reviewService {
	return &reviewService{
		repo:  repo,
		orgs:  orgs,
		media: resolver,
	}
}

func (s *reviewService) build(ctx context.Context, rv *models.Review, handles media.HandleTable, req *models.ReviewRequest) ([]media.Field, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	fields := []media.Field{{Label: LabelClientAvatar, Ref: req.AuthorLogo}}
	refs, err := resolveMedia(ctx, s.media, handles, fields)
	if err != nil {
		return nil, err
	}

	rv.AuthorName = req.AuthorName
	rv.AuthorCompany = req.AuthorCompany
	rv.AuthorLogo = refs[0].String()
	rv.Rating = req.Rating
	rv.Content = req.Content
	rv.Date = date
	return fields, nil
}

// ListByOrganization returns every review of an organization of userID
func (s *reviewService) ListByOrganization(ctx context.Context, userID, orgID string) ([]models.Review, error) {
	if _, err := ownedOrganization(ctx, s.orgs, userID, orgID); err != nil {
		return nil, err
	}
	reviews, err := s.repo.ListByOrganization(ctx, orgID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// Get returns a review whose organization belongs to userID
func (s *reviewService) Get(ctx context.Context, userID, id string) (*models.Review, error) {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("get review", err)
	}
	if _, err := ownedOrganization(ctx, s.orgs, userID, rv.OrganizationID); err != nil {
		return nil, err
	}
	return rv, nil
}

// Create adds a review to an organization of userID
func (s *reviewService) Create(ctx context.Context, userID, orgID string, handles media.HandleTable, req *models.ReviewRequest) (*models.Review, error) {
	if _, err := ownedOrganization(ctx, s.orgs, userID, orgID); err != nil {
		return nil, err
	}

	rv := &models.Review{ID: uuid.NewString(), OrganizationID: orgID}
	fields, err := s.build(ctx, rv, handles, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.media.Release(ctx, handles, fields)
	return rv, nil
}

// Update replaces the editable fields of a review of userID
func (s *reviewService) Update(ctx context.Context, userID, id string, handles media.HandleTable, req *models.ReviewRequest) (*models.Review, error) {
	rv, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	fields, err := s.build(ctx, rv, handles, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, rv); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	s.media.Release(ctx, handles, fields)
	return rv, nil
}

// Delete removes a review of userID
func (s *reviewService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound("delete review", err)
	}
	return nil
}
