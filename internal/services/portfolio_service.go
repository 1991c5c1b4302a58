package services

import (
	"context"
	"fmt"

	"github.com/portfoliobuilder/backend/internal/models"
	"golang.org/x/sync/errgroup"
)

// Limits of the public portfolio page
const (
	PublicProjectLimit = 12
	PublicClientLimit  = 12
	PublicReviewLimit  = 6
)

// PublishedOrganizationRepository finds organizations visible to everybody
type PublishedOrganizationRepository interface {
	// Method GetPublishedBySlug returns a published organization. Unknown and
	// unpublished slugs match repositories.ErrNotFound.
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Organization, error)
}

// HighlightedProjectRepository lists the projects shown on the public page
type HighlightedProjectRepository interface {
	// Method ListHighlighted returns at most limit pinned or featured projects.
	ListHighlighted(ctx context.Context, organizationID string, limit int) ([]models.Project, error)
}

type portfolioService struct {
	orgs     PublishedOrganizationRepository
	projects HighlightedProjectRepository
	services ServiceRepository
	clients  ClientRepository
	reviews  ReviewRepository
}

// NewPortfolioService creates the service behind the public portfolio pages
func NewPortfolioService(
	orgs PublishedOrganizationRepository,
	projects HighlightedProjectRepository,
	services ServiceRepository,
	clients ClientRepository,
	reviews ReviewRepository,
) *portfolioService {
	return &portfolioService{
		orgs:     orgs,
		projects: projects,
		services: services,
		clients:  clients,
		reviews:  reviews,
	}
}

// GetBySlug assembles the public page of a published organization. The
// sections are loaded concurrently; any failure fails the page.
func (s *portfolioService) GetBySlug(ctx context.Context, slug string) (*models.PublicPortfolio, error) {
	org, err := s.orgs.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, notFound("get portfolio", err)
	}

	page := &models.PublicPortfolio{Organization: *org}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		projects, err := s.projects.ListHighlighted(gctx, org.ID, PublicProjectLimit)
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}
		page.Projects = projects
		return nil
	})
	g.Go(func() error {
		services, err := s.services.ListByOrganization(gctx, org.ID)
		if err != nil {
			return fmt.Errorf("failed to list services: %w", err)
		}
		page.Services = services
		return nil
	})
	g.Go(func() error {
		clients, err := s.clients.ListByOrganization(gctx, org.ID, PublicClientLimit)
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}
		page.Clients = clients
		return nil
	})
	g.Go(func() error {
		reviews, err := s.reviews.ListByOrganization(gctx, org.ID, PublicReviewLimit)
		if err != nil {
			return fmt.Errorf("failed to list reviews: %w", err)
		}
		page.Reviews = reviews
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	page.AverageRating = AverageRating(page.Reviews)
	return page, nil
}

// GetService returns one service of a published organization
func (s *portfolioService) GetService(ctx context.Context, slug, serviceID string) (*models.PublicService, error) {
	org, err := s.orgs.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, notFound("get portfolio", err)
	}

	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, notFound("get service", err)
	}
	if svc.OrganizationID != org.ID {
		return nil, fmt.Errorf("get service: %w", ErrNotFound)
	}

	return &models.PublicService{Organization: *org, Service: *svc}, nil
}

// AverageRating formats the mean rating with one decimal; "0.0" without reviews
func AverageRating(reviews []models.Review) string {
	if len(reviews) == 0 {
		return "0.0"
	}
	total := 0
	for _, rv := range reviews {
		total += rv.Rating
	}
	return fmt.Sprintf("%.1f", float64(total)/float64(len(reviews)))
}
