package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/portfoliobuilder/backend/internal/media"
	"github.com/portfoliobuilder/backend/internal/models"
	"github.com/portfoliobuilder/backend/internal/repositories"
)

// mockResolver is a mock implementation of MediaResolver. Ephemeral fields
// resolve to a CDN url named after the field label.
type mockResolver struct {
	err      error
	calls    int
	fields   []media.Field
	released []media.Field
}

func (m *mockResolver) ResolveAll(_ context.Context, _ media.HandleTable, fields []media.Field) ([]media.Ref, error) {
	m.calls++
	m.fields = fields
	if m.err != nil {
		return nil, m.err
	}
	refs := make([]media.Ref, len(fields))
	for i, f := range fields {
		if f.Ref.Kind() != media.KindEphemeral {
			refs[i] = f.Ref
			continue
		}
		ref, err := media.Parse(fmt.Sprintf("https://cdn.example.com/%s-%d.png", f.Label, i))
		if err != nil {
			return nil, err
		}
		refs[i] = ref
	}
	return refs, nil
}

func (m *mockResolver) Release(_ context.Context, _ media.HandleTable, fields []media.Field) {
	m.released = append(m.released, fields...)
}

// mockOrganizationRepository is a mock implementation of OrganizationRepository
type mockOrganizationRepository struct {
	mu         sync.Mutex
	orgs       map[string]*models.Organization
	slugTaken  bool
	createErr  error
	updateErr  error
	deleteErr  error
	created    *models.Organization
	updated    *models.Organization
	published  map[string]bool
	listResult []models.OrganizationSummary
}

func newMockOrganizationRepository(orgs ...*models.Organization) *mockOrganizationRepository {
	m := &mockOrganizationRepository{
		orgs:      make(map[string]*models.Organization),
		published: make(map[string]bool),
	}
	for _, org := range orgs {
		m.orgs[org.ID] = org
	}
	return m
}

func (m *mockOrganizationRepository) List(_ context.Context, _ string) ([]models.OrganizationSummary, error) {
	return m.listResult, nil
}

func (m *mockOrganizationRepository) GetByID(_ context.Context, id string) (*models.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	org, ok := m.orgs[id]
	if !ok {
		return nil, fmt.Errorf("organization %w", repositories.ErrNotFound)
	}
	copied := *org
	return &copied, nil
}

func (m *mockOrganizationRepository) GetPublishedBySlug(_ context.Context, slug string) (*models.Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, org := range m.orgs {
		if org.Slug == slug && org.IsPublished {
			copied := *org
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("organization %w", repositories.ErrNotFound)
}

func (m *mockOrganizationRepository) SlugExists(_ context.Context, _, _ string) (bool, error) {
	return m.slugTaken, nil
}

func (m *mockOrganizationRepository) Create(_ context.Context, org *models.Organization) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = org
	return nil
}

func (m *mockOrganizationRepository) Update(_ context.Context, org *models.Organization) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = org
	return nil
}

func (m *mockOrganizationRepository) SetPublished(_ context.Context, id string, published bool) error {
	m.published[id] = published
	return nil
}

func (m *mockOrganizationRepository) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// mockProjectRepository is a mock implementation of ProjectRepository
type mockProjectRepository struct {
	projects    map[string]*models.Project
	highlighted []models.Project
	err         error
	created     *models.Project
	updated     *models.Project
	limit       int
}

func (m *mockProjectRepository) ListByOrganization(_ context.Context, orgID string) ([]models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]models.Project, 0)
	for _, p := range m.projects {
		if p.OrganizationID == orgID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProjectRepository) ListHighlighted(_ context.Context, _ string, limit int) ([]models.Project, error) {
	m.limit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.highlighted, nil
}

func (m *mockProjectRepository) GetByID(_ context.Context, id string) (*models.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %w", repositories.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (m *mockProjectRepository) Create(_ context.Context, p *models.Project) error {
	m.created = p
	return m.err
}

func (m *mockProjectRepository) Update(_ context.Context, p *models.Project) error {
	m.updated = p
	return m.err
}

func (m *mockProjectRepository) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockServiceRepository is a mock implementation of ServiceRepository
type mockServiceRepository struct {
	services map[string]*models.Service
	err      error
	created  *models.Service
}

func (m *mockServiceRepository) ListByOrganization(_ context.Context, orgID string) ([]models.Service, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]models.Service, 0)
	for _, s := range m.services {
		if s.OrganizationID == orgID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockServiceRepository) GetByID(_ context.Context, id string) (*models.Service, error) {
	s, ok := m.services[id]
	if !ok {
		return nil, fmt.Errorf("service %w", repositories.ErrNotFound)
	}
	copied := *s
	return &copied, nil
}

func (m *mockServiceRepository) Create(_ context.Context, s *models.Service) error {
	m.created = s
	return m.err
}

func (m *mockServiceRepository) Update(_ context.Context, _ *models.Service) error {
	return m.err
}

func (m *mockServiceRepository) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockClientRepository is a mock implementation of ClientRepository
type mockClientRepository struct {
	clients []models.Client
	byID    map[string]*models.Client
	err     error
	created *models.Client
	limit   int
}

func (m *mockClientRepository) ListByOrganization(_ context.Context, _ string, limit int) ([]models.Client, error) {
	m.limit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.clients, nil
}

func (m *mockClientRepository) GetByID(_ context.Context, id string) (*models.Client, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("client %w", repositories.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (m *mockClientRepository) Create(_ context.Context, c *models.Client) error {
	m.created = c
	return m.err
}

func (m *mockClientRepository) Update(_ context.Context, _ *models.Client) error {
	return m.err
}

func (m *mockClientRepository) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockReviewRepository is a mock implementation of ReviewRepository
type mockReviewRepository struct {
	reviews []models.Review
	byID    map[string]*models.Review
	err     error
	created *models.Review
	limit   int
}

func (m *mockReviewRepository) ListByOrganization(_ context.Context, _ string, limit int) ([]models.Review, error) {
	m.limit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.reviews, nil
}

func (m *mockReviewRepository) GetByID(_ context.Context, id string) (*models.Review, error) {
	rv, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("review %w", repositories.ErrNotFound)
	}
	copied := *rv
	return &copied, nil
}

func (m *mockReviewRepository) Create(_ context.Context, rv *models.Review) error {
	m.created = rv
	return m.err
}

func (m *mockReviewRepository) Update(_ context.Context, _ *models.Review) error {
	return m.err
}

func (m *mockReviewRepository) Delete(_ context.Context, _ string) error {
	return m.err
}
