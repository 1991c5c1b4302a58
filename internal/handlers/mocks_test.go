package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/portfoliobuilder/backend/internal/media"
	"github.com/portfoliobuilder/backend/internal/middleware"
	"github.com/portfoliobuilder/backend/internal/models"
	"github.com/portfoliobuilder/backend/internal/validation"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testUserID = "user-1"

// mockDraftHandles is a mock implementation of DraftHandles
type mockDraftHandles struct {
	table       media.HandleTable
	err         error
	gotUserID   string
	gotSession  string
	handleCalls int
}

func (m *mockDraftHandles) Handles(_ context.Context, userID, sessionID string) (media.HandleTable, error) {
	m.handleCalls++
	m.gotUserID = userID
	m.gotSession = sessionID
	if sessionID == "" {
		return nil, nil
	}
	return m.table, m.err
}

// mockOrganizationService is a mock implementation of OrganizationService
type mockOrganizationService struct {
	organizations []models.OrganizationSummary
	organization  *models.Organization
	err           error

	gotUserID  string
	gotID      string
	gotHandles media.HandleTable
	gotRequest *models.OrganizationRequest
}

func (m *mockOrganizationService) List(_ context.Context, userID string) ([]models.OrganizationSummary, error) {
	m.gotUserID = userID
	return m.organizations, m.err
}

func (m *mockOrganizationService) Get(_ context.Context, userID, id string) (*models.Organization, error) {
	m.gotUserID, m.gotID = userID, id
	return m.organization, m.err
}

func (m *mockOrganizationService) Create(_ context.Context, userID string, handles media.HandleTable, req *models.OrganizationRequest) (*models.Organization, error) {
	m.gotUserID, m.gotHandles, m.gotRequest = userID, handles, req
	return m.organization, m.err
}

func (m *mockOrganizationService) Update(_ context.Context, userID, id string, handles media.HandleTable, req *models.OrganizationRequest) (*models.Organization, error) {
	m.gotUserID, m.gotID, m.gotHandles, m.gotRequest = userID, id, handles, req
	return m.organization, m.err
}

func (m *mockOrganizationService) TogglePublish(_ context.Context, userID, id string) (*models.Organization, error) {
	m.gotUserID, m.gotID = userID, id
	return m.organization, m.err
}

func (m *mockOrganizationService) Delete(_ context.Context, userID, id string) error {
	m.gotUserID, m.gotID = userID, id
	return m.err
}

// mockProjectService is a mock implementation of ProjectService
type mockProjectService struct {
	projects []models.Project
	project  *models.Project
	err      error

	gotOrgID   string
	gotID      string
	gotHandles media.HandleTable
	gotRequest *models.ProjectRequest
}

func (m *mockProjectService) ListByOrganization(_ context.Context, _, orgID string) ([]models.Project, error) {
	m.gotOrgID = orgID
	return m.projects, m.err
}

func (m *mockProjectService) Get(_ context.Context, _, id string) (*models.Project, error) {
	m.gotID = id
	return m.project, m.err
}

func (m *mockProjectService) Create(_ context.Context, _, orgID string, handles media.HandleTable, req *models.ProjectRequest) (*models.Project, error) {
	m.gotOrgID, m.gotHandles, m.gotRequest = orgID, handles, req
	return m.project, m.err
}

func (m *mockProjectService) Update(_ context.Context, _, id string, handles media.HandleTable, req *models.ProjectRequest) (*models.Project, error) {
	m.gotID, m.gotHandles, m.gotRequest = id, handles, req
	return m.project, m.err
}

func (m *mockProjectService) Delete(_ context.Context, _, id string) error {
	m.gotID = id
	return m.err
}

// mockOfferedServiceService is a mock implementation of OfferedServiceService
type mockOfferedServiceService struct {
	service    *models.Service
	err        error
	gotOrgID   string
	gotRequest *models.ServiceRequest
}

func (m *mockOfferedServiceService) ListByOrganization(_ context.Context, _, orgID string) ([]models.Service, error) {
	m.gotOrgID = orgID
	return []models.Service{}, m.err
}

func (m *mockOfferedServiceService) Get(context.Context, string, string) (*models.Service, error) {
	return m.service, m.err
}

func (m *mockOfferedServiceService) Create(_ context.Context, _, orgID string, _ media.HandleTable, req *models.ServiceRequest) (*models.Service, error) {
	m.gotOrgID, m.gotRequest = orgID, req
	return m.service, m.err
}

func (m *mockOfferedServiceService) Update(_ context.Context, _, _ string, _ media.HandleTable, req *models.ServiceRequest) (*models.Service, error) {
	m.gotRequest = req
	return m.service, m.err
}

func (m *mockOfferedServiceService) Delete(context.Context, string, string) error {
	return m.err
}

// mockClientService is a mock implementation of ClientService
type mockClientService struct {
	client     *models.Client
	err        error
	gotOrgID   string
	gotRequest *models.ClientRequest
}

func (m *mockClientService) ListByOrganization(_ context.Context, _, orgID string) ([]models.Client, error) {
	m.gotOrgID = orgID
	return []models.Client{}, m.err
}

func (m *mockClientService) Get(context.Context, string, string) (*models.Client, error) {
	return m.client, m.err
}

func (m *mockClientService) Create(_ context.Context, _, orgID string, _ media.HandleTable, req *models.ClientRequest) (*models.Client, error) {
	m.gotOrgID, m.gotRequest = orgID, req
	return m.client, m.err
}

func (m *mockClientService) Update(_ context.Context, _, _ string, _ media.HandleTable, req *models.ClientRequest) (*models.Client, error) {
	m.gotRequest = req
	return m.client, m.err
}

func (m *mockClientService) Delete(context.Context, string, string) error {
	return m.err
}

// mockReviewService is a mock implementation of ReviewService
type mockReviewService struct {
	review     *models.Review
	err        error
	gotOrgID   string
	gotRequest *models.ReviewRequest
}

func (m *mockReviewService) ListByOrganization(_ context.Context, _, orgID string) ([]models.Review, error) {
	m.gotOrgID = orgID
	return []models.Review{}, m.err
}

func (m *mockReviewService) Get(context.Context, string, string) (*models.Review, error) {
	return m.review, m.err
}

func (m *mockReviewService) Create(_ context.Context, _, orgID string, _ media.HandleTable, req *models.ReviewRequest) (*models.Review, error) {
	m.gotOrgID, m.gotRequest = orgID, req
	return m.review, m.err
}

func (m *mockReviewService) Update(_ context.Context, _, _ string, _ media.HandleTable, req *models.ReviewRequest) (*models.Review, error) {
	m.gotRequest = req
	return m.review, m.err
}

func (m *mockReviewService) Delete(context.Context, string, string) error {
	return m.err
}

// routes is implemented by every handler registered on the authenticated router
type routes interface {
	RegisterRoutes(r chi.Router)
}

// newTestValidator compiles the real request schemas
func newTestValidator(t *testing.T) *validation.Validator {
	t.Helper()
	v, err := validation.New()
	require.NoError(t, err)
	return v
}

// newTestRouter mounts h behind a middleware that authenticates userID;
// an empty userID leaves the request anonymous.
func newTestRouter(h routes, userID string) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if userID != "" {
				req = req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
			}
			next.ServeHTTP(w, req)
		})
	})
	h.RegisterRoutes(r)
	return r
}

func serve(router http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var testLogger = zap.NewNop()
