package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/portfoliobuilder/backend/internal/media"
	"github.com/portfoliobuilder/backend/internal/models"
	"github.com/portfoliobuilder/backend/internal/validation"
	"go.uber.org/zap"
)

// ProjectService is the interface that wraps methods for project business logic.
// Every method reports rows of organizations owned by another user as services.ErrNotFound.
type ProjectService interface {
	// Method ListByOrganization returns the projects of an organization.
	ListByOrganization(ctx context.Context, userID, orgID string) ([]models.Project, error)
	Get(ctx context.Context, userID, id string) (*models.Project, error)
	// Method Create resolves the media fields against handles and stores a new project.
	// Media failures match media.ErrUploadFailed and nothing is stored.
	Create(ctx context.Context, userID, orgID string, handles media.HandleTable, req *models.ProjectRequest) (*models.Project, error)
	Update(ctx context.Context, userID, id string, handles media.HandleTable, req *models.ProjectRequest) (*models.Project, error)
	Delete(ctx context.Context, userID, id string) error
}

// ProjectHandler handles HTTP requests for projects
type ProjectHandler struct {
	formHandler
	service ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(svc ProjectService, validator RequestValidator, drafts DraftHandles, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		formHandler: formHandler{
			BaseHandler: BaseHandler{Logger: logger},
			validator:   validator,
			drafts:      drafts,
		},
		service: svc,
	}
}

// RegisterRoutes registers the project routes on an authenticated router
func (h *ProjectHandler) RegisterRoutes(r chi.Router) {
	r.Get("/organizations/{id}/projects", h.List)
	r.Post("/organizations/{id}/projects", h.Create)
	r.Get("/projects/{id}", h.Get)
	r.Put("/projects/{id}", h.Update)
	r.Delete("/projects/{id}", h.Delete)
}

// List handles GET /api/v1/organizations/{id}/projects
// @Summary List projects
// @Description Pinned projects come first, then featured ones, then by order.
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Success 200 {array} models.Project
// @Failure 404 {object} map[string]string
// @Router /api/v1/organizations/{id}/projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	items, err := h.service.ListByOrganization(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err, "list projects")
		return
	}

	h.RespondJSON(w, http.StatusOK, items)
}

// Get handles GET /api/v1/projects/{id}
// @Summary Get project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} models.Project
// @Failure 404 {object} map[string]string
// @Router /api/v1/projects/{id} [get]
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	item, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err, "get project")
		return
	}

	h.RespondJSON(w, http.StatusOK, item)
}

// Create handles POST /api/v1/organizations/{id}/projects
// @Summary Create project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Param X-Draft-Session header string false "Draft session ID"
// @Param request body models.ProjectRequest true "Project"
// @Success 201 {object} models.Project
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/organizations/{id}/projects [post]
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.ProjectRequest
	handles, ok := h.decodeForm(w, r, validation.Project, &req)
	if !ok {
		return
	}

	item, err := h.service.Create(r.Context(), userID, chi.URLParam(r, "id"), handles, &req)
	if err != nil {
		h.HandleServiceError(w, err, "create project")
		return
	}

	h.RespondJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/v1/projects/{id}
// @Summary Update project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param X-Draft-Session header string false "Draft session ID"
// @Param request body models.ProjectRequest true "Project"
// @Success 200 {object} models.Project
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/projects/{id} [put]
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.ProjectRequest
	handles, ok := h.decodeForm(w, r, validation.Project, &req)
	if !ok {
		return
	}

	item, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), handles, &req)
	if err != nil {
		h.HandleServiceError(w, err, "update project")
		return
	}

	h.RespondJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/v1/projects/{id}
// @Summary Delete project
// @Tags projects
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err, "delete project")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
