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

// OrganizationService is the interface that wraps methods for organization business logic.
type OrganizationService interface {
	// Method List returns the organizations of a user with their section counts.
	List(ctx context.Context, userID string) ([]models.OrganizationSummary, error)
	// Method Get returns an organization of a user. Other users' organizations match services.ErrNotFound.
	Get(ctx context.Context, userID, id string) (*models.Organization, error)
	// Method Create resolves the media fields against handles and stores a new organization.
	//
	// A taken slug matches services.ErrSlugTaken; media failures match media.ErrUploadFailed.
	Create(ctx context.Context, userID string, handles media.HandleTable, req *models.OrganizationRequest) (*models.Organization, error)
	// Method Update is Create for an existing organization.
	Update(ctx context.Context, userID, id string, handles media.HandleTable, req *models.OrganizationRequest) (*models.Organization, error)
	// Method TogglePublish flips the published flag.
	TogglePublish(ctx context.Context, userID, id string) (*models.Organization, error)
	// Method Delete removes an organization with all its sections.
	Delete(ctx context.Context, userID, id string) error
}

// OrganizationHandler handles HTTP requests for organizations
type OrganizationHandler struct {
	formHandler
	service OrganizationService
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(svc OrganizationService, validator RequestValidator, drafts DraftHandles, logger *zap.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		formHandler: formHandler{
			BaseHandler: BaseHandler{Logger: logger},
			validator:   validator,
			drafts:      drafts,
		},
		service: svc,
	}
}

// RegisterRoutes registers the organization routes on an authenticated router
func (h *OrganizationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/organizations", h.List)
	r.Post("/organizations", h.Create)
	r.Get("/organizations/{id}", h.Get)
	r.Put("/organizations/{id}", h.Update)
	r.Patch("/organizations/{id}/publish", h.TogglePublish)
	r.Delete("/organizations/{id}", h.Delete)
}

// List handles GET /api/v1/organizations
// @Summary List organizations
// @Description List the organizations of the authenticated user, newest first, with section counts
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.OrganizationSummary
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/organizations [get]
func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	orgs, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.HandleServiceError(w, err, "list organizations")
		return
	}

	h.RespondJSON(w, http.StatusOK, orgs)
}

// Get handles GET /api/v1/organizations/{id}
// @Summary Get organization
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Success 200 {object} models.Organization
// @Failure 404 {object} map[string]string
// @Router /api/v1/organizations/{id} [get]
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	org, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err, "get organization")
		return
	}

	h.RespondJSON(w, http.StatusOK, org)
}

// Create handles POST /api/v1/organizations
// @Summary Create organization
// @Description Create an organization. Media fields may hold draft references staged in the session named by X-Draft-Session.
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Draft-Session header string false "Draft session ID"
// @Param request body models.OrganizationRequest true "Organization"
// @Success 201 {object} models.Organization
// @Failure 400 {object} map[string]any
// @Failure 409 {object} map[string]string "Slug taken"
// @Failure 422 {object} map[string]string "Stale media reference"
// @Failure 502 {object} map[string]string "Media upload failed"
// @Router /api/v1/organizations [post]
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.OrganizationRequest
	handles, ok := h.decodeForm(w, r, validation.Organization, &req)
	if !ok {
		return
	}

	org, err := h.service.Create(r.Context(), userID, handles, &req)
	if err != nil {
		h.HandleServiceError(w, err, "create organization")
		return
	}

	h.RespondJSON(w, http.StatusCreated, org)
}

// Update handles PUT /api/v1/organizations/{id}
// @Summary Update organization
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Param X-Draft-Session header string false "Draft session ID"
// @Param request body models.OrganizationRequest true "Organization"
// @Success 200 {object} models.Organization
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/organizations/{id} [put]
func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.OrganizationRequest
	handles, ok := h.decodeForm(w, r, validation.Organization, &req)
	if !ok {
		return
	}

	org, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), handles, &req)
	if err != nil {
		h.HandleServiceError(w, err, "update organization")
		return
	}

	h.RespondJSON(w, http.StatusOK, org)
}

// TogglePublish handles PATCH /api/v1/organizations/{id}/publish
// @Summary Publish or unpublish organization
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Success 200 {object} models.Organization
// @Failure 404 {object} map[string]string
// @Router /api/v1/organizations/{id}/publish [patch]
func (h *OrganizationHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	org, err := h.service.TogglePublish(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err, "update publish state")
		return
	}

	h.RespondJSON(w, http.StatusOK, org)
}

// Delete handles DELETE /api/v1/organizations/{id}
// @Summary Delete organization
// @Tags organizations
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/organizations/{id} [delete]
func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err, "delete organization")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
