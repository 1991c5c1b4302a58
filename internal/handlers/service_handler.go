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

// OfferedServiceService is the interface that wraps methods for service business logic.
// Every method reports rows of organizations owned by another user as services.ErrNotFound.
type OfferedServiceService interface {
	// Method ListByOrganization returns the services of an organization.
	ListByOrganization(ctx context.Context, userID, orgID string) ([]models.Service, error)
	Get(ctx context.Context, userID, id string) (*models.Service, error)
	// Method Create resolves the media fields against handles and stores a new service.
	// Media failures match media.ErrUploadFailed and nothing is stored.
	Create(ctx context.Context, userID, orgID string, handles media.HandleTable, req *models.ServiceRequest) (*models.Service, error)
	Update(ctx context.Context, userID, id string, handles media.HandleTable, req *models.ServiceRequest) (*models.Service, error)
	Delete(ctx context.Context, userID, id string) error
}

// ServiceHandler handles HTTP requests for services
type ServiceHandler struct {
	formHandler
	service OfferedServiceService
}

// NewServiceHandler creates a new service handler
func NewServiceHandler(svc OfferedServiceService, validator RequestValidator, drafts DraftHandles, logger *zap.Logger) *ServiceHandler {
	return &ServiceHandler{
		formHandler: formHandler{
			BaseHandler: BaseHandler{Logger: logger},
			validator:   validator,
			drafts:      drafts,
		},
		service: svc,
	}
}

// RegisterRoutes registers the service routes on an authenticated router
func (h *ServiceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/organizations/{id}/services", h.List)
	r.Post("/organizations/{id}/services", h.Create)
	r.Get("/services/{id}", h.Get)
	r.Put("/services/{id}", h.Update)
	r.Delete("/services/{id}", h.Delete)
}

// List handles GET /api/v1/organizations/{id}/services
// @Summary List services
// @Description Services offered by the organization, by order.
// @Tags services
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Success 200 {array} models.Service
// @Failure 404 {object} map[string]string
// @Router /api/v1/organizations/{id}/services [get]
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	items, err := h.service.ListByOrganization(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err, "list services")
		return
	}

	h.RespondJSON(w, http.StatusOK, items)
}

// Get handles GET /api/v1/services/{id}
// @Summary Get service
// @Tags services
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 200 {object} models.Service
// @Failure 404 {object} map[string]string
// @Router /api/v1/services/{id} [get]
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	item, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err, "get service")
		return
	}

	h.RespondJSON(w, http.StatusOK, item)
}

// Create handles POST /api/v1/organizations/{id}/services
// @Summary Create service
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Param X-Draft-Session header string false "Draft session ID"
// @Param request body models.ServiceRequest true "Service"
// @Success 201 {object} models.Service
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/organizations/{id}/services [post]
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.ServiceRequest
	handles, ok := h.decodeForm(w, r, validation.Service, &req)
	if !ok {
		return
	}

	item, err := h.service.Create(r.Context(), userID, chi.URLParam(r, "id"), handles, &req)
	if err != nil {
		h.HandleServiceError(w, err, "create service")
		return
	}

	h.RespondJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/v1/services/{id}
// @Summary Update service
// @Tags services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Param X-Draft-Session header string false "Draft session ID"
// @Param request body models.ServiceRequest true "Service"
// @Success 200 {object} models.Service
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/services/{id} [put]
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.ServiceRequest
	handles, ok := h.decodeForm(w, r, validation.Service, &req)
	if !ok {
		return
	}

	item, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), handles, &req)
	if err != nil {
		h.HandleServiceError(w, err, "update service")
		return
	}

	h.RespondJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/v1/services/{id}
// @Summary Delete service
// @Tags services
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/services/{id} [delete]
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err, "delete service")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
