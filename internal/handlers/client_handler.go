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

// ClientService is the interface that wraps methods for client business logic.
// Every method reports rows of organizations owned by another user as services.ErrNotFound.
type ClientService interface {
	// Method ListByOrganization returns the clients of an organization.
	ListByOrganization(ctx context.Context, userID, orgID string) ([]models.Client, error)
	Get(ctx context.Context, userID, id string) (*models.Client, error)
	// Method Create resolves the media fields against handles and stores a new client.
	// Media failures match media.ErrUploadFailed and nothing is stored.
	Create(ctx context.Context, userID, orgID string, handles media.HandleTable, req *models.ClientRequest) (*models.Client, error)
	Update(ctx context.Context, userID, id string, handles media.HandleTable, req *models.ClientRequest) (*models.Client, error)
	Delete(ctx context.Context, userID, id string) error
}

// ClientHandler handles HTTP requests for clients
type ClientHandler struct {
	formHandler
	service ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(svc ClientService, validator RequestValidator, drafts DraftHandles, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		formHandler: formHandler{
			BaseHandler: BaseHandler{Logger: logger},
			validator:   validator,
			drafts:      drafts,
		},
		service: svc,
	}
}

// RegisterRoutes registers the client routes on an authenticated router
func (h *ClientHandler) RegisterRoutes(r chi.Router) {
	r.Get("/organizations/{id}/clients", h.List)
	r.Post("/organizations/{id}/clients", h.Create)
	r.Get("/clients/{id}", h.Get)
	r.Put("/clients/{id}", h.Update)
	r.Delete("/clients/{id}", h.Delete)
}

// List handles GET /api/v1/organizations/{id}/clients
// @Summary List clients
// @Description Clients of the organization, by order.
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Success 200 {array} models.Client
// @Failure 404 {object} map[string]string
// @Router /api/v1/organizations/{id}/clients [get]
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	items, err := h.service.ListByOrganization(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err, "list clients")
		return
	}

	h.RespondJSON(w, http.StatusOK, items)
}

// Get handles GET /api/v1/clients/{id}
// @Summary Get client
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} models.Client
// @Failure 404 {object} map[string]string
// @Router /api/v1/clients/{id} [get]
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	item, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err, "get client")
		return
	}

	h.RespondJSON(w, http.StatusOK, item)
}

// Create handles POST /api/v1/organizations/{id}/clients
// @Summary Create client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Param X-Draft-Session header string false "Draft session ID"
// @Param request body models.ClientRequest true "Client"
// @Success 201 {object} models.Client
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/organizations/{id}/clients [post]
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.ClientRequest
	handles, ok := h.decodeForm(w, r, validation.Client, &req)
	if !ok {
		return
	}

	item, err := h.service.Create(r.Context(), userID, chi.URLParam(r, "id"), handles, &req)
	if err != nil {
		h.HandleServiceError(w, err, "create client")
		return
	}

	h.RespondJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/v1/clients/{id}
// @Summary Update client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param X-Draft-Session header string false "Draft session ID"
// @Param request body models.ClientRequest true "Client"
// @Success 200 {object} models.Client
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/clients/{id} [put]
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.ClientRequest
	handles, ok := h.decodeForm(w, r, validation.Client, &req)
	if !ok {
		return
	}

	item, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), handles, &req)
	if err != nil {
		h.HandleServiceError(w, err, "update client")
		return
	}

	h.RespondJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/v1/clients/{id}
// @Summary Delete client
// @Tags clients
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/clients/{id} [delete]
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err, "delete client")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
