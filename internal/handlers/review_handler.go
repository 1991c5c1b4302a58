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

// ReviewService is the interface that wraps methods for review business logic.
// Every method reports rows of organizations owned by another user as services.ErrNotFound.
type ReviewService interface {
	// Method ListByOrganization returns the reviews of an organization.
	ListByOrganization(ctx context.Context, userID, orgID string) ([]models.Review, error)
	Get(ctx context.Context, userID, id string) (*models.Review, error)
	// Method Create resolves the media fields against handles and stores a new review.
	// Media failures match media.ErrUploadFailed and nothing is stored.
	Create(ctx context.Context, userID, orgID string, handles media.HandleTable, req *models.ReviewRequest) (*models.Review, error)
	Update(ctx context.Context, userID, id string, handles media.HandleTable, req *models.ReviewRequest) (*models.Review, error)
	Delete(ctx context.Context, userID, id string) error
}

// ReviewHandler handles HTTP requests for reviews
type ReviewHandler struct {
	formHandler
	service ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(svc ReviewService, validator RequestValidator, drafts DraftHandles, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		formHandler: formHandler{
			BaseHandler: BaseHandler{Logger: logger},
			validator:   validator,
			drafts:      drafts,
		},
		service: svc,
	}
}

// RegisterRoutes registers the review routes on an authenticated router
func (h *ReviewHandler) RegisterRoutes(r chi.Router) {
	r.Get("/organizations/{id}/reviews", h.List)
	r.Post("/organizations/{id}/reviews", h.Create)
	r.Get("/reviews/{id}", h.Get)
	r.Put("/reviews/{id}", h.Update)
	r.Delete("/reviews/{id}", h.Delete)
}

// List handles GET /api/v1/organizations/{id}/reviews
// @Summary List reviews
// @Description Reviews of the organization, newest first.
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Success 200 {array} models.Review
// @Failure 404 {object} map[string]string
// @Router /api/v1/organizations/{id}/reviews [get]
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	items, err := h.service.ListByOrganization(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err, "list reviews")
		return
	}

	h.RespondJSON(w, http.StatusOK, items)
}

// Get handles GET /api/v1/reviews/{id}
// @Summary Get review
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} models.Review
// @Failure 404 {object} map[string]string
// @Router /api/v1/reviews/{id} [get]
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	item, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err, "get review")
		return
	}

	h.RespondJSON(w, http.StatusOK, item)
}

// Create handles POST /api/v1/organizations/{id}/reviews
// @Summary Create review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Organization ID"
// @Param X-Draft-Session header string false "Draft session ID"
// @Param request body models.ReviewRequest true "Review"
// @Success 201 {object} models.Review
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/organizations/{id}/reviews [post]
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.ReviewRequest
	handles, ok := h.decodeForm(w, r, validation.Review, &req)
	if !ok {
		return
	}

	item, err := h.service.Create(r.Context(), userID, chi.URLParam(r, "id"), handles, &req)
	if err != nil {
		h.HandleServiceError(w, err, "create review")
		return
	}

	h.RespondJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/v1/reviews/{id}
// @Summary Update review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param X-Draft-Session header string false "Draft session ID"
// @Param request body models.ReviewRequest true "Review"
// @Success 200 {object} models.Review
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/reviews/{id} [put]
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.ReviewRequest
	handles, ok := h.decodeForm(w, r, validation.Review, &req)
	if !ok {
		return
	}

	item, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), handles, &req)
	if err != nil {
		h.HandleServiceError(w, err, "update review")
		return
	}

	h.RespondJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/v1/reviews/{id}
// @Summary Delete review
// @Tags reviews
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/reviews/{id} [delete]
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err, "delete review")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
