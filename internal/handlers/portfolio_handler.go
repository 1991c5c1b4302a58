package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/portfoliobuilder/backend/internal/models"
	"go.uber.org/zap"
)

// PortfolioService is the interface that wraps the public portfolio pages.
type PortfolioService interface {
	// Method GetBySlug returns the public page of a published organization.
	// Unknown and unpublished slugs match services.ErrNotFound.
	GetBySlug(ctx context.Context, slug string) (*models.PublicPortfolio, error)
	// Method GetService returns one service of a published organization.
	GetService(ctx context.Context, slug, serviceID string) (*models.PublicService, error)
}

// PortfolioHandler serves the public pages; no authentication
type PortfolioHandler struct {
	BaseHandler
	service PortfolioService
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(svc PortfolioService, logger *zap.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers the public portfolio routes
func (h *PortfolioHandler) RegisterRoutes(r chi.Router) {
	r.Get("/portfolio/{slug}", h.Get)
	r.Get("/portfolio/{slug}/services/{serviceId}", h.GetService)
}

// Get handles GET /api/v1/portfolio/{slug}
// @Summary Public portfolio
// @Description Published organization with highlighted projects, services, clients, latest reviews and average rating
// @Tags portfolio
// @Produce json
// @Param slug path string true "Organization slug"
// @Success 200 {object} models.PublicPortfolio
// @Failure 404 {object} map[string]string
// @Router /api/v1/portfolio/{slug} [get]
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.HandleServiceError(w, err, "get portfolio")
		return
	}

	h.RespondJSON(w, http.StatusOK, page)
}

// GetService handles GET /api/v1/portfolio/{slug}/services/{serviceId}
// @Summary Public service page
// @Tags portfolio
// @Produce json
// @Param slug path string true "Organization slug"
// @Param serviceId path string true "Service ID"
// @Success 200 {object} models.PublicService
// @Failure 404 {object} map[string]string
// @Router /api/v1/portfolio/{slug}/services/{serviceId} [get]
func (h *PortfolioHandler) GetService(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.GetService(r.Context(), chi.URLParam(r, "slug"), chi.URLParam(r, "serviceId"))
	if err != nil {
		h.HandleServiceError(w, err, "get service")
		return
	}

	h.RespondJSON(w, http.StatusOK, page)
}
