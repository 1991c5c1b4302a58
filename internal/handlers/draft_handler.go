package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/portfoliobuilder/backend/internal/models"
	"go.uber.org/zap"
)

const draftFileField = "file"

// DraftService is the interface that wraps methods for draft sessions.
// Sessions of other users are reported as services.ErrNotFound.
type DraftService interface {
	// Method Create opens a session and returns its id.
	Create(ctx context.Context, userID string) (string, error)
	// Method Stage keeps an image in the session and returns its draft reference.
	Stage(ctx context.Context, userID, sessionID, contentType string, r io.Reader) (*models.DraftFileResponse, error)
	// Method Remove forgets one staged file.
	Remove(ctx context.Context, userID, sessionID, handle string) error
	// Method Discard drops the session with everything staged in it.
	Discard(ctx context.Context, userID, sessionID string) error
}

// DraftHandler handles HTTP requests for draft sessions
type DraftHandler struct {
	formHandler
	service     DraftService
	maxFileSize int64
}

// NewDraftHandler creates a new draft handler. Files larger than maxFileSize are rejected.
func NewDraftHandler(svc DraftService, maxFileSize int64, logger *zap.Logger) *DraftHandler {
	return &DraftHandler{
		formHandler: formHandler{BaseHandler: BaseHandler{Logger: logger}},
		service:     svc,
		maxFileSize: maxFileSize,
	}
}

// RegisterRoutes registers the draft routes on an authenticated router
func (h *DraftHandler) RegisterRoutes(r chi.Router) {
	r.Post("/drafts", h.Create)
	r.Delete("/drafts/{sessionId}", h.Discard)
	r.Post("/drafts/{sessionId}/files", h.Stage)
	r.Delete("/drafts/{sessionId}/files/{handle}", h.Remove)
}

// Create handles POST /api/v1/drafts
// @Summary Open draft session
// @Description Open a session in which files picked in a form are staged until the form is submitted
// @Tags drafts
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.DraftSessionResponse
// @Router /api/v1/drafts [post]
func (h *DraftHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	id, err := h.service.Create(r.Context(), userID)
	if err != nil {
		h.HandleServiceError(w, err, "create draft session")
		return
	}

	h.RespondJSON(w, http.StatusCreated, models.DraftSessionResponse{SessionID: id})
}

// Stage handles POST /api/v1/drafts/{sessionId}/files
// @Summary Stage file
// @Description Stage an image and get the draft reference to put in a media field
// @Tags drafts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Draft session ID"
// @Param file formData file true "Image"
// @Success 201 {object} models.DraftFileResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 413 {object} map[string]string "File too large or session full"
// @Failure 415 {object} map[string]string
// @Router /api/v1/drafts/{sessionId}/files [post]
func (h *DraftHandler) Stage(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	file, header, err := r.FormFile(draftFileField)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.RespondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", tooLarge.Limit))
		return
	}
	if err != nil {
		h.Logger.Info("invalid draft upload", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "a file field is required")
		return
	}
	defer file.Close()

	staged, err := h.service.Stage(r.Context(), userID, chi.URLParam(r, "sessionId"), header.Header.Get("Content-Type"), file)
	if err != nil {
		h.HandleServiceError(w, err, "stage file")
		return
	}

	h.RespondJSON(w, http.StatusCreated, staged)
}

// Remove handles DELETE /api/v1/drafts/{sessionId}/files/{handle}
// @Summary Remove staged file
// @Tags drafts
// @Security BearerAuth
// @Param sessionId path string true "Draft session ID"
// @Param handle path string true "Handle of the draft reference"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/drafts/{sessionId}/files/{handle} [delete]
func (h *DraftHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	err := h.service.Remove(r.Context(), userID, chi.URLParam(r, "sessionId"), chi.URLParam(r, "handle"))
	if err != nil {
		h.HandleServiceError(w, err, "remove staged file")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Discard handles DELETE /api/v1/drafts/{sessionId}
// @Summary Discard draft session
// @Tags drafts
// @Security BearerAuth
// @Param sessionId path string true "Draft session ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/drafts/{sessionId} [delete]
func (h *DraftHandler) Discard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.service.Discard(r.Context(), userID, chi.URLParam(r, "sessionId")); err != nil {
		h.HandleServiceError(w, err, "discard draft session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
