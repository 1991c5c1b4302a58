package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/portfoliobuilder/backend/internal/models"
	"go.uber.org/zap"
)

// UploadService defines the interface for object store operations
type UploadService interface {
	// Method Upload stores body under key and records its metadata.
	//
	// Existing keys match services.ErrKeyExists, bad keys services.ErrInvalidKey
	// and empty bodies services.ErrEmptyBody.
	Upload(ctx context.Context, key, contentType string, body io.Reader) (*models.Metadata, error)
	// Method GetMetadata returns the metadata of a stored object.
	GetMetadata(ctx context.Context, key string) (*models.Metadata, error)
	// Method Open returns the stored object with its metadata; the caller closes it.
	Open(ctx context.Context, key string) (io.ReadCloser, *models.Metadata, error)
	// Method Delete removes an object and its metadata.
	Delete(ctx context.Context, key string) error
}

// UploadHandler serves the object store endpoint
type UploadHandler struct {
	BaseHandler
	service UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(svc UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers the object store routes. Writes go through apiKeyMw.
func (h *UploadHandler) RegisterRoutes(r chi.Router, apiKeyMw func(http.Handler) http.Handler) {
	r.With(apiKeyMw).Post("/upload", h.Upload)
	r.With(apiKeyMw).Delete("/media/{key}", h.Delete)
	r.Get("/media/{key}", h.Download)
	r.Get("/media/{key}/metadata", h.GetMetadata)
}

// Upload handles POST /upload?filename=<key>
// @Summary Upload object
// @Description Store the raw request body under the given key. Keys are never overwritten.
// @Tags media
// @Accept application/octet-stream
// @Produce json
// @Security ApiKeyAuth
// @Param filename query string true "Object key"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string "Key exists"
// @Failure 500 {object} map[string]string
// @Router /upload [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("filename")
	if key == "" {
		h.RespondError(w, http.StatusBadRequest, "filename is required")
		return
	}

	metadata, err := h.service.Upload(r.Context(), key, r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		h.HandleServiceError(w, err, "upload file")
		return
	}

	h.Logger.Info("object stored",
		zap.String("key", metadata.ID),
		zap.String("content_type", metadata.ContentType),
		zap.Int64("size", metadata.Size),
	)
	h.RespondJSON(w, http.StatusOK, models.UploadResponse{URL: metadata.URL})
}

// Download handles GET /media/{key}
// @Summary Download object
// @Tags media
// @Produce application/octet-stream
// @Param key path string true "Object key"
// @Success 200 "Object content"
// @Failure 404 {object} map[string]string
// @Router /media/{key} [get]
func (h *UploadHandler) Download(w http.ResponseWriter, r *http.Request) {
	reader, metadata, err := h.service.Open(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.HandleServiceError(w, err, "open file")
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", metadata.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(metadata.Size, 10))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, reader); err != nil {
		h.Logger.Error("failed to stream file", zap.Error(err))
	}
}

// GetMetadata handles GET /media/{key}/metadata
// @Summary Get object metadata
// @Tags media
// @Produce json
// @Param key path string true "Object key"
// @Success 200 {object} models.Metadata
// @Failure 404 {object} map[string]string
// @Router /media/{key}/metadata [get]
func (h *UploadHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	metadata, err := h.service.GetMetadata(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.HandleServiceError(w, err, "get metadata")
		return
	}

	h.RespondJSON(w, http.StatusOK, metadata)
}

// Delete handles DELETE /media/{key}
// @Summary Delete object
// @Tags media
// @Security ApiKeyAuth
// @Param key path string true "Object key"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /media/{key} [delete]
func (h *UploadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "key")); err != nil {
		h.HandleServiceError(w, err, "delete file")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
