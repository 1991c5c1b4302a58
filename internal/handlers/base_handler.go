package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/portfoliobuilder/backend/internal/media"
	"github.com/portfoliobuilder/backend/internal/middleware"
	"github.com/portfoliobuilder/backend/internal/services"
	"github.com/portfoliobuilder/backend/internal/validation"
	"go.uber.org/zap"
)

// DraftSessionHeader names the draft session whose staged files a form submission uses
const DraftSessionHeader = "X-Draft-Session"

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondError sends an error JSON response
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, map[string]string{"error": message})
}

// RespondValidation sends the per-field messages of a validation error
func (h *BaseHandler) RespondValidation(w http.ResponseWriter, verr *validation.Error) {
	h.RespondJSON(w, http.StatusBadRequest, map[string]map[string][]string{"error": verr.Fields})
}

// HandleServiceError maps service and media errors to responses; anything
// unknown is logged and reported as "failed to <action>".
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error, action string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		h.RespondValidation(w, verr)
	case errors.Is(err, media.ErrInvalidReference):
		h.Logger.Info("stale media reference", zap.Error(err))
		h.RespondError(w, http.StatusUnprocessableEntity, "selected file is no longer available, please select it again")
	case errors.Is(err, media.ErrUploadFailed):
		h.Logger.Warn("media upload failed", zap.Error(err))
		h.RespondError(w, http.StatusBadGateway, "media upload failed, please resubmit")
	case errors.Is(err, services.ErrNotFound):
		h.RespondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrSlugTaken):
		h.RespondError(w, http.StatusConflict, "slug is already taken")
	case errors.Is(err, services.ErrKeyExists):
		h.RespondError(w, http.StatusConflict, "object already exists")
	case errors.Is(err, services.ErrInvalidKey):
		h.RespondError(w, http.StatusBadRequest, "invalid filename")
	case errors.Is(err, services.ErrEmptyBody):
		h.RespondError(w, http.StatusBadRequest, "empty body")
	case errors.Is(err, media.ErrSessionFull):
		h.RespondError(w, http.StatusRequestEntityTooLarge, "draft session is full, remove a file or submit the form first")
	case errors.Is(err, services.ErrUnsupportedMedia):
		h.RespondError(w, http.StatusUnsupportedMediaType, "only images can be attached")
	default:
		h.Logger.Error("failed to "+action, zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

// RequestValidator checks a raw request body against a named schema
type RequestValidator interface {
	// Method Validate returns *validation.Error when body breaks the schema.
	Validate(name string, body []byte) error
}

// DraftHandles finds the staged files of a form submission
type DraftHandles interface {
	// Method Handles returns the handle table of the session, or nil when the
	// session id is empty, unknown, expired or owned by another user.
	Handles(ctx context.Context, userID, sessionID string) (media.HandleTable, error)
}

// formHandler is embedded by the handlers of editable portfolio sections
type formHandler struct {
	BaseHandler
	validator RequestValidator
	drafts    DraftHandles
}

// userID returns the authenticated user; the auth middleware guarantees one
func (h *formHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok || userID == "" {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return userID, true
}

// decodeForm validates the body against schema, decodes it into dst and opens
// the draft session named by the request. It writes the error response itself.
func (h *formHandler) decodeForm(w http.ResponseWriter, r *http.Request, schema string, dst any) (media.HandleTable, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}

	if err := h.validator.Validate(schema, body); err != nil {
		h.HandleServiceError(w, err, "validate request")
		return nil, false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		if errors.Is(err, media.ErrInvalidReference) {
			h.HandleServiceError(w, err, "decode request")
			return nil, false
		}
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	userID, _ := middleware.GetUserID(r.Context())
	handles, err := h.drafts.Handles(r.Context(), userID, r.Header.Get(DraftSessionHeader))
	if err != nil {
		h.HandleServiceError(w, err, "open draft session")
		return nil, false
	}
	return handles, true
}
