package handler

import (
	"log/slog"
	"net/http"
	"time"

	"feedstudio/internal/domain/services"
	"feedstudio/internal/httputil"
)

// ContentHandler handles content editing HTTP requests
type ContentHandler struct {
	editService services.EditingService
	logger      *slog.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(editService services.EditingService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		editService: editService,
		logger:      logger,
	}
}

// GetForEditing loads the editor view for a content document
// GET /api/contents/{id}/edit
func (h *ContentHandler) GetForEditing(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "content ID is required")
		return
	}

	view, err := h.editService.GetForEditing(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// SaveEdit applies one edit to a content document
// PUT /api/contents/{id}/edit
func (h *ContentHandler) SaveEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "content ID is required")
		return
	}

	var req services.SaveEditRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.EditedBy = httputil.GetEditorID(r)

	result, err := h.editService.SaveEdit(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// ListVersions returns a content document's version history
// GET /api/contents/{id}/versions
func (h *ContentHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "content ID is required")
		return
	}

	versions, err := h.editService.ListVersions(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"content_id": id,
		"versions":   versions,
	})
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *ContentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}
