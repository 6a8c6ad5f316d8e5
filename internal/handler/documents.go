package handler

import (
	"log/slog"
	"net/http"

	"constellation/internal/httputil"
	"constellation/internal/retrieval"
)

// DocumentHandler serves the reference-document endpoints.
type DocumentHandler struct {
	retrieval *retrieval.Service
	logger    *slog.Logger
}

// NewDocumentHandler creates a document handler.
func NewDocumentHandler(s *retrieval.Service, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{retrieval: s, logger: logger}
}

// AddDocument uploads one document into the reference corpus.
// POST /api/documents
func (h *DocumentHandler) AddDocument(w http.ResponseWriter, r *http.Request) {
	var req retrieval.AddDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.retrieval.AddDocument(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyExists {
		status = http.StatusOK
	}
	httputil.RespondJSON(w, status, result)
}

// ListDocuments returns every stored document's metadata.
// GET /api/documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.retrieval.ListDocuments(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	if docs == nil {
		docs = []retrieval.Document{}
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"documents": docs})
}

// DeleteDocument removes one document and its chunks.
// DELETE /api/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.retrieval.DeleteDocument(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// DeleteAll clears the whole corpus.
// DELETE /api/documents
func (h *DocumentHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.retrieval.DeleteAll(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]int{"deleted": n})
}

// Stats reports corpus totals and whether retrieval is live.
// GET /api/retrieval/stats
func (h *DocumentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.retrieval.Stats(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, stats)
}

// Toggle flips retrieval on or off without touching stored documents.
// POST /api/retrieval/toggle
func (h *DocumentHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled *bool `json:"enabled"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil || req.Enabled == nil {
		httputil.RespondError(w, http.StatusBadRequest, "enabled is required")
		return
	}

	enabled := h.retrieval.SetEnabled(*req.Enabled)
	h.logger.Info("retrieval toggled", "enabled", enabled)
	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"enabled": enabled})
}
