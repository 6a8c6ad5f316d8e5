package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"constellation/internal/httputil"
	"constellation/internal/pipeline"
)

// ChatHandler serves the blocking and streaming chat endpoints.
type ChatHandler struct {
	pipeline *pipeline.Service
	logger   *slog.Logger
}

// NewChatHandler creates a chat handler.
func NewChatHandler(p *pipeline.Service, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{pipeline: p, logger: logger}
}

// Chat runs the full pipeline and responds with the final result.
// POST /chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Request
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.Message == "" {
		httputil.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	result, err := h.pipeline.Run(r.Context(), &req)
	if err != nil {
		h.logger.Error("pipeline failed", "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// ChatStream runs the pipeline and streams progress events over SSE. Each
// event is one `data:` frame carrying a JSON object; the terminal frame has
// step "complete" (or "error") and ends the stream.
// POST /chat/stream
func (h *ChatHandler) ChatStream(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Request
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.Message == "" {
		httputil.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // disable nginx buffering
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for event := range h.pipeline.Stream(r.Context(), &req) {
		payload, err := json.Marshal(event)
		if err != nil {
			h.logger.Error("failed to encode stream event", "step", event.Step, "error", err)
			continue
		}
		if _, err := w.Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
			h.logger.Debug("client disconnected mid-stream", "error", err)
			return
		}
		flusher.Flush()
	}
}
