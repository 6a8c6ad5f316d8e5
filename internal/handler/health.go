package handler

import (
	"net/http"

	"constellation/internal/httputil"
)

// Health reports liveness plus which generator backs the pipeline.
// GET /health
func Health(provider string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondJSON(w, http.StatusOK, map[string]string{
			"status":   "ok",
			"provider": provider,
		})
	}
}
