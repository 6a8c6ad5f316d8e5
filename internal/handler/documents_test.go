package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"constellation/internal/retrieval"
	"constellation/internal/retrieval/memory"
)

func newDocumentHandler(t *testing.T) *DocumentHandler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := retrieval.NewService(memory.NewStore(), true, logger)
	return NewDocumentHandler(svc, logger)
}

func TestAddAndListDocuments(t *testing.T) {
	h := newDocumentHandler(t)

	rec := httptest.NewRecorder()
	h.AddDocument(rec, httptest.NewRequest(http.MethodPost, "/api/documents",
		strings.NewReader(`{"filename": "care.txt", "content": "Rest helps recovery."}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var added retrieval.AddDocumentResult
	if err := json.Unmarshal(rec.Body.Bytes(), &added); err != nil {
		t.Fatalf("decoding result: %v", err)
	}

	t.Run("duplicate upload returns 200", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.AddDocument(rec, httptest.NewRequest(http.MethodPost, "/api/documents",
			strings.NewReader(`{"filename": "other.txt", "content": "Rest helps recovery."}`)))
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200 for existing content", rec.Code)
		}
	})

	t.Run("list includes the document", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ListDocuments(rec, httptest.NewRequest(http.MethodGet, "/api/documents", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var listing struct {
			Documents []retrieval.Document `json:"documents"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &listing); err != nil {
			t.Fatalf("decoding listing: %v", err)
		}
		if len(listing.Documents) != 1 || listing.Documents[0].ID != added.DocID {
			t.Errorf("listing = %+v", listing)
		}
	})

	t.Run("missing content is a 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.AddDocument(rec, httptest.NewRequest(http.MethodPost, "/api/documents",
			strings.NewReader(`{"filename": "x.txt"}`)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestDeleteDocumentNotFound(t *testing.T) {
	h := newDocumentHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/documents/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	h.DeleteDocument(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRetrievalToggleAndStats(t *testing.T) {
	h := newDocumentHandler(t)

	t.Run("toggle requires the enabled field", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Toggle(rec, httptest.NewRequest(http.MethodPost, "/api/retrieval/toggle",
			strings.NewReader(`{}`)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("toggle flips the flag", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Toggle(rec, httptest.NewRequest(http.MethodPost, "/api/retrieval/toggle",
			strings.NewReader(`{"enabled": false}`)))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		h.Stats(rec, httptest.NewRequest(http.MethodGet, "/api/retrieval/stats", nil))
		var stats retrieval.Stats
		if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
			t.Fatalf("decoding stats: %v", err)
		}
		if stats.Enabled {
			t.Error("stats report retrieval enabled after disabling it")
		}
	})
}
