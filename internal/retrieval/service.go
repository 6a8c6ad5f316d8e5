package retrieval

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"constellation/internal/config"
	"constellation/internal/domain"
)

// AddDocumentRequest is an upload.
type AddDocumentRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	DocType  string `json:"doc_type,omitempty"`
}

// AddDocumentResult reports what happened to an upload.
type AddDocumentResult struct {
	DocID         string `json:"doc_id"`
	Chunks        int    `json:"chunks"`
	AlreadyExists bool   `json:"already_exists,omitempty"`
}

// Service owns the document corpus and answers reference-context queries
// for the pipeline. Retrieval can be toggled off at runtime; a disabled
// service reports no context without touching the store.
type Service struct {
	store     Store
	converter *ContentConverter
	enabled   atomic.Bool
	logger    *slog.Logger
}

// NewService creates a retrieval service.
func NewService(store Store, enabled bool, logger *slog.Logger) *Service {
	s := &Service{
		store:     store,
		converter: NewContentConverter(),
		logger:    logger,
	}
	s.enabled.Store(enabled)
	return s
}

// Enabled reports whether retrieval is active.
func (s *Service) Enabled() bool {
	return s.enabled.Load()
}

// SetEnabled toggles retrieval and returns the new state.
func (s *Service) SetEnabled(enabled bool) bool {
	s.enabled.Store(enabled)
	s.logger.Info("retrieval toggled", "enabled", enabled)
	return enabled
}

func (s *Service) validateAddDocument(req *AddDocumentRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Filename,
			validation.Required,
			validation.Length(1, config.MaxDocumentNameLength),
		),
		validation.Field(&req.Content, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// AddDocument normalizes, chunks and stores an uploaded document. Document
// identity is content-addressed, so re-uploading the same content is a
// no-op reported as such.
func (s *Service) AddDocument(ctx context.Context, req *AddDocumentRequest) (*AddDocumentResult, error) {
	if err := s.validateAddDocument(req); err != nil {
		return nil, err
	}

	content, docType, err := s.converter.Convert(req.Content, req.DocType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	id := documentID(content)
	exists, err := s.store.HasDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return &AddDocumentResult{DocID: id, AlreadyExists: true}, nil
	}

	chunks := ChunkText(content)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no content could be extracted from document", domain.ErrValidation)
	}

	doc := Document{
		ID:       id,
		Filename: req.Filename,
		DocType:  docType,
		Chunks:   len(chunks),
	}
	if err := s.store.AddDocument(ctx, doc, chunks); err != nil {
		return nil, err
	}

	s.logger.Info("document added",
		"doc_id", id,
		"filename", req.Filename,
		"chunks", len(chunks),
	)
	return &AddDocumentResult{DocID: id, Chunks: len(chunks)}, nil
}

// ListDocuments lists the corpus.
func (s *Service) ListDocuments(ctx context.Context) ([]Document, error) {
	return s.store.ListDocuments(ctx)
}

// DeleteDocument removes one document and its chunks.
func (s *Service) DeleteDocument(ctx context.Context, id string) error {
	if err := s.store.DeleteDocument(ctx, id); err != nil {
		return err
	}
	s.logger.Info("document deleted", "doc_id", id)
	return nil
}

// DeleteAll clears the corpus and returns how many documents were removed.
func (s *Service) DeleteAll(ctx context.Context) (int, error) {
	n, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("corpus cleared", "documents", n)
	return n, nil
}

// Stats summarizes the corpus.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	chunks, err := s.store.ChunkCount(ctx)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []Document{}
	}
	return &Stats{
		TotalDocuments: len(docs),
		TotalChunks:    chunks,
		Enabled:        s.Enabled(),
		Documents:      docs,
	}, nil
}

// RelevantContext implements the pipeline's ContextProvider: the most
// relevant chunks for a query, each labeled with its source document,
// joined into one reference block. Reports absence when retrieval is
// disabled or the corpus has nothing relevant.
func (s *Service) RelevantContext(ctx context.Context, query string) (string, bool, error) {
	if !s.Enabled() {
		return "", false, nil
	}

	hits, err := s.store.Search(ctx, query, config.RetrievalResultLimit)
	if err != nil {
		return "", false, err
	}
	if len(hits) == 0 {
		return "", false, nil
	}

	parts := make([]string, 0, len(hits))
	for _, hit := range hits {
		parts = append(parts, fmt.Sprintf("[From %s]:\n%s", hit.Filename, hit.Content))
	}
	return strings.Join(parts, "\n\n---\n\n"), true, nil
}

// documentID derives a short content-addressed id, so identical uploads
// collapse to one document.
func documentID(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:6])
}
