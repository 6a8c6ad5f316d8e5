// Package retrieval turns an uploaded document corpus into optional
// reference text for the drafter. Documents are chunked on upload; queries
// pull back the few most relevant chunks. The pipeline consumes this through
// a narrow interface and works fine without it.
package retrieval

import "context"

// Document describes one uploaded document.
type Document struct {
	ID       string `json:"doc_id"`
	Filename string `json:"filename"`
	DocType  string `json:"doc_type"`
	Chunks   int    `json:"chunks"`
}

// SearchHit is one relevant chunk with its source document.
type SearchHit struct {
	Filename string
	Content  string
}

// Stats summarizes the corpus.
type Stats struct {
	TotalDocuments int        `json:"total_documents"`
	TotalChunks    int        `json:"total_chunks"`
	Enabled        bool       `json:"enabled"`
	Documents      []Document `json:"documents"`
}

// Store persists document chunks and answers relevance queries. Postgres
// full-text search backs production; an in-memory store backs development
// and tests.
type Store interface {
	AddDocument(ctx context.Context, doc Document, chunks []string) error
	HasDocument(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, query string, limit int) ([]SearchHit, error)
	ListDocuments(ctx context.Context) ([]Document, error)
	DeleteDocument(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int, error)
	ChunkCount(ctx context.Context) (int, error)
}
