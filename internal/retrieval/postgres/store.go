// Package postgres backs the retrieval store with PostgreSQL full-text
// search. No embedding model: websearch_to_tsquery plus ts_rank does the
// relevance work.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"constellation/internal/domain"
	"constellation/internal/retrieval"
)

// Store persists documents and chunks in PostgreSQL.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Connect creates a connection pool, ensures the schema exists, and returns
// the store. The caller owns the pool's lifetime via Close.
func Connect(ctx context.Context, databaseURL string, logger *slog.Logger) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &Store{pool: pool, logger: logger}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("retrieval store connected", "max_conns", cfg.MaxConns)
	return s, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS documents (
		id       TEXT PRIMARY KEY,
		filename VARCHAR(255) NOT NULL,
		doc_type TEXT NOT NULL,
		chunks   INT NOT NULL,
		added_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE TABLE IF NOT EXISTS document_chunks (
		id      BIGSERIAL PRIMARY KEY,
		doc_id  TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		content TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS document_chunks_fts_idx
		ON document_chunks USING gin (to_tsvector('english', content));`

	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}

func (s *Store) AddDocument(ctx context.Context, doc retrieval.Document, chunks []string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO documents (id, filename, doc_type, chunks) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO NOTHING`,
		doc.ID, doc.Filename, doc.DocType, doc.Chunks,
	)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}

	for _, chunk := range chunks {
		if _, err := tx.Exec(ctx,
			`INSERT INTO document_chunks (doc_id, content) VALUES ($1, $2)`,
			doc.ID, chunk,
		); err != nil {
			return fmt.Errorf("inserting chunk: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) HasDocument(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM documents WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking document: %w", err)
	}
	return exists, nil
}

// Search ranks chunks against the query with full-text search.
// websearch_to_tsquery accepts free-form queries (quoted phrases, OR, -)
// without syntax errors on user input.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]retrieval.SearchHit, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT d.filename, c.content
		FROM document_chunks c
		JOIN documents d ON d.id = c.doc_id
		WHERE to_tsvector('english', c.content) @@ websearch_to_tsquery('english', $1)
		ORDER BY ts_rank(to_tsvector('english', c.content), websearch_to_tsquery('english', $1)) DESC
		LIMIT $2`,
		query, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching chunks: %w", err)
	}
	defer rows.Close()

	var hits []retrieval.SearchHit
	for rows.Next() {
		var hit retrieval.SearchHit
		if err := rows.Scan(&hit.Filename, &hit.Content); err != nil {
			return nil, fmt.Errorf("scanning hit: %w", err)
		}
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}

func (s *Store) ListDocuments(ctx context.Context) ([]retrieval.Document, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, filename, doc_type, chunks FROM documents ORDER BY added_at`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []retrieval.Document
	for rows.Next() {
		var d retrieval.Document
		if err := rows.Scan(&d.ID, &d.Filename, &d.DocType, &d.Chunks); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAll(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM documents`)
	if err != nil {
		return 0, fmt.Errorf("clearing documents: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *Store) ChunkCount(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM document_chunks`).Scan(&n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}
