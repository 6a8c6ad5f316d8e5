// Package memory is an in-memory retrieval store for development and tests.
// Relevance is naive term overlap - good enough to exercise the pipeline
// without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"constellation/internal/domain"
	"constellation/internal/retrieval"
)

type chunkEntry struct {
	docID    string
	filename string
	content  string
}

// Store keeps documents and chunks in process memory.
type Store struct {
	mu     sync.RWMutex
	docs   map[string]retrieval.Document
	order  []string // insertion order of doc ids
	chunks []chunkEntry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		docs: make(map[string]retrieval.Document),
	}
}

func (s *Store) AddDocument(_ context.Context, doc retrieval.Document, chunks []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[doc.ID]; exists {
		return nil
	}
	s.docs[doc.ID] = doc
	s.order = append(s.order, doc.ID)
	for _, c := range chunks {
		s.chunks = append(s.chunks, chunkEntry{
			docID:    doc.ID,
			filename: doc.Filename,
			content:  c,
		})
	}
	return nil
}

func (s *Store) HasDocument(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[id]
	return ok, nil
}

// Search scores chunks by how many distinct query terms they contain and
// returns the top hits. Ties keep insertion order, so results are stable.
func (s *Store) Search(_ context.Context, query string, limit int) ([]retrieval.SearchHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	terms := queryTerms(query)
	if len(terms) == 0 {
		return nil, nil
	}

	type scored struct {
		idx   int
		score int
	}
	var matches []scored
	for i, entry := range s.chunks {
		lower := strings.ToLower(entry.content)
		score := 0
		for _, term := range terms {
			if strings.Contains(lower, term) {
				score++
			}
		}
		if score > 0 {
			matches = append(matches, scored{idx: i, score: score})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].score > matches[b].score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	hits := make([]retrieval.SearchHit, 0, len(matches))
	for _, m := range matches {
		entry := s.chunks[m.idx]
		hits = append(hits, retrieval.SearchHit{
			Filename: entry.filename,
			Content:  entry.content,
		})
	}
	return hits, nil
}

func (s *Store) ListDocuments(_ context.Context) ([]retrieval.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]retrieval.Document, 0, len(s.order))
	for _, id := range s.order {
		docs = append(docs, s.docs[id])
	}
	return docs, nil
}

func (s *Store) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.docs, id)
	for i, docID := range s.order {
		if docID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	kept := s.chunks[:0]
	for _, c := range s.chunks {
		if c.docID != id {
			kept = append(kept, c)
		}
	}
	s.chunks = kept
	return nil
}

func (s *Store) DeleteAll(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.docs)
	s.docs = make(map[string]retrieval.Document)
	s.order = nil
	s.chunks = nil
	return n, nil
}

func (s *Store) ChunkCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

// queryTerms lowercases and splits a query, dropping terms too short to
// carry signal.
func queryTerms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	terms := fields[:0]
	for _, f := range fields {
		if len(f) >= 3 {
			terms = append(terms, f)
		}
	}
	return terms
}
