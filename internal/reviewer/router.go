package reviewer

import (
	"strings"

	"constellation/internal/config"
	"constellation/internal/domain"
)

// ResolveActive computes the ordered set of reviewers that should run for a
// query. Pure and deterministic: the same query and history always yield the
// same list, in canonical stage order.
//
// Always-run reviewers are included unconditionally. Keyword reviewers are
// included iff one of their keywords appears, case-insensitively, in the
// query or in the content of the trailing history window.
func ResolveActive(query string, history []domain.Turn) []ID {
	blob := matchBlob(query, history)

	active := make([]ID, 0, len(All()))
	for _, id := range All() {
		if id.AlwaysRun() {
			active = append(active, id)
			continue
		}
		for _, kw := range id.Keywords() {
			if strings.Contains(blob, kw) {
				active = append(active, id)
				break
			}
		}
	}
	return active
}

// matchBlob lowercases the query plus the trailing history window into one
// searchable string.
func matchBlob(query string, history []domain.Turn) string {
	var b strings.Builder
	b.WriteString(query)
	for _, turn := range domain.LastTurns(history, config.ReviewHistoryWindow) {
		b.WriteString("\n")
		b.WriteString(turn.Content)
	}
	return strings.ToLower(b.String())
}
