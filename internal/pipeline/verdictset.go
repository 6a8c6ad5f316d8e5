package pipeline

import "constellation/internal/reviewer"

// VerdictSet accumulates verdicts as stages complete, preserving insertion
// order. Keys are unique: each active reviewer contributes exactly one
// verdict per request.
type VerdictSet struct {
	order []reviewer.ID
	byID  map[reviewer.ID]reviewer.Verdict
}

func NewVerdictSet() *VerdictSet {
	return &VerdictSet{
		byID: make(map[reviewer.ID]reviewer.Verdict),
	}
}

// Add records a verdict. Later writes for the same reviewer are ignored.
func (s *VerdictSet) Add(v reviewer.Verdict) {
	if _, exists := s.byID[v.ReviewerID]; exists {
		return
	}
	s.order = append(s.order, v.ReviewerID)
	s.byID[v.ReviewerID] = v
}

// Get returns the verdict for a reviewer.
func (s *VerdictSet) Get(id reviewer.ID) (reviewer.Verdict, bool) {
	v, ok := s.byID[id]
	return v, ok
}

// IDs returns reviewer ids in insertion order.
func (s *VerdictSet) IDs() []reviewer.ID {
	return s.order
}

// Verdicts returns verdicts in insertion order.
func (s *VerdictSet) Verdicts() []reviewer.Verdict {
	out := make([]reviewer.Verdict, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Len returns the number of verdicts recorded.
func (s *VerdictSet) Len() int {
	return len(s.order)
}
