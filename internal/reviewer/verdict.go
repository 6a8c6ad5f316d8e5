package reviewer

// Status is a reviewer's judgment of the draft.
type Status string

const (
	StatusSafe   Status = "SAFE"
	StatusUnsafe Status = "UNSAFE"
)

// Verdict is a reviewer's structured judgment of a draft. Produced exactly
// once per active reviewer per request; immutable once created.
type Verdict struct {
	Status       Status `json:"status"`
	Reasoning    string `json:"reasoning"`
	Suggestion   string `json:"suggestion,omitempty"`
	ReviewerID   ID     `json:"reviewer_id,omitempty"`
	ReviewerName string `json:"reviewer_name,omitempty"`
}

// Safe reports whether the verdict approved the draft.
func (v Verdict) Safe() bool {
	return v.Status == StatusSafe
}
