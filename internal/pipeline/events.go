package pipeline

import "constellation/internal/reviewer"

// Step names for stream events. Reviewer check steps are "<id>_check".
const (
	StepDrafting   = "drafting"
	StepAuditing   = "auditing"
	StepCorrecting = "correcting"
	StepFinalizing = "finalizing"
	StepComplete   = "complete"
	StepError      = "error"
)

// Event statuses.
const (
	StatusStarted  = "started"
	StatusComplete = "complete"
)

// Event is one entry in the ordered progress sequence a streaming request
// receives. Payload fields are step-specific; the terminal "complete" event
// carries the full pipeline result in Result.
type Event struct {
	Step            string        `json:"step"`
	Status          string        `json:"status,omitempty"`
	Draft           string        `json:"draft,omitempty"`
	ActiveReviewers []reviewer.ID `json:"active_reviewers,omitempty"`
	ReviewerID      reviewer.ID   `json:"reviewer_id,omitempty"`
	Safe            *bool         `json:"safe,omitempty"`
	// Result is a *reviewer.Verdict on "<id>_check" complete events and a
	// *Result on the terminal "complete" event.
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// CheckStep returns the stream step name for a reviewer's check.
func CheckStep(id reviewer.ID) string {
	return string(id) + "_check"
}
