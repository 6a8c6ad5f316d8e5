package pipeline

import "constellation/internal/reviewer"

// ReviewSummary is the per-reviewer slice of the final result.
type ReviewSummary struct {
	Safe       bool   `json:"safe"`
	Reasoning  string `json:"reasoning"`
	Suggestion string `json:"suggestion,omitempty"`
	Name       string `json:"name"`
}

// Result is the terminal output of one pipeline run.
type Result struct {
	Draft           string                           `json:"draft"`
	Reviews         map[reviewer.ID]ReviewSummary    `json:"reviews"`
	ActiveReviewers []reviewer.ID                    `json:"active_reviewers"`
	FinalResponse   string                           `json:"final_response"`
	WasCorrected    bool                             `json:"was_corrected"`
}

func buildResult(draft, final string, active []reviewer.ID, set *VerdictSet, corrected bool) *Result {
	reviews := make(map[reviewer.ID]ReviewSummary, set.Len())
	for _, v := range set.Verdicts() {
		reviews[v.ReviewerID] = ReviewSummary{
			Safe:       v.Safe(),
			Reasoning:  v.Reasoning,
			Suggestion: v.Suggestion,
			Name:       v.ReviewerName,
		}
	}

	return &Result{
		Draft:           draft,
		Reviews:         reviews,
		ActiveReviewers: active,
		FinalResponse:   final,
		WasCorrected:    corrected,
	}
}
