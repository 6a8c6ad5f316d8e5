package pipeline

import (
	"strings"

	"constellation/internal/reviewer"
)

// NeedsCorrection reports whether any reviewer withheld approval. Anything
// other than an explicit SAFE counts as withheld, so heuristic verdicts with
// a mangled status still trigger a revision.
func NeedsCorrection(set *VerdictSet) bool {
	for _, v := range set.Verdicts() {
		if v.Status != reviewer.StatusSafe {
			return true
		}
	}
	return false
}

// HasSuggestion reports whether any reviewer offered an improvement. A SAFE
// verdict with a suggestion still triggers a revision pass: approved answers
// get polished when a reviewer sees room for it.
func HasSuggestion(set *VerdictSet) bool {
	for _, v := range set.Verdicts() {
		if v.Suggestion != "" {
			return true
		}
	}
	return false
}

// BuildFeedback renders the aggregated reviewer feedback block passed to the
// corrector: one line per reviewer in verdict insertion order. Lines from
// reviewers that approved but suggested an improvement are marked so the
// corrector weighs them as polish, not as safety issues.
func BuildFeedback(set *VerdictSet) string {
	lines := make([]string, 0, set.Len())
	for _, v := range set.Verdicts() {
		feedback := v.Reasoning
		if v.Suggestion != "" {
			feedback += " Suggestion: " + v.Suggestion
		}
		if v.Status == reviewer.StatusSafe {
			feedback = "(Approved but with suggestion) " + feedback
		}
		lines = append(lines, strings.ToUpper(v.ReviewerName)+": "+feedback)
	}
	return strings.Join(lines, "\n")
}
