package prompts

import (
	"strings"

	"constellation/internal/config"
	"constellation/internal/domain"
)

// RenderReview fills a reviewer prompt template with the draft and the
// patient's question.
func RenderReview(template, draft, query string) string {
	return strings.NewReplacer(
		"{draft}", draft,
		"{query}", query,
	).Replace(template)
}

// RenderCorrection fills the correction template and prepends the trailing
// conversation window, mirroring how the drafter saw the conversation.
func RenderCorrection(query, draft, feedback string, history []domain.Turn) string {
	prompt := strings.NewReplacer(
		"{query}", query,
		"{draft}", draft,
		"{feedback}", feedback,
	).Replace(Correction)

	window := domain.LastTurns(history, config.ReviewHistoryWindow)
	if len(window) == 0 {
		return prompt
	}
	return "Previous conversation:\n" + FormatHistory(window) + "\n\n" + prompt
}

// BuildDraftPrompt builds the drafter's user prompt: the trailing
// conversation window, then the new question.
func BuildDraftPrompt(query string, history []domain.Turn) string {
	window := domain.LastTurns(history, config.DraftHistoryWindow)
	if len(window) == 0 {
		return query
	}
	return "Previous conversation:\n" + FormatHistory(window) + "\n\nPatient: " + query
}

// DraftSystemPrompt returns the drafter's system prompt, with the retrieved
// reference block spliced in when reference material is available.
func DraftSystemPrompt(referenceContext string) string {
	if referenceContext == "" {
		return PrimaryNurse
	}
	return PrimaryNurse + strings.Replace(referenceBlock, "{context}", referenceContext, 1)
}

// FormatHistory renders turns as "Patient:"/"Nurse:" transcript lines.
func FormatHistory(turns []domain.Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		speaker := "Nurse"
		if t.IsPatient() {
			speaker = "Patient"
		}
		lines = append(lines, speaker+": "+t.Content)
	}
	return strings.Join(lines, "\n")
}
