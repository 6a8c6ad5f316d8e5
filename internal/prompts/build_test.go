package prompts

import (
	"fmt"
	"strings"
	"testing"

	"constellation/internal/domain"
)

func turns(n int) []domain.Turn {
	out := make([]domain.Turn, n)
	for i := range out {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		out[i] = domain.Turn{Role: role, Content: fmt.Sprintf("turn %d", i)}
	}
	return out
}

func TestBuildDraftPrompt(t *testing.T) {
	t.Run("no history", func(t *testing.T) {
		got := BuildDraftPrompt("What helps a sore throat?", nil)
		if got != "What helps a sore throat?" {
			t.Errorf("got %q, want the bare question", got)
		}
	})

	t.Run("history window holds the last six turns", func(t *testing.T) {
		got := BuildDraftPrompt("And now?", turns(10))
		if strings.Contains(got, "turn 3") {
			t.Errorf("prompt contains a turn outside the window:\n%s", got)
		}
		for i := 4; i < 10; i++ {
			if !strings.Contains(got, fmt.Sprintf("turn %d", i)) {
				t.Errorf("prompt missing turn %d:\n%s", i, got)
			}
		}
		if !strings.HasPrefix(got, "Previous conversation:\n") {
			t.Errorf("prompt missing history header:\n%s", got)
		}
		if !strings.HasSuffix(got, "\n\nPatient: And now?") {
			t.Errorf("prompt missing trailing question:\n%s", got)
		}
	})
}

func TestRenderCorrectionWindow(t *testing.T) {
	got := RenderCorrection("q", "d", "f", turns(10))
	if strings.Contains(got, "turn 5") {
		t.Errorf("correction prompt contains a turn outside the four-turn window:\n%s", got)
	}
	for i := 6; i < 10; i++ {
		if !strings.Contains(got, fmt.Sprintf("turn %d", i)) {
			t.Errorf("correction prompt missing turn %d:\n%s", i, got)
		}
	}
	if !strings.HasPrefix(got, "Previous conversation:\n") {
		t.Errorf("correction prompt missing history header:\n%s", got)
	}
}

func TestRenderCorrectionFillsTemplate(t *testing.T) {
	got := RenderCorrection("the question", "the draft", "the feedback", nil)
	for _, want := range []string{"the question", "the draft", "the feedback"} {
		if !strings.Contains(got, want) {
			t.Errorf("correction prompt missing %q:\n%s", want, got)
		}
	}
	for _, leftover := range []string{"{query}", "{draft}", "{feedback}"} {
		if strings.Contains(got, leftover) {
			t.Errorf("correction prompt still contains placeholder %q", leftover)
		}
	}
}

func TestFormatHistorySpeakers(t *testing.T) {
	got := FormatHistory([]domain.Turn{
		{Role: domain.RoleUser, Content: "hello"},
		{Role: domain.RoleAssistant, Content: "hi there"},
	})
	want := "Patient: hello\nNurse: hi there"
	if got != want {
		t.Errorf("FormatHistory() = %q, want %q", got, want)
	}
}

func TestDraftSystemPrompt(t *testing.T) {
	if got := DraftSystemPrompt(""); got != PrimaryNurse {
		t.Error("empty reference should leave the system prompt untouched")
	}

	got := DraftSystemPrompt("[From care.md]:\nRest helps.")
	if !strings.HasPrefix(got, PrimaryNurse) {
		t.Error("reference block should extend, not replace, the system prompt")
	}
	if !strings.Contains(got, "Rest helps.") {
		t.Errorf("system prompt missing reference text:\n%s", got)
	}
	if strings.Contains(got, "{context}") {
		t.Error("system prompt still contains the context placeholder")
	}
}

func TestReviewTemplatesCarryPlaceholders(t *testing.T) {
	rendered := RenderReview(MedicalReview, "some draft", "some question")
	if !strings.Contains(rendered, "some draft") {
		t.Error("rendered review prompt missing the draft")
	}
	if strings.Contains(rendered, "{draft}") || strings.Contains(rendered, "{query}") {
		t.Error("rendered review prompt still contains placeholders")
	}
}
