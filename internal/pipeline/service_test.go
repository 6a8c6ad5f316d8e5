package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"constellation/internal/domain"
	"constellation/internal/genconfig"
	"constellation/internal/llm"
	"constellation/internal/prompts"
	"constellation/internal/reviewer"
)

const (
	fakeDraft     = "Drink plenty of fluids and rest."
	fakeCorrected = "Drink plenty of fluids, rest, and see a doctor if it persists."
)

// fakeGenerator scripts the three call kinds the pipeline makes. Review
// calls are identified by re-rendering each reviewer's prompt against the
// known draft and query; the remaining calls are the draft (first) and the
// correction (after reviews).
type fakeGenerator struct {
	mu sync.Mutex

	query    string
	verdicts map[reviewer.ID]string // raw response per reviewer
	draftErr error

	// per-reviewer artificial latency, for ordering tests
	delays map[reviewer.ID]time.Duration

	draftCalls    int
	correctCalls  int
	reviewCalls   []reviewer.ID
	draftSysInstr string
	correctPrompt string
}

func (g *fakeGenerator) Name() string { return "fake" }

func (g *fakeGenerator) Generate(ctx context.Context, req *llm.GenerateRequest) (string, error) {
	for _, id := range reviewer.All() {
		if req.Prompt == prompts.RenderReview(id.PromptTemplate(), fakeDraft, g.query) {
			g.mu.Lock()
			g.reviewCalls = append(g.reviewCalls, id)
			raw := g.verdicts[id]
			delay := g.delays[id]
			g.mu.Unlock()

			if delay > 0 {
				time.Sleep(delay)
			}
			if raw == "" {
				raw = `{"status": "SAFE", "reasoning": "No concerns."}`
			}
			return raw, nil
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.draftCalls == 0 {
		g.draftCalls++
		g.draftSysInstr = req.SystemInstruction
		if g.draftErr != nil {
			return "", g.draftErr
		}
		return fakeDraft, nil
	}

	g.correctCalls++
	g.correctPrompt = req.Prompt
	return fakeCorrected, nil
}

type fakeRetriever struct {
	context string
	found   bool
	err     error
}

func (r *fakeRetriever) RelevantContext(ctx context.Context, query string) (string, bool, error) {
	return r.context, r.found, r.err
}

func newTestService(t *testing.T, gen *fakeGenerator, retriever ContextProvider) *Service {
	t.Helper()
	profiles, err := genconfig.NewRegistry()
	if err != nil {
		t.Fatalf("loading generation profiles: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewService(gen, retriever, profiles, logger)
}

func TestRunAllSafeKeepsDraft(t *testing.T) {
	query := "I have a sore back, what should I do?"
	gen := &fakeGenerator{query: query}
	svc := newTestService(t, gen, nil)

	result, err := svc.Run(context.Background(), &Request{Message: query})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if result.Draft != fakeDraft {
		t.Errorf("Draft = %q, want %q", result.Draft, fakeDraft)
	}
	if result.FinalResponse != fakeDraft {
		t.Errorf("FinalResponse = %q, want the untouched draft", result.FinalResponse)
	}
	if result.WasCorrected {
		t.Error("WasCorrected = true, want false when every reviewer approves")
	}
	if gen.correctCalls != 0 {
		t.Errorf("corrector called %d times, want 0", gen.correctCalls)
	}

	wantActive := []reviewer.ID{reviewer.Medical, reviewer.Legal, reviewer.Empathy}
	if len(result.ActiveReviewers) != len(wantActive) {
		t.Fatalf("ActiveReviewers = %v, want %v", result.ActiveReviewers, wantActive)
	}
	for i, id := range wantActive {
		if result.ActiveReviewers[i] != id {
			t.Fatalf("ActiveReviewers = %v, want %v", result.ActiveReviewers, wantActive)
		}
		review, ok := result.Reviews[id]
		if !ok {
			t.Fatalf("Reviews missing %s", id)
		}
		if !review.Safe {
			t.Errorf("review %s not safe: %+v", id, review)
		}
		if review.Name != id.DisplayName() {
			t.Errorf("review %s name = %q, want %q", id, review.Name, id.DisplayName())
		}
	}
}

func TestRunUnsafeVerdictTriggersSingleCorrection(t *testing.T) {
	query := "I have a sore back, what should I do?"
	gen := &fakeGenerator{
		query: query,
		verdicts: map[reviewer.ID]string{
			reviewer.Medical: `{"status": "UNSAFE", "reasoning": "Suggests a diagnosis.", "suggestion": "Refer to a doctor."}`,
		},
	}
	svc := newTestService(t, gen, nil)

	result, err := svc.Run(context.Background(), &Request{Message: query})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !result.WasCorrected {
		t.Error("WasCorrected = false, want true after an UNSAFE verdict")
	}
	if result.FinalResponse != fakeCorrected {
		t.Errorf("FinalResponse = %q, want the corrected answer", result.FinalResponse)
	}
	if result.Draft != fakeDraft {
		t.Errorf("Draft = %q, want the original draft preserved", result.Draft)
	}
	if gen.correctCalls != 1 {
		t.Errorf("corrector called %d times, want exactly 1", gen.correctCalls)
	}
	if !strings.Contains(gen.correctPrompt, "MEDICAL REVIEWER: Suggests a diagnosis. Suggestion: Refer to a doctor.") {
		t.Errorf("correction prompt missing the reviewer feedback line:\n%s", gen.correctPrompt)
	}
}

func TestRunSafeWithSuggestionStillCorrects(t *testing.T) {
	query := "I have a sore back, what should I do?"
	gen := &fakeGenerator{
		query: query,
		verdicts: map[reviewer.ID]string{
			reviewer.Empathy: `{"status": "SAFE", "reasoning": "Tone is fine.", "suggestion": "Acknowledge the discomfort first."}`,
		},
	}
	svc := newTestService(t, gen, nil)

	result, err := svc.Run(context.Background(), &Request{Message: query})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !result.WasCorrected {
		t.Error("WasCorrected = false, want true when an approval carries a suggestion")
	}
	if !strings.Contains(gen.correctPrompt, "(Approved but with suggestion)") {
		t.Errorf("correction prompt missing the approval marker:\n%s", gen.correctPrompt)
	}
}

func TestRunValidation(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newTestService(t, gen, nil)

	tests := []struct {
		name    string
		message string
	}{
		{"empty message", ""},
		{"message too long", strings.Repeat("a", 8001)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Run(context.Background(), &Request{Message: tt.message})
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Run() error = %v, want a validation error", err)
			}
		})
	}
	if gen.draftCalls != 0 {
		t.Errorf("generator called %d times for invalid input, want 0", gen.draftCalls)
	}
}

func TestRunSplicesReferenceContextIntoDraft(t *testing.T) {
	query := "I have a sore back, what should I do?"
	gen := &fakeGenerator{query: query}
	retriever := &fakeRetriever{context: "[From back_care.md]:\nGentle stretching helps.", found: true}
	svc := newTestService(t, gen, retriever)

	if _, err := svc.Run(context.Background(), &Request{Message: query}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(gen.draftSysInstr, "Gentle stretching helps.") {
		t.Errorf("draft system instruction missing retrieved reference:\n%s", gen.draftSysInstr)
	}
}

func TestRunDegradesWhenRetrievalFails(t *testing.T) {
	query := "I have a sore back, what should I do?"
	gen := &fakeGenerator{query: query}
	retriever := &fakeRetriever{err: errors.New("store offline")}
	svc := newTestService(t, gen, retriever)

	result, err := svc.Run(context.Background(), &Request{Message: query})
	if err != nil {
		t.Fatalf("Run() error: %v, want retrieval failure to degrade silently", err)
	}
	if result.FinalResponse != fakeDraft {
		t.Errorf("FinalResponse = %q, want the draft", result.FinalResponse)
	}
}

func TestStreamEventOrderIsCanonical(t *testing.T) {
	query := "I have a sore back, what should I do?"
	gen := &fakeGenerator{
		query: query,
		// legal is slower than empathy, yet its completion must still be
		// replayed first
		delays: map[reviewer.ID]time.Duration{
			reviewer.Legal: 30 * time.Millisecond,
		},
	}
	svc := newTestService(t, gen, nil)

	var got []string
	for event := range svc.Stream(context.Background(), &Request{Message: query}) {
		got = append(got, event.Step+"/"+event.Status)
	}

	want := []string{
		"drafting/started",
		"drafting/complete",
		"auditing/started",
		"medical_check/started",
		"medical_check/complete",
		"legal_check/started",
		"empathy_check/started",
		"legal_check/complete",
		"empathy_check/complete",
		"finalizing/started",
		"complete/",
	}

	if len(got) != len(want) {
		t.Fatalf("event sequence %v\nwant %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %q, want %q\nfull sequence: %v", i, got[i], want[i], got)
		}
	}
}

func TestStreamTerminalEventCarriesResult(t *testing.T) {
	query := "I have a sore back, what should I do?"
	gen := &fakeGenerator{query: query}
	svc := newTestService(t, gen, nil)

	var last Event
	for event := range svc.Stream(context.Background(), &Request{Message: query}) {
		last = event
	}

	if last.Step != StepComplete {
		t.Fatalf("last event step = %q, want complete", last.Step)
	}
	result, ok := last.Result.(*Result)
	if !ok {
		t.Fatalf("terminal event result is %T, want *Result", last.Result)
	}
	if result.FinalResponse != fakeDraft {
		t.Errorf("FinalResponse = %q, want %q", result.FinalResponse, fakeDraft)
	}
}

func TestStreamEmitsErrorEvent(t *testing.T) {
	query := "I have a sore back, what should I do?"
	gen := &fakeGenerator{query: query, draftErr: domain.ErrUnavailable}
	svc := newTestService(t, gen, nil)

	var last Event
	for event := range svc.Stream(context.Background(), &Request{Message: query}) {
		last = event
	}

	if last.Step != StepError {
		t.Fatalf("last event step = %q, want error", last.Step)
	}
	if last.Error != "pipeline failed" {
		t.Errorf("Error = %q, want the generic failure message", last.Error)
	}
}

func TestStreamValidationErrorCarriesDetail(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newTestService(t, gen, nil)

	var last Event
	for event := range svc.Stream(context.Background(), &Request{Message: ""}) {
		last = event
	}

	if last.Step != StepError {
		t.Fatalf("last event step = %q, want error", last.Step)
	}
	if last.Error == "pipeline failed" || last.Error == "" {
		t.Errorf("Error = %q, want validation detail", last.Error)
	}
}
