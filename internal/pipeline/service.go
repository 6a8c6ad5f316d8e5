// Package pipeline orchestrates the reviewed-answer flow: draft a response,
// run the active reviewer panel in three sequential stages with intra-stage
// concurrency, and request one corrected answer when any reviewer raises a
// concern or a suggestion.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/sync/errgroup"

	"constellation/internal/config"
	"constellation/internal/domain"
	"constellation/internal/genconfig"
	"constellation/internal/llm"
	"constellation/internal/prompts"
	"constellation/internal/reviewer"
)

// ContextProvider supplies optional reference material for the drafter.
// The boolean reports whether any material was found; absence is not an
// error.
type ContextProvider interface {
	RelevantContext(ctx context.Context, query string) (string, bool, error)
}

// Request is one question plus its conversation history.
type Request struct {
	Message string        `json:"message"`
	History []domain.Turn `json:"history,omitempty"`
}

// Service runs the review pipeline. All collaborator handles are injected at
// construction; nothing is resolved through ambient globals.
type Service struct {
	generator llm.Generator
	retriever ContextProvider // nil when retrieval is not wired
	profiles  *genconfig.Registry
	logger    *slog.Logger
}

// NewService creates a pipeline service.
func NewService(generator llm.Generator, retriever ContextProvider, profiles *genconfig.Registry, logger *slog.Logger) *Service {
	return &Service{
		generator: generator,
		retriever: retriever,
		profiles:  profiles,
		logger:    logger,
	}
}

// Run executes the pipeline and blocks until the final result.
func (s *Service) Run(ctx context.Context, req *Request) (*Result, error) {
	return s.execute(ctx, req, func(Event) {})
}

func (s *Service) validateRequest(req *Request) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Message,
			validation.Required,
			validation.Length(1, config.MaxMessageLength),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// execute is the single engine behind both the blocking and streaming calls.
// emit is invoked synchronously as each step starts and completes, so event
// order is exactly pipeline order.
func (s *Service) execute(ctx context.Context, req *Request, emit func(Event)) (*Result, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	log := s.logger.With("query_len", len(req.Message), "history_len", len(req.History))

	// Draft
	emit(Event{Step: StepDrafting, Status: StatusStarted})
	draft, err := s.draft(ctx, req.Message, req.History)
	if err != nil {
		return nil, err
	}
	emit(Event{Step: StepDrafting, Status: StatusComplete, Draft: draft})

	// Route
	active := reviewer.ResolveActive(req.Message, req.History)
	log.Info("reviewers resolved", "active", active)
	emit(Event{Step: StepAuditing, Status: StatusStarted, ActiveReviewers: active})

	// Three sequential stages, each internally concurrent
	set := NewVerdictSet()
	for _, stage := range []reviewer.Stage{reviewer.Stage1, reviewer.Stage2, reviewer.Stage3} {
		if err := s.runStage(ctx, stage, active, draft, req.Message, set, emit); err != nil {
			return nil, err
		}
	}

	// Decide and, at most once, correct
	final := draft
	corrected := false
	if NeedsCorrection(set) || HasSuggestion(set) {
		emit(Event{Step: StepCorrecting, Status: StatusStarted})
		final, err = s.correct(ctx, req.Message, draft, set, req.History)
		if err != nil {
			return nil, err
		}
		corrected = true
		emit(Event{Step: StepCorrecting, Status: StatusComplete})
	}

	emit(Event{Step: StepFinalizing, Status: StatusStarted})
	result := buildResult(draft, final, active, set, corrected)
	log.Info("pipeline complete", "was_corrected", corrected, "reviews", set.Len())
	emit(Event{Step: StepComplete, Result: result})

	return result, nil
}

// runStage fans out every active reviewer in the stage, waits for all of
// them (barrier join - no partial results move forward), then records
// verdicts and emits completion events in canonical order regardless of
// which call finished first.
func (s *Service) runStage(ctx context.Context, stage reviewer.Stage, active []reviewer.ID, draft, query string, set *VerdictSet, emit func(Event)) error {
	ids := activeInStage(stage, active)
	if len(ids) == 0 {
		return nil
	}

	for _, id := range ids {
		emit(Event{Step: CheckStep(id), Status: StatusStarted, ReviewerID: id})
	}

	profile, err := s.profiles.Get(genconfig.RoleReviewer)
	if err != nil {
		return err
	}

	// Buffer results by index; the errgroup wait is the stage barrier.
	verdicts := make([]reviewer.Verdict, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			raw, err := s.generator.Generate(gctx, &llm.GenerateRequest{
				Prompt:      prompts.RenderReview(id.PromptTemplate(), draft, query),
				Temperature: profile.Temperature,
				MaxTokens:   profile.MaxTokens,
			})
			if err != nil {
				return fmt.Errorf("reviewer %s: %w", id, err)
			}
			v := reviewer.ParseVerdict(raw)
			v.ReviewerID = id
			v.ReviewerName = id.DisplayName()
			verdicts[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, id := range ids {
		set.Add(verdicts[i])
		safe := verdicts[i].Safe()
		v := verdicts[i]
		emit(Event{Step: CheckStep(id), Status: StatusComplete, ReviewerID: id, Result: &v, Safe: &safe})
	}
	return nil
}

// activeInStage filters the active list down to one stage, preserving
// canonical order.
func activeInStage(stage reviewer.Stage, active []reviewer.ID) []reviewer.ID {
	var ids []reviewer.ID
	for _, id := range active {
		if id.Stage() == stage {
			ids = append(ids, id)
		}
	}
	return ids
}

// draft asks the generator for the initial answer, splicing retrieved
// reference material into the system prompt when available.
func (s *Service) draft(ctx context.Context, query string, history []domain.Turn) (string, error) {
	reference := ""
	if s.retriever != nil {
		ctxText, found, err := s.retriever.RelevantContext(ctx, query)
		if err != nil {
			// Retrieval trouble degrades to an unreferenced draft.
			s.logger.Warn("reference retrieval failed", "error", err)
		} else if found {
			reference = ctxText
		}
	}

	profile, err := s.profiles.Get(genconfig.RoleDrafter)
	if err != nil {
		return "", err
	}

	draft, err := s.generator.Generate(ctx, &llm.GenerateRequest{
		Prompt:            prompts.BuildDraftPrompt(query, history),
		SystemInstruction: prompts.DraftSystemPrompt(reference),
		Temperature:       profile.Temperature,
		MaxTokens:         profile.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("drafting: %w", err)
	}
	return draft, nil
}

// correct makes the single revision call, reusing the drafter's prompt
// identity with the aggregated feedback block.
func (s *Service) correct(ctx context.Context, query, draft string, set *VerdictSet, history []domain.Turn) (string, error) {
	profile, err := s.profiles.Get(genconfig.RoleCorrector)
	if err != nil {
		return "", err
	}

	final, err := s.generator.Generate(ctx, &llm.GenerateRequest{
		Prompt:            prompts.RenderCorrection(query, draft, BuildFeedback(set), history),
		SystemInstruction: prompts.PrimaryNurse,
		Temperature:       profile.Temperature,
		MaxTokens:         profile.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("correcting: %w", err)
	}
	return final, nil
}
