package pipeline

import (
	"context"
	"errors"

	"constellation/internal/domain"
)

// Stream runs the pipeline and delivers progress as an ordered event
// sequence. Events are emitted synchronously with pipeline progress; within
// a stage, completion events are buffered until the stage's barrier join and
// then replayed in canonical order, never in arrival order.
//
// The channel closes after the terminal "complete" event, or after an
// "error" event if a collaborator call fails.
func (s *Service) Stream(ctx context.Context, req *Request) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)

		emit := func(e Event) {
			select {
			case events <- e:
			case <-ctx.Done():
			}
		}

		if _, err := s.execute(ctx, req, emit); err != nil {
			s.logger.Error("pipeline failed", "error", err)
			emit(Event{Step: StepError, Error: publicError(err)})
		}
	}()

	return events
}

// publicError strips internals from errors before they cross the stream
// boundary. Collaborator failures surface as an undifferentiated failure;
// only input problems carry detail back to the caller.
func publicError(err error) string {
	if errors.Is(err, domain.ErrValidation) {
		return err.Error()
	}
	return "pipeline failed"
}
