package llm

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// Pool bounds concurrent calls to an underlying Generator. Calls beyond the
// slot count queue silently until a slot frees. This is the only true
// parallelism boundary in the system: stages may fan out more reviewers than
// the pool has slots, in which case some calls serialize.
type Pool struct {
	inner Generator
	sem   *semaphore.Weighted
}

// NewPool wraps a generator with a bounded slot count.
func NewPool(inner Generator, slots int) *Pool {
	if slots < 1 {
		slots = 1
	}
	return &Pool{
		inner: inner,
		sem:   semaphore.NewWeighted(int64(slots)),
	}
}

func (p *Pool) Name() string {
	return p.inner.Name()
}

func (p *Pool) Generate(ctx context.Context, req *GenerateRequest) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("acquiring generation slot: %w", err)
	}
	defer p.sem.Release(1)

	return p.inner.Generate(ctx, req)
}
