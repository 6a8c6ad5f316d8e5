package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// ProviderBuilder constructs a named provider. Indirection keeps this package
// free of provider imports (subpackages import llm, not the other way
// around); cmd/server registers the concrete builders.
type ProviderBuilder func(ctx context.Context) (Generator, error)

// Setup resolves a provider by name from the registered builders and wraps it
// in a bounded pool.
func Setup(ctx context.Context, provider string, slots int, builders map[string]ProviderBuilder, logger *slog.Logger) (Generator, error) {
	build, ok := builders[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}

	inner, err := build(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating %s provider: %w", provider, err)
	}

	logger.Info("generation provider initialized",
		"provider", inner.Name(),
		"worker_slots", slots,
	)

	return NewPool(inner, slots), nil
}
