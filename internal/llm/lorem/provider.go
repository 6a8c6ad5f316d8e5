// Package lorem is a mock generation provider for development and tests. It
// needs no API key and fabricates plausible pipeline traffic: review prompts
// get a JSON verdict, everything else gets lorem ipsum prose.
package lorem

import (
	"context"
	"encoding/json"
	"strings"

	loremgen "github.com/bozaro/golorem"

	"constellation/internal/llm"
)

// Provider generates lorem ipsum responses.
//
// Model names tweak behavior:
//   - "lorem-unsafe": review prompts get an UNSAFE verdict, exercising the
//     correction path end to end
//   - anything else: review prompts get a SAFE verdict with no suggestion
type Provider struct {
	generator *loremgen.Lorem
	model     string
}

// NewProvider creates a lorem provider.
func NewProvider(model string) *Provider {
	return &Provider{
		generator: loremgen.New(),
		model:     model,
	}
}

func (p *Provider) Name() string { return "lorem" }

// Generate implements llm.Generator. Never fails.
func (p *Provider) Generate(_ context.Context, req *llm.GenerateRequest) (string, error) {
	if isReviewPrompt(req.Prompt) {
		return p.verdictJSON(), nil
	}
	return p.generator.Paragraph(3, 5), nil
}

// isReviewPrompt sniffs for the shared verdict-format instructions that every
// review prompt carries.
func isReviewPrompt(prompt string) bool {
	return strings.Contains(prompt, "Respond with ONLY valid JSON")
}

func (p *Provider) verdictJSON() string {
	verdict := map[string]string{
		"status":    "SAFE",
		"reasoning": p.generator.Sentence(5, 10),
	}
	if strings.Contains(p.model, "unsafe") {
		verdict["status"] = "UNSAFE"
		verdict["suggestion"] = p.generator.Sentence(5, 10)
	}
	out, _ := json.Marshal(verdict)
	return string(out)
}
