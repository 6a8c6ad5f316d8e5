// Package llm defines the text-generation collaborator boundary: a prompt
// goes in, text comes out. Provider implementations live in subpackages.
package llm

import "context"

// GenerateRequest is a single generation call.
type GenerateRequest struct {
	Prompt            string
	SystemInstruction string
	Temperature       float64
	MaxTokens         int
}

// Generator is the provider abstraction consumed by the pipeline. A failed
// call aborts the request that issued it; providers do not retry.
type Generator interface {
	Generate(ctx context.Context, req *GenerateRequest) (string, error)
	Name() string
}
