// Package adk abstracts the LLM providers backing the audit collaborators.
package adk

import "context"

// Usage reports token consumption for a single completion.
type Usage struct {
	Input  int64
	Output int64
}

// Completion is the raw text produced by a provider plus its token usage.
type Completion struct {
	Text  string
	Usage Usage
}

// LLMProvider defines the interface for different AI models.
type LLMProvider interface {
	// Name identifies the provider for telemetry and error reporting.
	Name() string

	// Complete sends a system and user prompt and returns the model's
	// text response.
	Complete(ctx context.Context, system, user string) (Completion, error)

	// ListModels returns the models available for this provider.
	ListModels(ctx context.Context) ([]string, error)
}
