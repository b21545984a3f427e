// Package agents implements the LLM-backed collaborators of the audit
// pipeline: issue producers, auxiliary analyzers, and the verification
// meta-auditor. Every call goes through the resilient wrapper and parses
// structured output leniently.
package agents

import (
	"context"

	"go.uber.org/zap"

	"github.com/user/docaudit/pkg/adk"
	"github.com/user/docaudit/pkg/engine"
	"github.com/user/docaudit/pkg/resilient"
)

// env bundles the dependencies shared by all agents. Agents are built per
// request so token usage lands in that request's stats.
type env struct {
	llm    adk.LLMProvider
	policy resilient.Policy
	stats  *engine.RequestStats
	log    *zap.Logger
}

// Env creates the shared agent environment for one audit request.
func Env(llm adk.LLMProvider, policy resilient.Policy, stats *engine.RequestStats, log *zap.Logger) env {
	return env{llm: llm, policy: policy, stats: stats, log: log}
}

// callStructured performs one resilient LLM call and parses the response
// into T. Token usage is recorded per attempt, before parsing, so failed
// parses still count the tokens they consumed.
func callStructured[T any](ctx context.Context, e env, name, system, user string) (T, error) {
	return resilient.Call(ctx, name, e.policy, e.log, func(ctx context.Context) (T, error) {
		completion, err := e.llm.Complete(ctx, system, user)
		if err != nil {
			var zero T
			return zero, err
		}
		if e.stats != nil {
			e.stats.AddUsage(e.llm.Name(), completion.Usage.Input, completion.Usage.Output)
		}
		return resilient.ParseLenient[T]([]byte(completion.Text))
	})
}

// issuesResponse wraps producer output for structured parsing.
type issuesResponse struct {
	Issues []engine.Issue `json:"issues"`
}
