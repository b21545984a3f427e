package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/user/docaudit/pkg/report"
)

// TraceabilityBuilder maps extracted use cases to requirements, design and
// tests, producing the traceability matrix rows.
type TraceabilityBuilder struct {
	env env
}

func NewTraceabilityBuilder(e env) *TraceabilityBuilder {
	return &TraceabilityBuilder{env: e}
}

// Build runs with the previously extracted use cases and requirements as
// context so the matrix uses the document's own identifiers.
func (b *TraceabilityBuilder) Build(ctx context.Context, documentText string, useCases []report.UseCaseEntry, requirements []report.RequirementEntry) ([]report.TraceabilityEntry, error) {
	if len(useCases) == 0 {
		b.env.log.Info("no use cases extracted, skipping traceability matrix")
		return nil, nil
	}

	type response struct {
		Entries []report.TraceabilityEntry `json:"entries"`
	}

	ucJSON, err := json.Marshal(useCases)
	if err != nil {
		return nil, fmt.Errorf("marshal use cases: %w", err)
	}
	reqJSON, err := json.Marshal(requirements)
	if err != nil {
		return nil, fmt.Errorf("marshal requirements: %w", err)
	}

	user := fmt.Sprintf(`USE CASES:
%s

REQUIREMENTS:
%s

DOCUMENT:
---
%s
---`, ucJSON, reqJSON, documentText)

	resp, err := callStructured[response](ctx, b.env, "TraceabilityBuilder", traceabilitySystemPrompt, user)
	if err != nil {
		return nil, err
	}

	b.env.log.Info("traceability matrix completed", zap.Int("entries", len(resp.Entries)))
	return resp.Entries, nil
}
