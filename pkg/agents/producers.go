package agents

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/user/docaudit/pkg/engine"
)

// Auditor is an issue producer: one analysis perspective (requirements,
// testing, architecture) backed by an LLM call. It implements
// engine.Producer.
type Auditor struct {
	name   string
	system string
	env    env
}

// NewRequirementsAuditor audits requirements and use cases.
func NewRequirementsAuditor(e env) *Auditor {
	return &Auditor{name: "RequirementsAuditor", system: requirementsSystemPrompt, env: e}
}

// NewTestAuditor audits test design and coverage claims.
func NewTestAuditor(e env) *Auditor {
	return &Auditor{name: "TestAuditor", system: testAuditorSystemPrompt, env: e}
}

// NewArchitectureAuditor audits design and architecture chapters.
func NewArchitectureAuditor(e env) *Auditor {
	return &Auditor{name: "ArchitectureAuditor", system: architectureSystemPrompt, env: e}
}

func (a *Auditor) Name() string { return a.name }

// Analyze runs the audit perspective over the full document text and
// returns candidate issues. Finding nothing is an empty list, not an error.
func (a *Auditor) Analyze(ctx context.Context, documentText string) ([]engine.Issue, error) {
	a.env.log.Info("producer starting analysis",
		zap.String("producer", a.name), zap.Int("chars", len(documentText)))

	user := fmt.Sprintf(`Analyze the following project document.
For every problem, provide an exact verbatim quote from the document.

DOCUMENT:
---
%s
---
%s`, documentText, issuesFormat)

	resp, err := callStructured[issuesResponse](ctx, a.env, a.name, a.system, user)
	if err != nil {
		return nil, err
	}

	a.env.log.Info("producer analysis completed",
		zap.String("producer", a.name), zap.Int("issues", len(resp.Issues)))
	return resp.Issues, nil
}
