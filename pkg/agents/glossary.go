package agents

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/user/docaudit/pkg/report"
)

// GlossaryAnalyzer detects terminological inconsistencies across the
// document.
type GlossaryAnalyzer struct {
	env env
}

func NewGlossaryAnalyzer(e env) *GlossaryAnalyzer {
	return &GlossaryAnalyzer{env: e}
}

func (g *GlossaryAnalyzer) Analyze(ctx context.Context, documentText string) ([]report.GlossaryIssue, error) {
	type response struct {
		GlossaryIssues []report.GlossaryIssue `json:"glossaryIssues"`
	}

	user := fmt.Sprintf("Find terminological inconsistencies in this document.\n\nDOCUMENT:\n---\n%s\n---", documentText)
	resp, err := callStructured[response](ctx, g.env, "GlossaryAnalyzer", glossarySystemPrompt, user)
	if err != nil {
		return nil, err
	}

	g.env.log.Info("glossary analysis completed", zap.Int("issues", len(resp.GlossaryIssues)))
	return resp.GlossaryIssues, nil
}
