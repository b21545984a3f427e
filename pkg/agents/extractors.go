package agents

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/user/docaudit/pkg/report"
)

// UseCaseExtractor pulls the document's use cases into structured entries
// used as context for the traceability matrix.
type UseCaseExtractor struct {
	env env
}

func NewUseCaseExtractor(e env) *UseCaseExtractor {
	return &UseCaseExtractor{env: e}
}

func (x *UseCaseExtractor) Extract(ctx context.Context, documentText string) ([]report.UseCaseEntry, error) {
	type response struct {
		UseCases []report.UseCaseEntry `json:"useCases"`
	}

	user := fmt.Sprintf("Extract every use case from this document.\n\nDOCUMENT:\n---\n%s\n---", documentText)
	resp, err := callStructured[response](ctx, x.env, "UseCaseExtractor", useCaseExtractorSystemPrompt, user)
	if err != nil {
		return nil, err
	}

	x.env.log.Info("use case extraction completed", zap.Int("useCases", len(resp.UseCases)))
	return resp.UseCases, nil
}

// RequirementExtractor pulls the document's functional requirements,
// keeping identifiers exactly as written.
type RequirementExtractor struct {
	env env
}

func NewRequirementExtractor(e env) *RequirementExtractor {
	return &RequirementExtractor{env: e}
}

func (x *RequirementExtractor) Extract(ctx context.Context, documentText string) ([]report.RequirementEntry, error) {
	type response struct {
		Requirements []report.RequirementEntry `json:"requirements"`
	}

	user := fmt.Sprintf("Extract every functional requirement from this document.\n\nDOCUMENT:\n---\n%s\n---", documentText)
	resp, err := callStructured[response](ctx, x.env, "RequirementExtractor", requirementExtractorSystemPrompt, user)
	if err != nil {
		return nil, err
	}

	x.env.log.Info("requirement extraction completed", zap.Int("requirements", len(resp.Requirements)))
	return resp.Requirements, nil
}
