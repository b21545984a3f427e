package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/user/docaudit/pkg/engine"
)

// MetaVerifier is the cross-checking stage of the pipeline: it re-reads the
// document, confirms or rejects each candidate issue, and merges duplicates.
// It implements engine.Verifier.
type MetaVerifier struct {
	env env
}

func NewMetaVerifier(e env) *MetaVerifier {
	return &MetaVerifier{env: e}
}

func (v *MetaVerifier) Verify(ctx context.Context, documentText string, candidates []engine.Issue) ([]engine.Verdict, error) {
	type response struct {
		Verdicts []engine.Verdict `json:"verdicts"`
	}

	candidatesJSON, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal candidates: %w", err)
	}

	v.env.log.Info("verification starting", zap.Int("candidates", len(candidates)))

	user := fmt.Sprintf(`ISSUES TO VERIFY:
%s

===BEGIN DOCUMENT===
%s
===END DOCUMENT===

Verify every issue against the document and respond with one verdict per
issue.`, candidatesJSON, documentText)

	resp, err := callStructured[response](ctx, v.env, "MetaVerifier", verifierSystemPrompt, user)
	if err != nil {
		return nil, err
	}

	v.env.log.Info("verification completed", zap.Int("verdicts", len(resp.Verdicts)))
	return resp.Verdicts, nil
}
