package agents

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/user/docaudit/pkg/report"
)

// FeatureChecker verifies the document against a reference checklist of
// features and reports per-feature coverage.
type FeatureChecker struct {
	checklist []Feature
	env       env
}

func NewFeatureChecker(e env, checklist []Feature) *FeatureChecker {
	return &FeatureChecker{checklist: checklist, env: e}
}

func (c *FeatureChecker) Check(ctx context.Context, documentText string) ([]report.FeatureCoverage, error) {
	type response struct {
		Features []report.FeatureCoverage `json:"features"`
	}

	var sb strings.Builder
	sb.WriteString("REFERENCE CHECKLIST:\n")
	for _, f := range c.checklist {
		fmt.Fprintf(&sb, "- %s (%s):\n", f.Name, f.Category)
		for _, item := range f.Items {
			fmt.Fprintf(&sb, "  * %s\n", item)
		}
	}
	fmt.Fprintf(&sb, "\nDOCUMENT:\n---\n%s\n---", documentText)

	resp, err := callStructured[response](ctx, c.env, "FeatureChecker", featureCheckSystemPrompt, sb.String())
	if err != nil {
		return nil, err
	}

	c.env.log.Info("feature check completed", zap.Int("features", len(resp.Features)))
	return resp.Features, nil
}
