package report

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/user/docaudit/pkg/engine"
)

const (
	// maxShortSummaryLength bounds the short summary shown in tables.
	maxShortSummaryLength = 120
)

// Severity weights for the informational quality score. The score never
// gates publication; the pipeline's threshold chain is authoritative.
var severityPenalty = map[engine.Severity]int{
	engine.SeverityHigh:   25,
	engine.SeverityMedium: 10,
	engine.SeverityLow:    3,
}

// Normalizer post-processes published issues for presentation: it fills
// missing short summaries, orders by confidence, and caps the issue count.
type Normalizer struct {
	maxIssues int
	log       *zap.Logger
}

// NewNormalizer builds a Normalizer capping the report at maxIssues.
func NewNormalizer(maxIssues int, log *zap.Logger) *Normalizer {
	if maxIssues <= 0 {
		maxIssues = 7
	}
	return &Normalizer{maxIssues: maxIssues, log: log}
}

// NormalizeIssues ensures every issue has a short summary, sorts by
// confidence descending (severity breaking ties), and limits the count.
// Published issue ids are preserved; only presentation fields change.
func (n *Normalizer) NormalizeIssues(issues []engine.Issue) []engine.Issue {
	if len(issues) == 0 {
		return issues
	}

	normalized := make([]engine.Issue, len(issues))
	for i, issue := range issues {
		normalized[i] = ensureShortSummary(issue)
	}

	sort.SliceStable(normalized, func(a, b int) bool {
		if normalized[a].Confidence != normalized[b].Confidence {
			return normalized[a].Confidence > normalized[b].Confidence
		}
		return normalized[a].Severity < normalized[b].Severity
	})

	if len(normalized) > n.maxIssues {
		n.log.Info("limiting report issues",
			zap.Int("from", len(normalized)), zap.Int("to", n.maxIssues))
		normalized = normalized[:n.maxIssues]
	}

	return normalized
}

// FilterMissingFeatures returns only PARTIAL or ABSENT features, worst
// coverage first. PRESENT features are excluded from the report.
func (n *Normalizer) FilterMissingFeatures(features []FeatureCoverage) []FeatureCoverage {
	if len(features) == 0 {
		return nil
	}

	var missing []FeatureCoverage
	for _, f := range features {
		if f.Status != FeaturePresent {
			missing = append(missing, f)
		}
	}
	sort.SliceStable(missing, func(a, b int) bool {
		return missing[a].CoverageScore < missing[b].CoverageScore
	})
	return missing
}

// Completeness summarizes per-category issue counts and feature coverage.
func (n *Normalizer) Completeness(issues []engine.Issue, features []FeatureCoverage) map[string]string {
	metrics := make(map[string]string)

	for _, category := range []string{"Requirements", "Architecture", "Testing"} {
		count := 0
		for _, issue := range issues {
			if strings.EqualFold(issue.Category, category) {
				count++
			}
		}
		if count == 0 {
			metrics[category] = "COMPLETE"
		} else {
			metrics[category] = fmt.Sprintf("%d issue(s) found", count)
		}
	}

	if len(features) > 0 {
		present, total := 0, 0
		for _, f := range features {
			if f.Status == FeaturePresent {
				present++
			}
			total += f.CoverageScore
		}
		metrics["Feature Coverage"] = fmt.Sprintf("%d/%d present (%d%% avg)",
			present, len(features), total/len(features))
	}

	return metrics
}

// QualityScore computes the severity-weighted score in [0,100].
// Informational only.
func (n *Normalizer) QualityScore(issues []engine.Issue) int {
	score := 100
	for _, issue := range issues {
		score -= severityPenalty[issue.Severity]
	}
	if score < 0 {
		score = 0
	}
	return score
}

func ensureShortSummary(issue engine.Issue) engine.Issue {
	if issue.ShortSummary != "" {
		issue.ShortSummary = truncateSummary(issue.ShortSummary)
		return issue
	}
	issue.ShortSummary = truncateSummary(issue.Description)
	return issue
}

func truncateSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= maxShortSummaryLength {
		return s
	}
	head := string(runes[:maxShortSummaryLength])
	// Cut at the last sentence boundary before the limit when one exists.
	if idx := strings.LastIndex(head, "."); idx > maxShortSummaryLength/2 {
		return head[:idx+1]
	}
	return string(runes[:maxShortSummaryLength-3]) + "..."
}
