package report

import (
	"fmt"
	"strings"
)

// RenderMarkdown produces the human-readable audit report. The output
// compiler (PDF, LaTeX) is an external concern; markdown is the exchange
// format this package owns.
func RenderMarkdown(r *AuditReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Audit Report - %s\n\n", r.Filename)
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Quality score: %d/100 - %d issue(s) published\n\n", r.QualityScore, len(r.Issues))

	if len(r.Issues) > 0 {
		b.WriteString("## Issues\n\n")
		for _, issue := range r.Issues {
			fmt.Fprintf(&b, "### %s - %s (%s)\n\n", issue.ID, issue.ShortSummary, issue.Severity)
			fmt.Fprintf(&b, "- **Category**: %s\n", issue.Category)
			fmt.Fprintf(&b, "- **Page**: %d\n", issue.PageReference)
			fmt.Fprintf(&b, "- **Confidence**: %.2f\n\n", issue.Confidence)
			fmt.Fprintf(&b, "%s\n\n", issue.Description)
			if issue.Quote != "" {
				fmt.Fprintf(&b, "> %s\n\n", issue.Quote)
			}
			if issue.Recommendation != "" {
				fmt.Fprintf(&b, "**Recommendation**: %s\n\n", issue.Recommendation)
			}
		}
	} else {
		b.WriteString("## Issues\n\nNo issues passed verification.\n\n")
	}

	if len(r.MissingFeatures) > 0 {
		b.WriteString("## Missing or partial features\n\n")
		b.WriteString("| Feature | Category | Status | Coverage |\n")
		b.WriteString("|---------|----------|--------|----------|\n")
		for _, f := range r.MissingFeatures {
			fmt.Fprintf(&b, "| %s | %s | %s | %d%% (%d/%d) |\n",
				f.FeatureName, f.Category, f.Status, f.CoverageScore, f.MatchedItems, f.TotalItems)
		}
		b.WriteString("\n")
	}

	if len(r.Traceability) > 0 {
		b.WriteString("## Traceability matrix\n\n")
		b.WriteString("| Use case | Requirement | Design | Test | Gap |\n")
		b.WriteString("|----------|-------------|--------|------|-----|\n")
		for _, t := range r.Traceability {
			fmt.Fprintf(&b, "| %s %s | %s | %s | %s | %s |\n",
				t.UseCaseID, t.UseCaseName, t.RequirementID,
				yesNo(t.HasDesign), yesNo(t.HasTest), t.Gap)
		}
		b.WriteString("\n")
	}

	if len(r.Glossary) > 0 {
		b.WriteString("## Terminology\n\n")
		for _, g := range r.Glossary {
			fmt.Fprintf(&b, "- **%s** (%s): variants %s - %s\n",
				g.TermGroup, g.Severity, g.Variants, g.Suggestion)
		}
		b.WriteString("\n")
	}

	if len(r.Completeness) > 0 {
		b.WriteString("## Completeness\n\n")
		for _, key := range []string{"Requirements", "Architecture", "Testing", "Feature Coverage"} {
			if v, ok := r.Completeness[key]; ok {
				fmt.Fprintf(&b, "- %s: %s\n", key, v)
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "---\n\nExtracted %d use case(s) and %d requirement(s).\n",
		len(r.UseCases), len(r.Requirements))

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
