// Package report assembles and normalizes the final audit report.
package report

import (
	"time"

	"github.com/user/docaudit/pkg/engine"
)

// GlossaryIssue is a terminological inconsistency detected in the document.
type GlossaryIssue struct {
	TermGroup   string `json:"termGroup"`
	Variants    string `json:"variants"`
	Occurrences int    `json:"occurrences"`
	Suggestion  string `json:"suggestion"`
	Severity    string `json:"severity"` // MAJOR or MINOR
}

// FeatureStatus classifies how well a reference feature is covered.
type FeatureStatus string

const (
	FeaturePresent FeatureStatus = "PRESENT"
	FeaturePartial FeatureStatus = "PARTIAL"
	FeatureAbsent  FeatureStatus = "ABSENT"
)

// FeatureCoverage is the result of checking one reference feature.
type FeatureCoverage struct {
	FeatureName   string        `json:"featureName"`
	Category      string        `json:"category"`
	Status        FeatureStatus `json:"status"`
	CoverageScore int           `json:"coverageScore"` // 0-100
	Evidence      string        `json:"evidence"`
	MatchedItems  int           `json:"matchedItems"`
	TotalItems    int           `json:"totalItems"`
}

// TraceabilityEntry is a single row of the traceability matrix.
type TraceabilityEntry struct {
	UseCaseID       string `json:"useCaseId"`
	UseCaseName     string `json:"useCaseName"`
	RequirementID   string `json:"requirementId,omitempty"`
	RequirementName string `json:"requirementName,omitempty"`
	HasDesign       bool   `json:"hasDesign"`
	HasTest         bool   `json:"hasTest"`
	DesignRef       string `json:"designRef,omitempty"`
	TestRef         string `json:"testRef,omitempty"`
	Gap             string `json:"gap,omitempty"`
}

// UseCaseEntry is a single use case extracted from the document.
type UseCaseEntry struct {
	UseCaseID        string `json:"useCaseId"`
	UseCaseName      string `json:"useCaseName"`
	Actor            string `json:"actor,omitempty"`
	Preconditions    string `json:"preconditions,omitempty"`
	MainFlow         string `json:"mainFlow,omitempty"`
	Postconditions   string `json:"postconditions,omitempty"`
	AlternativeFlows string `json:"alternativeFlows,omitempty"`
	HasTemplate      bool   `json:"hasTemplate"`
}

// RequirementEntry is a single functional requirement extracted from the
// document, keeping the identifier exactly as written.
type RequirementEntry struct {
	RequirementID   string `json:"requirementId"`
	RequirementName string `json:"requirementName"`
}

// AuditReport is the complete outcome of one document audit.
type AuditReport struct {
	Filename        string              `json:"filename"`
	GeneratedAt     time.Time           `json:"generatedAt"`
	Issues          []engine.Issue      `json:"issues"`
	FeatureCoverage []FeatureCoverage   `json:"featureCoverage,omitempty"`
	MissingFeatures []FeatureCoverage   `json:"missingFeatures,omitempty"`
	Traceability    []TraceabilityEntry `json:"traceability,omitempty"`
	Glossary        []GlossaryIssue     `json:"glossary,omitempty"`
	UseCases        []UseCaseEntry      `json:"useCases,omitempty"`
	Requirements    []RequirementEntry  `json:"requirements,omitempty"`
	Completeness    map[string]string   `json:"completeness,omitempty"`
	QualityScore    int                 `json:"qualityScore"`
}

// TotalIssues returns the number of published issues.
func (r *AuditReport) TotalIssues() int {
	return len(r.Issues)
}
