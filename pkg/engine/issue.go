package engine

import (
	"encoding/json"
	"strings"
)

// DefaultConfidence is assigned when a producer omits the confidence score
// or reports a non-positive value.
const DefaultConfidence = 0.7

// Severity of an audit issue. HIGH sorts before MEDIUM before LOW.
type Severity int

const (
	SeverityHigh Severity = iota
	SeverityMedium
	SeverityLow
)

func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "HIGH"
	case SeverityMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// ParseSeverity maps a free-form severity string to a Severity.
// Unknown values degrade to LOW rather than failing the parse.
func ParseSeverity(s string) Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HIGH", "CRITICAL":
		return SeverityHigh
	case "MEDIUM", "MAJOR":
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		// Numeric or malformed severity: degrade to LOW.
		*s = SeverityLow
		return nil
	}
	*s = ParseSeverity(raw)
	return nil
}

// Issue is a single problem reported against the audited document.
// Producers create it as a candidate; the pipeline adjusts its confidence,
// and surviving issues are renumbered into final published form.
type Issue struct {
	ID             string   `json:"id"`
	Severity       Severity `json:"severity"`
	ShortSummary   string   `json:"shortDescription"`
	Description    string   `json:"description"`
	PageReference  int      `json:"pageReference"`
	Quote          string   `json:"quote"`
	Category       string   `json:"category"`
	Recommendation string   `json:"recommendation"`
	Confidence     float64  `json:"confidenceScore"`
}

// UnmarshalJSON applies the defaulting rules for producer output:
// a missing or non-positive confidence becomes DefaultConfidence and a
// negative page reference is reset to zero.
func (i *Issue) UnmarshalJSON(data []byte) error {
	type alias Issue
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*i = Issue(a)
	if i.Confidence <= 0 {
		i.Confidence = DefaultConfidence
	}
	i.Confidence = clampConfidence(i.Confidence)
	if i.PageReference < 0 {
		i.PageReference = 0
	}
	return nil
}

// WithConfidence returns a copy with the confidence clamped to [0,1].
func (i Issue) WithConfidence(c float64) Issue {
	i.Confidence = clampConfidence(c)
	return i
}

// WithID returns a copy carrying a new id.
func (i Issue) WithID(id string) Issue {
	i.ID = id
	return i
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// Verdict is the verification collaborator's decision on one candidate issue.
type Verdict struct {
	ID                   string `json:"id"`
	Confirmed            bool   `json:"confirmed"`
	CorrectedPage        *int   `json:"correctedPage,omitempty"`
	CorrectedDescription string `json:"correctedDescription,omitempty"`
	Reason               string `json:"reason,omitempty"`
}
